package jsdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for ParseType:
// - Names, including dotted names, and the * wildcard
// - Applications in both Array.<T> and Array<T> forms, plus T[]
// - Records with and without field types
// - Unions with and without parentheses
// - Optional (?T, T=), non-null (!T) and rest (...T) modifiers
// - Function types with and without results, this:/new: receivers
// - Tuples and bare ? produce ArrayType and NullableLiteral
// - Malformed input reports an error

func TestParseType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want *Type
	}{
		{
			name: "plain name",
			src:  "number",
			want: Name("number"),
		},
		{
			name: "dotted name",
			src:  "goog.events.Event",
			want: Name("goog.events.Event"),
		},
		{
			name: "wildcard",
			src:  "*",
			want: &Type{Kind: AllLiteral},
		},
		{
			name: "dot application",
			src:  "Array.<string>",
			want: &Type{Kind: TypeApplication, Expression: Name("Array"), Applications: []*Type{Name("string")}},
		},
		{
			name: "angle application with two params",
			src:  "Object<string, number>",
			want: &Type{Kind: TypeApplication, Expression: Name("Object"), Applications: []*Type{Name("string"), Name("number")}},
		},
		{
			name: "array suffix",
			src:  "string[]",
			want: &Type{Kind: TypeApplication, Expression: Name("Array"), Applications: []*Type{Name("string")}},
		},
		{
			name: "record",
			src:  "{a: number, b}",
			want: &Type{Kind: RecordType, Fields: []*Field{{Key: "a", Value: Name("number")}, {Key: "b"}}},
		},
		{
			name: "parenthesised union",
			src:  "(string|number)",
			want: &Type{Kind: UnionType, Elements: []*Type{Name("string"), Name("number")}},
		},
		{
			name: "bare union",
			src:  "string | null",
			want: &Type{Kind: UnionType, Elements: []*Type{Name("string"), Name("null")}},
		},
		{
			name: "prefix optional",
			src:  "?string",
			want: &Type{Kind: OptionalType, Expression: Name("string")},
		},
		{
			name: "suffix optional",
			src:  "number=",
			want: &Type{Kind: OptionalType, Expression: Name("number")},
		},
		{
			name: "non-null",
			src:  "!Object",
			want: Name("Object"),
		},
		{
			name: "rest",
			src:  "...number",
			want: &Type{Kind: RestType, Expression: Name("number")},
		},
		{
			name: "function with result",
			src:  "function(string, ...*):boolean",
			want: &Type{
				Kind:   FunctionType,
				Params: []*Type{Name("string"), {Kind: RestType, Expression: &Type{Kind: AllLiteral}}},
				Result: Name("boolean"),
			},
		},
		{
			name: "function without result",
			src:  "function()",
			want: &Type{Kind: FunctionType, Params: []*Type{}},
		},
		{
			name: "function with receiver",
			src:  "function(this:Foo, number)",
			want: &Type{Kind: FunctionType, Params: []*Type{Name("Foo"), Name("number")}},
		},
		{
			name: "tuple",
			src:  "[string, number]",
			want: &Type{Kind: ArrayType, Elements: []*Type{Name("string"), Name("number")}},
		},
		{
			name: "bare nullable",
			src:  "?",
			want: &Type{Kind: NullableLiteral},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseType(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseType_Errors(t *testing.T) {
	t.Parallel()

	for _, src := range []string{"", "Array.<string", "{a: }", "(string", "string number", "function(:"} {
		_, err := ParseType(src)
		assert.Error(t, err, "source %q", src)
	}
}

func TestType_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `{"type":"NameExpression","name":"x"}`, Name("x").String())
	assert.Equal(t, "null", (*Type)(nil).String())
}
