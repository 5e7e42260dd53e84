package autodoc

import (
	"errors"
	"testing"

	"github.com/mvp-joe/autodoc/internal/jsdoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for FormatType:
// - Each supported kind renders its display form
// - Nested expressions render recursively
// - Formatting is repeatable
// - Unsupported kinds fail with the offending type attached

func parseType(t *testing.T, src string) *jsdoc.Type {
	t.Helper()
	typ, err := jsdoc.ParseType(src)
	require.NoError(t, err)
	return typ
}

func TestFormatType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		want string
	}{
		{"number", "number"},
		{"*", "*"},
		{"Array.<string>", "Array.<string>"},
		{"Object<string, number>", "Object.<string|number>"},
		{"string[]", "Array.<string>"},
		{"{a: number, b: string}", "{a:number, b:string}"},
		{"{a}", "{a}"},
		{"?string", "string?"},
		{"number=", "number?"},
		{"string|number", "string|number"},
		{"...number", "...number"},
		{"function(string, *):boolean", "function(string, *):boolean"},
		{"function(number)", "function(number)"},
		{"Array.<function(string):(number|null)>", "Array.<function(string):number|null>"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()

			got, err := FormatType(parseType(t, tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatType_Repeatable(t *testing.T) {
	t.Parallel()

	typ := parseType(t, "Object.<string, {x: number}>")
	first, err := FormatType(typ)
	require.NoError(t, err)
	second, err := FormatType(typ)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFormatType_UnsupportedKind(t *testing.T) {
	t.Parallel()

	for _, src := range []string{"[string, number]", "?", "Array.<[number]>"} {
		got, err := FormatType(parseType(t, src))
		assert.Empty(t, got)

		var formatErr *TypeFormatError
		require.True(t, errors.As(err, &formatErr), "source %q", src)
		assert.Contains(t, formatErr.Error(), "unable to format type")
	}

	_, err := FormatType(&jsdoc.Type{Kind: "VoidLiteral"})
	var formatErr *TypeFormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, jsdoc.TypeKind("VoidLiteral"), formatErr.Type.Kind)
}

func TestFormatType_Nil(t *testing.T) {
	t.Parallel()

	got, err := FormatType(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
