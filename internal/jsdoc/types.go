package jsdoc

import "encoding/json"

// TypeKind tags the variant held by a Type.
type TypeKind string

const (
	NameExpression  TypeKind = "NameExpression"
	AllLiteral      TypeKind = "AllLiteral"
	TypeApplication TypeKind = "TypeApplication"
	RecordType      TypeKind = "RecordType"
	OptionalType    TypeKind = "OptionalType"
	UnionType       TypeKind = "UnionType"
	RestType        TypeKind = "RestType"
	FunctionType    TypeKind = "FunctionType"

	// ArrayType and NullableLiteral are produced for tuple syntax ("[A, B]")
	// and a bare "?". Consumers are not required to understand them.
	ArrayType       TypeKind = "ArrayType"
	NullableLiteral TypeKind = "NullableLiteral"
)

// Type is a parsed type expression. Which fields are set depends on Kind:
//
//	NameExpression   Name
//	TypeApplication  Expression (container), Applications
//	RecordType       Fields
//	OptionalType     Expression
//	RestType         Expression (may be nil)
//	UnionType        Elements
//	ArrayType        Elements
//	FunctionType     Params, Result (may be nil)
type Type struct {
	Kind         TypeKind `json:"type"`
	Name         string   `json:"name,omitempty"`
	Expression   *Type    `json:"expression,omitempty"`
	Applications []*Type  `json:"applications,omitempty"`
	Elements     []*Type  `json:"elements,omitempty"`
	Fields       []*Field `json:"fields,omitempty"`
	Params       []*Type  `json:"params,omitempty"`
	Result       *Type    `json:"result,omitempty"`
}

// Field is one entry of a record type. Value is nil for "{key}".
type Field struct {
	Key   string `json:"key"`
	Value *Type  `json:"value,omitempty"`
}

// String returns the JSON form of the expression, for diagnostics.
func (t *Type) String() string {
	if t == nil {
		return "null"
	}
	data, err := json.Marshal(t)
	if err != nil {
		return string(t.Kind)
	}
	return string(data)
}

// Name builds a NameExpression.
func Name(name string) *Type {
	return &Type{Kind: NameExpression, Name: name}
}
