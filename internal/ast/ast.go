// Package ast defines the subset of a JavaScript syntax tree that the
// documentation pipeline inspects. Concrete parsers convert their own trees
// into these nodes; anything outside the subset becomes an Other node.
package ast

// Kind identifies the syntactic category of a Node.
type Kind int

const (
	KindOther Kind = iota
	KindFunctionDeclaration
	KindFunctionExpression
	KindBlock
	KindExpressionStatement
	KindAssignment
	KindCall
	KindMember
	KindIdentifier
	KindVariableDeclaration
	KindVariableDeclarator
)

var kindNames = map[Kind]string{
	KindOther:               "Other",
	KindFunctionDeclaration: "FunctionDeclaration",
	KindFunctionExpression:  "FunctionExpression",
	KindBlock:               "BlockStatement",
	KindExpressionStatement: "ExpressionStatement",
	KindAssignment:          "AssignmentExpression",
	KindCall:                "CallExpression",
	KindMember:              "MemberExpression",
	KindIdentifier:          "Identifier",
	KindVariableDeclaration: "VariableDeclaration",
	KindVariableDeclarator:  "VariableDeclarator",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Location is a 1-based line span.
type Location struct {
	StartLine int `json:"start_line"`
	EndLine   int `json:"end_line"`
}

// Pos returns the location itself so that embedding structs satisfy Node.
func (l Location) Pos() Location { return l }

// Node is a closed set of node categories. Only types in this package
// implement it.
type Node interface {
	Kind() Kind
	Pos() Location
	node()
}

// Program is the root of a parsed source file.
type Program struct {
	Body     []Node
	Comments []Comment
}

// Comment is a source comment with its raw text, delimiters included.
type Comment struct {
	Text      string `json:"text"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

type FunctionDeclaration struct {
	Location
	ID     *Identifier
	Params []string
	Body   *Block
}

// FunctionExpression covers function expressions, arrow functions and
// generator expressions. Body is nil for arrow functions with an
// expression body.
type FunctionExpression struct {
	Location
	ID     *Identifier
	Params []string
	Body   *Block
	Arrow  bool
}

type Block struct {
	Location
	Body []Node
}

type ExpressionStatement struct {
	Location
	Expression Node
}

type Assignment struct {
	Location
	Left  Node
	Right Node
}

type Call struct {
	Location
	Callee    Node
	Arguments []Node
}

type Member struct {
	Location
	Object   Node
	Property Node
	Computed bool
}

type Identifier struct {
	Location
	Name string
}

type VariableDeclaration struct {
	Location
	Keyword      string
	Declarations []*VariableDeclarator
}

type VariableDeclarator struct {
	Location
	ID   Node
	Init Node
}

// Other stands in for every category the pipeline does not inspect.
// Type holds the parser's own name for the node.
type Other struct {
	Location
	Type string
}

func (*FunctionDeclaration) Kind() Kind { return KindFunctionDeclaration }
func (*FunctionExpression) Kind() Kind  { return KindFunctionExpression }
func (*Block) Kind() Kind               { return KindBlock }
func (*ExpressionStatement) Kind() Kind { return KindExpressionStatement }
func (*Assignment) Kind() Kind          { return KindAssignment }
func (*Call) Kind() Kind                { return KindCall }
func (*Member) Kind() Kind              { return KindMember }
func (*Identifier) Kind() Kind          { return KindIdentifier }
func (*VariableDeclaration) Kind() Kind { return KindVariableDeclaration }
func (*VariableDeclarator) Kind() Kind  { return KindVariableDeclarator }
func (*Other) Kind() Kind               { return KindOther }

func (*FunctionDeclaration) node() {}
func (*FunctionExpression) node()  {}
func (*Block) node()               {}
func (*ExpressionStatement) node() {}
func (*Assignment) node()          {}
func (*Call) node()                {}
func (*Member) node()              {}
func (*Identifier) node()          {}
func (*VariableDeclaration) node() {}
func (*VariableDeclarator) node()  {}
func (*Other) node()               {}
