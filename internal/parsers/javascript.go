package parsers

import (
	"strings"

	"github.com/mvp-joe/autodoc/internal/ast"
	sitter "github.com/tree-sitter/go-tree-sitter"
	javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// JavaScriptParser parses JavaScript source into an ast.Program with every
// comment and line position retained.
type JavaScriptParser struct {
	*treeSitterParser
}

// NewJavaScriptParser creates a new JavaScript parser.
func NewJavaScriptParser() *JavaScriptParser {
	lang := sitter.NewLanguage(javascript.Language())
	return &JavaScriptParser{
		treeSitterParser: newTreeSitterParser(lang, "javascript"),
	}
}

// NewTypeScriptParser creates a parser for TypeScript sources. Type
// annotations are dropped; the resulting program has the same shape as for
// the equivalent JavaScript.
func NewTypeScriptParser() *JavaScriptParser {
	lang := sitter.NewLanguage(typescript.LanguageTypescript())
	return &JavaScriptParser{
		treeSitterParser: newTreeSitterParser(lang, "typescript"),
	}
}

// Parse parses source. Source with syntax errors yields a *SyntaxError.
func (p *JavaScriptParser) Parse(source string) (*ast.Program, error) {
	src := []byte(source)
	program := &ast.Program{Body: []ast.Node{}, Comments: []ast.Comment{}}

	err := p.parse(src, func(root *sitter.Node) error {
		c := &converter{source: src}
		for _, child := range namedChildren(root) {
			if n := c.convert(child); n != nil {
				program.Body = append(program.Body, n)
			}
		}
		program.Comments = collectComments(root, src)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return program, nil
}

// collectComments returns every comment in source order.
func collectComments(root *sitter.Node, source []byte) []ast.Comment {
	comments := []ast.Comment{}
	walkTree(root, func(n *sitter.Node) bool {
		if n.Kind() == "comment" {
			comments = append(comments, ast.Comment{
				Text:      extractNodeText(n, source),
				StartLine: int(n.StartPosition().Row) + 1,
				EndLine:   int(n.EndPosition().Row) + 1,
			})
			return false
		}
		return true
	})
	return comments
}

type converter struct {
	source []byte
}

func location(n *sitter.Node) ast.Location {
	return ast.Location{
		StartLine: int(n.StartPosition().Row) + 1,
		EndLine:   int(n.EndPosition().Row) + 1,
	}
}

// convert maps a tree-sitter node onto the ast node set. It returns an
// untyped nil for a nil input so callers can store the result directly.
func (c *converter) convert(n *sitter.Node) ast.Node {
	if n == nil {
		return nil
	}

	switch n.Kind() {
	case "expression_statement":
		return &ast.ExpressionStatement{
			Location:   location(n),
			Expression: c.convert(firstNamedChild(n)),
		}

	case "function_declaration", "generator_function_declaration":
		return &ast.FunctionDeclaration{
			Location: location(n),
			ID:       c.identifier(n.ChildByFieldName("name")),
			Params:   c.params(n),
			Body:     c.block(n.ChildByFieldName("body")),
		}

	case "function_expression", "function", "generator_function", "arrow_function":
		return &ast.FunctionExpression{
			Location: location(n),
			ID:       c.identifier(n.ChildByFieldName("name")),
			Params:   c.params(n),
			Body:     c.block(n.ChildByFieldName("body")),
			Arrow:    n.Kind() == "arrow_function",
		}

	case "statement_block":
		return c.block(n)

	case "assignment_expression":
		return &ast.Assignment{
			Location: location(n),
			Left:     c.convert(n.ChildByFieldName("left")),
			Right:    c.convert(n.ChildByFieldName("right")),
		}

	case "call_expression":
		call := &ast.Call{
			Location:  location(n),
			Callee:    c.convert(n.ChildByFieldName("function")),
			Arguments: []ast.Node{},
		}
		for _, arg := range namedChildren(n.ChildByFieldName("arguments")) {
			if converted := c.convert(arg); converted != nil {
				call.Arguments = append(call.Arguments, converted)
			}
		}
		return call

	case "member_expression":
		return &ast.Member{
			Location: location(n),
			Object:   c.convert(n.ChildByFieldName("object")),
			Property: c.convert(n.ChildByFieldName("property")),
		}

	case "subscript_expression":
		return &ast.Member{
			Location: location(n),
			Object:   c.convert(n.ChildByFieldName("object")),
			Property: c.convert(n.ChildByFieldName("index")),
			Computed: true,
		}

	case "identifier", "property_identifier", "shorthand_property_identifier":
		return c.identifier(n)

	case "variable_declaration", "lexical_declaration":
		decl := &ast.VariableDeclaration{
			Location:     location(n),
			Keyword:      c.keyword(n),
			Declarations: []*ast.VariableDeclarator{},
		}
		for _, child := range namedChildren(n) {
			if child.Kind() != "variable_declarator" {
				continue
			}
			decl.Declarations = append(decl.Declarations, &ast.VariableDeclarator{
				Location: location(child),
				ID:       c.convert(child.ChildByFieldName("name")),
				Init:     c.convert(child.ChildByFieldName("value")),
			})
		}
		return decl

	case "parenthesized_expression", "as_expression", "non_null_expression", "satisfies_expression":
		return c.convert(firstNamedChild(n))

	case "export_statement":
		if decl := n.ChildByFieldName("declaration"); decl != nil {
			return c.convert(decl)
		}
		if value := n.ChildByFieldName("value"); value != nil {
			return c.convert(value)
		}
	}

	return &ast.Other{Location: location(n), Type: n.Kind()}
}

func (c *converter) identifier(n *sitter.Node) *ast.Identifier {
	if n == nil {
		return nil
	}
	return &ast.Identifier{Location: location(n), Name: extractNodeText(n, c.source)}
}

// block converts a statement_block. Arrow functions with expression bodies
// have no block and yield nil.
func (c *converter) block(n *sitter.Node) *ast.Block {
	if n == nil || n.Kind() != "statement_block" {
		return nil
	}
	block := &ast.Block{Location: location(n), Body: []ast.Node{}}
	for _, child := range namedChildren(n) {
		if converted := c.convert(child); converted != nil {
			block.Body = append(block.Body, converted)
		}
	}
	return block
}

// params lists parameter names. Defaults and type annotations are dropped
// and rest parameters keep their "..." prefix; destructuring patterns are
// kept verbatim.
func (c *converter) params(fn *sitter.Node) []string {
	if single := fn.ChildByFieldName("parameter"); single != nil {
		return []string{extractNodeText(single, c.source)}
	}
	params := []string{}
	for _, param := range namedChildren(fn.ChildByFieldName("parameters")) {
		switch param.Kind() {
		case "assignment_pattern":
			param = param.ChildByFieldName("left")
		case "required_parameter", "optional_parameter":
			if pattern := param.ChildByFieldName("pattern"); pattern != nil {
				param = pattern
			}
		}
		params = append(params, extractNodeText(param, c.source))
	}
	return params
}

func (c *converter) keyword(decl *sitter.Node) string {
	if decl.ChildCount() == 0 {
		return ""
	}
	return strings.TrimSpace(extractNodeText(decl.Child(0), c.source))
}
