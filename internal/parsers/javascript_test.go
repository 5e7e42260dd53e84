package parsers

import (
	"errors"
	"testing"

	"github.com/mvp-joe/autodoc/internal/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for JavaScriptParser:
// - Collects every comment with 1-based start and end lines
// - Converts function declarations with params and body
// - Converts prototype assignments into member chains
// - Converts var/let/const declarations with function initialisers
// - Unwraps parenthesised IIFE callees
// - Treats export statements as their declaration
// - Reports syntax errors with a line number
// - Handles empty source
// - Parses TypeScript, dropping parameter types and defaults

func TestJavaScriptParser_Comments(t *testing.T) {
	t.Parallel()

	source := "/**\n * Doc.\n */\nfunction a() {}\n// trailing\n"
	program, err := NewJavaScriptParser().Parse(source)
	require.NoError(t, err)

	require.Len(t, program.Comments, 2)
	assert.Equal(t, "/**\n * Doc.\n */", program.Comments[0].Text)
	assert.Equal(t, 1, program.Comments[0].StartLine)
	assert.Equal(t, 3, program.Comments[0].EndLine)
	assert.Equal(t, "// trailing", program.Comments[1].Text)
	assert.Equal(t, 5, program.Comments[1].EndLine)
}

func TestJavaScriptParser_FunctionDeclaration(t *testing.T) {
	t.Parallel()

	program, err := NewJavaScriptParser().Parse("function sum(a, b = 1, ...rest) {\n  return a;\n}\n")
	require.NoError(t, err)
	require.Len(t, program.Body, 1)

	fn, ok := program.Body[0].(*ast.FunctionDeclaration)
	require.True(t, ok, "got %T", program.Body[0])
	assert.Equal(t, "sum", fn.ID.Name)
	assert.Equal(t, []string{"a", "b", "...rest"}, fn.Params)
	assert.Equal(t, 1, fn.StartLine)
	assert.Equal(t, 3, fn.EndLine)
	require.NotNil(t, fn.Body)
	require.Len(t, fn.Body.Body, 1)
	assert.Equal(t, ast.KindOther, fn.Body.Body[0].Kind())
}

func TestJavaScriptParser_PrototypeAssignment(t *testing.T) {
	t.Parallel()

	program, err := NewJavaScriptParser().Parse("Foo.prototype.bar = function(x) {};\n")
	require.NoError(t, err)
	require.Len(t, program.Body, 1)

	stmt, ok := program.Body[0].(*ast.ExpressionStatement)
	require.True(t, ok)
	assign, ok := stmt.Expression.(*ast.Assignment)
	require.True(t, ok)

	member, ok := assign.Left.(*ast.Member)
	require.True(t, ok)
	assert.Equal(t, "bar", member.Property.(*ast.Identifier).Name)
	inner, ok := member.Object.(*ast.Member)
	require.True(t, ok)
	assert.Equal(t, "Foo", inner.Object.(*ast.Identifier).Name)
	assert.Equal(t, "prototype", inner.Property.(*ast.Identifier).Name)

	fn, ok := assign.Right.(*ast.FunctionExpression)
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, fn.Params)
}

func TestJavaScriptParser_VariableDeclarations(t *testing.T) {
	t.Parallel()

	program, err := NewJavaScriptParser().Parse("var f = function() {}, g = 1;\nconst h = (y) => y * 2;\n")
	require.NoError(t, err)
	require.Len(t, program.Body, 2)

	decl, ok := program.Body[0].(*ast.VariableDeclaration)
	require.True(t, ok)
	assert.Equal(t, "var", decl.Keyword)
	require.Len(t, decl.Declarations, 2)
	assert.Equal(t, "f", decl.Declarations[0].ID.(*ast.Identifier).Name)
	assert.IsType(t, &ast.FunctionExpression{}, decl.Declarations[0].Init)

	arrow, ok := program.Body[1].(*ast.VariableDeclaration)
	require.True(t, ok)
	assert.Equal(t, "const", arrow.Keyword)
	fn, ok := arrow.Declarations[0].Init.(*ast.FunctionExpression)
	require.True(t, ok)
	assert.True(t, fn.Arrow)
	assert.Nil(t, fn.Body)
	assert.Equal(t, []string{"y"}, fn.Params)
}

func TestJavaScriptParser_IIFE(t *testing.T) {
	t.Parallel()

	source := "(function(root) {\n  function inner() {}\n})(this);\n"
	program, err := NewJavaScriptParser().Parse(source)
	require.NoError(t, err)
	require.Len(t, program.Body, 1)

	stmt := program.Body[0].(*ast.ExpressionStatement)
	call, ok := stmt.Expression.(*ast.Call)
	require.True(t, ok)
	callee, ok := call.Callee.(*ast.FunctionExpression)
	require.True(t, ok)
	require.NotNil(t, callee.Body)

	inner, ok := callee.Body.Body[0].(*ast.FunctionDeclaration)
	require.True(t, ok)
	assert.Equal(t, "inner", inner.ID.Name)
	assert.Equal(t, 2, inner.StartLine)
}

func TestJavaScriptParser_Export(t *testing.T) {
	t.Parallel()

	program, err := NewJavaScriptParser().Parse("export function api() {}\n")
	require.NoError(t, err)
	require.Len(t, program.Body, 1)
	assert.IsType(t, &ast.FunctionDeclaration{}, program.Body[0])
}

func TestJavaScriptParser_SyntaxError(t *testing.T) {
	t.Parallel()

	_, err := NewJavaScriptParser().Parse("function ok() {}\nfunction (\n")
	require.Error(t, err)

	var syntaxErr *SyntaxError
	require.True(t, errors.As(err, &syntaxErr))
	assert.GreaterOrEqual(t, syntaxErr.Line, 2)
}

func TestJavaScriptParser_Empty(t *testing.T) {
	t.Parallel()

	program, err := NewJavaScriptParser().Parse("")
	require.NoError(t, err)
	assert.Empty(t, program.Body)
	assert.Empty(t, program.Comments)
}

func TestTypeScriptParser(t *testing.T) {
	t.Parallel()

	source := "/** Adds. */\nexport function add(a: number, b: number = 1, ...rest: number[]): number {\n  return a + b;\n}\n" +
		"Foo.prototype.bar = function(x?: string): void {};\n"
	program, err := NewTypeScriptParser().Parse(source)
	require.NoError(t, err)
	require.Len(t, program.Body, 2)
	require.Len(t, program.Comments, 1)

	fn, ok := program.Body[0].(*ast.FunctionDeclaration)
	require.True(t, ok, "got %T", program.Body[0])
	assert.Equal(t, "add", fn.ID.Name)
	assert.Equal(t, []string{"a", "b", "...rest"}, fn.Params)
	assert.Equal(t, 2, fn.StartLine)

	stmt, ok := program.Body[1].(*ast.ExpressionStatement)
	require.True(t, ok)
	assign, ok := stmt.Expression.(*ast.Assignment)
	require.True(t, ok)
	method, ok := assign.Right.(*ast.FunctionExpression)
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, method.Params)
}
