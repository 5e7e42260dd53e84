package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for Nodes:
// - Yields parents before children in source order
// - Does not descend into excluded categories (members, other nodes)
// - Descends into immediately invoked function bodies
// - Stops early when the consumer breaks out
// - Handles nil roots and empty programs

func ident(name string, line int) *Identifier {
	return &Identifier{Location: Location{StartLine: line, EndLine: line}, Name: name}
}

func TestNodes_DepthFirstOrder(t *testing.T) {
	t.Parallel()

	inner := &FunctionDeclaration{Location: Location{StartLine: 3, EndLine: 3}, ID: ident("inner", 3)}
	outerBody := &Block{Location: Location{StartLine: 2, EndLine: 4}, Body: []Node{inner}}
	outer := &FunctionDeclaration{Location: Location{StartLine: 2, EndLine: 4}, ID: ident("outer", 2), Body: outerBody}
	after := &Other{Location: Location{StartLine: 5, EndLine: 5}, Type: "if_statement"}

	var kinds []Kind
	for n := range Nodes(outer, after) {
		kinds = append(kinds, n.Kind())
	}

	assert.Equal(t, []Kind{KindFunctionDeclaration, KindBlock, KindFunctionDeclaration, KindOther}, kinds)
}

func TestNodes_SkipsMemberChildren(t *testing.T) {
	t.Parallel()

	member := &Member{Object: ident("Foo", 1), Property: ident("bar", 1)}
	assign := &Assignment{Left: member, Right: &FunctionExpression{}}
	stmt := &ExpressionStatement{Expression: assign}

	var kinds []Kind
	for n := range Nodes(stmt) {
		kinds = append(kinds, n.Kind())
	}

	assert.Equal(t, []Kind{KindExpressionStatement, KindAssignment, KindFunctionExpression}, kinds)
}

func TestNodes_DescendsIntoIIFE(t *testing.T) {
	t.Parallel()

	decl := &FunctionDeclaration{Location: Location{StartLine: 3, EndLine: 3}, ID: ident("hidden", 3)}
	callee := &FunctionExpression{Body: &Block{Body: []Node{decl}}}
	stmt := &ExpressionStatement{Expression: &Call{Callee: callee}}

	found := false
	for n := range Nodes(stmt) {
		if fd, ok := n.(*FunctionDeclaration); ok && fd.ID.Name == "hidden" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestNodes_EarlyBreak(t *testing.T) {
	t.Parallel()

	count := 0
	for range Nodes(ident("a", 1), ident("b", 2), ident("c", 3)) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestNodes_NilAndEmpty(t *testing.T) {
	t.Parallel()

	count := 0
	for range Nodes(nil) {
		count++
	}
	for range Nodes() {
		count++
	}
	assert.Zero(t, count)
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "MemberExpression", KindMember.String())
	assert.Equal(t, "Unknown", Kind(99).String())
}
