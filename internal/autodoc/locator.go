package autodoc

import (
	"strings"

	"github.com/mvp-joe/autodoc/internal/ast"
)

// locateFunctions indexes every function-like node by its starting line.
// Several nodes may share a line; each bucket keeps walk order.
func locateFunctions(program *ast.Program) map[int][]ast.Node {
	buckets := make(map[int][]ast.Node)
	if program == nil {
		return buckets
	}
	for n := range ast.Nodes(program.Body...) {
		if _, ok := functionParams(n); !ok && !isIIFE(n) {
			continue
		}
		line := n.Pos().StartLine
		buckets[line] = append(buckets[line], n)
	}
	return buckets
}

// functionParams returns the parameter names of the function bound by n.
// ok is false when n binds no function.
func functionParams(n ast.Node) (params []string, ok bool) {
	switch n := n.(type) {
	case *ast.FunctionDeclaration:
		return n.Params, true
	case *ast.ExpressionStatement:
		if assign, isAssign := n.Expression.(*ast.Assignment); isAssign {
			if fn := assignedFunction(assign); fn != nil {
				return fn.Params, true
			}
		}
	case *ast.VariableDeclaration:
		if len(n.Declarations) > 0 && n.Declarations[0] != nil {
			if fn, isFn := n.Declarations[0].Init.(*ast.FunctionExpression); isFn {
				return fn.Params, true
			}
		}
	}
	return nil, false
}

// assignedFunction follows chained assignments (a = b = function...) to the
// function on the far right.
func assignedFunction(assign *ast.Assignment) *ast.FunctionExpression {
	for {
		switch right := assign.Right.(type) {
		case *ast.FunctionExpression:
			return right
		case *ast.Assignment:
			assign = right
		default:
			return nil
		}
	}
}

func isIIFE(n ast.Node) bool {
	stmt, ok := n.(*ast.ExpressionStatement)
	if !ok {
		return false
	}
	call, ok := stmt.Expression.(*ast.Call)
	if !ok {
		return false
	}
	_, ok = call.Callee.(*ast.FunctionExpression)
	return ok
}

// identifierName derives the qualified name a node binds. Member chains
// through "prototype" become instance names: X.prototype.y is X#y.
func identifierName(n ast.Node) (string, bool) {
	switch n := n.(type) {
	case *ast.Identifier:
		return n.Name, n.Name != ""
	case *ast.FunctionDeclaration:
		if n.ID == nil {
			return "", false
		}
		return identifierName(n.ID)
	case *ast.ExpressionStatement:
		return identifierName(n.Expression)
	case *ast.Assignment:
		return identifierName(n.Left)
	case *ast.VariableDeclaration:
		if len(n.Declarations) == 0 || n.Declarations[0] == nil {
			return "", false
		}
		return identifierName(n.Declarations[0])
	case *ast.VariableDeclarator:
		return identifierName(n.ID)
	case *ast.Member:
		if n.Computed {
			return "", false
		}
		object, ok := identifierName(n.Object)
		if !ok {
			return "", false
		}
		property, ok := identifierName(n.Property)
		if !ok {
			return "", false
		}
		name := object + "." + property
		return strings.ReplaceAll(name, ".prototype.", "#"), true
	}
	return "", false
}
