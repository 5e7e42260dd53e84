package ast

import "iter"

// Children returns the nodes the walk descends into. Only categories that
// can hold nested function bindings have children; every other category,
// including Member and Identifier, is a leaf.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *Block:
		return n.Body
	case *ExpressionStatement:
		return nonNil(n.Expression)
	case *Assignment:
		return nonNil(n.Right)
	case *Call:
		children := nonNil(n.Callee)
		for _, arg := range n.Arguments {
			if _, ok := arg.(*FunctionExpression); ok {
				children = append(children, arg)
			}
		}
		return children
	case *FunctionDeclaration:
		if n.Body != nil {
			return []Node{n.Body}
		}
	case *FunctionExpression:
		if n.Body != nil {
			return []Node{n.Body}
		}
	case *VariableDeclaration:
		children := make([]Node, 0, len(n.Declarations))
		for _, d := range n.Declarations {
			if d != nil {
				children = append(children, d)
			}
		}
		return children
	case *VariableDeclarator:
		return nonNil(n.Init)
	}
	return nil
}

// Nodes yields every node reachable from roots, depth first, parents before
// children, in source order.
func Nodes(roots ...Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		stack := make([]Node, 0, len(roots))
		for i := len(roots) - 1; i >= 0; i-- {
			if roots[i] != nil {
				stack = append(stack, roots[i])
			}
		}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(n) {
				return
			}
			children := Children(n)
			for i := len(children) - 1; i >= 0; i-- {
				if children[i] != nil {
					stack = append(stack, children[i])
				}
			}
		}
	}
}

func nonNil(n Node) []Node {
	if n == nil {
		return nil
	}
	return []Node{n}
}
