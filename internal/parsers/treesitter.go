// Package parsers converts tree-sitter syntax trees into the ast package's
// node set.
package parsers

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// SyntaxError reports the first error node in a parsed tree.
type SyntaxError struct {
	Line   int
	Column int
	Near   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d, column %d near %q", e.Line, e.Column, e.Near)
}

// treeSitterParser holds the grammar shared by every parse.
type treeSitterParser struct {
	language *sitter.Language
	lang     string
}

func newTreeSitterParser(language *sitter.Language, lang string) *treeSitterParser {
	return &treeSitterParser{
		language: language,
		lang:     lang,
	}
}

// parse runs tree-sitter over source and hands the root node to fn. The
// tree is only valid for the duration of fn.
func (p *treeSitterParser) parse(source []byte, fn func(root *sitter.Node) error) error {
	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(p.language); err != nil {
		return fmt.Errorf("failed to load %s grammar: %w", p.lang, err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return fmt.Errorf("failed to parse %s source", p.lang)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		if bad := firstError(root); bad != nil {
			return &SyntaxError{
				Line:   int(bad.StartPosition().Row) + 1,
				Column: int(bad.StartPosition().Column) + 1,
				Near:   truncate(extractNodeText(bad, source), 40),
			}
		}
	}
	return fn(root)
}

// extractNodeText extracts the text content of a tree-sitter node.
func extractNodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// walkTree recursively walks a tree-sitter tree and calls the visitor for each node.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}

	if !visitor(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkTree(node.Child(uint(i)), visitor)
	}
}

// namedChildren returns the named children of node, comments excluded.
func namedChildren(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	var children []*sitter.Node
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(uint(i))
		if child == nil || child.Kind() == "comment" {
			continue
		}
		children = append(children, child)
	}
	return children
}

// firstNamedChild returns the first named, non-comment child.
func firstNamedChild(node *sitter.Node) *sitter.Node {
	children := namedChildren(node)
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

func firstError(node *sitter.Node) *sitter.Node {
	var found *sitter.Node
	walkTree(node, func(n *sitter.Node) bool {
		if found != nil {
			return false
		}
		if n.IsError() || n.IsMissing() {
			found = n
			return false
		}
		return n.HasError()
	})
	return found
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
