package site

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/dominikbraun/graph"
	"github.com/mvp-joe/autodoc/internal/autodoc"
)

// NavEntry is one line of the namespace navigation.
type NavEntry struct {
	Namespace  string `json:"namespace"`
	Label      string `json:"label"`
	Identifier string `json:"identifier"`
	Depth      int    `json:"depth"`
	Members    int    `json:"members"`
}

// Nav orders namespaces as a tree: every namespace follows its closest
// listed ancestor ("Foo" before "Foo.Bar"), and siblings keep the order of
// the input.
func Nav(namespaces []autodoc.NamespaceInfo) ([]NavEntry, error) {
	g := graph.New(graph.StringHash, graph.Directed(), graph.Acyclic(), graph.PreventCycles())

	order := make(map[string]int, len(namespaces))
	members := make(map[string]int, len(namespaces))
	for i, ns := range namespaces {
		if _, dup := order[ns.Namespace]; dup {
			continue
		}
		order[ns.Namespace] = i
		members[ns.Namespace] = len(ns.AllMembers)
		if err := g.AddVertex(ns.Namespace); err != nil {
			return nil, fmt.Errorf("failed to add namespace %q: %w", ns.Namespace, err)
		}
	}

	for name := range order {
		if parent, ok := closestAncestor(name, order); ok {
			if err := g.AddEdge(parent, name); err != nil {
				return nil, fmt.Errorf("failed to link %q to %q: %w", name, parent, err)
			}
		}
	}

	adjacency, err := g.AdjacencyMap()
	if err != nil {
		return nil, err
	}
	predecessors, err := g.PredecessorMap()
	if err != nil {
		return nil, err
	}

	byOrder := func(names []string) []string {
		slices.SortFunc(names, func(a, b string) int {
			return cmp.Compare(order[a], order[b])
		})
		return names
	}

	var roots []string
	for name, preds := range predecessors {
		if len(preds) == 0 {
			roots = append(roots, name)
		}
	}

	entries := make([]NavEntry, 0, len(order))
	var visit func(name string, depth int, parent string)
	visit = func(name string, depth int, parent string) {
		entries = append(entries, NavEntry{
			Namespace:  name,
			Label:      label(name, parent),
			Identifier: autodoc.Identifier(name),
			Depth:      depth,
			Members:    members[name],
		})
		children := make([]string, 0, len(adjacency[name]))
		for child := range adjacency[name] {
			children = append(children, child)
		}
		for _, child := range byOrder(children) {
			visit(child, depth+1, name)
		}
	}
	for _, root := range byOrder(roots) {
		visit(root, 0, "")
	}
	return entries, nil
}

// closestAncestor finds the longest listed dotted prefix of name. The
// top-level namespace "" is nobody's ancestor.
func closestAncestor(name string, listed map[string]int) (string, bool) {
	for i := strings.LastIndex(name, "."); i > 0; i = strings.LastIndex(name[:i], ".") {
		if _, ok := listed[name[:i]]; ok {
			return name[:i], true
		}
	}
	return "", false
}

func label(name, parent string) string {
	switch {
	case name == "":
		return "(global)"
	case parent == "":
		return name
	default:
		return strings.TrimPrefix(name, parent+".")
	}
}
