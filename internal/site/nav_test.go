package site

import (
	"testing"

	"github.com/mvp-joe/autodoc/internal/autodoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Nav:
// - Children follow their parent in pre-order, siblings keep input order
// - A namespace attaches to its closest listed ancestor
// - The global namespace is a root and never a parent

func namespaces(names ...string) []autodoc.NamespaceInfo {
	out := make([]autodoc.NamespaceInfo, len(names))
	for i, name := range names {
		out[i] = autodoc.NamespaceInfo{Namespace: name}
	}
	return out
}

func TestNav_PreOrder(t *testing.T) {
	t.Parallel()

	entries, err := Nav(namespaces("", "Foo", "Bar", "Foo.Baz", "Foo.Baz.Qux", "Foo.Other"))
	require.NoError(t, err)

	var got []string
	var depths []int
	for _, e := range entries {
		got = append(got, e.Namespace)
		depths = append(depths, e.Depth)
	}
	assert.Equal(t, []string{"", "Foo", "Foo.Baz", "Foo.Baz.Qux", "Foo.Other", "Bar"}, got)
	assert.Equal(t, []int{0, 0, 1, 2, 1, 0}, depths)
	assert.Equal(t, "(global)", entries[0].Label)
	assert.Equal(t, "Qux", entries[3].Label)
}

func TestNav_ClosestAncestor(t *testing.T) {
	t.Parallel()

	entries, err := Nav(namespaces("A", "A.B.C"))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "A.B.C", entries[1].Namespace)
	assert.Equal(t, 1, entries[1].Depth)
	assert.Equal(t, "B.C", entries[1].Label)
	assert.Equal(t, "A-B-C", entries[1].Identifier)
}

func TestNav_Empty(t *testing.T) {
	t.Parallel()

	entries, err := Nav(nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
