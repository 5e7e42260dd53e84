package autodoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for groupNamespaces:
// - Static members sort before instance members, each alphabetical
// - The function named after a namespace becomes its constructor
// - AllMembers lists the constructor first with section kinds
// - An explicit filter selects and orders namespaces
// - A top-level constructor stays listed among the top-level members
// - Hoisting leaves constructors out of their parent namespace

func fn(name string) *FunctionInfo {
	info := ParseName(name)
	return &FunctionInfo{NameInfo: info, IsStatic: !containsHash(name)}
}

func containsHash(s string) bool {
	for _, r := range s {
		if r == '#' {
			return true
		}
	}
	return false
}

func shortNames(docs []*FunctionInfo) []string {
	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		names = append(names, doc.ShortName)
	}
	return names
}

func TestGroupNamespaces_MemberOrder(t *testing.T) {
	t.Parallel()

	docs := []*FunctionInfo{
		{NameInfo: NameInfo{Name: "b", ShortName: "b"}, IsStatic: false},
		{NameInfo: NameInfo{Name: "a", ShortName: "a"}, IsStatic: true},
		{NameInfo: NameInfo{Name: "c", ShortName: "c"}, IsStatic: true},
	}

	namespaces := groupNamespaces(docs, nil, false)
	require.Len(t, namespaces, 1)
	assert.Equal(t, []string{"a", "c", "b"}, shortNames(namespaces[0].Members))
}

func TestGroupNamespaces_Constructor(t *testing.T) {
	t.Parallel()

	docs := []*FunctionInfo{
		fn("Foo"),
		fn("Foo#zeta"),
		fn("Foo.create"),
		fn("Foo#alpha"),
		fn("helper"),
	}

	namespaces := groupNamespaces(docs, nil, false)
	require.Len(t, namespaces, 2)

	top := namespaces[0]
	assert.Equal(t, "", top.Namespace)
	assert.Nil(t, top.Constructor)
	assert.Equal(t, []string{"Foo", "helper"}, shortNames(top.Members))

	foo := namespaces[1]
	assert.Equal(t, "Foo", foo.Namespace)
	require.NotNil(t, foo.Constructor)
	assert.Equal(t, "Foo", foo.Constructor.Name)
	assert.Equal(t, []string{"create", "alpha", "zeta"}, shortNames(foo.Members))

	require.Len(t, foo.AllMembers, 4)
	assert.Equal(t, SectionConstructor, foo.AllMembers[0].Section)
	assert.Equal(t, "Foo", foo.AllMembers[0].Name)
	for _, member := range foo.AllMembers[1:] {
		assert.Equal(t, SectionMethod, member.Section)
	}
}

func TestGroupNamespaces_Filter(t *testing.T) {
	t.Parallel()

	docs := []*FunctionInfo{fn("A.one"), fn("B.two"), fn("C.three")}

	namespaces := groupNamespaces(docs, []string{"C", "A", "Missing"}, false)
	require.Len(t, namespaces, 2)
	assert.Equal(t, "C", namespaces[0].Namespace)
	assert.Equal(t, "A", namespaces[1].Namespace)
}

func TestGroupNamespaces_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, groupNamespaces(nil, nil, false))
}

func TestGroupNamespaces_HoistConstructors(t *testing.T) {
	t.Parallel()

	docs := []*FunctionInfo{fn("helper"), fn("Foo"), fn("Foo.bar")}

	listed := groupNamespaces(docs, nil, false)
	require.Len(t, listed, 2)
	assert.Equal(t, []string{"Foo", "helper"}, shortNames(listed[0].Members))
	assert.Equal(t, []string{"bar"}, shortNames(listed[1].Members))

	hoisted := groupNamespaces(docs, nil, true)
	require.Len(t, hoisted, 2)
	assert.Equal(t, "", hoisted[0].Namespace)
	assert.Equal(t, []string{"helper"}, shortNames(hoisted[0].Members))
	require.NotNil(t, hoisted[1].Constructor)
	assert.Equal(t, "Foo", hoisted[1].Constructor.Name)
}
