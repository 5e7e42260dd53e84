package autodoc

import (
	"cmp"
	"slices"
)

// groupNamespaces builds the namespace listing. With no filter the
// namespaces are every distinct namespace in first-seen order.
//
// A namespace never lists its own constructor as a member. With hoist set,
// a function that is the constructor of some namespace is also left out of
// its parent's members. A namespace left with neither constructor nor
// members is dropped.
func groupNamespaces(docs []*FunctionInfo, filter []string, hoist bool) []NamespaceInfo {
	names := filter
	if len(names) == 0 {
		names = distinctNamespaces(docs)
	}

	constructors := make(map[string]*FunctionInfo, len(names))
	claimed := make(map[*FunctionInfo]bool)
	for _, ns := range names {
		for _, doc := range docs {
			if doc.Name == ns {
				constructors[ns] = doc
				claimed[doc] = true
				break
			}
		}
	}

	namespaces := make([]NamespaceInfo, 0, len(names))
	for _, ns := range names {
		info := NamespaceInfo{
			Namespace:   ns,
			Constructor: constructors[ns],
			Members:     []*FunctionInfo{},
		}
		for _, doc := range docs {
			if doc.Namespace != ns || doc == info.Constructor || (hoist && claimed[doc]) {
				continue
			}
			info.Members = append(info.Members, doc)
		}
		if info.Constructor == nil && len(info.Members) == 0 {
			continue
		}

		slices.SortStableFunc(info.Members, func(a, b *FunctionInfo) int {
			return cmp.Compare(memberSortKey(a), memberSortKey(b))
		})

		info.AllMembers = make([]Member, 0, len(info.Members)+1)
		if info.Constructor != nil {
			info.AllMembers = append(info.AllMembers, Member{Section: SectionConstructor, FunctionInfo: info.Constructor})
		}
		for _, member := range info.Members {
			info.AllMembers = append(info.AllMembers, Member{Section: SectionMethod, FunctionInfo: member})
		}
		namespaces = append(namespaces, info)
	}
	return namespaces
}

// memberSortKey puts static members before instance members, each group
// alphabetical by short name.
func memberSortKey(doc *FunctionInfo) string {
	if doc.IsStatic {
		return "0" + doc.ShortName
	}
	return "1" + doc.ShortName
}

func distinctNamespaces(docs []*FunctionInfo) []string {
	seen := make(map[string]bool)
	var names []string
	for _, doc := range docs {
		if !seen[doc.Namespace] {
			seen[doc.Namespace] = true
			names = append(names, doc.Namespace)
		}
	}
	return names
}
