package autodoc

import "strings"

var identifierReplacer = strings.NewReplacer(".", "-", "#", "-")

// ParseName splits a qualified name on "." and "#". The namespace rejoins
// every segment but the last with ".", so "#" does not survive in it.
func ParseName(name string) NameInfo {
	parts := strings.FieldsFunc(name, func(r rune) bool { return r == '.' || r == '#' })
	if len(parts) == 0 {
		return NameInfo{Name: name, ShortName: name, Identifier: Identifier(name)}
	}
	return NameInfo{
		Name:       name,
		ShortName:  parts[len(parts)-1],
		Namespace:  strings.Join(parts[:len(parts)-1], "."),
		Identifier: Identifier(name),
	}
}

// Identifier turns a qualified name into a DOM-safe id.
func Identifier(name string) string {
	return identifierReplacer.Replace(name)
}
