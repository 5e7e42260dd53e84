package autodoc

// NameInfo is derived from a qualified name such as "Foo.Bar#baz".
type NameInfo struct {
	Name       string `json:"name"`
	ShortName  string `json:"short_name"`
	Namespace  string `json:"namespace"`
	Identifier string `json:"identifier"`
}

// ParameterInfo describes one @param tag.
type ParameterInfo struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Optional    bool   `json:"optional,omitempty"`
	Default     string `json:"default,omitempty"`
}

// ReturnInfo describes the @returns tag.
type ReturnInfo struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// HandlerMatch records which example handler claimed an example and the
// submatches of its pattern.
type HandlerMatch struct {
	Name   string   `json:"name"`
	Groups []string `json:"groups,omitempty"`
}

// ExampleInfo is one input/expected pair from an @examples tag.
type ExampleInfo struct {
	ID       int           `json:"id"`
	Input    string        `json:"input"`
	Expected string        `json:"expected"`
	Handler  *HandlerMatch `json:"handler,omitempty"`
}

// ExampleCollection holds the @examples tag of one function.
type ExampleCollection struct {
	Code     string        `json:"code"`
	Preamble string        `json:"preamble"`
	Examples []ExampleInfo `json:"examples"`
}

// BenchmarkCase is one implementation measured within a group.
type BenchmarkCase struct {
	ID    int    `json:"id"`
	Impl  string `json:"impl"`
	Label string `json:"label"`
}

// BenchmarkInfo is a named group of cases compared against each other.
type BenchmarkInfo struct {
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Label string          `json:"label"`
	Cases []BenchmarkCase `json:"cases"`
}

// BenchmarkCollection holds the @benchmarks tag of one function.
type BenchmarkCollection struct {
	Code       string          `json:"code"`
	Preamble   string          `json:"preamble"`
	Benchmarks []BenchmarkInfo `json:"benchmarks"`
}

// FunctionInfo is the documentation record of one function.
type FunctionInfo struct {
	NameInfo
	Line          int                 `json:"line"`
	Description   string              `json:"description"`
	Signature     string              `json:"signature"`
	Params        []ParameterInfo     `json:"params"`
	Returns       *ReturnInfo         `json:"returns,omitempty"`
	IsConstructor bool                `json:"is_constructor"`
	IsStatic      bool                `json:"is_static"`
	// Tags are the canonical titles ("return" reads as "returns"), the same
	// form Options.Tags and the search tag filter match on.
	Tags          []string            `json:"tags"`
	Examples      ExampleCollection   `json:"examples"`
	Benchmarks    BenchmarkCollection `json:"benchmarks"`
}

// HasExamples reports whether any example pair was extracted.
func (f *FunctionInfo) HasExamples() bool { return len(f.Examples.Examples) > 0 }

// HasBenchmarks reports whether any benchmark group was extracted.
func (f *FunctionInfo) HasBenchmarks() bool { return len(f.Benchmarks.Benchmarks) > 0 }

// Section kinds attached to namespace members.
const (
	SectionConstructor = "constructor"
	SectionMethod      = "method"
)

// Member is a FunctionInfo placed in a namespace listing.
type Member struct {
	Section string `json:"section"`
	*FunctionInfo
}

// NamespaceInfo groups the functions that share a namespace.
type NamespaceInfo struct {
	Namespace   string          `json:"namespace"`
	Constructor *FunctionInfo   `json:"constructor,omitempty"`
	Members     []*FunctionInfo `json:"members"`
	AllMembers  []Member        `json:"all_members"`
}

// LibraryInfo is the result of parsing one source file.
type LibraryInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Code        string          `json:"code"`
	Namespaces  []NamespaceInfo `json:"namespaces"`
	Docs        []*FunctionInfo `json:"docs"`
}
