package autodoc

import (
	"regexp"
	"slices"
	"strings"

	"github.com/mvp-joe/autodoc/internal/jsdoc"
)

// DefaultBenchmarkLabel is used for cases without an explicit " - label".
const DefaultBenchmarkLabel = "Ops/second"

var commentArrow = regexp.MustCompile(`^(.*?)\s*//\s*=>\s*(.*)$`)

type pair struct {
	left  string
	right string
}

// splitLine splits "left // => right" when commentForm is set, otherwise
// "left => right" at the last arrow.
func splitLine(line string, commentForm bool) (pair, bool) {
	var p pair
	if commentForm {
		m := commentArrow.FindStringSubmatch(line)
		if m == nil {
			return pair{}, false
		}
		p = pair{left: m[1], right: m[2]}
	} else if i := strings.LastIndex(line, "=>"); i >= 0 {
		p = pair{left: line[:i], right: line[i+2:]}
	} else {
		return pair{}, false
	}
	p.left = strings.TrimSpace(p.left)
	p.right = strings.TrimSpace(p.right)
	if p.left == "" || p.right == "" {
		return pair{}, false
	}
	return p, true
}

// splitPairs walks text line by line. A block with any "// =>" line uses
// that form only, so arrow functions in setup code stay in the preamble.
// Lines before the first pair make up the preamble; unmatched lines after
// it are dropped.
func splitPairs(text string) (preamble []string, pairs []pair) {
	if text == "" {
		return nil, nil
	}
	lines := strings.Split(text, "\n")
	commentForm := slices.ContainsFunc(lines, commentArrow.MatchString)
	for _, line := range lines {
		if p, ok := splitLine(line, commentForm); ok {
			pairs = append(pairs, p)
			continue
		}
		if len(pairs) == 0 {
			preamble = append(preamble, line)
		}
	}
	return preamble, pairs
}

func tagText(doclet *jsdoc.Doclet, title string) string {
	tag, ok := doclet.Tag(title)
	if !ok {
		return ""
	}
	return tag.Description
}

// counters hands out sequential ids for a single parse.
type counters struct {
	example   int
	benchmark int
	benchCase int
}

func (c *counters) nextExample() int {
	c.example++
	return c.example
}

func (c *counters) nextBenchmark() int {
	c.benchmark++
	return c.benchmark
}

func (c *counters) nextCase() int {
	c.benchCase++
	return c.benchCase
}

func (c *counters) examples(doclet *jsdoc.Doclet, handlers []ExampleHandler) ExampleCollection {
	code := tagText(doclet, "examples")
	preamble, pairs := splitPairs(code)

	collection := ExampleCollection{
		Code:     code,
		Preamble: strings.Join(preamble, "\n"),
		Examples: make([]ExampleInfo, 0, len(pairs)),
	}
	for _, p := range pairs {
		collection.Examples = append(collection.Examples, ExampleInfo{
			ID:       c.nextExample(),
			Input:    p.left,
			Expected: p.right,
			Handler:  matchHandler(handlers, p.right),
		})
	}
	return collection
}

func matchHandler(handlers []ExampleHandler, expected string) *HandlerMatch {
	for _, h := range handlers {
		if h.Pattern == nil {
			continue
		}
		if m := h.Pattern.FindStringSubmatch(expected); m != nil {
			return &HandlerMatch{Name: h.Name, Groups: m[1:]}
		}
	}
	return nil
}

func (c *counters) benchmarks(doclet *jsdoc.Doclet) BenchmarkCollection {
	code := tagText(doclet, "benchmarks")
	preamble, pairs := splitPairs(code)

	collection := BenchmarkCollection{
		Code:       code,
		Preamble:   strings.Join(preamble, "\n"),
		Benchmarks: []BenchmarkInfo{},
	}
	groups := make(map[string]int)
	for _, p := range pairs {
		name, label, found := strings.Cut(p.right, " - ")
		name = strings.TrimSpace(name)
		label = strings.TrimSpace(label)
		if !found || label == "" {
			label = DefaultBenchmarkLabel
		}

		idx, ok := groups[name]
		if !ok {
			idx = len(collection.Benchmarks)
			groups[name] = idx
			collection.Benchmarks = append(collection.Benchmarks, BenchmarkInfo{
				ID:    c.nextBenchmark(),
				Name:  name,
				Label: label,
			})
		}
		group := &collection.Benchmarks[idx]
		group.Cases = append(group.Cases, BenchmarkCase{
			ID:    c.nextCase(),
			Impl:  p.left,
			Label: label,
		})
	}
	return collection
}
