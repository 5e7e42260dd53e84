// Package jsdoc parses JSDoc block comments into doclets: a description
// followed by an ordered list of @tags, with Closure-style type expressions
// parsed into a tree.
package jsdoc

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotDoclet is returned for comments that are not "/** ... */" blocks.
var ErrNotDoclet = errors.New("jsdoc: not a doc comment")

// Tag is a single @title annotation.
type Tag struct {
	Title       string `json:"title"`
	Name        string `json:"name,omitempty"`
	Type        *Type  `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
	Optional    bool   `json:"optional,omitempty"`
	Default     string `json:"default,omitempty"`
}

// Doclet is the structured form of a doc comment.
type Doclet struct {
	Description string `json:"description"`
	Tags        []Tag  `json:"tags"`
}

// Tag returns the first tag with the given title.
func (d *Doclet) Tag(title string) (Tag, bool) {
	for _, tag := range d.Tags {
		if tag.Title == title {
			return tag, true
		}
	}
	return Tag{}, false
}

// TagsByTitle returns every tag with the given title, in comment order.
func (d *Doclet) TagsByTitle(title string) []Tag {
	var tags []Tag
	for _, tag := range d.Tags {
		if tag.Title == title {
			tags = append(tags, tag)
		}
	}
	return tags
}

// HasTag reports whether any tag carries the title.
func (d *Doclet) HasTag(title string) bool {
	_, ok := d.Tag(title)
	return ok
}

// Titles lists the tag titles in comment order.
func (d *Doclet) Titles() []string {
	titles := make([]string, 0, len(d.Tags))
	for _, tag := range d.Tags {
		titles = append(titles, tag.Title)
	}
	return titles
}

var titleSynonyms = map[string]string{
	"arg":      "param",
	"argument": "param",
	"return":   "returns",
	"prop":     "property",
}

// Parser turns comment text into doclets. The zero value is ready to use.
type Parser struct{}

// NewParser returns a doclet parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses a comment. With unwrap set, comment must be a delimited
// "/** ... */" block; the delimiters and leading asterisks are stripped.
// Without unwrap the text is taken as already-unwrapped comment content.
func (p *Parser) Parse(comment string, unwrap bool) (*Doclet, error) {
	body := comment
	if unwrap {
		var ok bool
		body, ok = unwrapComment(comment)
		if !ok {
			return nil, ErrNotDoclet
		}
	}

	doclet := &Doclet{Tags: []Tag{}}
	var description []string
	var current *rawTag
	var raw []*rawTag

	for _, line := range strings.Split(body, "\n") {
		if title, rest, ok := tagLine(line); ok {
			current = &rawTag{title: title, lines: []string{rest}}
			raw = append(raw, current)
			continue
		}
		if current == nil {
			description = append(description, line)
			continue
		}
		current.lines = append(current.lines, line)
	}

	doclet.Description = strings.TrimSpace(strings.Join(description, "\n"))
	for _, r := range raw {
		tag, err := r.parse()
		if err != nil {
			return nil, fmt.Errorf("jsdoc: @%s: %w", r.title, err)
		}
		doclet.Tags = append(doclet.Tags, tag)
	}
	return doclet, nil
}

func unwrapComment(comment string) (string, bool) {
	text := strings.TrimSpace(comment)
	if !strings.HasPrefix(text, "/**") || !strings.HasSuffix(text, "*/") || len(text) < 5 {
		return "", false
	}
	text = text[3 : len(text)-2]

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "*") {
			trimmed = strings.TrimPrefix(trimmed[1:], " ")
			lines[i] = trimmed
			continue
		}
		if i == 0 {
			lines[i] = strings.TrimPrefix(line, " ")
			continue
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n"), true
}

// tagLine recognises "@title rest" at the start of a line.
func tagLine(line string) (title, rest string, ok bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if len(trimmed) < 2 || trimmed[0] != '@' || !isTitleStart(trimmed[1]) {
		return "", "", false
	}
	end := 1
	for end < len(trimmed) && isTitleChar(trimmed[end]) {
		end++
	}
	title = trimmed[1:end]
	rest = strings.TrimPrefix(trimmed[end:], " ")
	return title, rest, true
}

func isTitleStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isTitleChar(c byte) bool {
	return isTitleStart(c) || (c >= '0' && c <= '9') || c == '_' || c == '-'
}

type rawTag struct {
	title string
	lines []string
}

func (r *rawTag) parse() (Tag, error) {
	title := r.title
	if canonical, ok := titleSynonyms[title]; ok {
		title = canonical
	}
	tag := Tag{Title: title}
	text := strings.Join(r.lines, "\n")

	switch title {
	case "param", "property":
		typ, rest, err := leadingType(text)
		if err != nil {
			return Tag{}, err
		}
		tag.Type = typ
		name, rest := leadingName(rest)
		if strings.HasPrefix(name, "[") && strings.HasSuffix(name, "]") {
			name = strings.TrimSuffix(strings.TrimPrefix(name, "["), "]")
			tag.Optional = true
			if before, after, found := strings.Cut(name, "="); found {
				name, tag.Default = strings.TrimSpace(before), strings.TrimSpace(after)
			}
			if tag.Type != nil {
				tag.Type = &Type{Kind: OptionalType, Expression: tag.Type}
			}
		}
		tag.Name = name
		tag.Description = strings.TrimSpace(strings.TrimPrefix(strings.TrimLeft(rest, " \t"), "- "))
	case "returns", "type", "throws", "exception", "enum", "define", "this":
		typ, rest, err := leadingType(text)
		if err != nil {
			return Tag{}, err
		}
		tag.Type = typ
		tag.Description = strings.TrimSpace(rest)
	case "name", "alias", "memberOf", "memberof", "lends", "borrows", "module", "namespace":
		tag.Description = strings.TrimSpace(text)
		tag.Name, _ = leadingName(tag.Description)
	default:
		tag.Description = strings.TrimSpace(text)
	}
	return tag, nil
}

// leadingType extracts a "{...}" type expression from the start of text,
// honouring nested braces.
func leadingType(text string) (*Type, string, error) {
	trimmed := strings.TrimLeft(text, " \t\n")
	if !strings.HasPrefix(trimmed, "{") {
		return nil, text, nil
	}
	depth := 0
	for i := 0; i < len(trimmed); i++ {
		switch trimmed[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				typ, err := ParseType(trimmed[1:i])
				if err != nil {
					return nil, "", err
				}
				return typ, trimmed[i+1:], nil
			}
		}
	}
	return nil, "", fmt.Errorf("unterminated type expression %q", trimmed)
}

// leadingName splits off the first word, keeping "[name=default]" intact.
func leadingName(text string) (string, string) {
	trimmed := strings.TrimLeft(text, " \t")
	if strings.HasPrefix(trimmed, "[") {
		if end := strings.IndexByte(trimmed, ']'); end >= 0 {
			return trimmed[:end+1], trimmed[end+1:]
		}
	}
	end := strings.IndexAny(trimmed, " \t\n")
	if end < 0 {
		return trimmed, ""
	}
	return trimmed[:end], trimmed[end:]
}
