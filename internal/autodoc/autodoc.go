// Package autodoc associates JavaScript doc comments with the functions that
// follow them and extracts the structured documentation data a template
// renders: names, namespaces, params, returns, examples and benchmarks.
//
// The package is synchronous and keeps no state between calls; every
// collaborator (code parser, comment parser, markdown renderer, template
// engine) is supplied through Options.
package autodoc

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/mvp-joe/autodoc/internal/ast"
	"github.com/mvp-joe/autodoc/internal/jsdoc"
)

var (
	// ErrMissingCodeParser is returned by New when Options.CodeParser is nil.
	ErrMissingCodeParser = errors.New("autodoc: a code parser is required")
	// ErrMissingTemplate is returned by Generate without Options.Template.
	ErrMissingTemplate = errors.New("autodoc: a template is required to generate")
	// ErrMissingTemplateEngine is returned by Generate without Options.TemplateEngine.
	ErrMissingTemplateEngine = errors.New("autodoc: a template engine is required to generate")
)

// CodeParser turns source text into a program with comments and line
// positions retained.
type CodeParser interface {
	Parse(source string) (*ast.Program, error)
}

// CommentParser turns a delimited comment into a doclet. Comments that are
// not doc comments yield an error and are skipped.
type CommentParser interface {
	Parse(comment string, unwrap bool) (*jsdoc.Doclet, error)
}

// MarkdownRenderer renders Markdown to HTML.
type MarkdownRenderer interface {
	Render(markdown string) string
}

// TemplateEngine renders a template source against data.
type TemplateEngine interface {
	Render(template string, data any) (string, error)
}

// ExampleHandler marks examples whose expected text matches Pattern as
// needing custom verification at runtime.
type ExampleHandler struct {
	Name    string         `json:"name"`
	Pattern *regexp.Regexp `json:"-"`
}

// Options configures a Parser.
type Options struct {
	CodeParser       CodeParser
	CommentParser    CommentParser
	MarkdownRenderer MarkdownRenderer

	// Namespaces restricts and orders the namespace listing. Empty means
	// every namespace in first-seen order.
	Namespaces []string
	// Tags keeps only functions whose doclet carries one of these titles.
	Tags []string
	// RequireDescription drops doclets without a description even when they
	// carry examples.
	RequireDescription bool
	// HoistConstructors leaves a namespace constructor out of its parent
	// namespace's members, so it is listed once.
	HoistConstructors bool
	ExampleHandlers   []ExampleHandler

	Template       string
	TemplateEngine TemplateEngine
}

// Parser runs the documentation pipeline over source files.
type Parser struct {
	opts Options
}

// New validates opts and returns a Parser. CommentParser defaults to the
// JSDoc parser and MarkdownRenderer to passing text through unchanged.
func New(opts Options) (*Parser, error) {
	if opts.CodeParser == nil {
		return nil, ErrMissingCodeParser
	}
	if opts.CommentParser == nil {
		opts.CommentParser = jsdoc.NewParser()
	}
	if opts.MarkdownRenderer == nil {
		opts.MarkdownRenderer = plainText{}
	}
	return &Parser{opts: opts}, nil
}

// Parse documents a single source file. The only error after the source
// has parsed is a *TypeFormatError; every other problem with a comment
// drops that comment.
func (p *Parser) Parse(source string) (*LibraryInfo, error) {
	program, err := p.opts.CodeParser.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}

	docs, err := p.associate(program)
	if err != nil {
		return nil, err
	}

	name, description := p.summarize(program.Comments)
	return &LibraryInfo{
		Name:        name,
		Description: description,
		Code:        source,
		Namespaces:  groupNamespaces(docs, p.opts.Namespaces, p.opts.HoistConstructors),
		Docs:        docs,
	}, nil
}

// Render feeds lib to the configured template.
func (p *Parser) Render(lib *LibraryInfo) (string, error) {
	if p.opts.Template == "" {
		return "", ErrMissingTemplate
	}
	if p.opts.TemplateEngine == nil {
		return "", ErrMissingTemplateEngine
	}
	html, err := p.opts.TemplateEngine.Render(p.opts.Template, lib)
	if err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return html, nil
}

// Generate parses source and renders the result.
func (p *Parser) Generate(source string) (string, error) {
	if p.opts.Template == "" {
		return "", ErrMissingTemplate
	}
	if p.opts.TemplateEngine == nil {
		return "", ErrMissingTemplateEngine
	}
	lib, err := p.Parse(source)
	if err != nil {
		return "", err
	}
	return p.Render(lib)
}

// Parse is shorthand for New(opts) followed by Parse(source).
func Parse(source string, opts Options) (*LibraryInfo, error) {
	p, err := New(opts)
	if err != nil {
		return nil, err
	}
	return p.Parse(source)
}

// Generate is shorthand for New(opts) followed by Generate(source).
func Generate(source string, opts Options) (string, error) {
	p, err := New(opts)
	if err != nil {
		return "", err
	}
	return p.Generate(source)
}

type plainText struct{}

func (plainText) Render(markdown string) string { return markdown }

var linkPattern = regexp.MustCompile(`\{@link\s+([^\s}]+)\s*\}`)

// renderMarkdown renders text and rewrites {@link Name} into anchors.
func (p *Parser) renderMarkdown(text string) string {
	if text == "" {
		return ""
	}
	html := p.opts.MarkdownRenderer.Render(text)
	return linkPattern.ReplaceAllStringFunc(html, func(m string) string {
		target := linkPattern.FindStringSubmatch(m)[1]
		return `<a href="#` + Identifier(target) + `">` + target + `</a>`
	})
}
