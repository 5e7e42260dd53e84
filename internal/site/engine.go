// Package site renders parsed libraries into a static HTML documentation
// site: one page per source file, an index page and a JSON manifest.
package site

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/mvp-joe/autodoc/internal/autodoc"
)

//go:embed templates/*
var templateFiles embed.FS

// DefaultTemplate returns the embedded library page template.
func DefaultTemplate() string {
	return mustReadTemplate("templates/library.html.tmpl")
}

// IndexTemplate returns the embedded index page template.
func IndexTemplate() string {
	return mustReadTemplate("templates/index.html.tmpl")
}

func mustReadTemplate(name string) string {
	data, err := templateFiles.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("missing embedded template %s: %v", name, err))
	}
	return string(data)
}

// Engine renders html/template sources. Parsed templates are cached by
// source text, so an Engine can be shared across goroutines and files.
type Engine struct {
	mu     sync.Mutex
	parsed map[string]*template.Template
}

// NewEngine creates a template engine.
func NewEngine() *Engine {
	return &Engine{parsed: make(map[string]*template.Template)}
}

var _ autodoc.TemplateEngine = (*Engine)(nil)

// Render executes source against data.
func (e *Engine) Render(source string, data any) (string, error) {
	tmpl, err := e.template(source)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func (e *Engine) template(source string) (*template.Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.parsed[source]; ok {
		return tmpl, nil
	}
	tmpl, err := template.New("page").Funcs(funcs).Parse(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	e.parsed[source] = tmpl
	return tmpl, nil
}

var funcs = template.FuncMap{
	// safe marks HTML produced by the Markdown renderer as trusted.
	"safe": func(s string) template.HTML { return template.HTML(s) },
	"json": func(v any) (template.JS, error) {
		data, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return template.JS(data), nil
	},
	"identifier": autodoc.Identifier,
	"join":       strings.Join,
	"nav":        Nav,
	"indent": func(depth int) string {
		return strings.Repeat("  ", depth)
	},
}
