package site

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mvp-joe/autodoc/internal/autodoc"
)

// Page describes one generated library page.
type Page struct {
	Source     string `json:"source"`
	Path       string `json:"path"`
	Library    string `json:"library"`
	Functions  int    `json:"functions"`
	Examples   int    `json:"examples"`
	Benchmarks int    `json:"benchmarks"`
}

// Stats totals the generated pages.
type Stats struct {
	Pages      int `json:"pages"`
	Functions  int `json:"functions"`
	Examples   int `json:"examples"`
	Benchmarks int `json:"benchmarks"`
}

// Manifest is written next to the pages as manifest.json.
type Manifest struct {
	Title       string    `json:"title"`
	BuildID     string    `json:"build_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Pages       []Page    `json:"pages"`
	Stats       Stats     `json:"stats"`
}

// Writer lays out generated HTML under an output directory.
type Writer struct {
	dir    string
	title  string
	engine *Engine
}

// NewWriter creates a Writer rooted at dir. The index page uses engine.
func NewWriter(dir, title string, engine *Engine) *Writer {
	if engine == nil {
		engine = NewEngine()
	}
	return &Writer{dir: dir, title: title, engine: engine}
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// PagePath maps a source path relative to the project root to its page
// path relative to the output directory: lib/foo.js becomes lib/foo.html.
func PagePath(source string) string {
	source = filepath.ToSlash(source)
	return strings.TrimSuffix(source, filepath.Ext(source)) + ".html"
}

// WritePage writes the rendered html for source and returns its summary.
func (w *Writer) WritePage(source string, lib *autodoc.LibraryInfo, html string) (Page, error) {
	page := Page{
		Source:  filepath.ToSlash(source),
		Path:    PagePath(source),
		Library: lib.Name,
	}
	for _, doc := range lib.Docs {
		page.Functions++
		page.Examples += len(doc.Examples.Examples)
		page.Benchmarks += len(doc.Benchmarks.Benchmarks)
	}

	if err := w.write(page.Path, []byte(html)); err != nil {
		return Page{}, err
	}
	return page, nil
}

// RemovePage deletes the page generated for source, if any.
func (w *Writer) RemovePage(source string) error {
	err := os.Remove(filepath.Join(w.dir, filepath.FromSlash(PagePath(source))))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove page for %s: %w", source, err)
	}
	return nil
}

// WriteIndex writes index.html and manifest.json for pages.
func (w *Writer) WriteIndex(pages []Page) (*Manifest, error) {
	manifest := &Manifest{
		Title:       w.title,
		BuildID:     uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Pages:       pages,
	}
	if manifest.Pages == nil {
		manifest.Pages = []Page{}
	}
	for _, page := range pages {
		manifest.Stats.Pages++
		manifest.Stats.Functions += page.Functions
		manifest.Stats.Examples += page.Examples
		manifest.Stats.Benchmarks += page.Benchmarks
	}

	index, err := w.engine.Render(IndexTemplate(), manifest)
	if err != nil {
		return nil, fmt.Errorf("failed to render index: %w", err)
	}
	if err := w.write("index.html", []byte(index)); err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := w.write("manifest.json", data); err != nil {
		return nil, err
	}
	return manifest, nil
}

func (w *Writer) write(rel string, data []byte) error {
	path := filepath.Join(w.dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", rel, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	return nil
}
