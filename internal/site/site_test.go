package site

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/mvp-joe/autodoc/internal/autodoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Engine and Writer:
// - The default template renders names, signatures, params and examples
// - Plain fields are escaped while Markdown output is emitted as HTML
// - Template syntax errors surface from Render
// - Pages land at the .html path mirroring the source
// - WriteIndex writes index.html and a manifest with totals and a build id

func sampleLibrary() *autodoc.LibraryInfo {
	bar := &autodoc.FunctionInfo{
		NameInfo:    autodoc.ParseName("Foo.bar"),
		Description: "<p>Adds <em>one</em>.</p>",
		Signature:   "function bar(x)",
		Params:      []autodoc.ParameterInfo{{Name: "x", Type: "number", Description: "a <number>"}},
		Returns:     &autodoc.ReturnInfo{Type: "number"},
		IsStatic:    true,
		Examples: autodoc.ExampleCollection{
			Examples: []autodoc.ExampleInfo{{ID: 1, Input: "Foo.bar(1)", Expected: "2"}},
		},
	}
	return &autodoc.LibraryInfo{
		Name:        "Foo lib",
		Description: "<p>Things.</p>",
		Namespaces: []autodoc.NamespaceInfo{{
			Namespace:  "Foo",
			Members:    []*autodoc.FunctionInfo{bar},
			AllMembers: []autodoc.Member{{Section: autodoc.SectionMethod, FunctionInfo: bar}},
		}},
		Docs: []*autodoc.FunctionInfo{bar},
	}
}

func TestEngine_DefaultTemplate(t *testing.T) {
	t.Parallel()

	html, err := NewEngine().Render(DefaultTemplate(), sampleLibrary())
	require.NoError(t, err)

	assert.Contains(t, html, "<title>Foo lib</title>")
	assert.Contains(t, html, `id="Foo-bar"`)
	assert.Contains(t, html, "function bar(x)")
	assert.Contains(t, html, "<p>Adds <em>one</em>.</p>")
	assert.Contains(t, html, "a <number>")
	assert.Contains(t, html, `href="#ns-Foo"`)
	assert.Contains(t, html, "Foo.bar(1) // =&gt; 2")
}

func TestEngine_EscapesPlainFields(t *testing.T) {
	t.Parallel()

	html, err := NewEngine().Render(`<b>{{.}}</b>`, "<script>")
	require.NoError(t, err)
	assert.Equal(t, "<b>&lt;script&gt;</b>", html)
}

func TestEngine_BadTemplate(t *testing.T) {
	t.Parallel()

	_, err := NewEngine().Render(`{{.Name`, nil)
	assert.Error(t, err)
}

func TestPagePath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "lib/foo.html", PagePath("lib/foo.js"))
	assert.Equal(t, "index.html", PagePath("index.mjs"))
}

func TestWriter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w := NewWriter(dir, "My docs", nil)

	page, err := w.WritePage("lib/foo.js", sampleLibrary(), "<html></html>")
	require.NoError(t, err)
	assert.Equal(t, "lib/foo.html", page.Path)
	assert.Equal(t, 1, page.Functions)
	assert.Equal(t, 1, page.Examples)
	assert.FileExists(t, filepath.Join(dir, "lib", "foo.html"))

	manifest, err := w.WriteIndex([]Page{page})
	require.NoError(t, err)
	assert.Equal(t, 1, manifest.Stats.Pages)
	_, err = uuid.Parse(manifest.BuildID)
	assert.NoError(t, err)

	index, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), `href="lib/foo.html"`)

	data, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	require.NoError(t, err)
	var decoded Manifest
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "My docs", decoded.Title)
	assert.Equal(t, manifest.BuildID, decoded.BuildID)

	require.NoError(t, w.RemovePage("lib/foo.js"))
	assert.NoFileExists(t, filepath.Join(dir, "lib", "foo.html"))
	assert.NoError(t, w.RemovePage("lib/foo.js"))
}
