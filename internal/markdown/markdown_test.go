package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for Renderer:
// - Renders paragraphs and inline code
// - Inline mode strips a single wrapping paragraph only
// - Leaves {@link} markup for the caller to rewrite

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	html := NewRenderer().Render("Adds `a` and *b*.")
	assert.Equal(t, "<p>Adds <code>a</code> and <em>b</em>.</p>", html)
}

func TestRenderer_Inline(t *testing.T) {
	t.Parallel()

	r := &Renderer{Inline: true}
	assert.Equal(t, "Adds <code>a</code>.", r.Render("Adds `a`."))
	assert.Equal(t, "<p>one</p>\n\n<p>two</p>", r.Render("one\n\ntwo"))
}

func TestRenderer_KeepsLinkMarkup(t *testing.T) {
	t.Parallel()

	assert.Contains(t, NewRenderer().Render("See {@link Foo#bar}."), "{@link Foo#bar}")
}
