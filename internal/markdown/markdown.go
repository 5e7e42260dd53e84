// Package markdown renders doc comment text to HTML with blackfriday.
package markdown

import (
	"strings"

	"github.com/russross/blackfriday"
)

// Renderer converts Markdown to HTML using blackfriday's common extensions.
type Renderer struct {
	// Inline strips the wrapping <p> from single-paragraph output, for text
	// shown inside table cells and signatures.
	Inline bool
}

// NewRenderer returns a block renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render converts markdown to HTML.
func (r *Renderer) Render(markdown string) string {
	html := strings.TrimSpace(string(blackfriday.MarkdownCommon([]byte(markdown))))
	if r.Inline {
		html = unwrapParagraph(html)
	}
	return html
}

func unwrapParagraph(html string) string {
	if !strings.HasPrefix(html, "<p>") || !strings.HasSuffix(html, "</p>") {
		return html
	}
	inner := html[len("<p>") : len(html)-len("</p>")]
	if strings.Contains(inner, "<p>") {
		return html
	}
	return inner
}
