package autodoc

import (
	"strings"

	"github.com/mvp-joe/autodoc/internal/ast"
)

// Placeholders used when no comment carries a file overview.
const (
	DefaultLibraryName        = "Untitled Library"
	DefaultLibraryDescription = "[No description]"
)

var overviewTitles = []string{"fileOverview", "file", "overview"}

// summarize returns the library name and description from the first comment
// carrying a file overview tag.
func (p *Parser) summarize(comments []ast.Comment) (name, description string) {
	for _, comment := range comments {
		doclet, err := p.opts.CommentParser.Parse(comment.Text, true)
		if err != nil {
			continue
		}
		for _, title := range overviewTitles {
			overview, ok := doclet.Tag(title)
			if !ok {
				continue
			}

			name = DefaultLibraryName
			if tag, ok := doclet.Tag("name"); ok && tag.Description != "" {
				name = strings.Trim(tag.Description, `"'`)
			}

			text := overview.Description
			if text == "" {
				text = doclet.Description
			}
			if text == "" {
				return name, DefaultLibraryDescription
			}
			return name, p.renderMarkdown(text)
		}
	}
	return DefaultLibraryName, DefaultLibraryDescription
}
