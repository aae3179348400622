package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
)

// markdownRenderer renders the Markdown fields of the guide (definition
// lead and body, glossary) with glamour, caching per width.
type markdownRenderer struct {
	style string
	width int
	term  *glamour.TermRenderer
	cache map[string]string
}

func newMarkdownRenderer(style string) *markdownRenderer {
	if style == "" {
		style = "dark"
	}
	return &markdownRenderer{style: style, cache: map[string]string{}}
}

// Render returns src rendered for width columns. Rendering failures fall
// back to the raw text so a bad snippet never blanks the page.
func (r *markdownRenderer) Render(src string, width int) string {
	if src == "" {
		return ""
	}
	if width != r.width || r.term == nil {
		term, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(r.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return src
		}
		r.term = term
		r.width = width
		r.cache = map[string]string{}
	}
	if out, ok := r.cache[src]; ok {
		return out
	}
	out, err := r.term.Render(src)
	if err != nil {
		return src
	}
	out = trimBlankLines(out)
	r.cache[src] = out
	return out
}

// trimBlankLines drops the leading and trailing empty lines glamour adds
// around every document.
func trimBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(stripStyles(lines[start])) == "" {
		start++
	}
	for end > start && strings.TrimSpace(stripStyles(lines[end-1])) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}

func stripStyles(s string) string {
	return ansi.Strip(s)
}
