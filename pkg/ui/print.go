package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kraitsura/nomofobia/pkg/model"
	"github.com/kraitsura/nomofobia/pkg/selection"
)

// RenderStatic renders the whole guide once, fully revealed and without
// navigation chrome, for piping to a pager or a file.
func RenderStatic(g *model.Guide, p model.Profile, width int, r *lipgloss.Renderer) string {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	theme := ThemeFor(p.Variant, r)
	var a *selection.Assessment
	if p.SelfAssessment {
		a = selection.NewAssessment(g.Experience.Situations, g.Experience.Reactions)
	}
	nav := navBar{brand: g.Brand, sections: g.Sections, theme: theme}
	pc := renderPage(renderOptions{
		guide:      g,
		profile:    p,
		theme:      theme,
		width:      contentWidth(width),
		md:         newMarkdownRenderer(theme.GlamourStyle),
		assessment: a,
	})
	return nav.View(width, "", false) + "\n" + RenderDivider(width, theme) + "\n" + pc.text + "\n"
}
