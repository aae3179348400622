package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/kraitsura/nomofobia/pkg/model"
	"github.com/kraitsura/nomofobia/pkg/selection"
)

// pageContent is the rendered guide plus the geometry the scroll-spy and
// the reveal tracker work from.
type pageContent struct {
	text    string
	anchors map[string]lineRange
	blocks  []revealBlock
}

// renderOptions selects what renderPage draws.
type renderOptions struct {
	guide      *model.Guide
	profile    model.Profile
	theme      Theme
	width      int // page column width
	md         *markdownRenderer
	revealed   func(int) bool
	assessment *selection.Assessment // nil hides the checklist
	plan       string                // last submitted intention
}

type contentBuilder struct {
	builder strings.Builder
	lines   int
	blocks  []revealBlock
	opts    *renderOptions
	faint   Theme
}

func (cb *contentBuilder) WriteString(s string) {
	cb.builder.WriteString(s)
	cb.lines += strings.Count(s, "\n")
}

func (cb *contentBuilder) WriteRune(r rune) {
	cb.builder.WriteRune(r)
	if r == '\n' {
		cb.lines++
	}
}

func (cb *contentBuilder) String() string {
	return cb.builder.String()
}

func (cb *contentBuilder) Line() int {
	return cb.lines
}

// writeLines writes s followed by a newline.
func (cb *contentBuilder) writeLines(s string) {
	cb.WriteString(s)
	cb.WriteRune('\n')
}

// block renders one reveal region. Regions that have not been seen yet are
// drawn with the faint palette; line counts never depend on reveal state.
func (cb *contentBuilder) block(amount float64, fn func(th Theme)) {
	idx := len(cb.blocks)
	th := cb.opts.theme
	if cb.opts.revealed != nil && !cb.opts.revealed(idx) {
		th = cb.faint
	}
	start := cb.Line()
	fn(th)
	cb.blocks = append(cb.blocks, revealBlock{lineRange: lineRange{start, cb.Line()}, amount: amount})
}

// faintTheme collapses every accent onto the muted color.
func faintTheme(t Theme) Theme {
	f := t
	f.Primary, f.Secondary, f.Accent = t.Muted, t.Muted, t.Muted
	f.Text, f.Subtext = t.Muted, t.Muted
	f.Info, f.Success, f.Warning = t.Muted, t.Muted, t.Muted
	return f
}

// renderPage lays out the whole guide. Sections follow the guide order;
// ids without a renderer produce no anchor.
func renderPage(o renderOptions) pageContent {
	cb := &contentBuilder{opts: &o, faint: faintTheme(o.theme)}
	anchors := make(map[string]lineRange, len(o.guide.Sections))

	for _, s := range o.guide.Sections {
		render, ok := sectionRenderers[s.ID]
		if !ok {
			continue
		}
		start := cb.Line()
		cb.WriteRune('\n')
		render(cb, o.guide)
		cb.WriteRune('\n')
		anchors[s.ID] = lineRange{start, cb.Line()}
	}
	writeFooter(cb, o.guide)

	return pageContent{
		text:    strings.TrimSuffix(cb.String(), "\n"),
		anchors: anchors,
		blocks:  cb.blocks,
	}
}

var sectionRenderers = map[string]func(*contentBuilder, *model.Guide){
	"inicio":      writeHero,
	"definicion":  writeDefinition,
	"sintomas":    writeSymptoms,
	"causas":      writeCauses,
	"tips":        writeTips,
	"experiencia": writeExperience,
}

// ══════════════════════════════════════════════════════════════════════════════
// SHARED PIECES
// ══════════════════════════════════════════════════════════════════════════════

func (cb *contentBuilder) header(h model.Header, markdownLead bool) {
	w := cb.opts.width
	cb.block(revealHeader, func(th Theme) {
		if h.Eyebrow != "" {
			cb.writeLines(th.Renderer.NewStyle().Foreground(th.Secondary).Bold(true).
				Render(strings.ToUpper(h.Eyebrow)))
		}
		if h.Title != "" {
			cb.writeLines(th.Renderer.NewStyle().Foreground(th.Text).Bold(true).
				Render(wordwrap.String(h.Title, w)))
		}
		if h.Lead != "" {
			cb.WriteRune('\n')
			if markdownLead {
				cb.writeLines(cb.opts.md.Render(h.Lead, w))
			} else {
				cb.writeLines(th.Renderer.NewStyle().Foreground(th.Subtext).
					Render(wordwrap.String(h.Lead, w)))
			}
		}
	})
	cb.WriteRune('\n')
}

// card renders a bordered tile of the given outer width.
func card(th Theme, width int, border lipgloss.AdaptiveColor) lipgloss.Style {
	return th.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(max(width-2, MinCardWidth-2))
}

func cardBody(th Theme, c model.Card, inner int) string {
	var b strings.Builder
	title := c.Title
	if c.Icon != "" {
		title = c.Icon + " " + title
	}
	b.WriteString(th.Renderer.NewStyle().Foreground(th.Accent).Bold(true).Render(wordwrap.String(title, inner)))
	if c.Description != "" {
		b.WriteString("\n")
		b.WriteString(th.Renderer.NewStyle().Foreground(th.Subtext).Render(wordwrap.String(c.Description, inner)))
	}
	return b.String()
}

// grid writes cards in rows; each row reveals as a unit.
func (cb *contentBuilder) grid(cards []model.Card) {
	cols := gridColumns(cb.opts.width + 2*ContentPadding)
	cb.gridWith(len(cards), cols, func(th Theme, i, width int) string {
		inner := max(width-4, 1)
		return card(th, width, th.Border).Render(cardBody(th, cards[i], inner))
	})
}

// gridWith lays out n tiles in cols columns of equal width.
func (cb *contentBuilder) gridWith(n, cols int, tile func(th Theme, i, width int) string) {
	if n == 0 {
		return
	}
	cols = max(1, min(cols, n))
	gap := 1
	width := (cb.opts.width - (cols-1)*gap) / cols
	for rowStart := 0; rowStart < n; rowStart += cols {
		rowEnd := min(rowStart+cols, n)
		cb.block(revealCard, func(th Theme) {
			tiles := make([]string, 0, rowEnd-rowStart)
			height := 0
			for i := rowStart; i < rowEnd; i++ {
				t := tile(th, i, width)
				height = max(height, lipgloss.Height(t))
				tiles = append(tiles, t)
			}
			parts := make([]string, 0, 2*len(tiles))
			for i, t := range tiles {
				if i > 0 {
					parts = append(parts, strings.Repeat(" ", gap))
				}
				parts = append(parts, lipgloss.PlaceVertical(height, lipgloss.Top, t))
			}
			cb.writeLines(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
		})
	}
	cb.WriteRune('\n')
}

func bulletList(th Theme, items []string, bullet string, width int) string {
	lines := make([]string, 0, len(items))
	marker := th.Renderer.NewStyle().Foreground(th.Accent).Render(bullet)
	indent := strings.Repeat(" ", lipgloss.Width(bullet)+1)
	for _, item := range items {
		wrapped := wordwrap.String(item, max(width-len(indent), 1))
		wrapped = strings.ReplaceAll(wrapped, "\n", "\n"+indent)
		lines = append(lines, marker+" "+th.Renderer.NewStyle().Foreground(th.Subtext).Render(wrapped))
	}
	return strings.Join(lines, "\n")
}

func cardTitle(th Theme, title string) string {
	return th.Renderer.NewStyle().Foreground(th.Text).Bold(true).Render(title)
}

// ══════════════════════════════════════════════════════════════════════════════
// SECTIONS
// ══════════════════════════════════════════════════════════════════════════════

func writeHero(cb *contentBuilder, g *model.Guide) {
	cb.header(g.Hero.Header, false)
	cb.grid(g.Hero.Highlights)

	if len(g.Hero.Stats) > 0 {
		cb.block(revealCard, func(th Theme) {
			parts := make([]string, 0, len(g.Hero.Stats))
			for _, s := range g.Hero.Stats {
				parts = append(parts,
					th.Renderer.NewStyle().Foreground(th.Primary).Bold(true).Render(s.Value)+" "+
						th.Renderer.NewStyle().Foreground(th.Muted).Render(strings.ToUpper(s.Label)))
			}
			cb.writeLines(strings.Join(parts, "   "))
		})
		cb.WriteRune('\n')
	}

	if len(g.Hero.Actions) > 0 {
		cb.block(revealCard, func(th Theme) {
			buttons := make([]string, 0, len(g.Hero.Actions))
			for i, a := range g.Hero.Actions {
				buttons = append(buttons, renderAction(th, a, ctaKey(i)))
			}
			cb.writeLines(strings.Join(buttons, "  "))
		})
	}
}

// ctaKeys are the keys that trigger the hero calls to action, in order.
var ctaKeys = []string{"enter", "tab"}

func ctaKey(i int) string {
	if i < len(ctaKeys) {
		return ctaKeys[i]
	}
	return ""
}

func renderAction(th Theme, a model.CallToAction, key string) string {
	label := a.Label
	if key != "" {
		label = fmt.Sprintf("%s [%s]", label, key)
	}
	s := th.Renderer.NewStyle().Padding(0, 2)
	if a.Primary {
		return s.Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1F29"}).
			Background(th.Primary).
			Render(label)
	}
	return s.Foreground(th.Primary).Render("‹ " + label + " ›")
}

func writeDefinition(cb *contentBuilder, g *model.Guide) {
	d := g.Definition
	w := cb.opts.width
	cb.header(d.Header, true)

	if d.Body != "" {
		cb.writeLines(cb.opts.md.Render(d.Body, w))
		cb.WriteRune('\n')
	}

	prompts := make([]model.Card, 0, len(d.Prompts))
	for _, p := range d.Prompts {
		prompts = append(prompts, model.Card{Icon: "✎", Title: p})
	}
	cb.grid(prompts)

	if len(d.NavigationMap) > 0 {
		cb.block(revealCard, func(th Theme) {
			var b strings.Builder
			b.WriteString(cardTitle(th, model.NavigationMapTitle))
			for _, e := range d.NavigationMap {
				label := e.Section
				if s, ok := g.Section(e.Section); ok {
					label = s.Label
				}
				b.WriteString("\n")
				b.WriteString(th.Renderer.NewStyle().Foreground(th.Text).Bold(true).Render(label + ":"))
				b.WriteString(" ")
				b.WriteString(th.Renderer.NewStyle().Foreground(th.Subtext).Render(e.Summary))
			}
			cb.writeLines(card(th, w, th.Border).Render(b.String()))
		})
	}

	if len(d.Resources) > 0 {
		cb.block(revealCard, func(th Theme) {
			tags := make([]string, 0, len(d.Resources))
			for _, r := range d.Resources {
				tags = append(tags, th.RenderTag(r))
			}
			body := cardTitle(th, model.ResourcesTitle) + "\n" + wrapTags(tags, w-4)
			cb.writeLines(card(th, w, th.Border).Render(body))
		})
	}

	if d.Glossary != "" {
		cb.writeLines(cardTitle(cb.opts.theme, model.GlossaryTitle))
		cb.writeLines(cb.opts.md.Render(d.Glossary, w))
	}
}

// wrapTags flows tags onto as many lines as width requires.
func wrapTags(tags []string, width int) string {
	var lines []string
	var cur []string
	used := 0
	for _, t := range tags {
		tw := lipgloss.Width(t)
		if used > 0 && used+1+tw > width {
			lines = append(lines, strings.Join(cur, " "))
			cur, used = nil, 0
		}
		if used > 0 {
			used++
		}
		cur = append(cur, t)
		used += tw
	}
	if len(cur) > 0 {
		lines = append(lines, strings.Join(cur, " "))
	}
	return strings.Join(lines, "\n")
}

func writeSymptoms(cb *contentBuilder, g *model.Guide) {
	cb.header(g.Symptoms.Header, false)
	cb.grid(g.Symptoms.Cards)
}

func writeCauses(cb *contentBuilder, g *model.Guide) {
	c := g.Causes
	lists := []struct {
		title string
		items []string
		icon  string
	}{
		{c.CausesTitle, c.Causes, "🧠"},
		{c.ConsequencesTitle, c.Consequences, "⚠"},
	}
	cols := 1
	if cb.opts.width+2*ContentPadding >= BreakpointMedium {
		cols = 2
	}
	cb.gridWith(len(lists), cols, func(th Theme, i, width int) string {
		l := lists[i]
		border := th.Border
		if i == 1 {
			border = th.Warning
		}
		body := cardTitle(th, l.icon+" "+l.title) + "\n" + bulletList(th, l.items, "›", width-4)
		return card(th, width, border).Render(body)
	})

	if c.Impact.Title != "" {
		cb.gridWith(1, 1, func(th Theme, _ int, width int) string {
			return card(th, width, th.Accent).Render(cardBody(th, c.Impact, width-4))
		})
	}
}

func writeTips(cb *contentBuilder, g *model.Guide) {
	t := g.Tips
	cb.header(t.Header, false)
	cb.grid(t.Cards)

	cb.gridWith(len(t.Feedback), gridColumns(cb.opts.width+2*ContentPadding), func(th Theme, i, width int) string {
		f := t.Feedback[i]
		body := th.RenderToneBadge(f.Tone) + "\n" + cardBody(th, f.Card, width-4)
		return card(th, width, th.ToneColor(f.Tone)).Render(body)
	})
}

func writeExperience(cb *contentBuilder, g *model.Guide) {
	e := g.Experience
	w := cb.opts.width
	cb.header(e.Header, false)

	cb.block(revealHeader, func(th Theme) {
		var b strings.Builder
		b.WriteString(th.Renderer.NewStyle().Foreground(th.Subtext).Render(wordwrap.String(e.Intro, w-4)))
		b.WriteString("\n\n")
		b.WriteString(th.Renderer.NewStyle().Foreground(th.Primary).Bold(true).Render("✎ " + model.PlanFormTitle + " [p]"))
		if cb.opts.plan != "" {
			b.WriteString("\n")
			b.WriteString(th.Renderer.NewStyle().Foreground(th.Text).Render(wordwrap.String(cb.opts.plan, w-6)))
		}
		if e.Hint != "" {
			b.WriteString("\n")
			b.WriteString(th.Renderer.NewStyle().Foreground(th.Muted).Italic(true).Render(wordwrap.String(e.Hint, w-4)))
		}
		cb.writeLines(card(th, w, th.Border).Render(b.String()))
	})
	cb.WriteRune('\n')

	cb.gridWith(2, gridColumns(w+2*ContentPadding), func(th Theme, i, width int) string {
		if i == 0 {
			body := cardTitle(th, model.ChecklistTitle) + "\n" + bulletList(th, e.Checklist, "✓", width-4)
			return card(th, width, th.Border).Render(body)
		}
		body := cardTitle(th, e.VideoTitle)
		if e.VideoURL != "" {
			body += "\n" + th.Renderer.NewStyle().Foreground(th.Info).Underline(true).Render("▶ "+e.VideoURL)
		}
		return card(th, width, th.Border).Render(body)
	})

	if a := cb.opts.assessment; a != nil {
		cb.block(revealCard, func(th Theme) {
			cb.writeLines(card(th, w, th.Primary).Render(renderAssessmentSummary(th, a, w-4)))
		})
	}
}

// renderAssessmentSummary shows the checked options and the completion bar.
func renderAssessmentSummary(th Theme, a *selection.Assessment, width int) string {
	var b strings.Builder
	b.WriteString(cardTitle(th, model.AssessmentTitle+" [a]"))
	b.WriteString("\n")
	pct := a.Completion()
	barWidth := max(min(width-8, 30), 4)
	b.WriteString(RenderMiniBar(float64(pct)/100, barWidth, th))
	b.WriteString(th.Renderer.NewStyle().Foreground(th.Text).Bold(true).Render(fmt.Sprintf(" %3d%%", pct)))
	for _, group := range []struct {
		title string
		set   *selection.Set
		pool  []string
	}{
		{"Situaciones", a.Situations, a.SituationPool()},
		{"Reacciones", a.Reactions, a.ReactionPool()},
	} {
		b.WriteString("\n")
		b.WriteString(th.Renderer.NewStyle().Foreground(th.Secondary).Bold(true).
			Render(fmt.Sprintf("%s (%d/%d)", group.title, group.set.Len(), len(group.pool))))
		for _, v := range group.set.Values() {
			b.WriteString("\n")
			b.WriteString(th.Renderer.NewStyle().Foreground(th.Success).Render("  ✓ "))
			b.WriteString(th.Renderer.NewStyle().Foreground(th.Subtext).Render(v))
		}
	}
	return b.String()
}

func writeFooter(cb *contentBuilder, g *model.Guide) {
	w := cb.opts.width
	cb.WriteRune('\n')
	cb.block(revealHeader, func(th Theme) {
		cb.writeLines(RenderDivider(w, th))
		cb.WriteRune('\n')
		brand := g.Brand.Name
		if g.Brand.Icon != "" {
			brand = g.Brand.Icon + " " + brand
		}
		center := th.Renderer.NewStyle().Width(w).Align(lipgloss.Center)
		cb.writeLines(center.Render(th.RenderTag(brand)))
		cb.WriteRune('\n')
		if g.Footer.Text != "" {
			cb.writeLines(center.Foreground(th.Subtext).Render(wordwrap.String(g.Footer.Text, min(w, 72))))
			cb.WriteRune('\n')
		}
		if g.Footer.BackLabel != "" {
			cb.writeLines(center.Foreground(th.Primary).Render("↑ " + g.Footer.BackLabel + " [t]"))
		}
	})
}
