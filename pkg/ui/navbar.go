package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/kraitsura/nomofobia/pkg/model"
)

// navBar renders the sticky page header: brand on the left and either the
// section pills or the menu toggle on the right.
type navBar struct {
	brand    model.Brand
	sections []model.Section
	theme    Theme
}

func pillLabel(i int, s model.Section) string {
	label := s.Label
	if s.Icon != "" {
		label = s.Icon + " " + label
	}
	if i < 9 {
		label = fmt.Sprintf("%d %s", i+1, label)
	}
	return label
}

// pillsWidth is the display width of every pill plus separators.
func (n navBar) pillsWidth() int {
	w := 0
	for i, s := range n.sections {
		if i > 0 {
			w++
		}
		w += runewidth.StringWidth(pillLabel(i, s)) + 2 // pill padding
	}
	return w
}

func (n navBar) brandText(width int) string {
	text := n.brand.Name
	if n.brand.Icon != "" {
		text = n.brand.Icon + " " + text
	}
	return runewidth.Truncate(text, max(width, 1), "…")
}

// collapsed reports whether the pills do not fit and the menu toggle is
// shown instead.
func (n navBar) collapsed(width int) bool {
	if isNarrow(width) {
		return true
	}
	brandW := runewidth.StringWidth(n.brandText(width))
	return brandW+2+n.pillsWidth() > width
}

// View renders the two header lines (eyebrow, then brand and navigation).
func (n navBar) View(width int, activeID string, menuOpen bool) string {
	t := n.theme
	eyebrow := t.Renderer.NewStyle().Foreground(t.Muted).Render(strings.ToUpper(n.brand.Eyebrow))

	var right string
	if n.collapsed(width) {
		icon := "☰ menú [m]"
		if menuOpen {
			icon = "✕ cerrar [m]"
		}
		right = t.Renderer.NewStyle().Foreground(t.Primary).Render(icon)
	} else {
		pills := make([]string, 0, len(n.sections))
		for i, s := range n.sections {
			pills = append(pills, t.RenderPill(pillLabel(i, s), s.ID == activeID))
		}
		right = strings.Join(pills, " ")
	}

	brandW := max(width-lipgloss.Width(right)-2, 1)
	brand := t.Renderer.NewStyle().Foreground(t.Text).Bold(true).Render(n.brandText(brandW))
	gap := max(width-lipgloss.Width(brand)-lipgloss.Width(right), 1)
	return eyebrow + "\n" + brand + strings.Repeat(" ", gap) + right
}

// menuView renders the collapsed navigation as a vertical list.
func (n navBar) menuView(width, cursor int, activeID string) string {
	t := n.theme
	var b strings.Builder
	for i, s := range n.sections {
		label := pillLabel(i, s)
		style := t.Renderer.NewStyle().Padding(0, 1).Width(max(width-4, 10))
		switch {
		case s.ID == activeID:
			style = style.Bold(true).Foreground(t.Primary)
		default:
			style = style.Foreground(t.Subtext)
		}
		prefix := "  "
		if i == cursor {
			prefix = t.Renderer.NewStyle().Foreground(t.Accent).Render("▸ ")
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(prefix + style.Render(label))
	}
	return t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder(), false, false, true, false).
		BorderForeground(t.Border).
		Render(b.String())
}
