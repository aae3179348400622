package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kraitsura/nomofobia/pkg/model"
)

// ══════════════════════════════════════════════════════════════════════════════
// DESIGN TOKENS - Consistent spacing and visual language
// ══════════════════════════════════════════════════════════════════════════════

// Spacing constants for consistent layout (in characters)
const (
	SpaceXS = 1
	SpaceSM = 2
	SpaceMD = 3
	SpaceLG = 4
)

// ══════════════════════════════════════════════════════════════════════════════
// THEME - One palette per page variant
// ══════════════════════════════════════════════════════════════════════════════

// Theme is the palette the views render with. Colors adapt to light and dark
// terminals.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.AdaptiveColor // active pill, primary buttons
	Secondary lipgloss.AdaptiveColor // eyebrows, section labels
	Accent    lipgloss.AdaptiveColor // icons and highlights
	Text      lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	Surface   lipgloss.AdaptiveColor // card and pill backgrounds

	Info    lipgloss.AdaptiveColor
	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor

	// GlamourStyle is the glamour standard style for Markdown blocks.
	GlamourStyle string
}

// ThemeFor returns the palette of a variant.
func ThemeFor(v model.Variant, r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	t := Theme{
		Renderer: r,
		Text:     lipgloss.AdaptiveColor{Light: "#0F172A", Dark: "#F8F8F2"},
		Subtext:  lipgloss.AdaptiveColor{Light: "#475569", Dark: "#BFBFBF"},
		Muted:    lipgloss.AdaptiveColor{Light: "#94A3B8", Dark: "#6272A4"},
		Border:   lipgloss.AdaptiveColor{Light: "#E2E8F0", Dark: "#44475A"},
		Surface:  lipgloss.AdaptiveColor{Light: "#F1F5F9", Dark: "#363949"},
		Info:     lipgloss.AdaptiveColor{Light: "#0369A1", Dark: "#8BE9FD"},
		Success:  lipgloss.AdaptiveColor{Light: "#047857", Dark: "#50FA7B"},
		Warning:  lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FFB86C"},
	}

	switch v {
	case model.VariantClasica:
		t.Primary = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#8BE9FD"}
		t.Secondary = lipgloss.AdaptiveColor{Light: "#475569", Dark: "#BFBFBF"}
		t.Accent = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#FF5555"}
		t.GlamourStyle = "notty"
	case model.VariantModerna:
		t.Primary = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#BD93F9"}
		t.Secondary = lipgloss.AdaptiveColor{Light: "#DB2777", Dark: "#FF79C6"}
		t.Accent = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#8BE9FD"}
		t.GlamourStyle = "dracula"
	default:
		t.Primary = lipgloss.AdaptiveColor{Light: "#0F766E", Dark: "#5EEAD4"}
		t.Secondary = lipgloss.AdaptiveColor{Light: "#64748B", Dark: "#94A3B8"}
		t.Accent = lipgloss.AdaptiveColor{Light: "#0EA5E9", Dark: "#7DD3FC"}
		t.GlamourStyle = "dark"
	}
	return t
}

// ToneColor returns the foreground of a feedback tone.
func (t Theme) ToneColor(tone model.Tone) lipgloss.AdaptiveColor {
	switch tone {
	case model.ToneSuccess:
		return t.Success
	case model.ToneWarning:
		return t.Warning
	default:
		return t.Info
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// BADGES AND PILLS
// ══════════════════════════════════════════════════════════════════════════════

// RenderPill renders a navigation pill. The active pill is filled.
func (t Theme) RenderPill(label string, active bool) string {
	s := t.Renderer.NewStyle().Padding(0, 1)
	if active {
		return s.Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1F29"}).
			Background(t.Primary).
			Render(label)
	}
	return s.Foreground(t.Subtext).Render(label)
}

// RenderTag renders a small resource tag.
func (t Theme) RenderTag(label string) string {
	return t.Renderer.NewStyle().
		Foreground(t.Text).
		Background(t.Surface).
		Padding(0, 1).
		Render(label)
}

// RenderToneBadge returns the colored marker of a feedback tone.
func (t Theme) RenderToneBadge(tone model.Tone) string {
	var label string
	switch tone {
	case model.ToneSuccess:
		label = "LOGRO"
	case model.ToneWarning:
		label = "ALERTA"
	default:
		label = "NOTA"
	}
	return t.Renderer.NewStyle().
		Foreground(t.ToneColor(tone)).
		Bold(true).
		Render(label)
}

// ══════════════════════════════════════════════════════════════════════════════
// METRIC VISUALIZATION
// ══════════════════════════════════════════════════════════════════════════════

// RenderMiniBar renders a mini horizontal bar for a value between 0 and 1
func RenderMiniBar(value float64, width int, t Theme) string {
	if width <= 0 {
		return ""
	}
	value = max(0, min(1, value))
	filled := min(int(value*float64(width)), width)

	barColor := t.Muted
	switch {
	case value >= 0.75:
		barColor = t.Success
	case value >= 0.5:
		barColor = t.Warning
	case value >= 0.25:
		barColor = t.Info
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return t.Renderer.NewStyle().Foreground(barColor).Render(bar)
}

// ══════════════════════════════════════════════════════════════════════════════
// DIVIDERS AND SEPARATORS
// ══════════════════════════════════════════════════════════════════════════════

// RenderDivider renders a horizontal divider line
func RenderDivider(width int, t Theme) string {
	if width <= 0 {
		return ""
	}
	return t.Renderer.NewStyle().
		Foreground(t.Border).
		Render(strings.Repeat("─", width))
}

// RenderSubtleDivider renders a more subtle divider using dots
func RenderSubtleDivider(width int, t Theme) string {
	if width <= 0 {
		return ""
	}
	return t.Renderer.NewStyle().
		Foreground(t.Muted).
		Render(strings.Repeat("·", width))
}
