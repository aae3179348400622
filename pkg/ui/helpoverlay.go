package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpOverlayModel shows keyboard shortcuts help
type HelpOverlayModel struct {
	visible bool
	width   int
	height  int
	theme   Theme
	keys    keyMap

	selfAssessment bool
}

// NewHelpOverlayModel creates a new help overlay
func NewHelpOverlayModel(theme Theme, keys keyMap, selfAssessment bool) HelpOverlayModel {
	return HelpOverlayModel{
		theme:          theme,
		keys:           keys,
		selfAssessment: selfAssessment,
	}
}

// Show makes the help overlay visible
func (m *HelpOverlayModel) Show() {
	m.visible = true
}

// Hide makes the help overlay invisible
func (m *HelpOverlayModel) Hide() {
	m.visible = false
}

// Toggle toggles visibility
func (m *HelpOverlayModel) Toggle() {
	m.visible = !m.visible
}

// IsVisible returns true if overlay is showing
func (m HelpOverlayModel) IsVisible() bool {
	return m.visible
}

// SetSize sets dimensions
func (m *HelpOverlayModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles input
func (m HelpOverlayModel) Update(msg tea.Msg) (HelpOverlayModel, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	switch msg.(type) {
	case tea.KeyMsg:
		// Any key closes help
		m.visible = false
	}

	return m, nil
}

// View renders the help overlay
func (m HelpOverlayModel) View() string {
	if !m.visible {
		return ""
	}

	var b strings.Builder

	titleStyle := m.theme.Renderer.NewStyle().
		Bold(true).
		Foreground(m.theme.Primary).
		MarginBottom(1)
	b.WriteString(titleStyle.Render("Atajos de teclado"))
	b.WriteString("\n\n")

	sectionStyle := m.theme.Renderer.NewStyle().Bold(true).Foreground(m.theme.Secondary)
	keyStyle := m.theme.Renderer.NewStyle().Foreground(m.theme.Primary).Width(12)
	descStyle := m.theme.Renderer.NewStyle().Foreground(m.theme.Subtext)

	writeGroup := func(title string, bindings []key.Binding) {
		b.WriteString(sectionStyle.Render(title) + "\n")
		for _, kb := range bindings {
			h := kb.Help()
			b.WriteString("  " + keyStyle.Render(h.Key) + descStyle.Render(h.Desc) + "\n")
		}
		b.WriteString("\n")
	}

	k := m.keys
	writeGroup("DESPLAZAMIENTO", []key.Binding{k.Down, k.Up, k.PageDown, k.PageUp, k.Home, k.End, k.ScrollTop})
	b.WriteString(sectionStyle.Render("SECCIONES") + "\n")
	b.WriteString("  " + keyStyle.Render("1-9") + descStyle.Render("ir a la sección") + "\n")
	for _, kb := range []key.Binding{k.NextSection, k.PrevSection, k.Jump, k.Menu} {
		h := kb.Help()
		b.WriteString("  " + keyStyle.Render(h.Key) + descStyle.Render(h.Desc) + "\n")
	}
	b.WriteString("\n")

	actions := []key.Binding{k.PrimaryCTA, k.SecondCTA, k.Plan}
	if m.selfAssessment {
		actions = append(actions, k.Assess)
	}
	actions = append(actions, k.Help, k.Quit)
	writeGroup("ACCIONES", actions)

	hintStyle := m.theme.Renderer.NewStyle().Faint(true).Italic(true)
	b.WriteString(hintStyle.Render("[Pulsa cualquier tecla para cerrar]"))

	// Wrap in box
	boxStyle := m.theme.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(1, 2)

	return boxStyle.Render(b.String())
}
