package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kraitsura/nomofobia/pkg/model"
	"github.com/kraitsura/nomofobia/pkg/selection"
)

// AssessmentPanelModel is the self-assessment checklist overlay. It edits
// the shared Assessment in place; the page re-renders its summary from the
// same value.
type AssessmentPanelModel struct {
	assessment *selection.Assessment
	cursor     int
	visible    bool
	theme      Theme
	width      int
}

// AssessmentChangedMsg is sent after an option is toggled.
type AssessmentChangedMsg struct {
	Completion int
}

// NewAssessmentPanelModel creates the overlay over a.
func NewAssessmentPanelModel(a *selection.Assessment, theme Theme) AssessmentPanelModel {
	return AssessmentPanelModel{assessment: a, theme: theme, width: 60}
}

// SetAssessment swaps the edited assessment after a reload.
func (m *AssessmentPanelModel) SetAssessment(a *selection.Assessment) {
	m.assessment = a
	m.cursor = 0
}

// Show opens the overlay on the first option.
func (m *AssessmentPanelModel) Show() {
	m.visible = true
	m.cursor = 0
}

// Hide closes the overlay.
func (m *AssessmentPanelModel) Hide() {
	m.visible = false
}

// IsVisible returns true if the overlay is showing.
func (m AssessmentPanelModel) IsVisible() bool {
	return m.visible
}

// SetWidth sets the available width.
func (m *AssessmentPanelModel) SetWidth(width int) {
	m.width = width
}

func (m AssessmentPanelModel) optionCount() int {
	if m.assessment == nil {
		return 0
	}
	return len(m.assessment.SituationPool()) + len(m.assessment.ReactionPool())
}

// toggleCursor flips the option under the cursor. Situations come first.
func (m AssessmentPanelModel) toggleCursor() {
	situations := m.assessment.SituationPool()
	if m.cursor < len(situations) {
		m.assessment.ToggleSituation(situations[m.cursor])
		return
	}
	reactions := m.assessment.ReactionPool()
	if i := m.cursor - len(situations); i < len(reactions) {
		m.assessment.ToggleReaction(reactions[i])
	}
}

// Update handles input while visible.
func (m AssessmentPanelModel) Update(msg tea.Msg) (AssessmentPanelModel, tea.Cmd) {
	if !m.visible || m.assessment == nil {
		return m, nil
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	n := m.optionCount()
	switch km.String() {
	case "esc", "a", "q":
		m.visible = false
	case "down", "j":
		if m.cursor < n-1 {
			m.cursor++
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case " ", "x", "enter":
		if n == 0 {
			return m, nil
		}
		m.toggleCursor()
		pct := m.assessment.Completion()
		return m, func() tea.Msg { return AssessmentChangedMsg{Completion: pct} }
	case "r":
		m.assessment.Reset()
		return m, func() tea.Msg { return AssessmentChangedMsg{} }
	}
	return m, nil
}

// View renders the checklist box.
func (m AssessmentPanelModel) View() string {
	if !m.visible || m.assessment == nil {
		return ""
	}
	t := m.theme
	inner := max(min(m.width-10, 70), 20)

	var b strings.Builder
	b.WriteString(t.Renderer.NewStyle().Bold(true).Foreground(t.Primary).Render(model.AssessmentTitle))
	b.WriteString("\n")
	pct := m.assessment.Completion()
	b.WriteString(RenderMiniBar(float64(pct)/100, max(min(inner-8, 30), 4), t))
	b.WriteString(t.Renderer.NewStyle().Foreground(t.Text).Bold(true).Render(fmt.Sprintf(" %3d%%", pct)))
	b.WriteString("\n")

	idx := 0
	writeGroup := func(title string, pool []string, set *selection.Set) {
		b.WriteString("\n")
		b.WriteString(t.Renderer.NewStyle().Bold(true).Foreground(t.Secondary).Render(title))
		for _, v := range pool {
			b.WriteString("\n")
			box := "[ ]"
			style := t.Renderer.NewStyle().Foreground(t.Subtext)
			if set.Contains(v) {
				box = "[✓]"
				style = style.Foreground(t.Success)
			}
			prefix := "  "
			if idx == m.cursor {
				prefix = t.Renderer.NewStyle().Foreground(t.Accent).Render("▸ ")
				style = style.Bold(true)
			}
			b.WriteString(prefix + style.Render(box+" "+v))
			idx++
		}
		b.WriteString("\n")
	}
	writeGroup("SITUACIONES QUE TE DETONAN", m.assessment.SituationPool(), m.assessment.Situations)
	writeGroup("REACCIONES QUE NOTAS", m.assessment.ReactionPool(), m.assessment.Reactions)

	b.WriteString("\n")
	b.WriteString(t.Renderer.NewStyle().Faint(true).
		Render("[espacio] marcar  [r] reiniciar  [Esc] cerrar"))

	return t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2).
		Width(inner + 4).
		Render(b.String())
}
