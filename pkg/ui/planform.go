package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/kraitsura/nomofobia/pkg/model"
)

// planValues are bound to the form fields. They live behind a pointer so
// the bubbletea value copies of PlanFormModel share them.
type planValues struct {
	situation string
	emotion   string
	action    string
}

// PlanFormModel is the personal intention modal. Nothing is stored: a
// submitted plan is summarized, shown on the page and offered to the
// clipboard.
type PlanFormModel struct {
	form   *huh.Form
	values *planValues
	theme  Theme
	width  int

	emotions []model.Option
	visible  bool
}

// PlanSavedMsg reports a submitted plan and whether it reached the
// clipboard.
type PlanSavedMsg struct {
	Summary string
	Copied  bool
	Err     error
}

// NewPlanFormModel creates the modal for the guide's emotion options.
func NewPlanFormModel(emotions []model.Option, theme Theme) PlanFormModel {
	return PlanFormModel{emotions: emotions, theme: theme, width: 60}
}

func (m *PlanFormModel) build() {
	m.values = &planValues{}
	opts := make([]huh.Option[string], 0, len(m.emotions))
	for _, e := range m.emotions {
		opts = append(opts, huh.NewOption(e.Label, e.Value))
	}

	fields := []huh.Field{
		huh.NewInput().
			Title("Situación que quieres cambiar").
			Placeholder("Ej. Revisar el celular antes de dormir").
			Value(&m.values.situation),
	}
	if len(opts) > 0 {
		fields = append(fields, huh.NewSelect[string]().
			Title("Emoción predominante").
			Options(opts...).
			Value(&m.values.emotion))
	}
	fields = append(fields, huh.NewText().
		Title("Acción consciente que probarás").
		Placeholder("Describe un compromiso concreto para las próximas 48 horas").
		Lines(4).
		Value(&m.values.action))

	m.form = huh.NewForm(huh.NewGroup(fields...)).
		WithShowHelp(true).
		WithWidth(m.formWidth())
}

func (m PlanFormModel) formWidth() int {
	return max(min(m.width-10, 70), 30)
}

// Open resets the fields and shows the modal.
func (m *PlanFormModel) Open() tea.Cmd {
	m.build()
	m.visible = true
	return m.form.Init()
}

// IsVisible returns true if the modal is showing.
func (m PlanFormModel) IsVisible() bool {
	return m.visible
}

// SetWidth sets the available width.
func (m *PlanFormModel) SetWidth(width int) {
	m.width = width
	if m.form != nil {
		m.form = m.form.WithWidth(m.formWidth())
	}
}

// Update forwards input to the form. Esc cancels; completing the form
// closes the modal and returns the command that copies the summary.
func (m PlanFormModel) Update(msg tea.Msg) (PlanFormModel, tea.Cmd) {
	if !m.visible || m.form == nil {
		return m, nil
	}
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		m.visible = false
		return m, nil
	}

	f, cmd := m.form.Update(msg)
	if form, ok := f.(*huh.Form); ok {
		m.form = form
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.visible = false
		return m, copyPlanCmd(m.Summary())
	case huh.StateAborted:
		m.visible = false
		return m, nil
	}
	return m, cmd
}

// Summary formats the entered plan as plain text.
func (m PlanFormModel) Summary() string {
	if m.values == nil {
		return ""
	}
	emotion := m.values.emotion
	for _, e := range m.emotions {
		if e.Value == emotion {
			emotion = e.Label
		}
	}
	var lines []string
	add := func(label, value string) {
		if v := strings.TrimSpace(value); v != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", label, v))
		}
	}
	add("Situación", m.values.situation)
	add("Emoción", emotion)
	add("Acción", m.values.action)
	return strings.Join(lines, "\n")
}

func copyPlanCmd(summary string) tea.Cmd {
	return func() tea.Msg {
		if summary == "" {
			return PlanSavedMsg{}
		}
		if clipboard.Unsupported {
			return PlanSavedMsg{Summary: summary}
		}
		if err := clipboard.WriteAll(model.PlanFormTitle + "\n" + summary); err != nil {
			return PlanSavedMsg{Summary: summary, Err: err}
		}
		return PlanSavedMsg{Summary: summary, Copied: true}
	}
}

// View renders the modal box.
func (m PlanFormModel) View() string {
	if !m.visible || m.form == nil {
		return ""
	}
	titleStyle := m.theme.Renderer.NewStyle().
		Bold(true).
		Foreground(m.theme.Primary)
	hintStyle := m.theme.Renderer.NewStyle().Faint(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("✎ " + model.PlanFormTitle))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("No se guarda nada: al terminar se copia al portapapeles."))
	b.WriteString("\n\n")
	b.WriteString(m.form.View())
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("[Esc] Cancelar"))

	return m.theme.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(1, 2).
		Render(b.String())
}
