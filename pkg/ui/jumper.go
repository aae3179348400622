package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/kraitsura/nomofobia/pkg/loader"
	"github.com/kraitsura/nomofobia/pkg/model"
)

const maxJumperResults = 8

// JumperModel is the fuzzy section finder opened with "/". It searches
// section labels and ids plus the headings inside each section.
type JumperModel struct {
	entries  []loader.OutlineEntry
	labels   map[string]string // section id -> label
	filtered []loader.OutlineEntry

	searchInput   textinput.Model
	selectedIndex int
	visible       bool
	theme         Theme
	width         int
}

// NewJumperModel builds the finder over the guide outline.
func NewJumperModel(g *model.Guide, theme Theme) JumperModel {
	ti := textinput.New()
	ti.Placeholder = "Buscar sección o tema..."
	ti.CharLimit = 64
	ti.Width = 40

	m := JumperModel{searchInput: ti, theme: theme}
	m.SetGuide(g)
	return m
}

// SetGuide replaces the searchable outline after a content reload.
func (m *JumperModel) SetGuide(g *model.Guide) {
	m.entries = loader.Outline(g)
	m.labels = make(map[string]string, len(g.Sections))
	for _, s := range g.Sections {
		m.labels[s.ID] = s.Label
	}
	m.filterItems()
}

// Open shows the finder with an empty query.
func (m *JumperModel) Open() tea.Cmd {
	m.visible = true
	m.searchInput.SetValue("")
	m.filterItems()
	return m.searchInput.Focus()
}

// Close hides the finder.
func (m *JumperModel) Close() {
	m.visible = false
	m.searchInput.Blur()
}

// IsVisible returns true if the finder is showing.
func (m JumperModel) IsVisible() bool {
	return m.visible
}

// SetWidth sets the available width.
func (m *JumperModel) SetWidth(width int) {
	m.width = width
	m.searchInput.Width = max(min(width-12, 50), 10)
}

// Selected returns the section of the highlighted result.
func (m JumperModel) Selected() (string, bool) {
	if m.selectedIndex < 0 || m.selectedIndex >= len(m.filtered) {
		return "", false
	}
	return m.filtered[m.selectedIndex].SectionID, true
}

func (m *JumperModel) filterItems() {
	query := strings.TrimSpace(m.searchInput.Value())
	m.selectedIndex = 0
	if query == "" {
		m.filtered = nil
		for _, e := range m.entries {
			if e.Depth == 0 {
				m.filtered = append(m.filtered, e)
			}
		}
		return
	}

	searchStrings := make([]string, len(m.entries))
	for i, e := range m.entries {
		searchStrings[i] = e.Title + " " + e.SectionID
	}
	matches := fuzzy.Find(query, searchStrings)

	m.filtered = make([]loader.OutlineEntry, 0, len(matches))
	for _, match := range matches {
		m.filtered = append(m.filtered, m.entries[match.Index])
	}
}

// JumpMsg asks the page to navigate to a section.
type JumpMsg struct {
	SectionID string
}

// Update handles input while visible. Enter emits JumpMsg for the best
// match; Esc closes without navigating.
func (m JumperModel) Update(msg tea.Msg) (JumperModel, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			m.Close()
			return m, nil
		case "enter":
			id, ok := m.Selected()
			m.Close()
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg { return JumpMsg{SectionID: id} }
		case "down", "ctrl+n":
			if m.selectedIndex < len(m.filtered)-1 {
				m.selectedIndex++
			}
			return m, nil
		case "up", "ctrl+p":
			if m.selectedIndex > 0 {
				m.selectedIndex--
			}
			return m, nil
		}
	}

	prev := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() != prev {
		m.filterItems()
	}
	return m, cmd
}

// View renders the finder box.
func (m JumperModel) View() string {
	if !m.visible {
		return ""
	}
	t := m.theme
	var b strings.Builder
	b.WriteString(t.Renderer.NewStyle().Bold(true).Foreground(t.Primary).Render("Ir a…"))
	b.WriteString("\n")
	b.WriteString(m.searchInput.View())
	b.WriteString("\n\n")

	if len(m.filtered) == 0 {
		b.WriteString(t.Renderer.NewStyle().Foreground(t.Muted).Italic(true).Render("Sin coincidencias"))
	}
	for i, e := range m.filtered {
		if i >= maxJumperResults {
			break
		}
		line := e.Title
		if e.Depth > 0 {
			line += t.Renderer.NewStyle().Foreground(t.Muted).Render("  · " + m.labels[e.SectionID])
		}
		style := t.Renderer.NewStyle().Foreground(t.Subtext)
		prefix := "  "
		if i == m.selectedIndex {
			style = style.Foreground(t.Primary).Bold(true)
			prefix = "▸ "
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(prefix + style.Render(line))
	}

	return t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(0, 1).
		Render(b.String())
}
