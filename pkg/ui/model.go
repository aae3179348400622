package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"

	"github.com/kraitsura/nomofobia/pkg/loader"
	"github.com/kraitsura/nomofobia/pkg/model"
	"github.com/kraitsura/nomofobia/pkg/page"
	"github.com/kraitsura/nomofobia/pkg/selection"
	"github.com/kraitsura/nomofobia/pkg/watcher"
)

const (
	headerHeight = 3 // eyebrow, brand/nav, progress or divider
	footerHeight = 1 // status bar
	wheelRows    = 3
)

// FileChangedMsg is sent when the content file changes on disk.
type FileChangedMsg struct{}

// ContentReloadedMsg carries a freshly parsed guide, or the error that
// kept the previous one on screen.
type ContentReloadedMsg struct {
	Guide *model.Guide
	Err   error
}

// WatchFileCmd waits for the next content change.
func WatchFileCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return FileChangedMsg{}
	}
}

// ReloadContentCmd parses the guide at path off the UI goroutine.
func ReloadContentCmd(path string) tea.Cmd {
	return func() tea.Msg {
		g, err := loader.LoadGuide(path)
		return ContentReloadedMsg{Guide: g, Err: err}
	}
}

// Options configures a page Model.
type Options struct {
	Guide    *model.Guide
	Profile  model.Profile
	Renderer *lipgloss.Renderer
	Logger   *log.Logger

	// Watcher, when set, triggers a reload of ContentPath on change.
	Watcher     *watcher.Watcher
	ContentPath string

	// DisableReveal draws every block at full strength from the start.
	DisableReveal bool
}

// revealState is shared by the scroll listener and the model copies.
type revealState struct {
	tracker *revealTracker
	blocks  []revealBlock
	pending bool
	release func()
}

// Model is the bubbletea model of the guide page.
type Model struct {
	guide   *model.Guide
	profile model.Profile
	theme   Theme
	keys    keyMap
	logger  *log.Logger

	doc    *viewportDocument
	ctrl   *page.Controller
	reveal *revealState
	md     *markdownRenderer
	nav    navBar
	page   pageContent

	assessment *selection.Assessment
	plan       string

	help        HelpOverlayModel
	jumper      JumperModel
	planForm    PlanFormModel
	assessPanel AssessmentPanelModel
	menuCursor  int
	progress    progress.Model

	watcher     *watcher.Watcher
	contentPath string

	width, height int
	ready         bool
	statusMsg     string
	statusIsErr   bool
}

// New builds the page model. Call Mount before running the program.
func New(opts Options) Model {
	r := opts.Renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	theme := ThemeFor(opts.Profile.Variant, r)
	keys := defaultKeyMap()

	doc := newViewportDocument(80, 24-headerHeight-footerHeight)
	ctrlOpts := page.OptionsFor(opts.Guide.Sections, opts.Profile)
	ctrlOpts.Logger = logger

	tracker := newRevealTracker()
	tracker.disabled = opts.DisableReveal

	m := Model{
		guide:       opts.Guide,
		profile:     opts.Profile,
		theme:       theme,
		keys:        keys,
		logger:      logger,
		doc:         doc,
		ctrl:        page.NewController(doc, ctrlOpts),
		reveal:      &revealState{tracker: tracker},
		md:          newMarkdownRenderer(theme.GlamourStyle),
		nav:         navBar{brand: opts.Guide.Brand, sections: opts.Guide.Sections, theme: theme},
		help:        NewHelpOverlayModel(theme, keys, opts.Profile.SelfAssessment),
		jumper:      NewJumperModel(opts.Guide, theme),
		planForm:    NewPlanFormModel(opts.Guide.Experience.Emotions, theme),
		progress:    progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		watcher:     opts.Watcher,
		contentPath: opts.ContentPath,
		width:       80,
		height:      24,
	}
	m.resetAssessment()
	m.rebuild()
	return m
}

// Mount starts the scroll-spy and the reveal tracker. The returned function
// removes both listeners.
func (m Model) Mount() (unmount func()) {
	unmountPage := m.ctrl.Mount()
	rs := m.reveal
	if rs.release == nil {
		rs.release = m.doc.OnScroll(func() { rs.pending = true })
	}
	rs.pending = true
	return func() {
		unmountPage()
		if rs.release != nil {
			rs.release()
			rs.release = nil
		}
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.watcher != nil {
		return WatchFileCmd(m.watcher)
	}
	return nil
}

func (m *Model) resetAssessment() {
	if !m.profile.SelfAssessment {
		m.assessment = nil
		return
	}
	e := m.guide.Experience
	m.assessment = selection.NewAssessment(e.Situations, e.Reactions)
	if m.assessPanel.assessment == nil {
		m.assessPanel = NewAssessmentPanelModel(m.assessment, m.theme)
	} else {
		m.assessPanel.SetAssessment(m.assessment)
	}
}

func (m Model) bodyHeight() int {
	return max(m.height-headerHeight-footerHeight, MinContentHeight)
}

func (m *Model) renderOpts() renderOptions {
	return renderOptions{
		guide:      m.guide,
		profile:    m.profile,
		theme:      m.theme,
		width:      contentWidth(m.width),
		md:         m.md,
		revealed:   m.reveal.tracker.IsRevealed,
		assessment: m.assessment,
		plan:       m.plan,
	}
}

// indent centers the page column inside the terminal.
func (m Model) indent(text string) string {
	pad := max((m.width-contentWidth(m.width))/2, 0)
	if pad == 0 {
		return text
	}
	prefix := strings.Repeat(" ", pad)
	return prefix + strings.ReplaceAll(text, "\n", "\n"+prefix)
}

// rebuild lays the page out again and recomputes the scroll state. Used
// whenever geometry may change: size, content, plan or assessment.
func (m *Model) rebuild() {
	m.page = renderPage(m.renderOpts())
	m.reveal.blocks = m.page.blocks
	m.doc.setContent(m.indent(m.page.text), m.page.anchors)
	m.reveal.pending = true
	m.ctrl.HandleScroll()
}

// syncReveal marks the blocks that scrolled into view and repaints them.
// Reveal only changes colors, so the anchors stay valid.
func (m *Model) syncReveal() {
	rs := m.reveal
	if !rs.pending {
		return
	}
	rs.pending = false
	if !rs.tracker.Observe(rs.blocks, m.doc.vp.YOffset, m.doc.vp.Height) {
		return
	}
	m.page = renderPage(m.renderOpts())
	m.doc.refresh(m.indent(m.page.text))
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.statusMsg = msg
	m.statusIsErr = isErr
}

func (m *Model) navigateIndex(i int) {
	if i < 0 || i >= len(m.guide.Sections) {
		return
	}
	m.ctrl.Navigate(m.guide.Sections[i].ID)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.doc.setSize(m.width, m.bodyHeight())
		m.help.SetSize(m.width, m.height)
		m.jumper.SetWidth(m.width)
		m.planForm.SetWidth(m.width)
		m.assessPanel.SetWidth(m.width)
		m.progress.Width = max(m.width-12, 10)
		if !m.nav.collapsed(m.width) {
			m.ctrl.CloseMenu()
		}
		m.rebuild()

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				m.doc.scrollBy(-wheelRows)
			case tea.MouseButtonWheelDown:
				m.doc.scrollBy(wheelRows)
			}
		}

	case scrollTickMsg:
		cmds = append(cmds, m.doc.step(msg.id))

	case JumpMsg:
		m.ctrl.Navigate(msg.SectionID)

	case PlanSavedMsg:
		if msg.Summary == "" {
			m.setStatus("Plan vacío: no se copió nada", false)
			break
		}
		m.plan = msg.Summary
		m.rebuild()
		switch {
		case msg.Err != nil:
			m.logger.Warn("clipboard write failed", "err", msg.Err)
			m.setStatus("Plan listo (no se pudo copiar al portapapeles)", true)
		case msg.Copied:
			m.setStatus("Plan copiado al portapapeles", false)
		default:
			m.setStatus("Plan listo (portapapeles no disponible)", false)
		}

	case AssessmentChangedMsg:
		m.rebuild()
		m.setStatus(fmt.Sprintf("%s: %d%%", model.AssessmentTitle, m.assessment.Completion()), false)

	case FileChangedMsg:
		if m.contentPath != "" {
			cmds = append(cmds, ReloadContentCmd(m.contentPath))
		}
		if m.watcher != nil {
			cmds = append(cmds, WatchFileCmd(m.watcher))
		}

	case ContentReloadedMsg:
		m.applyReload(msg)

	default:
		// huh and textinput blink ticks
		if m.planForm.IsVisible() {
			var cmd tea.Cmd
			m.planForm, cmd = m.planForm.Update(msg)
			cmds = append(cmds, cmd)
		} else if m.jumper.IsVisible() {
			var cmd tea.Cmd
			m.jumper, cmd = m.jumper.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	cmds = append(cmds, m.doc.takeStart())
	m.syncReveal()
	return m, tea.Batch(cmds...)
}

func (m *Model) applyReload(msg ContentReloadedMsg) {
	if msg.Err != nil {
		m.logger.Warn("content reload failed", "path", m.contentPath, "err", msg.Err)
		m.setStatus("Error al recargar: "+msg.Err.Error(), true)
		return
	}
	m.guide = msg.Guide
	m.nav = navBar{brand: m.guide.Brand, sections: m.guide.Sections, theme: m.theme}
	m.jumper.SetGuide(m.guide)
	m.planForm = NewPlanFormModel(m.guide.Experience.Emotions, m.theme)
	m.planForm.SetWidth(m.width)
	m.resetAssessment()
	m.reveal.tracker.Reset()
	m.menuCursor = 0
	m.rebuild()
	m.ctrl.Reload(m.guide.Sections)
	m.logger.Info("content reloaded", "path", m.contentPath, "sections", len(m.guide.Sections))
	m.setStatus("Contenido recargado", false)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case m.help.IsVisible():
		m.help, cmd = m.help.Update(msg)
		return cmd
	case m.jumper.IsVisible():
		m.jumper, cmd = m.jumper.Update(msg)
		return cmd
	case m.planForm.IsVisible():
		if msg.String() == "ctrl+c" {
			return tea.Quit
		}
		m.planForm, cmd = m.planForm.Update(msg)
		return cmd
	case m.assessPanel.IsVisible():
		m.assessPanel, cmd = m.assessPanel.Update(msg)
		return cmd
	case m.ctrl.MenuOpen():
		return m.handleMenuKey(msg)
	}

	m.statusMsg = ""
	k := m.keys
	if i, ok := sectionDigit(msg.String()); ok {
		m.navigateIndex(i)
		return nil
	}

	switch {
	case key.Matches(msg, k.Quit):
		return tea.Quit
	case key.Matches(msg, k.Down):
		m.doc.scrollBy(1)
	case key.Matches(msg, k.Up):
		m.doc.scrollBy(-1)
	case key.Matches(msg, k.PageDown):
		m.doc.scrollBy(max(m.doc.vp.Height-1, 1))
	case key.Matches(msg, k.PageUp):
		m.doc.scrollBy(-max(m.doc.vp.Height-1, 1))
	case key.Matches(msg, k.Home):
		m.doc.ScrollTo(0, false)
	case key.Matches(msg, k.End):
		m.doc.ScrollTo(m.doc.maxRow()*RowUnits, false)
	case key.Matches(msg, k.NextSection):
		m.navigateIndex(m.guide.SectionIndex(m.ctrl.ActiveID()) + 1)
	case key.Matches(msg, k.PrevSection):
		m.navigateIndex(m.guide.SectionIndex(m.ctrl.ActiveID()) - 1)
	case key.Matches(msg, k.ScrollTop):
		m.ctrl.ScrollToTop()
	case key.Matches(msg, k.Menu):
		if m.nav.collapsed(m.width) {
			m.ctrl.ToggleMenu()
			m.menuCursor = max(m.guide.SectionIndex(m.ctrl.ActiveID()), 0)
		}
	case key.Matches(msg, k.Jump):
		return m.jumper.Open()
	case key.Matches(msg, k.Help):
		m.help.Toggle()
	case key.Matches(msg, k.Plan):
		return m.planForm.Open()
	case key.Matches(msg, k.Assess):
		if m.assessment != nil {
			m.assessPanel.Show()
		}
	case key.Matches(msg, k.PrimaryCTA):
		m.triggerAction(0)
	case key.Matches(msg, k.SecondCTA):
		m.triggerAction(1)
	}
	return nil
}

// triggerAction follows hero call to action i while the hero is active.
func (m *Model) triggerAction(i int) {
	if len(m.guide.Sections) == 0 || m.ctrl.ActiveID() != m.guide.Sections[0].ID {
		return
	}
	actions := m.guide.Hero.Actions
	if i >= len(actions) || actions[i].Target == "" {
		return
	}
	m.ctrl.Navigate(actions[i].Target)
}

func (m *Model) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	if i, ok := sectionDigit(msg.String()); ok {
		m.navigateIndex(i)
		return nil
	}
	switch msg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "esc", "m":
		m.ctrl.CloseMenu()
	case "down", "j":
		if m.menuCursor < len(m.guide.Sections)-1 {
			m.menuCursor++
		}
	case "up", "k":
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case "enter":
		m.navigateIndex(m.menuCursor)
	}
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// VIEW
// ══════════════════════════════════════════════════════════════════════════════

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Cargando…"
	}
	var b strings.Builder
	b.WriteString(m.nav.View(m.width, m.ctrl.ActiveID(), m.ctrl.MenuOpen()))
	b.WriteString("\n")
	b.WriteString(m.headerRule())
	b.WriteString("\n")
	b.WriteString(m.bodyView())
	b.WriteString("\n")
	b.WriteString(m.statusBar())
	return b.String()
}

// headerRule is the reading progress bar when the variant tracks it and a
// plain divider otherwise.
func (m Model) headerRule() string {
	if !m.ctrl.TracksProgress() {
		return RenderSubtleDivider(m.width, m.theme)
	}
	pct := m.ctrl.Progress()
	label := m.theme.Renderer.NewStyle().Foreground(m.theme.Subtext).Render(fmt.Sprintf(" %3.0f%% leído", pct))
	return m.progress.ViewAs(pct/100) + label
}

func (m Model) bodyView() string {
	h := m.doc.vp.Height
	var overlay string
	switch {
	case m.help.IsVisible():
		overlay = m.help.View()
	case m.jumper.IsVisible():
		overlay = m.jumper.View()
	case m.planForm.IsVisible():
		overlay = m.planForm.View()
	case m.assessPanel.IsVisible():
		overlay = m.assessPanel.View()
	}
	if overlay != "" {
		return lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, overlay)
	}

	lines := strings.Split(m.doc.vp.View(), "\n")
	for len(lines) < h {
		lines = append(lines, "")
	}
	lines = lines[:h]

	if m.ctrl.MenuOpen() {
		menu := strings.Split(m.nav.menuView(m.width, m.menuCursor, m.ctrl.ActiveID()), "\n")
		for i := 0; i < len(menu) && i < h; i++ {
			lines[i] = menu[i]
		}
	}

	if m.ctrl.ShowScrollTop() && h > 0 {
		btn := m.theme.Renderer.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1F29"}).
			Background(m.theme.Primary).
			Padding(0, 1).
			Render("↑ [t]")
		bw := lipgloss.Width(btn)
		last := ansi.Truncate(lines[h-1], max(m.width-bw-1, 0), "")
		gap := max(m.width-bw-1-lipgloss.Width(last), 0)
		lines[h-1] = last + strings.Repeat(" ", gap) + btn
	}
	return strings.Join(lines, "\n")
}

func (m Model) statusBar() string {
	t := m.theme
	label := m.ctrl.ActiveID()
	if i := m.guide.SectionIndex(label); i >= 0 {
		s := m.guide.Sections[i]
		label = strings.TrimSpace(s.Icon + " " + s.Label)
	}
	left := t.Renderer.NewStyle().Foreground(t.Primary).Bold(true).Render(label)
	variant := t.Renderer.NewStyle().Foreground(t.Muted).Render(" · " + m.profile.Title)

	var mid string
	if m.statusMsg != "" {
		color := t.Success
		if m.statusIsErr {
			color = t.Warning
		}
		mid = "  " + t.Renderer.NewStyle().Foreground(color).Render(m.statusMsg)
	}

	right := t.Renderer.NewStyle().Foreground(t.Muted).Render(fmt.Sprintf("%d%%  ? ayuda", int(m.doc.vp.ScrollPercent()*100)))
	used := lipgloss.Width(left) + lipgloss.Width(variant) + lipgloss.Width(mid)
	gap := m.width - used - lipgloss.Width(right)
	if gap < 1 {
		return ansi.Truncate(left+variant+mid, m.width, "…")
	}
	return left + variant + mid + strings.Repeat(" ", gap) + right
}

// ══════════════════════════════════════════════════════════════════════════════
// ACCESSORS
// ══════════════════════════════════════════════════════════════════════════════

// ActiveSection returns the highlighted section id.
func (m Model) ActiveSection() string {
	return m.ctrl.ActiveID()
}

// Guide returns the guide on screen.
func (m Model) Guide() *model.Guide {
	return m.guide
}

// Plan returns the last submitted intention.
func (m Model) Plan() string {
	return m.plan
}

// Assessment returns the self-assessment, nil when the variant has none.
func (m Model) Assessment() *selection.Assessment {
	return m.assessment
}
