package page

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/kraitsura/nomofobia/pkg/model"
	"github.com/kraitsura/nomofobia/pkg/scrollspy"
)

// Options configures a Controller.
type Options struct {
	Sections      []model.Section
	Lookahead     int
	Threshold     int
	TrackProgress bool
	Logger        *log.Logger
}

// OptionsFor builds Options from a variant profile.
func OptionsFor(sections []model.Section, p model.Profile) Options {
	return Options{
		Sections:      sections,
		Lookahead:     p.Lookahead,
		Threshold:     p.Threshold,
		TrackProgress: p.TrackProgress,
	}
}

// Controller is the page controller. It is the single writer of the page
// state; renderers read it through the accessors.
type Controller struct {
	doc      Document
	spy      *scrollspy.Spy
	sections []model.Section
	state    scrollspy.State
	menuOpen bool
	mounted  bool
	release  func()
	logger   *log.Logger
}

// NewController returns an unmounted controller over doc.
func NewController(doc Document, opts Options) *Controller {
	if opts.Lookahead == 0 {
		opts.Lookahead = scrollspy.DefaultLookahead
	}
	if opts.Threshold == 0 {
		opts.Threshold = scrollspy.DefaultThreshold
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	c := &Controller{
		doc:    doc,
		logger: logger,
	}
	c.setSections(opts.Sections, opts.Lookahead, opts.Threshold, opts.TrackProgress)
	return c
}

func (c *Controller) setSections(sections []model.Section, lookahead, threshold int, track bool) {
	c.sections = append([]model.Section(nil), sections...)
	ids := make([]string, len(sections))
	for i, s := range sections {
		ids[i] = s.ID
	}
	c.spy = scrollspy.New(ids, lookahead, threshold)
	c.spy.TrackProgress = track
}

// Mount registers the scroll listener and computes the initial state. The
// returned unmount removes the listener; it is safe to call more than once.
func (c *Controller) Mount() (unmount func()) {
	if c.mounted {
		return c.Unmount
	}
	c.release = c.doc.OnScroll(c.HandleScroll)
	c.mounted = true
	c.HandleScroll()
	c.logger.Debug("page mounted", "sections", len(c.sections), "active", c.state.ActiveID)
	return c.Unmount
}

// Unmount removes the scroll listener. Later scroll events are ignored.
func (c *Controller) Unmount() {
	if !c.mounted {
		return
	}
	c.mounted = false
	if c.release != nil {
		c.release()
		c.release = nil
	}
	c.logger.Debug("page unmounted")
}

// Mounted reports whether the scroll listener is registered.
func (c *Controller) Mounted() bool {
	return c.mounted
}

// HandleScroll recomputes the derived state from the document.
func (c *Controller) HandleScroll() {
	if !c.mounted {
		return
	}
	c.state = c.spy.Compute(c.state, c.doc.Metrics(), c.doc)
}

// Navigate scrolls the section anchor to the viewport top when it exists and
// always closes the mobile menu.
func (c *Controller) Navigate(sectionID string) {
	if r, ok := c.doc.Measure(sectionID); ok {
		c.doc.ScrollTo(r.Top, true)
	} else {
		c.logger.Debug("navigate: no anchor", "section", sectionID)
	}
	c.menuOpen = false
}

// ScrollToTop smooth-scrolls to the start of the page.
func (c *Controller) ScrollToTop() {
	c.doc.ScrollTo(0, true)
}

// Reload swaps the section list after a content change, keeping the active
// section when it still exists, and recomputes.
func (c *Controller) Reload(sections []model.Section) {
	c.setSections(sections, c.spy.Lookahead, c.spy.Threshold, c.spy.TrackProgress)
	keep := false
	for _, s := range sections {
		if s.ID == c.state.ActiveID {
			keep = true
			break
		}
	}
	if !keep {
		c.state.ActiveID = ""
	}
	c.HandleScroll()
}

// State returns the last computed scroll state.
func (c *Controller) State() scrollspy.State {
	return c.state
}

// ActiveID returns the highlighted section.
func (c *Controller) ActiveID() string {
	return c.state.ActiveID
}

// ShowScrollTop reports whether the floating top button is visible.
func (c *Controller) ShowScrollTop() bool {
	return c.state.PastThreshold
}

// Progress returns the reading progress percentage (0 unless tracked).
func (c *Controller) Progress() float64 {
	return c.state.Progress
}

// TracksProgress reports whether the variant shows reading progress.
func (c *Controller) TracksProgress() bool {
	return c.spy.TrackProgress
}

// Sections returns the ordered sections.
func (c *Controller) Sections() []model.Section {
	return append([]model.Section(nil), c.sections...)
}

// ToggleMenu opens or closes the mobile navigation menu.
func (c *Controller) ToggleMenu() {
	c.menuOpen = !c.menuOpen
}

// CloseMenu closes the mobile navigation menu.
func (c *Controller) CloseMenu() {
	c.menuOpen = false
}

// MenuOpen reports whether the mobile navigation menu is open.
func (c *Controller) MenuOpen() bool {
	return c.menuOpen
}
