package page

import (
	"testing"

	"github.com/kraitsura/nomofobia/pkg/model"
	"github.com/kraitsura/nomofobia/pkg/scrollspy"
)

// fakeDocument jumps straight to the target offset and records scroll calls.
type fakeDocument struct {
	Listeners
	anchors  map[string]scrollspy.Rect
	scrollY  int
	height   int
	viewport int
	scrolls  []int
	smooth   []bool
}

func newFakeDocument() *fakeDocument {
	return &fakeDocument{
		anchors: map[string]scrollspy.Rect{
			"inicio":     {Top: 0, Height: 800},
			"definicion": {Top: 800, Height: 600},
		},
		height:   1400,
		viewport: 400,
	}
}

func (d *fakeDocument) Measure(id string) (scrollspy.Rect, bool) {
	r, ok := d.anchors[id]
	return r, ok
}

func (d *fakeDocument) Metrics() scrollspy.Metrics {
	return scrollspy.Metrics{ScrollY: d.scrollY, DocumentHeight: d.height, ViewportHeight: d.viewport}
}

func (d *fakeDocument) ScrollTo(y int, smooth bool) {
	d.scrolls = append(d.scrolls, y)
	d.smooth = append(d.smooth, smooth)
	d.scrollY = y
	d.Emit()
}

func (d *fakeDocument) OnScroll(fn func()) func() {
	return d.Add(fn)
}

func (d *fakeDocument) userScroll(y int) {
	d.scrollY = y
	d.Emit()
}

var testSections = []model.Section{
	{ID: "inicio", Label: "Inicio"},
	{ID: "definicion", Label: "Definición"},
}

func newTestController(doc *fakeDocument) *Controller {
	return NewController(doc, Options{Sections: testSections, Lookahead: 120, Threshold: 300})
}

func TestMountComputesInitialState(t *testing.T) {
	doc := newFakeDocument()
	c := newTestController(doc)
	if c.ActiveID() != "" {
		t.Fatalf("unmounted controller should have no active section, got %q", c.ActiveID())
	}

	unmount := c.Mount()
	defer unmount()

	if c.ActiveID() != "inicio" {
		t.Fatalf("active after mount = %q, want inicio", c.ActiveID())
	}
	if doc.Len() != 1 {
		t.Fatalf("expected one scroll listener, got %d", doc.Len())
	}
}

func TestScrollEventsUpdateState(t *testing.T) {
	doc := newFakeDocument()
	c := newTestController(doc)
	defer c.Mount()()

	doc.userScroll(700)
	if c.ActiveID() != "definicion" {
		t.Errorf("scrollY=700: active = %q, want definicion", c.ActiveID())
	}
	doc.userScroll(300)
	if c.ShowScrollTop() {
		t.Error("scrollY=300 should keep the top button hidden")
	}
	doc.userScroll(301)
	if !c.ShowScrollTop() {
		t.Error("scrollY=301 should show the top button")
	}
	if c.ActiveID() != "inicio" {
		t.Errorf("scrollY=301: active = %q, want inicio", c.ActiveID())
	}
}

func TestUnmountStopsListening(t *testing.T) {
	doc := newFakeDocument()
	c := newTestController(doc)
	unmount := c.Mount()
	unmount()
	unmount() // idempotent

	if doc.Len() != 0 {
		t.Fatalf("listener not released, %d left", doc.Len())
	}
	if c.Mounted() {
		t.Fatal("controller still mounted")
	}

	doc.userScroll(900)
	if c.ActiveID() != "inicio" {
		t.Fatalf("detached controller reacted to scroll: active = %q", c.ActiveID())
	}
	c.HandleScroll()
	if c.ActiveID() != "inicio" {
		t.Fatalf("HandleScroll after unmount changed state: %q", c.ActiveID())
	}
}

func TestMountTwiceRegistersOnce(t *testing.T) {
	doc := newFakeDocument()
	c := newTestController(doc)
	c.Mount()
	c.Mount()
	if doc.Len() != 1 {
		t.Fatalf("expected a single listener, got %d", doc.Len())
	}
	c.Unmount()
}

func TestNavigateScrollsToAnchorAndClosesMenu(t *testing.T) {
	doc := newFakeDocument()
	c := newTestController(doc)
	defer c.Mount()()

	c.ToggleMenu()
	c.Navigate("definicion")

	if len(doc.scrolls) != 1 || doc.scrolls[0] != 800 || !doc.smooth[0] {
		t.Fatalf("scroll calls = %v smooth=%v, want one smooth scroll to 800", doc.scrolls, doc.smooth)
	}
	if c.MenuOpen() {
		t.Error("menu should close after navigating")
	}
	if c.ActiveID() != "definicion" {
		t.Errorf("active after navigate = %q", c.ActiveID())
	}

	// idempotent
	c.Navigate("definicion")
	if c.ActiveID() != "definicion" || doc.scrollY != 800 {
		t.Errorf("second navigate moved the page: scrollY=%d active=%q", doc.scrollY, c.ActiveID())
	}
}

func TestNavigateUnknownSectionStillClosesMenu(t *testing.T) {
	doc := newFakeDocument()
	c := newTestController(doc)
	defer c.Mount()()

	c.ToggleMenu()
	if !c.MenuOpen() {
		t.Fatal("menu should be open after toggle")
	}
	c.Navigate("no-existe")

	if len(doc.scrolls) != 0 {
		t.Errorf("unknown section must not scroll, got %v", doc.scrolls)
	}
	if c.MenuOpen() {
		t.Error("menu should close even when the anchor is missing")
	}
	if c.ActiveID() != "inicio" {
		t.Errorf("active changed to %q", c.ActiveID())
	}
}

func TestScrollToTop(t *testing.T) {
	doc := newFakeDocument()
	c := newTestController(doc)
	defer c.Mount()()

	doc.userScroll(900)
	c.ScrollToTop()
	if doc.scrollY != 0 {
		t.Fatalf("scrollY = %d, want 0", doc.scrollY)
	}
	if c.ShowScrollTop() || c.ActiveID() != "inicio" {
		t.Errorf("state after top: %+v", c.State())
	}
}

func TestProgressTrackingFromProfile(t *testing.T) {
	doc := newFakeDocument()
	c := NewController(doc, OptionsFor(testSections, model.VariantModerna.Profile()))
	defer c.Mount()()

	if !c.TracksProgress() {
		t.Fatal("moderna should track progress")
	}
	doc.userScroll(500)
	if c.Progress() != 50 {
		t.Errorf("progress = %v, want 50", c.Progress())
	}
}

func TestReloadKeepsOrDropsActive(t *testing.T) {
	doc := newFakeDocument()
	c := newTestController(doc)
	defer c.Mount()()

	doc.userScroll(2000) // past every anchor: keeps inicio
	c.Reload([]model.Section{{ID: "inicio"}, {ID: "definicion"}})
	if c.ActiveID() != "inicio" {
		t.Errorf("active after reload = %q, want inicio kept", c.ActiveID())
	}

	delete(doc.anchors, "inicio")
	c.Reload([]model.Section{{ID: "definicion"}})
	if c.ActiveID() != "definicion" {
		t.Errorf("active after section removal = %q, want fallback definicion", c.ActiveID())
	}
	if got := len(c.Sections()); got != 1 {
		t.Errorf("sections = %d, want 1", got)
	}
}

func TestListenersReleaseDuringEmit(t *testing.T) {
	var l Listeners
	calls := 0
	var release func()
	release = l.Add(func() {
		calls++
		release()
	})
	l.Add(func() { calls++ })

	l.Emit()
	l.Emit()
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
	if l.Len() != 1 {
		t.Fatalf("listeners left = %d, want 1", l.Len())
	}
}
