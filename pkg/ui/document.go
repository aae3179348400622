package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kraitsura/nomofobia/pkg/page"
	"github.com/kraitsura/nomofobia/pkg/scrollspy"
)

// RowUnits is the number of page units in one terminal row. Section offsets,
// the scroll-spy lookahead and the top-button threshold are all expressed
// in page units, so a lookahead of 120 spans five rows.
const RowUnits = 24

const (
	scrollFrames        = 8
	scrollFrameInterval = 16 * time.Millisecond
)

// lineRange is a half-open range of content lines.
type lineRange struct {
	start, end int
}

func (r lineRange) height() int { return r.end - r.start }

// scrollTickMsg advances a smooth scroll by one frame.
type scrollTickMsg struct {
	id int
}

// scrollAnimation eases the viewport from one row to another.
type scrollAnimation struct {
	id       int
	from, to int
	frame    int
}

// row returns the offset for the current frame using an ease-out cubic.
func (a *scrollAnimation) row() int {
	t := float64(a.frame) / float64(scrollFrames)
	if t >= 1 {
		return a.to
	}
	eased := 1 - (1-t)*(1-t)*(1-t)
	return a.from + int(float64(a.to-a.from)*eased+0.5)
}

// viewportDocument adapts a bubbles viewport to page.Document. Every offset
// change, including each frame of a smooth scroll, emits a scroll event.
type viewportDocument struct {
	page.Listeners

	vp      viewport.Model
	anchors map[string]lineRange
	lines   int

	anim    *scrollAnimation
	nextID  int
	started bool // an animation began and needs its first tick scheduled
}

var _ page.Document = (*viewportDocument)(nil)

func newViewportDocument(width, height int) *viewportDocument {
	vp := viewport.New(width, height)
	vp.MouseWheelEnabled = false // wheel events go through scrollBy
	return &viewportDocument{vp: vp, anchors: map[string]lineRange{}}
}

// Measure returns the page rectangle of a section anchor.
func (d *viewportDocument) Measure(id string) (scrollspy.Rect, bool) {
	r, ok := d.anchors[id]
	if !ok {
		return scrollspy.Rect{}, false
	}
	return scrollspy.Rect{Top: r.start * RowUnits, Height: r.height() * RowUnits}, true
}

// Metrics returns the scroll offset and heights in page units.
func (d *viewportDocument) Metrics() scrollspy.Metrics {
	return scrollspy.Metrics{
		ScrollY:        d.vp.YOffset * RowUnits,
		DocumentHeight: d.lines * RowUnits,
		ViewportHeight: d.vp.Height * RowUnits,
	}
}

// ScrollTo moves the viewport top to page offset y. A smooth scroll starts
// an animation that the model drives with scrollTickMsg.
func (d *viewportDocument) ScrollTo(y int, smooth bool) {
	target := d.clampRow(y / RowUnits)
	if !smooth || target == d.vp.YOffset {
		d.anim = nil
		d.setRow(target)
		return
	}
	d.nextID++
	d.anim = &scrollAnimation{id: d.nextID, from: d.vp.YOffset, to: target}
	d.started = true
}

// OnScroll registers a scroll listener.
func (d *viewportDocument) OnScroll(fn func()) func() {
	return d.Add(fn)
}

// setContent replaces the rendered page, keeping the offset when possible.
func (d *viewportDocument) setContent(content string, anchors map[string]lineRange) {
	d.vp.SetContent(content)
	d.lines = d.vp.TotalLineCount()
	d.anchors = anchors
	if off := d.clampRow(d.vp.YOffset); off != d.vp.YOffset {
		d.setRow(off)
	}
}

// refresh swaps the rendered text without touching geometry.
func (d *viewportDocument) refresh(content string) {
	d.vp.SetContent(content)
}

func (d *viewportDocument) setSize(width, height int) {
	d.vp.Width = width
	d.vp.Height = height
}

func (d *viewportDocument) maxRow() int {
	return max(0, d.lines-d.vp.Height)
}

func (d *viewportDocument) clampRow(row int) int {
	return max(0, min(row, d.maxRow()))
}

func (d *viewportDocument) setRow(row int) {
	row = d.clampRow(row)
	if row == d.vp.YOffset {
		return
	}
	d.vp.SetYOffset(row)
	d.Emit()
}

// scrollBy moves by delta rows immediately, cancelling any animation.
func (d *viewportDocument) scrollBy(delta int) {
	d.anim = nil
	d.setRow(d.vp.YOffset + delta)
}

// takeStart reports whether an animation began since the last call and
// returns the command for its first frame.
func (d *viewportDocument) takeStart() tea.Cmd {
	if !d.started || d.anim == nil {
		d.started = false
		return nil
	}
	d.started = false
	return scrollTick(d.anim.id)
}

// step advances the animation identified by id and returns the next tick,
// or nil once the target is reached. Ticks of replaced animations are
// ignored.
func (d *viewportDocument) step(id int) tea.Cmd {
	if d.anim == nil || d.anim.id != id {
		return nil
	}
	d.anim.frame++
	d.setRow(d.anim.row())
	if d.anim.frame >= scrollFrames {
		d.anim = nil
		return nil
	}
	return scrollTick(id)
}

// finish jumps straight to the end of a running animation.
func (d *viewportDocument) finish() {
	if d.anim == nil {
		return
	}
	to := d.anim.to
	d.anim = nil
	d.setRow(to)
}

func (d *viewportDocument) animating() bool {
	return d.anim != nil
}

func scrollTick(id int) tea.Cmd {
	return tea.Tick(scrollFrameInterval, func(time.Time) tea.Msg {
		return scrollTickMsg{id: id}
	})
}
