// Package scrollspy derives the active section, the scroll-to-top visibility
// and the reading progress from a vertical scroll offset.
//
// All positions are page units. The package never touches a renderer: callers
// supply section geometry through a Measurer.
package scrollspy

import "math"

// Defaults match the latest page iteration.
const (
	DefaultLookahead = 120
	DefaultThreshold = 320
)

// Rect is the vertical extent of a section anchor.
type Rect struct {
	Top    int
	Height int
}

// Bottom returns the first unit past the anchor.
func (r Rect) Bottom() int {
	return r.Top + r.Height
}

// Contains reports whether y falls in [Top, Top+Height).
func (r Rect) Contains(y int) bool {
	return y >= r.Top && y < r.Bottom()
}

// Measurer resolves a section id to its anchor. ok is false when the anchor
// is not present; such sections are skipped.
type Measurer interface {
	Measure(id string) (r Rect, ok bool)
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func(id string) (Rect, bool)

// Measure implements Measurer.
func (f MeasureFunc) Measure(id string) (Rect, bool) {
	return f(id)
}

// Metrics is a snapshot of the scroll container.
type Metrics struct {
	ScrollY        int
	DocumentHeight int
	ViewportHeight int
}

// State is the derived UI state for one scroll position.
type State struct {
	ScrollY       int
	ActiveID      string
	PastThreshold bool
	Progress      float64 // 0-100, only filled when progress tracking is on
}

// Spy holds the ordered section ids and the per-variant constants.
type Spy struct {
	ids           []string
	Lookahead     int
	Threshold     int
	TrackProgress bool
}

// New returns a Spy over ids, in document order.
func New(ids []string, lookahead, threshold int) *Spy {
	return &Spy{
		ids:       append([]string(nil), ids...),
		Lookahead: lookahead,
		Threshold: threshold,
	}
}

// IDs returns a copy of the ordered section ids.
func (s *Spy) IDs() []string {
	return append([]string(nil), s.ids...)
}

// Compute derives the state for m. prev carries the previously active section,
// which is kept when no section contains the lookahead offset.
func (s *Spy) Compute(prev State, m Metrics, measure Measurer) State {
	next := State{
		ScrollY:       m.ScrollY,
		ActiveID:      Active(s.ids, prev.ActiveID, m.ScrollY+s.Lookahead, measure),
		PastThreshold: PastThreshold(m.ScrollY, s.Threshold),
	}
	if s.TrackProgress {
		next.Progress = Progress(m.ScrollY, m.DocumentHeight, m.ViewportHeight)
	}
	return next
}

// Active returns the first section whose anchor contains offset. When none
// does, prev is returned. When prev is empty (nothing found yet, e.g. the view
// opened mid-document) the last section starting at or above offset wins,
// falling back to the first measurable section.
func Active(ids []string, prev string, offset int, measure Measurer) string {
	fallback := ""
	first := ""
	for _, id := range ids {
		r, ok := measure.Measure(id)
		if !ok {
			continue
		}
		if first == "" {
			first = id
		}
		if r.Contains(offset) {
			return id
		}
		if r.Top <= offset {
			fallback = id
		}
	}
	if prev != "" {
		return prev
	}
	if fallback != "" {
		return fallback
	}
	return first
}

// PastThreshold reports whether the floating top button should show. The
// threshold itself still hides it.
func PastThreshold(scrollY, threshold int) bool {
	return scrollY > threshold
}

// Progress returns how far through the scrollable range scrollY is, as a
// percentage clamped to [0, 100]. A document that fits the viewport is 0.
func Progress(scrollY, documentHeight, viewportHeight int) float64 {
	scrollable := documentHeight - viewportHeight
	if scrollable <= 0 {
		return 0
	}
	pct := 100 * float64(scrollY) / float64(scrollable)
	return math.Max(0, math.Min(100, pct))
}
