// Package page owns the navigable state of one page view: the active
// section, the floating top button, the reading progress and the mobile
// menu. It talks to the renderer only through Document.
package page

import "github.com/kraitsura/nomofobia/pkg/scrollspy"

// Document is the scroll container the controller drives.
type Document interface {
	scrollspy.Measurer

	// Metrics returns the current scroll offset and heights.
	Metrics() scrollspy.Metrics

	// ScrollTo moves the viewport top to y. smooth requests an animated
	// scroll; the document emits a scroll event for every offset it passes.
	ScrollTo(y int, smooth bool)

	// OnScroll registers fn for scroll events and returns the function that
	// removes it.
	OnScroll(fn func()) (release func())
}

// Listeners is a small registry documents embed to implement OnScroll.
// It is not safe for concurrent use; documents live on the UI goroutine.
type Listeners struct {
	next int
	fns  map[int]func()
	// order keeps emission in registration order
	order []int
}

// Add registers fn. The returned release is idempotent.
func (l *Listeners) Add(fn func()) (release func()) {
	if l.fns == nil {
		l.fns = make(map[int]func())
	}
	id := l.next
	l.next++
	l.fns[id] = fn
	l.order = append(l.order, id)
	return func() {
		if _, ok := l.fns[id]; !ok {
			return
		}
		delete(l.fns, id)
		for i, v := range l.order {
			if v == id {
				l.order = append(l.order[:i], l.order[i+1:]...)
				break
			}
		}
	}
}

// Emit calls every registered listener.
func (l *Listeners) Emit() {
	// copy so a listener may release itself while we iterate
	ids := append([]int(nil), l.order...)
	for _, id := range ids {
		if fn, ok := l.fns[id]; ok {
			fn()
		}
	}
}

// Len returns the number of registered listeners.
func (l *Listeners) Len() int {
	return len(l.fns)
}
