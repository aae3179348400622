package ui

// Reveal thresholds: the share of a block's height that must be on screen
// before it renders at full strength.
const (
	revealCard   = 0.3
	revealHeader = 0.4
)

// revealBlock is one animated region of the page.
type revealBlock struct {
	lineRange
	amount float64
}

// revealTracker remembers which blocks have entered the viewport. A block
// never goes back to hidden.
type revealTracker struct {
	revealed []bool
	disabled bool
}

func newRevealTracker() *revealTracker {
	return &revealTracker{}
}

// IsRevealed reports whether block i has been seen. Blocks beyond the known
// set are hidden until observed.
func (t *revealTracker) IsRevealed(i int) bool {
	if t.disabled {
		return true
	}
	return i < len(t.revealed) && t.revealed[i]
}

// Observe marks the blocks visible in rows [top, top+height) and reports
// whether any block changed state.
func (t *revealTracker) Observe(blocks []revealBlock, top, height int) bool {
	if t.disabled {
		return false
	}
	if len(t.revealed) < len(blocks) {
		t.revealed = append(t.revealed, make([]bool, len(blocks)-len(t.revealed))...)
	}
	bottom := top + height
	changed := false
	for i, b := range blocks {
		if t.revealed[i] {
			continue
		}
		h := b.height()
		if h <= 0 {
			t.revealed[i] = true
			changed = true
			continue
		}
		overlap := min(b.end, bottom) - max(b.start, top)
		if overlap <= 0 {
			continue
		}
		// Blocks taller than the viewport count the share of the viewport they fill.
		if float64(overlap) >= b.amount*float64(min(h, height)) {
			t.revealed[i] = true
			changed = true
		}
	}
	return changed
}

// Reset hides every block again, used when the content is replaced.
func (t *revealTracker) Reset() {
	t.revealed = nil
}

// Count returns how many blocks have been revealed.
func (t *revealTracker) Count() int {
	n := 0
	for _, r := range t.revealed {
		if r {
			n++
		}
	}
	return n
}
