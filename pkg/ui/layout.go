package ui

// Layout breakpoints for responsive design.
const (
	// BreakpointNarrow is the width below which the nav pills collapse into
	// the mobile menu.
	BreakpointNarrow = 80

	// BreakpointMedium is the width above which card grids use two columns.
	BreakpointMedium = 100

	// BreakpointWide is the width above which card grids use three columns.
	BreakpointWide = 140
)

// Content dimension constraints.
const (
	// MinCardWidth is the minimum width for bordered cards.
	MinCardWidth = 24

	// MaxContentWidth caps the reading column on very wide terminals.
	MaxContentWidth = 120

	// MinContentHeight is the minimum height for the scrollable page.
	MinContentHeight = 5

	// ContentPadding is the horizontal margin around the page column.
	ContentPadding = 2
)

// isNarrow reports whether width uses the collapsed navigation.
func isNarrow(width int) bool {
	return width < BreakpointNarrow
}

// gridColumns returns how many cards fit side by side.
func gridColumns(width int) int {
	switch {
	case width >= BreakpointWide:
		return 3
	case width >= BreakpointMedium:
		return 2
	default:
		return 1
	}
}

// contentWidth returns the page column width for a terminal width.
func contentWidth(width int) int {
	w := width - 2*ContentPadding
	if w > MaxContentWidth {
		w = MaxContentWidth
	}
	if w < MinCardWidth {
		w = MinCardWidth
	}
	return w
}
