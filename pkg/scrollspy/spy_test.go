package scrollspy

import "testing"

type anchors map[string]Rect

func (a anchors) Measure(id string) (Rect, bool) {
	r, ok := a[id]
	return r, ok
}

func twoSections() ([]string, anchors) {
	return []string{"inicio", "definicion"}, anchors{
		"inicio":     {Top: 0, Height: 800},
		"definicion": {Top: 800, Height: 600},
	}
}

func TestComputeScenario(t *testing.T) {
	ids, doc := twoSections()
	spy := New(ids, 120, 300)

	tests := []struct {
		scrollY int
		want    string
	}{
		{0, "inicio"},
		{679, "inicio"},
		{680, "definicion"},
		{700, "definicion"},
		{1279, "definicion"},
	}
	for _, tt := range tests {
		got := spy.Compute(State{}, Metrics{ScrollY: tt.scrollY}, doc)
		if got.ActiveID != tt.want {
			t.Errorf("scrollY=%d: active = %q, want %q", tt.scrollY, got.ActiveID, tt.want)
		}
		if got.ScrollY != tt.scrollY {
			t.Errorf("scrollY=%d: state.ScrollY = %d", tt.scrollY, got.ScrollY)
		}
	}
}

func TestComputeRetainsPreviousWhenNothingMatches(t *testing.T) {
	ids, doc := twoSections()
	spy := New(ids, 120, 300)

	// 1400+ lies past the last anchor.
	got := spy.Compute(State{ActiveID: "inicio"}, Metrics{ScrollY: 2000}, doc)
	if got.ActiveID != "inicio" {
		t.Fatalf("active = %q, want previous section kept", got.ActiveID)
	}
}

func TestActiveMatchesContainingSectionForAllOffsets(t *testing.T) {
	ids := []string{"a", "b", "c"}
	doc := anchors{
		"a": {Top: 0, Height: 300},
		"b": {Top: 300, Height: 250},
		"c": {Top: 550, Height: 400},
	}
	for s := 0; s < 1200; s++ {
		offset := s + 100
		want := "c" // previous
		for _, id := range ids {
			if doc[id].Contains(offset) {
				want = id
				break
			}
		}
		if got := Active(ids, "c", offset, doc); got != want {
			t.Fatalf("offset %d: got %q want %q", offset, got, want)
		}
	}
}

func TestActiveSkipsMissingAnchors(t *testing.T) {
	ids := []string{"inicio", "fantasma", "tips"}
	doc := anchors{
		"inicio": {Top: 0, Height: 100},
		"tips":   {Top: 100, Height: 100},
	}
	if got := Active(ids, "", 150, doc); got != "tips" {
		t.Fatalf("got %q, want tips", got)
	}
}

func TestActiveInitialFallback(t *testing.T) {
	ids := []string{"inicio", "definicion", "tips"}
	// Gap between anchors: offset 950 is inside no range.
	doc := anchors{
		"inicio":     {Top: 100, Height: 400},
		"definicion": {Top: 500, Height: 400},
		"tips":       {Top: 1000, Height: 400},
	}
	if got := Active(ids, "", 950, doc); got != "definicion" {
		t.Errorf("mid-document mount: got %q, want last section above offset", got)
	}
	if got := Active(ids, "", 20, doc); got != "inicio" {
		t.Errorf("offset above every section: got %q, want first section", got)
	}
	if got := Active(ids, "", 20, anchors{}); got != "" {
		t.Errorf("no anchors: got %q, want empty", got)
	}
}

func TestPastThresholdBoundary(t *testing.T) {
	if PastThreshold(300, 300) {
		t.Error("scrollY equal to threshold must keep the button hidden")
	}
	if !PastThreshold(301, 300) {
		t.Error("scrollY above threshold must show the button")
	}
	if PastThreshold(0, 300) {
		t.Error("top of page must hide the button")
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name               string
		scrollY, doc, view int
		want               float64
	}{
		{"top", 0, 2000, 500, 0},
		{"half", 750, 2000, 500, 50},
		{"bottom", 1500, 2000, 500, 100},
		{"overscroll clamps", 1800, 2000, 500, 100},
		{"negative clamps", -20, 2000, 500, 0},
		{"fits viewport", 10, 400, 500, 0},
		{"exact fit", 0, 500, 500, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Progress(tt.scrollY, tt.doc, tt.view); got != tt.want {
				t.Errorf("Progress = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeProgressOnlyWhenTracked(t *testing.T) {
	ids, doc := twoSections()
	spy := New(ids, 100, 300)
	m := Metrics{ScrollY: 450, DocumentHeight: 1400, ViewportHeight: 500}

	if got := spy.Compute(State{}, m, doc); got.Progress != 0 {
		t.Errorf("untracked progress = %v, want 0", got.Progress)
	}
	spy.TrackProgress = true
	if got := spy.Compute(State{}, m, doc); got.Progress != 50 {
		t.Errorf("tracked progress = %v, want 50", got.Progress)
	}
}

func TestMeasureFunc(t *testing.T) {
	f := MeasureFunc(func(id string) (Rect, bool) {
		return Rect{Top: 10, Height: 5}, id == "x"
	})
	if _, ok := f.Measure("y"); ok {
		t.Error("expected missing anchor")
	}
	if r, ok := f.Measure("x"); !ok || r.Bottom() != 15 {
		t.Errorf("Measure(x) = %+v, %v", r, ok)
	}
}
