package selection

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestToggleAppendsAndRemoves(t *testing.T) {
	s := NewSet()
	if !s.Toggle("al despertar") {
		t.Fatal("first toggle should select")
	}
	s.Toggle("antes de dormir")
	s.Toggle("en reuniones")
	if diff := cmp.Diff([]string{"al despertar", "antes de dormir", "en reuniones"}, s.Values()); diff != "" {
		t.Fatalf("insertion order mismatch (-want +got):\n%s", diff)
	}

	if s.Toggle("antes de dormir") {
		t.Fatal("second toggle should deselect")
	}
	if diff := cmp.Diff([]string{"al despertar", "en reuniones"}, s.Values()); diff != "" {
		t.Fatalf("after removal (-want +got):\n%s", diff)
	}

	// re-adding goes to the end
	s.Toggle("antes de dormir")
	if diff := cmp.Diff([]string{"al despertar", "en reuniones", "antes de dormir"}, s.Values()); diff != "" {
		t.Fatalf("re-add order (-want +got):\n%s", diff)
	}
}

func TestToggleTwiceIsIdentity(t *testing.T) {
	starts := [][]string{
		nil,
		{"a"},
		{"a", "b", "c"},
	}
	for _, start := range starts {
		for _, v := range []string{"a", "b", "z"} {
			s := NewSet(start...)
			before := s.Values()
			s.Toggle(v)
			s.Toggle(v)
			got := s.Values()
			if v == "z" || !contains(start, v) {
				// value was absent: append then remove restores exactly
				if diff := cmp.Diff(before, got); diff != "" {
					t.Errorf("start=%v toggle %q twice (-want +got):\n%s", start, v, diff)
				}
				continue
			}
			// value was present: it is removed then re-appended, contents match
			if s.Len() != len(before) || !s.Contains(v) {
				t.Errorf("start=%v toggle %q twice: got %v", start, v, got)
			}
		}
	}
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func TestNewSetDropsDuplicates(t *testing.T) {
	s := NewSet("a", "b", "a")
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	vals := s.Values()
	vals[0] = "mutated"
	if s.Contains("mutated") {
		t.Fatal("Values must return a copy")
	}
	s.Clear()
	if s.Len() != 0 {
		t.Fatal("Clear left values behind")
	}
}

func TestCompletion(t *testing.T) {
	tests := []struct {
		selected, total, want int
	}{
		{0, 10, 0},
		{3, 10, 30},
		{1, 3, 33},
		{2, 3, 67},
		{10, 10, 100},
		{12, 10, 100},
		{4, 0, 0},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := Completion(tt.selected, tt.total); got != tt.want {
			t.Errorf("Completion(%d, %d) = %d, want %d", tt.selected, tt.total, got, tt.want)
		}
	}
}

func TestAssessmentScenario(t *testing.T) {
	situations := []string{"s1", "s2", "s3", "s4", "s5"}
	reactions := []string{"r1", "r2", "r3", "r4", "r5"}
	a := NewAssessment(situations, reactions)

	if a.Completion() != 0 {
		t.Fatalf("empty completion = %d", a.Completion())
	}
	a.ToggleSituation("s1")
	a.ToggleSituation("s4")
	a.ToggleReaction("r2")
	if got := a.Completion(); got != 30 {
		t.Fatalf("completion = %d, want 30", got)
	}

	a.Reset()
	if a.Selected() != 0 || a.Completion() != 0 {
		t.Fatalf("reset left %d selected", a.Selected())
	}
}

func TestAssessmentCompletionMonotone(t *testing.T) {
	situations := []string{"s1", "s2", "s3"}
	reactions := []string{"r1", "r2", "r3", "r4"}
	a := NewAssessment(situations, reactions)

	prev := a.Completion()
	for _, v := range situations {
		a.ToggleSituation(v)
		got := a.Completion()
		if got < prev || got > 100 {
			t.Fatalf("completion went from %d to %d", prev, got)
		}
		prev = got
	}
	for _, v := range reactions {
		a.ToggleReaction(v)
		got := a.Completion()
		if got < prev || got > 100 {
			t.Fatalf("completion went from %d to %d", prev, got)
		}
		prev = got
	}
	if prev != 100 {
		t.Fatalf("all selected = %d, want 100", prev)
	}
}

func TestAssessmentSetsAreIndependent(t *testing.T) {
	a := NewAssessment([]string{"mismo"}, []string{"mismo"})
	a.ToggleSituation("mismo")
	if a.Reactions.Contains("mismo") {
		t.Fatal("toggling a situation must not touch reactions")
	}
	if a.Total() != 2 || a.Completion() != 50 {
		t.Fatalf("total=%d completion=%d", a.Total(), a.Completion())
	}
	pool := a.SituationPool()
	pool[0] = "x"
	if a.SituationPool()[0] != "mismo" {
		t.Fatal("SituationPool must return a copy")
	}
}

func TestAssessmentRepeatedPoolEntries(t *testing.T) {
	a := NewAssessment([]string{"a", "a", "b"}, []string{"r", "r"})
	if got := a.Total(); got != 3 {
		t.Fatalf("Total = %d, want 3", got)
	}
	a.ToggleSituation("a")
	a.ToggleSituation("b")
	a.ToggleReaction("r")
	if got := a.Completion(); got != 100 {
		t.Errorf("Completion = %d, want 100 with every option selected", got)
	}
}
