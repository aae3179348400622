// Package selection holds the self-assessment choices: two independent
// ordered sets of free-text options and the completion percentage derived
// from them. Nothing here is persisted.
package selection

import (
	"math"
	"slices"
)

// Set is an insertion-ordered set of strings.
type Set struct {
	items []string
}

// NewSet returns a set holding values in order, dropping repeats.
func NewSet(values ...string) *Set {
	s := &Set{}
	for _, v := range values {
		if !s.Contains(v) {
			s.items = append(s.items, v)
		}
	}
	return s
}

// Toggle removes value when present and appends it otherwise. It returns
// whether value is selected afterwards.
func (s *Set) Toggle(value string) bool {
	if idx := slices.Index(s.items, value); idx >= 0 {
		s.items = slices.Delete(s.items, idx, idx+1)
		return false
	}
	s.items = append(s.items, value)
	return true
}

// Contains reports whether value is selected.
func (s *Set) Contains(value string) bool {
	return slices.Contains(s.items, value)
}

// Len returns the number of selected values.
func (s *Set) Len() int {
	return len(s.items)
}

// Values returns the selected values in insertion order.
func (s *Set) Values() []string {
	return slices.Clone(s.items)
}

// Clear deselects everything.
func (s *Set) Clear() {
	s.items = nil
}

// Completion returns round(100*selected/total) clamped to [0, 100]; a zero
// total yields 0.
func Completion(selected, total int) int {
	if total <= 0 || selected <= 0 {
		return 0
	}
	pct := int(math.Round(100 * float64(selected) / float64(total)))
	return min(pct, 100)
}

// Assessment pairs the situations and reactions sets with the option pools
// they are drawn from.
type Assessment struct {
	Situations *Set
	Reactions  *Set

	situationPool []string
	reactionPool  []string
}

// NewAssessment returns an empty assessment over the two pools. Repeated
// pool entries are kept once, since a set can only select them once.
func NewAssessment(situations, reactions []string) *Assessment {
	return &Assessment{
		Situations:    NewSet(),
		Reactions:     NewSet(),
		situationPool: NewSet(situations...).Values(),
		reactionPool:  NewSet(reactions...).Values(),
	}
}

// ToggleSituation toggles a situation and returns whether it is now selected.
func (a *Assessment) ToggleSituation(value string) bool {
	return a.Situations.Toggle(value)
}

// ToggleReaction toggles a reaction and returns whether it is now selected.
func (a *Assessment) ToggleReaction(value string) bool {
	return a.Reactions.Toggle(value)
}

// SituationPool returns the available situations.
func (a *Assessment) SituationPool() []string {
	return slices.Clone(a.situationPool)
}

// ReactionPool returns the available reactions.
func (a *Assessment) ReactionPool() []string {
	return slices.Clone(a.reactionPool)
}

// Selected returns the total number of selected options.
func (a *Assessment) Selected() int {
	return a.Situations.Len() + a.Reactions.Len()
}

// Total returns the combined pool size.
func (a *Assessment) Total() int {
	return len(a.situationPool) + len(a.reactionPool)
}

// Completion returns the percentage of options selected across both pools.
func (a *Assessment) Completion() int {
	return Completion(a.Selected(), a.Total())
}

// Reset clears both sets.
func (a *Assessment) Reset() {
	a.Situations.Clear()
	a.Reactions.Clear()
}
