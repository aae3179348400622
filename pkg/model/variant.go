package model

import "fmt"

// Variant selects one of the three stylistic iterations of the page.
type Variant string

const (
	VariantClasica    Variant = "clasica"
	VariantModerna    Variant = "moderna"
	VariantConsciente Variant = "consciente"
)

// DefaultVariant is the latest iteration.
const DefaultVariant = VariantConsciente

// Variants returns every variant in release order.
func Variants() []Variant {
	return []Variant{VariantClasica, VariantModerna, VariantConsciente}
}

// IsValid returns true if the variant is a recognized value
func (v Variant) IsValid() bool {
	switch v {
	case VariantClasica, VariantModerna, VariantConsciente:
		return true
	}
	return false
}

// ParseVariant maps a config or flag value to a Variant. Empty means default.
func ParseVariant(s string) (Variant, error) {
	if s == "" {
		return DefaultVariant, nil
	}
	v := Variant(s)
	if !v.IsValid() {
		return "", fmt.Errorf("unknown variant %q (want clasica, moderna or consciente)", s)
	}
	return v, nil
}

// Profile holds the behavioral constants of a variant. Lookahead and
// Threshold are in page units.
type Profile struct {
	Variant        Variant
	Title          string
	Lookahead      int
	Threshold      int
	TrackProgress  bool // show the overall scroll-progress ratio
	SelfAssessment bool // show the situations/reactions checklist
}

// Profile returns the constants for v. Unknown variants get the default's.
func (v Variant) Profile() Profile {
	switch v {
	case VariantClasica:
		return Profile{Variant: v, Title: "Clásica", Lookahead: 100, Threshold: 300}
	case VariantModerna:
		return Profile{Variant: v, Title: "Moderna", Lookahead: 100, Threshold: 300, TrackProgress: true}
	case VariantConsciente:
		return Profile{Variant: v, Title: "Consciente", Lookahead: 120, Threshold: 320, SelfAssessment: true}
	}
	return DefaultVariant.Profile()
}
