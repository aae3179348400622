package model

import (
	"fmt"
	"strings"
)

// Section is one navigable region of the guide. The slice order in Guide
// defines both the navigation order and the scroll-detection order.
type Section struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
	Icon  string `yaml:"icon" json:"icon"` // glyph shown next to the label
}

// Guide is the full content of the page. It is immutable once loaded; a
// content reload produces a new Guide.
type Guide struct {
	Brand      Brand       `yaml:"brand" json:"brand"`
	Sections   []Section   `yaml:"sections" json:"sections"`
	Hero       Hero        `yaml:"hero" json:"hero"`
	Definition Definition  `yaml:"definition" json:"definition"`
	Symptoms   CardBlock   `yaml:"symptoms" json:"symptoms"`
	Causes     CausesBlock `yaml:"causes" json:"causes"`
	Tips       TipsBlock   `yaml:"tips" json:"tips"`
	Experience Experience  `yaml:"experience" json:"experience"`
	Footer     Footer      `yaml:"footer" json:"footer"`
}

// Brand is the header identity of the page.
type Brand struct {
	Eyebrow string `yaml:"eyebrow" json:"eyebrow"`
	Name    string `yaml:"name" json:"name"`
	Icon    string `yaml:"icon" json:"icon"`
}

// Header is the eyebrow/title/lead trio that opens most sections.
type Header struct {
	Eyebrow string `yaml:"eyebrow" json:"eyebrow"`
	Title   string `yaml:"title" json:"title"`
	Lead    string `yaml:"lead" json:"lead"`
}

// Card is an icon + title + description tile (highlights, symptoms, tips).
type Card struct {
	Icon        string `yaml:"icon" json:"icon"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// Stat is a label/value pair shown under the hero.
type Stat struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
}

// CallToAction is a button that navigates to another section.
type CallToAction struct {
	Label   string `yaml:"label" json:"label"`
	Target  string `yaml:"target" json:"target"`
	Primary bool   `yaml:"primary" json:"primary"`
}

// Hero is the opening section.
type Hero struct {
	Header     `yaml:",inline"`
	Highlights []Card         `yaml:"highlights" json:"highlights"`
	Stats      []Stat         `yaml:"stats" json:"stats"`
	Actions    []CallToAction `yaml:"actions" json:"actions"`
}

// MapEntry summarizes what a section answers, for the navigation map card.
type MapEntry struct {
	Section string `yaml:"section" json:"section"`
	Summary string `yaml:"summary" json:"summary"`
}

// Definition explains the concept. Body and Glossary are Markdown.
type Definition struct {
	Header        `yaml:",inline"`
	Body          string     `yaml:"body" json:"body"`
	Prompts       []string   `yaml:"prompts" json:"prompts"`
	NavigationMap []MapEntry `yaml:"navigation_map" json:"navigation_map"`
	Resources     []string   `yaml:"resources" json:"resources"`
	Glossary      string     `yaml:"glossary" json:"glossary"`
}

// CardBlock is a header followed by a grid of cards.
type CardBlock struct {
	Header `yaml:",inline"`
	Cards  []Card `yaml:"cards" json:"cards"`
}

// CausesBlock holds the two lists and the closing impact note.
type CausesBlock struct {
	CausesTitle       string   `yaml:"causes_title" json:"causes_title"`
	Causes            []string `yaml:"causes" json:"causes"`
	ConsequencesTitle string   `yaml:"consequences_title" json:"consequences_title"`
	Consequences      []string `yaml:"consequences" json:"consequences"`
	Impact            Card     `yaml:"impact" json:"impact"`
}

// Tone colors a feedback moment.
type Tone string

const (
	ToneInfo    Tone = "info"
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
)

// IsValid returns true if the tone is a recognized value
func (t Tone) IsValid() bool {
	switch t {
	case ToneInfo, ToneSuccess, ToneWarning:
		return true
	}
	return false
}

// FeedbackMoment is a toned callout shown under the tips grid.
type FeedbackMoment struct {
	Card `yaml:",inline"`
	Tone Tone `yaml:"tone" json:"tone"`
}

// TipsBlock is the wellbeing tips section.
type TipsBlock struct {
	Header   `yaml:",inline"`
	Cards    []Card           `yaml:"cards" json:"cards"`
	Feedback []FeedbackMoment `yaml:"feedback" json:"feedback"`
}

// Option is a value/label pair for select inputs.
type Option struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// Experience is the personal reflection section with the self-assessment.
type Experience struct {
	Header     `yaml:",inline"`
	Intro      string   `yaml:"intro" json:"intro"`
	Checklist  []string `yaml:"checklist" json:"checklist"`
	VideoTitle string   `yaml:"video_title" json:"video_title"`
	VideoURL   string   `yaml:"video_url" json:"video_url"`
	Situations []string `yaml:"situations" json:"situations"`
	Reactions  []string `yaml:"reactions" json:"reactions"`
	Emotions   []Option `yaml:"emotions" json:"emotions"`
	Hint       string   `yaml:"hint" json:"hint"`
}

// Footer closes the page.
type Footer struct {
	Text      string `yaml:"text" json:"text"`
	BackLabel string `yaml:"back_label" json:"back_label"`
}

// SectionIndex returns the position of id in the section order, or -1.
func (g *Guide) SectionIndex(id string) int {
	for i, s := range g.Sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Section returns the section with the given id.
func (g *Guide) Section(id string) (Section, bool) {
	if idx := g.SectionIndex(id); idx >= 0 {
		return g.Sections[idx], true
	}
	return Section{}, false
}

// SectionIDs returns the ordered section ids.
func (g *Guide) SectionIDs() []string {
	ids := make([]string, len(g.Sections))
	for i, s := range g.Sections {
		ids[i] = s.ID
	}
	return ids
}

// Validate checks references between sections and the blocks that point at them.
func (g *Guide) Validate() error {
	seen := make(map[string]bool, len(g.Sections))
	for i, s := range g.Sections {
		id := strings.TrimSpace(s.ID)
		if id == "" {
			return fmt.Errorf("section %d has an empty id", i)
		}
		if seen[id] {
			return fmt.Errorf("section %q is defined twice", id)
		}
		seen[id] = true
	}
	for _, a := range g.Hero.Actions {
		if !seen[a.Target] {
			return fmt.Errorf("hero action %q targets unknown section %q", a.Label, a.Target)
		}
	}
	for _, e := range g.Definition.NavigationMap {
		if !seen[e.Section] {
			return fmt.Errorf("navigation map references unknown section %q", e.Section)
		}
	}
	for _, f := range g.Tips.Feedback {
		if f.Tone != "" && !f.Tone.IsValid() {
			return fmt.Errorf("invalid tone %q on feedback %q", f.Tone, f.Title)
		}
	}
	if err := uniqueOptions("situations", g.Experience.Situations); err != nil {
		return err
	}
	return uniqueOptions("reactions", g.Experience.Reactions)
}

func uniqueOptions(pool string, values []string) error {
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if seen[v] {
			return fmt.Errorf("%s lists %q more than once", pool, v)
		}
		seen[v] = true
	}
	return nil
}

// Fixed card headings that are part of the layout rather than the content.
const (
	NavigationMapTitle = "Mapa de navegación"
	ResourcesTitle     = "Recursos rápidos"
	GlossaryTitle      = "Glosario breve"
	ChecklistTitle     = "Checklist de apoyo"
	AssessmentTitle    = "Autoevaluación"
	PlanFormTitle      = "Intención personal"
)
