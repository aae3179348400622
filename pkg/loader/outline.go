package loader

import "github.com/kraitsura/nomofobia/pkg/model"

// OutlineEntry is one searchable heading of the guide. Depth 0 entries are
// the sections themselves; depth 1 entries are the titles found inside them.
type OutlineEntry struct {
	SectionID string `json:"section"`
	Title     string `json:"title"`
	Depth     int    `json:"depth"`
}

// Outline flattens the guide into sections followed by their headings, in
// document order.
func Outline(g *model.Guide) []OutlineEntry {
	children := map[string][]string{
		"inicio":      cardTitles(g.Hero.Highlights),
		"definicion":  {g.Definition.Title, model.NavigationMapTitle, model.ResourcesTitle, model.GlossaryTitle},
		"sintomas":    append([]string{g.Symptoms.Title}, cardTitles(g.Symptoms.Cards)...),
		"causas":      {g.Causes.CausesTitle, g.Causes.ConsequencesTitle, g.Causes.Impact.Title},
		"tips":        append([]string{g.Tips.Title}, cardTitles(g.Tips.Cards)...),
		"experiencia": {g.Experience.Title, model.ChecklistTitle, g.Experience.VideoTitle},
	}

	var out []OutlineEntry
	for _, s := range g.Sections {
		out = append(out, OutlineEntry{SectionID: s.ID, Title: s.Label})
		for _, title := range children[s.ID] {
			if title == "" {
				continue
			}
			out = append(out, OutlineEntry{SectionID: s.ID, Title: title, Depth: 1})
		}
	}
	return out
}

func cardTitles(cards []model.Card) []string {
	titles := make([]string, 0, len(cards))
	for _, c := range cards {
		titles = append(titles, c.Title)
	}
	return titles
}
