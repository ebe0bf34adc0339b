// Package persona derives a naming persona from collected focus tags and
// turns it into concrete name recommendations.
package persona

import (
	"time"

	"namebot/internal/catalog"
)

// Template is one persona archetype. Templates are kept in a slice
// because declaration order is the tie-break rule: when two personas
// score equally, the earlier one wins, and the first entry is the
// fallback when no tag matches at all.
type Template struct {
	Code  string
	Label string
	Tags  []string
	Blurb string
}

func (t Template) hasTag(tag string) bool {
	for _, candidate := range t.Tags {
		if candidate == tag {
			return true
		}
	}
	return false
}

var templates = []Template{
	{
		Code:  "radiant",
		Label: "Nurafshon",
		Tags:  []string{"ramziy", "ilhom", "muloyim"},
		Blurb: "Yorug'lik taratuvchi va qalbni iliqlantiruvchi ismlar to'plami.",
	},
	{
		Code:  "pioneer",
		Label: "Yetakchi",
		Tags:  []string{"rahbar", "zamonaviy"},
		Blurb: "Jasorat va modern ruhni ifodalovchi kombinatsiyalar.",
	},
	{
		Code:  "heritage",
		Label: "Merosbon",
		Tags:  []string{"ma'naviy", "heritage"},
		Blurb: "An'anaviy va ruhiy qadriyatlarni saqlab qoluvchi ismlar.",
	},
	{
		Code:  "harmony",
		Label: "Uyg'un",
		Tags:  []string{"tabiat", "muloyim", "ohang"},
		Blurb: "Tabiat va ohang uyg'unligini sevuvchilar uchun tavsiyalar.",
	},
}

// FocusTag is a selectable value in the personalization wizard.
type FocusTag struct {
	Key   string
	Label string
	Tag   string
}

var focusTags = []FocusTag{
	{Key: "ramziy", Label: "Ramziy", Tag: "ramziy"},
	{Key: "rahbar", Label: "Rahbariy", Tag: "rahbar"},
	{Key: "manaviy", Label: "Ma'naviy", Tag: "ma'naviy"},
	{Key: "zamonaviy", Label: "Zamonaviy", Tag: "zamonaviy"},
	{Key: "tabiat", Label: "Tabiat", Tag: "tabiat"},
	{Key: "ilhom", Label: "Ilhom", Tag: "ilhom"},
}

// Profile is the persona input assembled from the wizard or the stored
// user profile.
type Profile struct {
	BirthDate    *time.Time
	TargetGender catalog.FilterGender
	FamilyName   string
	ParentNames  []string
	FocusValues  []string
}

// Recommendation is the scored outcome handed back to the renderer.
type Recommendation struct {
	PersonaCode  string
	PersonaLabel string
	Summary      string
	Suggestions  []catalog.Suggestion
}

// Engine scores tags against the persona templates and projects the
// winning persona onto the catalog.
type Engine struct {
	catalog *catalog.Catalog
}

// NewEngine builds an engine over the given catalog.
func NewEngine(c *catalog.Catalog) *Engine {
	return &Engine{catalog: c}
}

// Templates returns the archetypes in priority order.
func (e *Engine) Templates() []Template {
	return templates
}

// FocusTags returns the wizard's selectable focus values in menu order.
func (e *Engine) FocusTags() []FocusTag {
	return focusTags
}

// ScoreTags resolves the best-matching persona using multiset semantics:
// every occurrence of a tag counts, so duplicated tags weigh heavier.
// Ties resolve to the earliest declared template; an empty or unmatched
// tag list yields the first template.
func (e *Engine) ScoreTags(tags []string) Template {
	scores := make([]int, len(templates))
	for _, tag := range tags {
		for i, tpl := range templates {
			if tpl.hasTag(tag) {
				scores[i]++
			}
		}
	}

	best := 0
	for i, score := range scores {
		if score > scores[best] {
			best = i
		}
	}
	return templates[best]
}

// BuildRecommendations concatenates the profile focus values with the
// answer tags (duplicates preserved), resolves the persona and selects
// up to five catalog records that pass the profile gender filter and
// share at least one tag with the winning persona. Records keep catalog
// order.
func (e *Engine) BuildRecommendations(profile Profile, answerTags []string) Recommendation {
	tags := make([]string, 0, len(profile.FocusValues)+len(answerTags))
	tags = append(tags, profile.FocusValues...)
	tags = append(tags, answerTags...)

	persona := e.ScoreTags(tags)

	gender := profile.TargetGender
	if gender == "" {
		gender = catalog.FilterAll
	}

	var suggestions []catalog.Suggestion
	for _, record := range e.catalog.Records() {
		if len(suggestions) >= 5 {
			break
		}
		if !gender.Matches(record.Gender) {
			continue
		}
		matches := false
		for _, tag := range persona.Tags {
			if record.HasFocus(tag) {
				matches = true
				break
			}
		}
		if matches {
			suggestions = append(suggestions, catalog.SuggestionFrom(record))
		}
	}

	return Recommendation{
		PersonaCode:  persona.Code,
		PersonaLabel: persona.Label,
		Summary:      persona.Blurb,
		Suggestions:  suggestions,
	}
}
