// Package catalog holds the immutable in-memory library of curated names
// together with category, trend and community poll content. A Catalog is
// built once at bootstrap and injected into every consumer.
package catalog

import (
	"sort"
	"strings"
)

// Gender classifies a name record.
type Gender string

const (
	GenderBoy    Gender = "boy"
	GenderGirl   Gender = "girl"
	GenderUnisex Gender = "unisex"
)

// FilterGender narrows browse results; FilterAll disables the filter.
type FilterGender string

const (
	FilterBoy  FilterGender = "boy"
	FilterGirl FilterGender = "girl"
	FilterAll  FilterGender = "all"
)

// Matches reports whether a record gender passes the filter.
func (f FilterGender) Matches(g Gender) bool {
	if f == FilterAll || f == "" {
		return true
	}
	return Gender(f) == g
}

// ParseFilterGender maps a callback argument to a filter, defaulting to all.
func ParseFilterGender(raw string) FilterGender {
	switch FilterGender(raw) {
	case FilterBoy, FilterGirl:
		return FilterGender(raw)
	default:
		return FilterAll
	}
}

// Period selects which trend index column is used for scoring.
type Period string

const (
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// ParsePeriod maps a callback argument to a period, defaulting to monthly.
func ParsePeriod(raw string) Period {
	if Period(raw) == PeriodYearly {
		return PeriodYearly
	}
	return PeriodMonthly
}

// Movement describes the direction of a trend entry.
type Movement string

const (
	MovementUp     Movement = "up"
	MovementDown   Movement = "down"
	MovementSteady Movement = "steady"
)

// Translation is a single foreign rendering of a name.
type Translation struct {
	Language string
	Value    string
}

// TrendIndex carries popularity scores per aggregation window.
type TrendIndex struct {
	Monthly int
	Yearly  int
}

// NameRecord is one curated catalog entry.
type NameRecord struct {
	Slug         string
	Name         string
	Gender       Gender
	Origin       string
	Meaning      string
	Categories   []string
	FocusValues  []string
	Storytelling string
	Translations []Translation
	Regions      []string
	TrendIndex   TrendIndex
	AudioURL     string
	Related      []string
}

// HasFocus reports whether the record carries the given focus value.
func (r NameRecord) HasFocus(tag string) bool {
	for _, v := range r.FocusValues {
		if v == tag {
			return true
		}
	}
	return false
}

func (r NameRecord) hasCategory(category string) bool {
	for _, c := range r.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Suggestion is the compact projection handed to renderers and the
// persona engine.
type Suggestion struct {
	Name        string
	Gender      Gender
	Slug        string
	Origin      string
	Meaning     string
	FocusValues []string
	TrendIndex  int
}

// SuggestionFrom projects a record using the monthly trend index.
func SuggestionFrom(r NameRecord) Suggestion {
	return Suggestion{
		Name:        r.Name,
		Gender:      r.Gender,
		Slug:        r.Slug,
		Origin:      r.Origin,
		Meaning:     r.Meaning,
		FocusValues: r.FocusValues,
		TrendIndex:  r.TrendIndex.Monthly,
	}
}

// TrendInsight is one row of the trend overview.
type TrendInsight struct {
	Name     string
	Movement Movement
	Score    int
	Region   string
	Gender   Gender
}

// ComboOption is a category combination offered as a filter button.
type ComboOption struct {
	Key   string
	Label string
}

// Descriptor explains one category in the filter menu.
type Descriptor struct {
	Key         string
	Label       string
	Description string
}

// Poll is a community poll ready to be sent as-is.
type Poll struct {
	Question string
	Options  []string
}

// Catalog is the read-only name library. Safe for concurrent use.
type Catalog struct {
	records     []NameRecord
	combos      []ComboOption
	descriptors []Descriptor
	trends      []TrendInsight
	polls       []Poll
}

// New builds the default catalog from the embedded library.
func New() *Catalog {
	return &Catalog{
		records:     nameLibrary,
		combos:      categoryCombos,
		descriptors: categoryDescriptors,
		trends:      trendMovements,
		polls:       communityPolls,
	}
}

// Records returns the full library in declaration order.
func (c *Catalog) Records() []NameRecord {
	return c.records
}

// FindBySlugOrName resolves a record by slug or display name,
// case-insensitively. Returns nil when the key is unknown.
func (c *Catalog) FindBySlugOrName(key string) *NameRecord {
	normalized := strings.ToLower(strings.TrimSpace(key))
	if normalized == "" {
		return nil
	}
	for i := range c.records {
		r := &c.records[i]
		if r.Slug == normalized || strings.ToLower(r.Name) == normalized {
			return r
		}
	}
	return nil
}

// Search matches records by name, origin, focus value or category
// substring. An empty query returns the head of the library.
func (c *Catalog) Search(query string, limit int) []NameRecord {
	if limit <= 0 {
		limit = 12
	}
	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		if len(c.records) <= limit {
			return c.records
		}
		return c.records[:limit]
	}

	var out []NameRecord
	for _, r := range c.records {
		if len(out) >= limit {
			break
		}
		if matchesQuery(r, normalized) {
			out = append(out, r)
		}
	}
	return out
}

func matchesQuery(r NameRecord, normalized string) bool {
	if strings.Contains(strings.ToLower(r.Name), normalized) {
		return true
	}
	if strings.Contains(strings.ToLower(r.Origin), normalized) {
		return true
	}
	for _, v := range r.FocusValues {
		if strings.Contains(v, normalized) {
			return true
		}
	}
	for _, cat := range r.Categories {
		if strings.Contains(cat, normalized) {
			return true
		}
	}
	return false
}

// SimilarNames lists records sharing at least one focus value with the
// given name, excluding the record itself.
func (c *Catalog) SimilarNames(key string, limit int) []Suggestion {
	record := c.FindBySlugOrName(key)
	if record == nil {
		return nil
	}
	if limit <= 0 {
		limit = 4
	}

	var out []Suggestion
	for _, candidate := range c.records {
		if len(out) >= limit {
			break
		}
		if candidate.Slug == record.Slug {
			continue
		}
		for _, v := range candidate.FocusValues {
			if record.HasFocus(v) {
				out = append(out, SuggestionFrom(candidate))
				break
			}
		}
	}
	return out
}

// Translations returns the ordered translations of a name, nil when the
// name is unknown.
func (c *Catalog) Translations(key string) []Translation {
	record := c.FindBySlugOrName(key)
	if record == nil {
		return nil
	}
	return record.Translations
}

// AudioURL returns the pronunciation sample URL, empty when absent.
func (c *Catalog) AudioURL(key string) string {
	record := c.FindBySlugOrName(key)
	if record == nil {
		return ""
	}
	return record.AudioURL
}

// NamesForCombo returns records carrying every category of the combo key
// (split on "_") and passing the gender filter, in library order.
func (c *Catalog) NamesForCombo(comboKey string, gender FilterGender) []Suggestion {
	categories := strings.Split(comboKey, "_")

	var out []Suggestion
	for _, r := range c.records {
		if !gender.Matches(r.Gender) {
			continue
		}
		all := true
		for _, category := range categories {
			if !r.hasCategory(category) {
				all = false
				break
			}
		}
		if all {
			out = append(out, SuggestionFrom(r))
		}
	}
	return out
}

// Trending re-scores the static movement list from the requested period
// index and sorts descending by score. The sort is stable so entries with
// equal scores keep their declaration order.
func (c *Catalog) Trending(period Period, gender FilterGender) []TrendInsight {
	var out []TrendInsight
	for _, item := range c.trends {
		if !gender.Matches(item.Gender) {
			continue
		}
		scored := item
		if record := c.FindBySlugOrName(item.Name); record != nil {
			if period == PeriodYearly {
				scored.Score = record.TrendIndex.Yearly
			} else {
				scored.Score = record.TrendIndex.Monthly
			}
		}
		out = append(out, scored)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// Combos returns the category combination buttons in menu order.
func (c *Catalog) Combos() []ComboOption {
	return c.combos
}

// Descriptors returns the category blurbs in menu order.
func (c *Catalog) Descriptors() []Descriptor {
	return c.descriptors
}

// Polls returns the community poll pool.
func (c *Catalog) Polls() []Poll {
	return c.polls
}
