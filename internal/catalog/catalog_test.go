package catalog

import "testing"

func TestFindBySlugOrName(t *testing.T) {
	c := New()

	if r := c.FindBySlugOrName("zuhra"); r == nil || r.Name != "Zuhra" {
		t.Fatalf("expected Zuhra by slug, got %+v", r)
	}
	if r := c.FindBySlugOrName("  LAYLO "); r == nil || r.Slug != "laylo" {
		t.Fatalf("expected laylo for mixed-case padded name, got %+v", r)
	}
	if r := c.FindBySlugOrName("nonexistent"); r != nil {
		t.Fatalf("expected nil for unknown key, got %+v", r)
	}
	if r := c.FindBySlugOrName("   "); r != nil {
		t.Fatalf("expected nil for blank key, got %+v", r)
	}
}

func TestSearch(t *testing.T) {
	c := New()

	all := c.Search("", 3)
	if len(all) != 3 {
		t.Fatalf("empty query should truncate to limit, got %d", len(all))
	}

	byOrigin := c.Search("forscha", 12)
	if len(byOrigin) != 2 {
		t.Fatalf("expected 2 Persian-origin records, got %d", len(byOrigin))
	}

	byFocus := c.Search("jasorat", 12)
	for _, r := range byFocus {
		if !r.HasFocus("jasorat") {
			t.Fatalf("record %s does not carry queried focus value", r.Slug)
		}
	}
	if len(byFocus) != 2 {
		t.Fatalf("expected amir and javlon, got %d records", len(byFocus))
	}
}

func TestNamesForCombo(t *testing.T) {
	c := New()

	got := c.NamesForCombo("spiritual_heritage", FilterAll)
	want := map[string]bool{"muslima": true, "islom": true}
	if len(got) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(got))
	}
	for _, s := range got {
		if !want[s.Slug] {
			t.Fatalf("unexpected slug %q in combo result", s.Slug)
		}
	}

	girls := c.NamesForCombo("spiritual_heritage", FilterGirl)
	if len(girls) != 1 || girls[0].Slug != "muslima" {
		t.Fatalf("gender filter failed: %+v", girls)
	}

	if got := c.NamesForCombo("nature_spiritual", FilterAll); len(got) != 0 {
		t.Fatalf("expected empty combo result, got %d", len(got))
	}
}

func TestSimilarNames(t *testing.T) {
	c := New()

	similar := c.SimilarNames("zuhra", 10)
	if len(similar) == 0 {
		t.Fatal("expected similar names for zuhra")
	}
	for _, s := range similar {
		if s.Slug == "zuhra" {
			t.Fatal("similar names must exclude the record itself")
		}
	}

	if got := c.SimilarNames("unknown", 4); got != nil {
		t.Fatalf("expected nil for unknown name, got %+v", got)
	}

	if got := c.SimilarNames("zuhra", 2); len(got) != 2 {
		t.Fatalf("limit not applied: got %d", len(got))
	}
}

func TestTrendingScoresAndOrder(t *testing.T) {
	c := New()

	monthly := c.Trending(PeriodMonthly, FilterAll)
	if len(monthly) != 6 {
		t.Fatalf("expected 6 trend rows, got %d", len(monthly))
	}
	for i := 1; i < len(monthly); i++ {
		if monthly[i-1].Score < monthly[i].Score {
			t.Fatalf("trend rows not sorted descending at %d", i)
		}
	}
	if monthly[0].Name != "Bilol" {
		t.Fatalf("expected Bilol to top the monthly list, got %s", monthly[0].Name)
	}

	yearly := c.Trending(PeriodYearly, FilterGirl)
	for _, item := range yearly {
		if item.Gender != GenderGirl {
			t.Fatalf("gender filter leaked %s", item.Name)
		}
	}
	if yearly[0].Name != "Laylo" || yearly[0].Score != 96 {
		t.Fatalf("expected Laylo/96 first in yearly girls, got %s/%d", yearly[0].Name, yearly[0].Score)
	}
}

func TestTranslationsAndAudio(t *testing.T) {
	c := New()

	tr := c.Translations("amir")
	if len(tr) != 3 || tr[0].Language != "Ruscha" {
		t.Fatalf("unexpected translations: %+v", tr)
	}
	if c.Translations("unknown") != nil {
		t.Fatal("expected nil translations for unknown name")
	}

	if c.AudioURL("bilol") == "" {
		t.Fatal("expected audio URL for bilol")
	}
	if c.AudioURL("unknown") != "" {
		t.Fatal("expected empty audio URL for unknown name")
	}
}

func TestCombosAndDescriptorsOrdered(t *testing.T) {
	c := New()

	combos := c.Combos()
	if len(combos) != 4 || combos[0].Key != "symbolic_leadership" {
		t.Fatalf("unexpected combos: %+v", combos)
	}
	descriptors := c.Descriptors()
	if len(descriptors) != 6 || descriptors[0].Key != "symbolic" {
		t.Fatalf("unexpected descriptors: %+v", descriptors)
	}
}
