package filter

import (
	"math/rand"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/mmcdole/tiffin/internal/domain"
)

func scenario() domain.Collection {
	return domain.Collection{
		{ID: "1", Name: "Spice Hut", AvgRating: domain.Float(4.8)},
		{ID: "2", Name: "Cafe Z", AvgRating: domain.Float(4.2)},
		{ID: "3", Name: "Spice Room", AvgRating: domain.Float(3.9)},
	}
}

func ids(c domain.Collection) string { return strings.Join(c.IDs(), ",") }

var names = []string{"Spice Hut", "Cafe Z", "SPICE room", "", "Dosa Plaza", "Hotel Aryaas", "Paragon", "Kayees Biryani"}

// randomCollection builds a reproducible collection with a mix of rated,
// unrated and unnamed records.
func randomCollection(rng *rand.Rand) domain.Collection {
	n := rng.Intn(20)
	c := make(domain.Collection, n)
	for i := range c {
		c[i] = domain.Restaurant{
			ID:   strconv.Itoa(i),
			Name: names[rng.Intn(len(names))],
		}
		if rng.Intn(4) != 0 {
			c[i].AvgRating = domain.Float(float64(rng.Intn(51)) / 10)
		}
	}
	return c
}

// isSubsequence reports whether sub appears in c in the same relative order
func isSubsequence(sub, c domain.Collection) bool {
	j := 0
	for i := 0; i < len(c) && j < len(sub); i++ {
		if c[i].ID == sub[j].ID {
			j++
		}
	}
	return j == len(sub)
}

func TestTopRated_Scenario(t *testing.T) {
	got := TopRated(scenario(), DefaultTopRatedThreshold)
	if ids(got) != "1" {
		t.Errorf("Expected only restaurant 1, got %s", ids(got))
	}
}

func TestTopRated_StrictlyGreater(t *testing.T) {
	c := domain.Collection{
		{ID: "equal", AvgRating: domain.Float(4.5)},
		{ID: "above", AvgRating: domain.Float(4.6)},
		{ID: "unrated"},
	}
	if got := ids(TopRated(c, 4.5)); got != "above" {
		t.Errorf("Expected only 'above', got %s", got)
	}
}

func TestTopRated_UnratedNeverQualifies(t *testing.T) {
	c := domain.Collection{{ID: "unrated"}}
	if got := TopRated(c, -1); len(got) != 0 {
		t.Errorf("Expected unrated record to be excluded even at threshold -1, got %s", ids(got))
	}
}

func TestTopRated_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		c := randomCollection(rng)
		threshold := float64(rng.Intn(51)) / 10

		got := TopRated(c, threshold)

		for _, r := range got {
			if v, ok := r.Rating(); !ok || v <= threshold {
				t.Fatalf("Record %s with rating %v passed threshold %v", r.ID, r.AvgRating, threshold)
			}
		}
		if !isSubsequence(got, c) {
			t.Fatalf("Result %s is not an ordered subsequence of %s", ids(got), ids(c))
		}
	}
}

func TestByName_Scenario(t *testing.T) {
	got := ByName(scenario(), "spice")
	if ids(got) != "1,3" {
		t.Errorf("Expected 1,3, got %s", ids(got))
	}
}

func TestByName_CaseInsensitive(t *testing.T) {
	got := ByName(scenario(), "SpIcE rOoM")
	if ids(got) != "3" {
		t.Errorf("Expected 3, got %s", ids(got))
	}
}

func TestByName_NoTrimming(t *testing.T) {
	if got := ByName(scenario(), " spice"); len(got) != 0 {
		t.Errorf("Expected leading space to be significant, got %s", ids(got))
	}
	if got := ByName(scenario(), "spice "); ids(got) != "1,3" {
		t.Errorf("Expected 'spice ' to match both, got %s", ids(got))
	}
}

func TestByName_EmptyQueryKeepsEverything(t *testing.T) {
	c := append(scenario(), domain.Restaurant{ID: "4"})
	got := ByName(c, "")
	if !reflect.DeepEqual(got, c) {
		t.Errorf("Expected identical content and order, got %s", ids(got))
	}
}

func TestByName_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	queries := []string{"", "spice", "SPICE", "a", "room", "hut", "zzz", "o"}
	for i := 0; i < 200; i++ {
		c := randomCollection(rng)
		q := queries[rng.Intn(len(queries))]

		got := ByName(c, q)

		for _, r := range got {
			if !strings.Contains(strings.ToLower(r.Name), strings.ToLower(q)) {
				t.Fatalf("Record %q does not contain %q", r.Name, q)
			}
		}
		if !isSubsequence(got, c) {
			t.Fatalf("Result %s is not an ordered subsequence of %s", ids(got), ids(c))
		}
		if again := ByName(got, q); !reflect.DeepEqual(again, got) {
			t.Fatalf("Expected idempotence for %q: %s vs %s", q, ids(got), ids(again))
		}
	}
}

func TestFilters_DoNotMutateAndAlwaysAllocate(t *testing.T) {
	c := scenario()
	before := c.Clone()

	all := ByName(c, "")
	all[0].Name = "changed"
	TopRated(c, 0)
	FuzzyByName(c, "")

	if !reflect.DeepEqual(c, before) {
		t.Error("Expected input collection to be unchanged")
	}

	var empty domain.Collection
	if got := ByName(empty, "x"); got == nil {
		t.Error("Expected a non-nil result for nil input")
	}
}

func TestFuzzyByName(t *testing.T) {
	got := FuzzyByName(scenario(), "sprm")
	if ids(got) != "3" {
		t.Errorf("Expected 3, got %s", ids(got))
	}
	if got := FuzzyByName(scenario(), ""); ids(got) != "1,2,3" {
		t.Errorf("Expected empty query to keep all, got %s", ids(got))
	}
}

func TestMatcherFor(t *testing.T) {
	c := scenario()
	if got := MatcherFor("fuzzy")(c, "sph"); ids(got) != "1" {
		t.Errorf("Expected fuzzy matcher to find 1, got %s", ids(got))
	}
	if got := MatcherFor("substring")(c, "sph"); len(got) != 0 {
		t.Errorf("Expected substring matcher to find nothing, got %s", ids(got))
	}
	if got := MatcherFor("unknown")(c, "cafe"); ids(got) != "2" {
		t.Errorf("Expected fallback to substring, got %s", ids(got))
	}
}

func TestMatchedIndexes(t *testing.T) {
	if got := MatchedIndexes("Spice Hut", "HUT"); !reflect.DeepEqual(got, []int{6, 7, 8}) {
		t.Errorf("Expected [6 7 8], got %v", got)
	}
	if got := MatchedIndexes("Spice Hut", ""); got != nil {
		t.Errorf("Expected nil for empty query, got %v", got)
	}
	if got := MatchedIndexes("Cafe Z", "xyz"); got != nil {
		t.Errorf("Expected nil for no match, got %v", got)
	}
	if got := MatchedIndexes("Spice Hut", "sh"); len(got) != 2 {
		t.Errorf("Expected two fuzzy positions, got %v", got)
	}
}
