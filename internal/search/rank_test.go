package search

import (
	"slices"
	"testing"
)

func TestSegmentBoostPrefersExactSegments(t *testing.T) {
	fm := NewFuzzyMatcher()
	query := "orion"

	exactPath := "workspace/apps/orion"
	exactScore, matchedExact, _ := fm.MatchDetailed(query, exactPath)
	if !matchedExact {
		t.Fatalf("expected %q to match %q", query, exactPath)
	}

	substringPath := "third_party/tooling/kits/freertos/docs/with-orion-reference"
	subScore, matchedSub, _ := fm.MatchDetailed(query, substringPath)
	if !matchedSub {
		t.Fatalf("expected %q to match %q", query, substringPath)
	}

	exactBoost := segmentBoost(query, exactPath)
	subBoost := segmentBoost(query, substringPath)

	if exactScore+exactBoost <= subScore+subBoost {
		t.Fatalf("expected exact segment (%.3f) to beat substring (%.3f)", exactScore+exactBoost, subScore+subBoost)
	}
}

func TestSegmentBoostRanks(t *testing.T) {
	tests := []struct {
		name  string
		query string
		path  string
		want  float64
	}{
		{"exact final", "rock", "music/rock", 2.55},
		{"exact inner", "music", "music/rock", 2.3},
		{"prefix final", "ro", "music/rock", 1.35},
		{"substring inner", "usi", "music/rock", 0.35},
		{"none", "mr", "music/rock", 0},
		{"empty query", "", "foo/bar", 0},
		{"query with separator", "music/rock", "music/rock", 0},
	}

	for _, tt := range tests {
		got := segmentBoost(tt.query, tt.path)
		if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("%s: segmentBoost(%q, %q) = %.3f, want %.3f", tt.name, tt.query, tt.path, got, tt.want)
		}
	}
}

func TestCompareCandidatesOrdering(t *testing.T) {
	cands := []Candidate{
		{RelPath: "new", IsNew: true},
		{RelPath: "b/longer", Score: 3},
		{RelPath: "zz", Score: 3},
		{RelPath: "aa", Score: 3},
		{RelPath: "top", Score: 9},
		{RelPath: "low", Score: 0.5},
	}
	slices.SortStableFunc(cands, compareCandidates)

	var got []string
	for _, c := range cands {
		got = append(got, c.RelPath)
	}
	want := []string{"top", "aa", "zz", "b/longer", "low", "new"}
	if !slices.Equal(got, want) {
		t.Fatalf("order = %q, want %q", got, want)
	}
}

func TestCompareCandidatesToleratesFloatNoise(t *testing.T) {
	a := Candidate{RelPath: "b", Score: 1.0}
	b := Candidate{RelPath: "a", Score: 1.0 + 1e-12}
	if compareCandidates(a, b) <= 0 {
		t.Fatalf("near-equal scores should fall through to path order")
	}
}

func TestCompareAlphabetical(t *testing.T) {
	cands := []Candidate{
		{RelPath: "b"},
		{RelPath: "a/z"},
		{RelPath: "A"},
		{RelPath: "a"},
		{RelPath: "a b"},
	}
	slices.SortStableFunc(cands, compareAlphabetical)

	var got []string
	for _, c := range cands {
		got = append(got, c.RelPath)
	}
	want := []string{"A", "a", "a/z", "a b", "b"}
	if !slices.Equal(got, want) {
		t.Fatalf("order = %q, want %q", got, want)
	}
}
