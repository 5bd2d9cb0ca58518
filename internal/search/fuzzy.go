package search

import (
	"math"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// MatchSpan represents the inclusive [Start, End] range of a match in rune indexes.
type MatchSpan struct {
	Start int
	End   int
}

// MatchDetails exposes metadata about a fuzzy match. Start/End are rune
// indexes into the target text.
type MatchDetails struct {
	Start        int
	End          int
	TargetLength int
	MatchCount   int
	WordHits     int
	Spans        []MatchSpan
}

// FuzzyMatcher scores a query against a slash separated folder path.
//
// Matching is case-insensitive and requires every query rune to appear in
// order. The best alignment is chosen by dynamic programming, then path
// level bonuses are added:
//
//   - every matched rune:                +charBonus
//   - rune right after the previous one: +consecutiveBonus
//   - rune on a word boundary:           +wordBoundaryBonus
//   - each skipped rune between matches: -gapPenalty
//   - a rune at the start of the final segment: +finalStartBonus
//   - the whole match inside the final segment: +finalSegmentBonus
//   - query equals the final segment:    +segmentExactBonus
//   - query equals the whole path:       +exactBonus
//
// A matched path never scores below minScore, so any subsequence match is a
// positive score and any non-match is exactly zero.
type FuzzyMatcher struct {
	minScore          float64
	charBonus         float64
	consecutiveBonus  float64
	wordBoundaryBonus float64
	gapPenalty        float64
	finalStartBonus   float64
	finalSegmentBonus float64
	segmentExactBonus float64
	exactBonus        float64
}

// NewFuzzyMatcher creates a matcher with the default weights.
func NewFuzzyMatcher() *FuzzyMatcher {
	return &FuzzyMatcher{
		minScore:          0.001,
		charBonus:         1.0,
		consecutiveBonus:  1.5,
		wordBoundaryBonus: 0.8,
		gapPenalty:        0.1,
		finalStartBonus:   2.0,
		finalSegmentBonus: 1.0,
		segmentExactBonus: 3.0,
		exactBonus:        10.0,
	}
}

// foldRunes NFC-normalises s and lowercases it rune by rune, so indexes stay
// aligned with []rune(norm.NFC.String(s)).
func foldRunes(s string) []rune {
	runes := []rune(norm.NFC.String(s))
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}

// Match calculates the match score between pattern and text.
// Returns 0 and false when some pattern rune cannot be matched in order.
func (fm *FuzzyMatcher) Match(pattern, text string) (score float64, matched bool) {
	score, matched, _ = fm.MatchDetailed(pattern, text)
	return score, matched
}

// MatchDetailed returns the score together with the positions the match used.
func (fm *FuzzyMatcher) MatchDetailed(pattern, text string) (float64, bool, MatchDetails) {
	return fm.MatchRunes(foldRunes(pattern), foldRunes(text))
}

// MatchRunes scores already folded runes. Callers ranking many paths against
// one query fold the query once and reuse it.
func (fm *FuzzyMatcher) MatchRunes(pattern, text []rune) (float64, bool, MatchDetails) {
	if len(pattern) == 0 {
		return 1.0, true, MatchDetails{Start: 0, End: -1, TargetLength: len(text)}
	}

	positions, dpScore, ok := fm.align(pattern, text)
	if !ok {
		return 0, false, MatchDetails{Start: -1, End: -1, TargetLength: len(text)}
	}

	lastSlash := -1
	for i, r := range text {
		if r == '/' {
			lastSlash = i
		}
	}
	finalStart := lastSlash + 1

	score := dpScore
	wordHits := 0
	for _, idx := range positions {
		if isStrongWordBoundaryRune(text, idx) {
			wordHits++
		}
		if idx == finalStart {
			score += fm.finalStartBonus
		}
	}
	if positions[0] >= finalStart {
		score += fm.finalSegmentBonus
	}
	if len(pattern) == len(text)-finalStart && runesEqual(pattern, text[finalStart:]) {
		score += fm.segmentExactBonus
	}
	if runesEqual(pattern, text) {
		score += fm.exactBonus
	}
	if score < fm.minScore {
		score = fm.minScore
	}

	return score, true, MatchDetails{
		Start:        positions[0],
		End:          positions[len(positions)-1],
		TargetLength: len(text),
		MatchCount:   len(positions),
		WordHits:     wordHits,
		Spans:        spansFromPositions(positions),
	}
}

// align finds the highest scoring placement of pattern inside text.
func (fm *FuzzyMatcher) align(pattern, text []rune) ([]int, float64, bool) {
	m, n := len(pattern), len(text)
	if n == 0 || m > n || !isSubsequence(pattern, text) {
		return nil, 0, false
	}

	negInf := math.Inf(-1)
	prev := make([]float64, n)
	curr := make([]float64, n)
	back := make([]int, m*n)

	for j := 0; j < n; j++ {
		prev[j] = negInf
		if pattern[0] != text[j] {
			continue
		}
		prev[j] = fm.charScore(text, j) - fm.gapPenalty*0.1*float64(j)
	}

	for i := 1; i < m; i++ {
		// bestGap carries the best prev[k] for k < j-1, already charged for
		// the runes skipped up to j.
		bestGap, bestGapIdx := negInf, -1
		for j := 0; j < n; j++ {
			curr[j] = negInf
			if bestGapIdx != -1 {
				bestGap -= fm.gapPenalty
			}
			if j >= 2 && prev[j-2] > negInf && prev[j-2]-fm.gapPenalty > bestGap {
				bestGap = prev[j-2] - fm.gapPenalty
				bestGapIdx = j - 2
			}
			if pattern[i] != text[j] {
				continue
			}

			best, from := negInf, -1
			if j >= 1 && prev[j-1] > negInf {
				best, from = prev[j-1]+fm.consecutiveBonus, j-1
			}
			if bestGapIdx != -1 && bestGap > best {
				best, from = bestGap, bestGapIdx
			}
			if from == -1 {
				continue
			}
			curr[j] = best + fm.charScore(text, j)
			back[i*n+j] = from
		}
		prev, curr = curr, prev
	}

	end, best := -1, negInf
	for j, v := range prev {
		if v > best {
			best, end = v, j
		}
	}
	if end == -1 {
		return nil, 0, false
	}

	positions := make([]int, m)
	k := end
	for i := m - 1; i >= 0; i-- {
		positions[i] = k
		if i > 0 {
			k = back[i*n+k]
		}
	}
	return positions, best, true
}

func (fm *FuzzyMatcher) charScore(text []rune, idx int) float64 {
	score := fm.charBonus
	if isWordBoundaryRune(text, idx) {
		score += fm.wordBoundaryBonus
	}
	return score
}

func isSubsequence(pattern, text []rune) bool {
	i := 0
	for _, r := range text {
		if i < len(pattern) && pattern[i] == r {
			i++
		}
	}
	return i == len(pattern)
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func spansFromPositions(positions []int) []MatchSpan {
	spans := make([]MatchSpan, 0, len(positions))
	for _, p := range positions {
		if n := len(spans); n > 0 && spans[n-1].End+1 == p {
			spans[n-1].End = p
			continue
		}
		spans = append(spans, MatchSpan{Start: p, End: p})
	}
	return spans
}

func isWordBoundaryRune(text []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	prev := text[idx-1]
	curr := text[idx]
	switch prev {
	case '/', '\\', '-', '_', ' ', '.', ':':
		return true
	}
	if !unicode.IsLetter(prev) && unicode.IsLetter(curr) {
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(curr)
}

func isStrongWordBoundaryRune(text []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	switch text[idx-1] {
	case '/', '\\', ' ', '-':
		return true
	}
	return false
}
