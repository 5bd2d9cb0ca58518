package search

import "slices"

// MergeMatchSpans sorts spans and merges the ones that overlap or touch, so
// a renderer can highlight each run of matched runes with a single style
// change.
func MergeMatchSpans(spans []MatchSpan) []MatchSpan {
	if len(spans) == 0 {
		return nil
	}
	sorted := slices.Clone(spans)
	slices.SortFunc(sorted, func(a, b MatchSpan) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		return a.End - b.End
	})

	merged := make([]MatchSpan, 0, len(sorted))
	current := sorted[0]
	for _, next := range sorted[1:] {
		if next.Start <= current.End+1 {
			if next.End > current.End {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	return append(merged, current)
}

// SpanContains reports whether rune index idx falls inside one of spans.
// spans must be sorted and non-overlapping.
func SpanContains(spans []MatchSpan, idx int) bool {
	_, found := slices.BinarySearchFunc(spans, idx, func(s MatchSpan, target int) int {
		switch {
		case s.End < target:
			return -1
		case s.Start > target:
			return 1
		default:
			return 0
		}
	})
	return found
}
