package search

import (
	"strings"
	"unicode/utf8"
)

const scoreEpsilon = 1e-9

const (
	segmentRankExact = iota
	segmentRankPrefix
	segmentRankSubstring
	segmentRankNone
)

// segmentBoost rewards queries that spell out a whole path segment, or the
// start of one, beyond what the character-level scorer sees. Deeper segments
// get a little more because the final folder is usually the one meant.
// foldedQuery and foldedPath must already be folded.
func segmentBoost(foldedQuery, foldedPath string) float64 {
	if foldedQuery == "" || foldedPath == "" || strings.Contains(foldedQuery, "/") {
		return 0
	}

	segments := strings.Split(foldedPath, "/")
	bestRank := segmentRankNone
	bestDepth := -1
	for idx, seg := range segments {
		var rank int
		switch {
		case seg == foldedQuery:
			rank = segmentRankExact
		case strings.HasPrefix(seg, foldedQuery):
			rank = segmentRankPrefix
		case strings.Contains(seg, foldedQuery):
			rank = segmentRankSubstring
		default:
			continue
		}
		if rank < bestRank || (rank == bestRank && idx > bestDepth) {
			bestRank = rank
			bestDepth = idx
		}
	}

	var boost float64
	switch bestRank {
	case segmentRankExact:
		boost = 2.3
	case segmentRankPrefix:
		boost = 1.1
	case segmentRankSubstring:
		boost = 0.35
	default:
		return 0
	}
	if bestDepth == len(segments)-1 {
		boost += 0.25
	}
	return boost
}

// compareCandidates orders by score descending, then shorter relative path,
// then lexicographic relative path. Synthetic candidates always sort last.
func compareCandidates(a, b Candidate) int {
	if a.IsNew != b.IsNew {
		if a.IsNew {
			return 1
		}
		return -1
	}
	if diff := a.Score - b.Score; diff > scoreEpsilon {
		return -1
	} else if diff < -scoreEpsilon {
		return 1
	}
	la, lb := utf8.RuneCountInString(a.RelPath), utf8.RuneCountInString(b.RelPath)
	if la != lb {
		return la - lb
	}
	return strings.Compare(a.RelPath, b.RelPath)
}

// compareAlphabetical orders relative paths folder by folder, case-insensitively,
// so a parent is immediately followed by its children.
func compareAlphabetical(a, b Candidate) int {
	as, bs := strings.Split(a.RelPath, "/"), strings.Split(b.RelPath, "/")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if c := strings.Compare(strings.ToLower(as[i]), strings.ToLower(bs[i])); c != 0 {
			return c
		}
		if c := strings.Compare(as[i], bs[i]); c != 0 {
			return c
		}
	}
	return len(as) - len(bs)
}
