package search

import "fmt"

// Candidate is one suggested destination: an existing folder, or a proposal
// to create one when IsNew is set.
type Candidate struct {
	// Label is the slash separated path relative to the root, as shown to the user.
	Label string
	// RelPath equals Label; it is kept separate so ranking code reads clearly.
	RelPath string
	// TargetPath is the absolute destination on disk. It is always inside the root.
	TargetPath string
	Score      float64
	IsNew      bool
	// Spans are merged rune ranges of Label that the query matched.
	Spans []MatchSpan
}

func (c Candidate) String() string {
	if c.IsNew {
		return fmt.Sprintf("%s (new)", c.Label)
	}
	return c.Label
}
