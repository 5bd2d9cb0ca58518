package render

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/kk-code-lab/quickmove/internal/search"
	statepkg "github.com/kk-code-lab/quickmove/internal/state"
)

// formatPayloadSummary describes what is about to be moved, e.g.
// "Move 2 items: a.txt, b.txt".
func formatPayloadSummary(payload []string) string {
	switch len(payload) {
	case 0:
		return "Nothing to move"
	case 1:
		return "Move " + filepath.Base(payload[0])
	}
	names := make([]string, len(payload))
	for i, p := range payload {
		names[i] = filepath.Base(p)
	}
	return fmt.Sprintf("Move %d items: %s", len(payload), strings.Join(names, ", "))
}

// formatTargetStatus is the status line text for the current selection.
func formatTargetStatus(state *statepkg.AppState) string {
	c := state.SelectedCandidate()
	if c == nil {
		return "no matching folder"
	}
	if c.IsNew {
		return "→ " + c.TargetPath + " (will be created)"
	}
	return "→ " + c.TargetPath
}

func determineMaxScore(candidates []search.Candidate) float64 {
	maxScore := 0.0
	for _, c := range candidates {
		if !c.IsNew && c.Score > maxScore {
			maxScore = c.Score
		}
	}
	if maxScore <= 0 {
		return 1
	}
	return maxScore
}

func formatScoreText(score, maxScore float64) (string, float64) {
	if maxScore <= 0 {
		maxScore = 1
	}
	ratio := score / maxScore
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	percent := int(math.Round(ratio * 100))
	return fmt.Sprintf("%3d%%", percent), ratio
}
