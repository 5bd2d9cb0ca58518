package render

import (
	"strings"

	statepkg "github.com/kk-code-lab/quickmove/internal/state"
)

// buildFooterHelpText returns the key hint string with leading/trailing padding.
func buildFooterHelpText(state *statepkg.AppState) string {
	parts := buildFooterHelpSegments(state)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

// buildFooterHelpSegments assembles help hints for the current query state.
func buildFooterHelpSegments(state *statepkg.AppState) []string {
	if state == nil {
		return nil
	}

	segments := []string{"↵: move here"}
	if state.SelectedCandidate() != nil {
		segments = append(segments, "Tab: complete")
	}
	segments = append(segments, "↑↓: select", "PgUp/PgDn: page")
	if state.Query != "" {
		segments = append(segments, "Esc: clear")
	} else {
		segments = append(segments, "Esc: cancel")
	}
	return segments
}
