package state

import (
	fsutil "github.com/kk-code-lab/quickmove/internal/fs"
	"github.com/kk-code-lab/quickmove/internal/search"
)

// Screen rows not available to the candidate list: payload header, query
// line and status line.
const chromeRows = 3

// AppState is the picker's whole state. The reducer mutates it in place.
type AppState struct {
	// Destination tree, scanned once per session
	Root    string
	Folders []fsutil.FolderEntry

	// Files to move
	Payload []string
	DryRun  bool

	// Query line
	Query     string
	CursorPos int // in runes

	// Ranked suggestions for Query
	Candidates    []search.Candidate
	SelectedIndex int // -1 when there are no candidates
	ScrollOffset  int

	// Dimensions
	ScreenWidth  int
	ScreenHeight int

	// Error state
	LastError error

	// Outcome
	Accepted *search.Candidate
	Quit     bool
}

// Done reports whether the picker should stop.
func (s *AppState) Done() bool {
	return s.Quit || s.Accepted != nil
}

// SelectedCandidate returns the highlighted candidate, or nil.
func (s *AppState) SelectedCandidate() *search.Candidate {
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(s.Candidates) {
		return nil
	}
	return &s.Candidates[s.SelectedIndex]
}

// VisibleLines is the number of candidate rows that fit on screen.
func (s *AppState) VisibleLines() int {
	lines := s.ScreenHeight - chromeRows
	if lines < 1 {
		return 1
	}
	return lines
}

func (s *AppState) clampSelection() {
	if len(s.Candidates) == 0 {
		s.SelectedIndex = -1
		s.ScrollOffset = 0
		return
	}
	if s.SelectedIndex < 0 {
		s.SelectedIndex = 0
	}
	if s.SelectedIndex >= len(s.Candidates) {
		s.SelectedIndex = len(s.Candidates) - 1
	}
	s.updateScrollVisibility()
}

func (s *AppState) updateScrollVisibility() {
	if s.SelectedIndex < 0 {
		s.ScrollOffset = 0
		return
	}
	visibleLines := s.VisibleLines()

	if s.SelectedIndex < s.ScrollOffset {
		s.ScrollOffset = s.SelectedIndex
	} else if s.SelectedIndex >= s.ScrollOffset+visibleLines {
		s.ScrollOffset = s.SelectedIndex - visibleLines + 1
	}

	maxOffset := len(s.Candidates) - visibleLines
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
	if s.ScrollOffset > maxOffset {
		s.ScrollOffset = maxOffset
	}
}
