package state

// ===== REDUCER TESTS =====
//
// Tests are split by concern:
// - reducer_query_test.go: query editing, cursor movement, completion
// - reducer_navigation_test.go: NavigateDown, NavigateUp, paging and scroll
// - reducer_test.go: shared fixtures, accept/quit and the real matcher

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	fsutil "github.com/kk-code-lab/quickmove/internal/fs"
	"github.com/kk-code-lab/quickmove/internal/search"
)

// fakeRanker returns every folder whose path contains the query, in input
// order, and records the queries it saw.
type fakeRanker struct {
	queries []string
}

func (f *fakeRanker) Rank(root string, folders []fsutil.FolderEntry, query string) []search.Candidate {
	f.queries = append(f.queries, query)
	var out []search.Candidate
	for _, folder := range folders {
		if strings.Contains(strings.ToLower(folder.RelPath), strings.ToLower(query)) {
			out = append(out, search.Candidate{
				Label:      folder.RelPath,
				RelPath:    folder.RelPath,
				TargetPath: folder.AbsPath,
				Score:      1,
			})
		}
	}
	return out
}

func folderEntries(rels ...string) []fsutil.FolderEntry {
	out := make([]fsutil.FolderEntry, len(rels))
	for i, rel := range rels {
		out[i] = fsutil.FolderEntry{
			AbsPath: "/root/" + rel,
			RelPath: rel,
			Name:    rel[strings.LastIndex(rel, "/")+1:],
		}
	}
	return out
}

func newTestState(t *testing.T, rels ...string) (*StateReducer, *AppState, *fakeRanker) {
	t.Helper()
	ranker := &fakeRanker{}
	reducer := NewStateReducer(ranker)
	state := reducer.NewAppState("/root", folderEntries(rels...), []string{"/tmp/a.txt"})
	state.ScreenWidth = 80
	state.ScreenHeight = 24
	return reducer, state, ranker
}

func reduce(t *testing.T, reducer *StateReducer, state *AppState, actions ...Action) {
	t.Helper()
	for _, action := range actions {
		if _, err := reducer.Reduce(state, action); err != nil {
			t.Fatalf("Reduce(%T): %v", action, err)
		}
	}
}

func TestNewAppStateRanksEmptyQuery(t *testing.T) {
	_, state, ranker := newTestState(t, "Music", "Documents")

	if len(ranker.queries) != 1 || ranker.queries[0] != "" {
		t.Fatalf("expected one ranking of the empty query, got %q", ranker.queries)
	}
	if len(state.Candidates) != 2 || state.SelectedIndex != 0 {
		t.Fatalf("expected two candidates with the first selected, got %d sel=%d", len(state.Candidates), state.SelectedIndex)
	}
}

func TestNewAppStateWithoutFolders(t *testing.T) {
	_, state, _ := newTestState(t)

	if state.SelectedIndex != -1 {
		t.Errorf("Expected no selection, got %d", state.SelectedIndex)
	}
	if state.SelectedCandidate() != nil {
		t.Errorf("Expected nil selected candidate")
	}
}

func TestAcceptSelectsCandidate(t *testing.T) {
	reducer, state, _ := newTestState(t, "Music", "Documents")
	reduce(t, reducer, state, NavigateDownAction{}, AcceptAction{})

	if !state.Done() || state.Accepted == nil {
		t.Fatalf("expected picker to finish with an accepted candidate")
	}
	if state.Accepted.RelPath != "Documents" {
		t.Errorf("Expected Documents, got %q", state.Accepted.RelPath)
	}

	// The accepted value is a copy, later reranks do not change it.
	state.Candidates[1].RelPath = "changed"
	if state.Accepted.RelPath != "Documents" {
		t.Errorf("accepted candidate aliased the list")
	}
}

func TestAcceptWithoutCandidates(t *testing.T) {
	reducer, state, _ := newTestState(t)
	reduce(t, reducer, state, AcceptAction{})

	if state.Done() {
		t.Fatalf("picker should stay open without a destination")
	}
	if !errors.Is(state.LastError, ErrNoDestination) {
		t.Errorf("Expected ErrNoDestination, got %v", state.LastError)
	}
}

func TestMoveFailedReopensPicker(t *testing.T) {
	reducer, state, _ := newTestState(t, "Music")
	boom := errors.New("boom")
	reduce(t, reducer, state, AcceptAction{}, MoveFailedAction{Err: boom})

	if state.Done() {
		t.Fatalf("picker should stay open after a failed move")
	}
	if !errors.Is(state.LastError, boom) {
		t.Errorf("Expected LastError=boom, got %v", state.LastError)
	}

	// Typing clears the error.
	reduce(t, reducer, state, QueryCharAction{Char: 'm'})
	if state.LastError != nil {
		t.Errorf("Expected error cleared by typing, got %v", state.LastError)
	}
}

func TestQuit(t *testing.T) {
	reducer, state, _ := newTestState(t, "Music")
	reduce(t, reducer, state, QuitAction{})

	if !state.Done() || !state.Quit || state.Accepted != nil {
		t.Fatalf("expected quit without a destination, got %+v", state)
	}
}

func TestResize(t *testing.T) {
	reducer, state, _ := newTestState(t, "a", "b", "c", "d", "e", "f")
	state.SelectedIndex = 5
	reduce(t, reducer, state, ResizeAction{Width: 40, Height: 5})

	if state.ScreenWidth != 40 || state.ScreenHeight != 5 {
		t.Fatalf("dimensions not updated: %dx%d", state.ScreenWidth, state.ScreenHeight)
	}
	// 2 visible rows, selection 5 must be on screen.
	if state.ScrollOffset != 4 {
		t.Errorf("Expected ScrollOffset=4, got %d", state.ScrollOffset)
	}
}

func TestReducerWithMatcher(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{"Music/Rock", "Music/Jazz", "Documents"} {
		if err := os.MkdirAll(filepath.Join(root, rel), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	matcher := search.NewMatcher(search.Options{Scan: fsutil.DefaultScanOptions()})
	absRoot, folders, err := matcher.Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	reducer := NewStateReducer(matcher)
	state := reducer.NewAppState(absRoot, folders, []string{"/tmp/song.mp3"})
	state.ScreenHeight = 24

	for _, ch := range "mur" {
		reduce(t, reducer, state, QueryCharAction{Char: ch})
	}
	if got := state.SelectedCandidate(); got == nil || got.RelPath != "Music/Rock" {
		t.Fatalf("expected Music/Rock selected, got %+v", got)
	}

	reduce(t, reducer, state, EndAction{}, AcceptAction{})
	if state.Accepted == nil || !state.Accepted.IsNew || state.Accepted.TargetPath != filepath.Join(absRoot, "mur") {
		t.Fatalf("expected the create candidate, got %+v", state.Accepted)
	}
}
