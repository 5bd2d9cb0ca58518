package state

import "testing"

func typeQuery(t *testing.T, reducer *StateReducer, state *AppState, text string) {
	t.Helper()
	for _, ch := range text {
		reduce(t, reducer, state, QueryCharAction{Char: ch})
	}
}

func TestQueryCharReranks(t *testing.T) {
	reducer, state, ranker := newTestState(t, "Music", "Music/Rock", "Documents")
	typeQuery(t, reducer, state, "roc")

	if state.Query != "roc" || state.CursorPos != 3 {
		t.Fatalf("Query=%q cursor=%d", state.Query, state.CursorPos)
	}
	if got := ranker.queries[len(ranker.queries)-1]; got != "roc" {
		t.Fatalf("last ranked query %q", got)
	}
	if len(state.Candidates) != 1 || state.Candidates[0].RelPath != "Music/Rock" {
		t.Fatalf("unexpected candidates %+v", state.Candidates)
	}
}

func TestQueryRerankResetsSelection(t *testing.T) {
	reducer, state, _ := newTestState(t, "a1", "a2", "a3")
	reduce(t, reducer, state, NavigateDownAction{}, NavigateDownAction{})
	typeQuery(t, reducer, state, "a")

	if state.SelectedIndex != 0 || state.ScrollOffset != 0 {
		t.Errorf("Expected selection reset to top, got sel=%d scroll=%d", state.SelectedIndex, state.ScrollOffset)
	}
}

func TestQueryInsertAtCursor(t *testing.T) {
	reducer, state, _ := newTestState(t)
	typeQuery(t, reducer, state, "mic")
	reduce(t, reducer, state, QueryMoveCursorAction{Direction: "left"}, QueryMoveCursorAction{Direction: "left"})
	typeQuery(t, reducer, state, "us")

	if state.Query != "music" || state.CursorPos != 3 {
		t.Fatalf("Query=%q cursor=%d", state.Query, state.CursorPos)
	}
}

func TestQueryBackspaceAndDelete(t *testing.T) {
	reducer, state, _ := newTestState(t)
	typeQuery(t, reducer, state, "łódź")

	reduce(t, reducer, state, QueryBackspaceAction{})
	if state.Query != "łód" || state.CursorPos != 3 {
		t.Fatalf("after backspace Query=%q cursor=%d", state.Query, state.CursorPos)
	}

	reduce(t, reducer, state, QueryMoveCursorAction{Direction: "home"}, QueryDeleteAction{})
	if state.Query != "ód" || state.CursorPos != 0 {
		t.Fatalf("after delete Query=%q cursor=%d", state.Query, state.CursorPos)
	}

	reduce(t, reducer, state, QueryBackspaceAction{})
	if state.Query != "ód" {
		t.Errorf("backspace at start should do nothing, got %q", state.Query)
	}

	reduce(t, reducer, state, QueryMoveCursorAction{Direction: "end"}, QueryDeleteAction{})
	if state.Query != "ód" {
		t.Errorf("delete at end should do nothing, got %q", state.Query)
	}
}

func TestQueryDeleteWordStopsAtSeparators(t *testing.T) {
	reducer, state, _ := newTestState(t)
	typeQuery(t, reducer, state, "Work/2024/Taxes")

	reduce(t, reducer, state, QueryDeleteWordAction{})
	if state.Query != "Work/2024/" {
		t.Fatalf("Query=%q", state.Query)
	}
	reduce(t, reducer, state, QueryDeleteWordAction{})
	if state.Query != "Work/" {
		t.Fatalf("Query=%q", state.Query)
	}
}

func TestQueryWordMovement(t *testing.T) {
	reducer, state, _ := newTestState(t)
	typeQuery(t, reducer, state, "Project Stuff/Tiamblia")

	reduce(t, reducer, state, QueryMoveCursorAction{Direction: "word-left"})
	if state.CursorPos != 14 {
		t.Fatalf("word-left cursor=%d", state.CursorPos)
	}
	reduce(t, reducer, state, QueryMoveCursorAction{Direction: "word-left"})
	if state.CursorPos != 8 {
		t.Fatalf("word-left cursor=%d", state.CursorPos)
	}
	reduce(t, reducer, state, QueryMoveCursorAction{Direction: "word-right"})
	if state.CursorPos != 13 {
		t.Fatalf("word-right cursor=%d", state.CursorPos)
	}
	reduce(t, reducer, state, QueryMoveCursorAction{Direction: "right"}, QueryMoveCursorAction{Direction: "end"}, QueryMoveCursorAction{Direction: "right"})
	if state.CursorPos != 22 {
		t.Fatalf("cursor should stop at end, got %d", state.CursorPos)
	}
}

func TestQueryReset(t *testing.T) {
	reducer, state, ranker := newTestState(t, "a", "b")
	typeQuery(t, reducer, state, "a")
	reduce(t, reducer, state, QueryResetAction{})

	if state.Query != "" || state.CursorPos != 0 || len(state.Candidates) != 2 {
		t.Fatalf("reset failed: Query=%q cursor=%d candidates=%d", state.Query, state.CursorPos, len(state.Candidates))
	}

	calls := len(ranker.queries)
	reduce(t, reducer, state, QueryResetAction{})
	if len(ranker.queries) != calls {
		t.Errorf("resetting an empty query should not rerank")
	}
}

func TestCompleteSelection(t *testing.T) {
	reducer, state, _ := newTestState(t, "Music", "Music/Rock")
	typeQuery(t, reducer, state, "mus")

	reduce(t, reducer, state, CompleteSelectionAction{})
	if state.Query != "Music/" || state.CursorPos != 6 {
		t.Fatalf("Query=%q cursor=%d", state.Query, state.CursorPos)
	}

	typeQuery(t, reducer, state, "Ro")
	if state.Query != "Music/Ro" {
		t.Fatalf("Query=%q", state.Query)
	}
}

func TestCompleteSelectionWithoutCandidates(t *testing.T) {
	reducer, state, _ := newTestState(t, "Music")
	typeQuery(t, reducer, state, "zzz")
	reduce(t, reducer, state, CompleteSelectionAction{})

	if state.Query != "zzz" {
		t.Errorf("completion without a selection should keep the query, got %q", state.Query)
	}
}
