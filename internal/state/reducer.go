package state

import (
	"errors"
	"unicode"

	"github.com/kk-code-lab/quickmove/internal/debug"
	fsutil "github.com/kk-code-lab/quickmove/internal/fs"
	"github.com/kk-code-lab/quickmove/internal/search"
)

// ErrNoDestination is set when Enter is pressed with nothing selected.
var ErrNoDestination = errors.New("no destination selected")

// Ranker orders a folder snapshot against a query. *search.Matcher is the
// production implementation.
type Ranker interface {
	Rank(root string, folders []fsutil.FolderEntry, query string) []search.Candidate
}

type StateReducer struct {
	ranker Ranker
}

func NewStateReducer(ranker Ranker) *StateReducer {
	return &StateReducer{ranker: ranker}
}

// NewAppState builds the initial picker state and ranks the empty query.
func (r *StateReducer) NewAppState(root string, folders []fsutil.FolderEntry, payload []string) *AppState {
	state := &AppState{
		Root:          root,
		Folders:       folders,
		Payload:       payload,
		SelectedIndex: -1,
	}
	r.rerank(state)
	return state
}

func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	switch a := action.(type) {

	// ===== QUERY =====

	case QueryCharAction:
		runes, cursor := queryRunes(state)
		buffer := make([]rune, 0, len(runes)+1)
		buffer = append(buffer, runes[:cursor]...)
		buffer = append(buffer, a.Char)
		buffer = append(buffer, runes[cursor:]...)
		r.setQuery(state, string(buffer), cursor+1)
		return state, nil

	case QueryBackspaceAction:
		runes, cursor := queryRunes(state)
		if cursor == 0 {
			return state, nil
		}
		buffer := append([]rune{}, runes[:cursor-1]...)
		buffer = append(buffer, runes[cursor:]...)
		r.setQuery(state, string(buffer), cursor-1)
		return state, nil

	case QueryDeleteAction:
		runes, cursor := queryRunes(state)
		if cursor >= len(runes) {
			return state, nil
		}
		buffer := append([]rune{}, runes[:cursor]...)
		buffer = append(buffer, runes[cursor+1:]...)
		r.setQuery(state, string(buffer), cursor)
		return state, nil

	case QueryDeleteWordAction:
		runes, cursor := queryRunes(state)
		if cursor == 0 {
			return state, nil
		}
		start := previousWordBoundary(runes, cursor)
		buffer := append([]rune{}, runes[:start]...)
		buffer = append(buffer, runes[cursor:]...)
		r.setQuery(state, string(buffer), start)
		return state, nil

	case QueryResetAction:
		if state.Query != "" {
			r.setQuery(state, "", 0)
		}
		return state, nil

	case QueryMoveCursorAction:
		runes, cursor := queryRunes(state)
		switch a.Direction {
		case "left":
			if cursor > 0 {
				cursor--
			}
		case "right":
			if cursor < len(runes) {
				cursor++
			}
		case "word-left":
			cursor = previousWordBoundary(runes, cursor)
		case "word-right":
			cursor = nextWordBoundary(runes, cursor)
		case "home":
			cursor = 0
		case "end":
			cursor = len(runes)
		}
		state.CursorPos = cursor
		return state, nil

	case CompleteSelectionAction:
		selected := state.SelectedCandidate()
		if selected == nil {
			return state, nil
		}
		query := selected.RelPath + "/"
		if query == state.Query {
			return state, nil
		}
		r.setQuery(state, query, len([]rune(query)))
		return state, nil

	// ===== LIST =====

	case NavigateDownAction:
		if len(state.Candidates) == 0 || state.SelectedIndex >= len(state.Candidates)-1 {
			return state, nil
		}
		state.SelectedIndex++
		state.updateScrollVisibility()
		return state, nil

	case NavigateUpAction:
		if len(state.Candidates) == 0 || state.SelectedIndex <= 0 {
			return state, nil
		}
		state.SelectedIndex--
		state.updateScrollVisibility()
		return state, nil

	case PageUpAction:
		if len(state.Candidates) > 0 {
			state.SelectedIndex -= state.VisibleLines()
			state.clampSelection()
		}
		return state, nil

	case PageDownAction:
		if len(state.Candidates) > 0 {
			state.SelectedIndex += state.VisibleLines()
			state.clampSelection()
		}
		return state, nil

	case HomeAction:
		if len(state.Candidates) > 0 {
			state.SelectedIndex = 0
			state.clampSelection()
		}
		return state, nil

	case EndAction:
		if len(state.Candidates) > 0 {
			state.SelectedIndex = len(state.Candidates) - 1
			state.clampSelection()
		}
		return state, nil

	case SelectIndexAction:
		if a.Index >= 0 && a.Index < len(state.Candidates) {
			state.SelectedIndex = a.Index
			state.updateScrollVisibility()
		}
		return state, nil

	// ===== VIEW =====

	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		state.updateScrollVisibility()
		return state, nil

	// ===== APPLICATION =====

	case AcceptAction:
		selected := state.SelectedCandidate()
		if selected == nil {
			state.LastError = ErrNoDestination
			return state, nil
		}
		chosen := *selected
		state.Accepted = &chosen
		debug.Logf("picker", "accepted %q (new: %v)", chosen.TargetPath, chosen.IsNew)
		return state, nil

	case MoveFailedAction:
		state.Accepted = nil
		state.LastError = a.Err
		return state, nil

	case QuitAction:
		state.Quit = true
		return state, nil
	}

	return state, nil
}

func (r *StateReducer) setQuery(state *AppState, query string, cursor int) {
	state.Query = query
	state.CursorPos = cursor
	state.LastError = nil
	r.rerank(state)
}

// rerank refreshes the candidates and selects the best one.
func (r *StateReducer) rerank(state *AppState) {
	if r.ranker == nil {
		state.Candidates = nil
	} else {
		state.Candidates = r.ranker.Rank(state.Root, state.Folders, state.Query)
	}
	state.SelectedIndex = 0
	state.ScrollOffset = 0
	state.clampSelection()
	debug.Logf("picker", "query %q -> %d candidates", state.Query, len(state.Candidates))
}

func queryRunes(state *AppState) ([]rune, int) {
	runes := []rune(state.Query)
	cursor := state.CursorPos
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	return runes, cursor
}

// Path separators end a word so ctrl+w removes one folder name at a time.
func isQueryWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func previousWordBoundary(runes []rune, pos int) int {
	if pos <= 0 {
		return 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}

	i := pos - 1
	for i >= 0 && !isQueryWordChar(runes[i]) {
		i--
	}
	for i >= 0 && isQueryWordChar(runes[i]) {
		i--
	}
	return i + 1
}

func nextWordBoundary(runes []rune, pos int) int {
	if pos >= len(runes) {
		return len(runes)
	}
	if pos < 0 {
		pos = 0
	}

	i := pos
	for i < len(runes) && !isQueryWordChar(runes[i]) {
		i++
	}
	for i < len(runes) && isQueryWordChar(runes[i]) {
		i++
	}
	return i
}
