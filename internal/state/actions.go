package state

// Action is the base interface for all state mutations
type Action interface{}

// ===== QUERY ACTIONS =====

type QueryCharAction struct {
	Char rune
}
type QueryBackspaceAction struct{}
type QueryDeleteAction struct{}
type QueryDeleteWordAction struct{}
type QueryResetAction struct{}
type QueryMoveCursorAction struct {
	Direction string // "left", "right", "word-left", "word-right", "home", "end"
}

// CompleteSelectionAction copies the selected candidate into the query and
// appends a separator, ready for typing a subfolder.
type CompleteSelectionAction struct{}

// ===== LIST ACTIONS =====

type NavigateUpAction struct{}
type NavigateDownAction struct{}
type PageUpAction struct{}
type PageDownAction struct{}
type HomeAction struct{}
type EndAction struct{}
type SelectIndexAction struct {
	Index int
}

// ===== VIEW ACTIONS =====

type ResizeAction struct {
	Width  int
	Height int
}

// ===== APPLICATION ACTIONS =====

type AcceptAction struct{}  // enter - move the payload to the selection
type QuitAction struct{}    // esc - leave without moving
type SuspendAction struct{} // ctrl+z - hand the terminal back to the shell

// MoveFailedAction reports a move that did not happen; the picker stays open.
type MoveFailedAction struct {
	Err error
}
