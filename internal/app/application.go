// Package app runs the interactive destination picker.
package app

import (
	"time"

	"github.com/gdamore/tcell/v2"
	fsutil "github.com/kk-code-lab/quickmove/internal/fs"
	"github.com/kk-code-lab/quickmove/internal/mover"
	"github.com/kk-code-lab/quickmove/internal/search"
	statepkg "github.com/kk-code-lab/quickmove/internal/state"
	inputui "github.com/kk-code-lab/quickmove/internal/ui/input"
	renderui "github.com/kk-code-lab/quickmove/internal/ui/render"
)

// MoveFunc performs the move once a destination is accepted.
type MoveFunc func(root, dest string, payload []string, opts mover.Options) (mover.Result, error)

// Options configures a picker session.
type Options struct {
	Root    string
	Folders []fsutil.FolderEntry
	Payload []string
	// Query pre-fills the query line.
	Query  string
	DryRun bool
	Ranker statepkg.Ranker
	// Move defaults to mover.MoveAll.
	Move MoveFunc
}

// Outcome is what a picker session ended with.
type Outcome struct {
	// Destination is nil when the user cancelled.
	Destination *search.Candidate
	Result      mover.Result
	// Err holds per-file failures when only part of the payload moved.
	Err error
}

// Cancelled reports whether the session ended without a move.
func (o Outcome) Cancelled() bool {
	return o.Destination == nil
}

// Application represents the running picker.
type Application struct {
	screen     tcell.Screen
	state      *statepkg.AppState
	reducer    *statepkg.StateReducer
	renderer   *renderui.Renderer
	input      *inputui.InputHandler
	actionCh   chan statepkg.Action
	shouldQuit bool
	move       MoveFunc
	outcome    Outcome

	lastClickKey  int
	lastClickTime time.Time
}

// Close cleans up resources.
func (app *Application) Close() error {
	close(app.actionCh)
	app.screen.Fini()
	return nil
}

// State exposes the picker state, mainly for tests.
func (app *Application) State() *statepkg.AppState {
	return app.state
}
