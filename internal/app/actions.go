package app

import (
	"github.com/kk-code-lab/quickmove/internal/debug"
	"github.com/kk-code-lab/quickmove/internal/mover"
	statepkg "github.com/kk-code-lab/quickmove/internal/state"
)

// acceptSelection moves the payload into the accepted destination. When
// nothing could be moved the picker stays open with the error on the status
// line; a partial move ends the session and reports the failures.
func (app *Application) acceptSelection() bool {
	chosen := app.state.Accepted
	if chosen == nil {
		return true
	}

	res, err := app.move(app.state.Root, chosen.TargetPath, app.state.Payload, mover.Options{DryRun: app.state.DryRun})
	if err != nil && len(res.Moves) == 0 {
		debug.Logf("app", "move into %s failed: %v", chosen.TargetPath, err)
		if _, rerr := app.reducer.Reduce(app.state, statepkg.MoveFailedAction{Err: err}); rerr != nil {
			app.state.LastError = rerr
		}
		return true
	}

	destination := *chosen
	app.outcome = Outcome{Destination: &destination, Result: res, Err: err}
	app.shouldQuit = true
	return false
}
