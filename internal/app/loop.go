package app

import (
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/quickmove/internal/debug"
	"github.com/kk-code-lab/quickmove/internal/mover"
	statepkg "github.com/kk-code-lab/quickmove/internal/state"
	"github.com/kk-code-lab/quickmove/internal/ui/input"
	renderui "github.com/kk-code-lab/quickmove/internal/ui/render"
)

const doubleClickThreshold = 300 * time.Millisecond

// Rows above the candidate list: payload header and query line.
const listStartY = 2

// NewApplication initialises screen (a terminal screen when nil) and builds
// the picker for opts.
func NewApplication(screen tcell.Screen, opts Options) (*Application, error) {
	if screen == nil {
		var err error
		screen, err = tcell.NewScreen()
		if err != nil {
			return nil, err
		}
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	// Parse mouse sequences so clicks and wheel turns don't leak as key events.
	screen.EnableMouse()
	if err := flushConsoleInput(); err != nil {
		debug.Logf("app", "flush console input: %v", err)
	}

	reducer := statepkg.NewStateReducer(opts.Ranker)
	state := reducer.NewAppState(opts.Root, opts.Folders, opts.Payload)
	state.DryRun = opts.DryRun
	w, h := screen.Size()
	state.ScreenWidth = w
	state.ScreenHeight = h
	for _, r := range opts.Query {
		if _, err := reducer.Reduce(state, statepkg.QueryCharAction{Char: r}); err != nil {
			screen.Fini()
			return nil, err
		}
	}

	move := opts.Move
	if move == nil {
		move = mover.MoveAll
	}

	actionCh := make(chan statepkg.Action, 10)
	inputHandler := input.NewInputHandler(actionCh)
	inputHandler.SetState(state)

	return &Application{
		screen:   screen,
		state:    state,
		reducer:  reducer,
		renderer: renderui.NewRenderer(screen),
		input:    inputHandler,
		actionCh: actionCh,
		move:     move,
	}, nil
}

// Run drives the picker until a destination is accepted and the payload
// moved, or the user cancels.
func (app *Application) Run() Outcome {
	// Trace lines aimed at stderr would draw over the picker.
	release := debug.HoldStderr()
	defer release()
	defer app.screen.Fini()

	app.renderer.Render(app.state)
	renderPending := false

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	for !app.shouldQuit {
		if renderPending {
			app.renderer.Render(app.state)
			renderPending = false
		}

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}

	return app.outcome
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey, *tcell.EventResize:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tcell.EventMouse:
		app.handleMouse(ev)
		return true
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
	return true
}

// handleMouse maps the wheel to list navigation, a click to selection and a
// double click to accepting the clicked row.
func (app *Application) handleMouse(ev *tcell.EventMouse) {
	if app.state == nil {
		return
	}

	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		app.actionCh <- statepkg.NavigateUpAction{}
		return
	case buttons&tcell.WheelDown != 0:
		app.actionCh <- statepkg.NavigateDownAction{}
		return
	case buttons&tcell.Button1 == 0:
		return
	}

	_, y := ev.Position()
	bottomLimit := app.state.ScreenHeight - 1 // status line
	if y < listStartY || y >= bottomLimit {
		return
	}
	idx := app.state.ScrollOffset + y - listStartY
	if idx < 0 || idx >= len(app.state.Candidates) {
		return
	}

	doubleClick := app.lastClickKey == idx && time.Since(app.lastClickTime) <= doubleClickThreshold
	app.lastClickKey = idx
	app.lastClickTime = time.Now()

	app.actionCh <- statepkg.SelectIndexAction{Index: idx}
	if doubleClick {
		app.actionCh <- statepkg.AcceptAction{}
	}
}

func (app *Application) processActions() bool {
	changed := false
	for !app.shouldQuit {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
	return changed
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		return false
	case statepkg.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	}

	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		app.state.LastError = err
		return true
	}

	if _, ok := action.(statepkg.AcceptAction); ok {
		return app.acceptSelection()
	}
	return true
}
