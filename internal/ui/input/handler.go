package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/quickmove/internal/state"
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState // Reference to current state for the query check on Esc
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetState sets the state reference
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action. It returns false once
// the picker should stop reading input.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	ctrl := ev.Modifiers()&tcell.ModCtrl != 0

	switch ev.Key() {
	case tcell.KeyEscape:
		if ih.state != nil && ih.state.Query != "" {
			ih.actionChan <- statepkg.QueryResetAction{}
			return true
		}
		ih.actionChan <- statepkg.QuitAction{}
		return false

	case tcell.KeyCtrlC:
		ih.actionChan <- statepkg.QuitAction{}
		return false

	case tcell.KeyCtrlZ:
		ih.actionChan <- statepkg.SuspendAction{}
		return true

	case tcell.KeyEnter:
		ih.actionChan <- statepkg.AcceptAction{}
		return true

	case tcell.KeyTab:
		ih.actionChan <- statepkg.CompleteSelectionAction{}
		return true

	case tcell.KeyUp, tcell.KeyCtrlP:
		ih.actionChan <- statepkg.NavigateUpAction{}
		return true

	case tcell.KeyDown, tcell.KeyCtrlN:
		ih.actionChan <- statepkg.NavigateDownAction{}
		return true

	case tcell.KeyPgUp:
		ih.actionChan <- statepkg.PageUpAction{}
		return true

	case tcell.KeyPgDn:
		ih.actionChan <- statepkg.PageDownAction{}
		return true

	case tcell.KeyHome:
		if ctrl {
			ih.actionChan <- statepkg.HomeAction{}
		} else {
			ih.actionChan <- statepkg.QueryMoveCursorAction{Direction: "home"}
		}
		return true

	case tcell.KeyEnd:
		if ctrl {
			ih.actionChan <- statepkg.EndAction{}
		} else {
			ih.actionChan <- statepkg.QueryMoveCursorAction{Direction: "end"}
		}
		return true

	case tcell.KeyLeft:
		if ctrl || ev.Modifiers()&tcell.ModAlt != 0 {
			ih.actionChan <- statepkg.QueryMoveCursorAction{Direction: "word-left"}
		} else {
			ih.actionChan <- statepkg.QueryMoveCursorAction{Direction: "left"}
		}
		return true

	case tcell.KeyRight:
		if ctrl || ev.Modifiers()&tcell.ModAlt != 0 {
			ih.actionChan <- statepkg.QueryMoveCursorAction{Direction: "word-right"}
		} else {
			ih.actionChan <- statepkg.QueryMoveCursorAction{Direction: "right"}
		}
		return true

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if ev.Modifiers()&tcell.ModAlt != 0 {
			ih.actionChan <- statepkg.QueryDeleteWordAction{}
		} else {
			ih.actionChan <- statepkg.QueryBackspaceAction{}
		}
		return true

	case tcell.KeyDelete:
		ih.actionChan <- statepkg.QueryDeleteAction{}
		return true

	case tcell.KeyCtrlA:
		ih.actionChan <- statepkg.QueryMoveCursorAction{Direction: "home"}
		return true

	case tcell.KeyCtrlE:
		ih.actionChan <- statepkg.QueryMoveCursorAction{Direction: "end"}
		return true

	case tcell.KeyCtrlW:
		ih.actionChan <- statepkg.QueryDeleteWordAction{}
		return true

	case tcell.KeyCtrlU:
		ih.actionChan <- statepkg.QueryResetAction{}
		return true

	case tcell.KeyRune:
		r := ev.Rune()
		if ctrl {
			// Some terminals report ctrl+letter as a rune with a modifier.
			switch r {
			case 'a', 'A':
				ih.actionChan <- statepkg.QueryMoveCursorAction{Direction: "home"}
			case 'e', 'E':
				ih.actionChan <- statepkg.QueryMoveCursorAction{Direction: "end"}
			case 'w', 'W':
				ih.actionChan <- statepkg.QueryDeleteWordAction{}
			case 'u', 'U':
				ih.actionChan <- statepkg.QueryResetAction{}
			case 'n', 'N':
				ih.actionChan <- statepkg.NavigateDownAction{}
			case 'p', 'P':
				ih.actionChan <- statepkg.NavigateUpAction{}
			}
			return true
		}
		if ev.Modifiers()&tcell.ModShift != 0 {
			// Normalize shifted alphabetic runes to reflect user intent (Shift+A => 'A')
			r = unicode.ToUpper(r)
		}
		if !unicode.IsPrint(r) {
			return true
		}
		ih.actionChan <- statepkg.QueryCharAction{Char: r}
		return true

	default:
		return true
	}
}
