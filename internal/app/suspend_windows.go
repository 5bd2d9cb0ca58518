//go:build windows

package app

// Ctrl+Z has no shell to return to on Windows, so the picker keeps running.
func (app *Application) suspendToShell() {}

func (app *Application) resumeAfterStop() bool {
	return false
}
