//go:build windows

package app

import "os"

// Windows has no job control signals to resume from.
func contSignals() []os.Signal {
	return nil
}
