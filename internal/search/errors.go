package search

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig is matched by every *ConfigError via errors.Is.
	ErrConfig = errors.New("invalid destination root")
	// ErrNotDirectory reports a root that exists but is not a directory.
	ErrNotDirectory = errors.New("not a directory")
)

// ConfigError reports a root that is missing, not a directory, or unreadable.
// No candidates accompany it.
type ConfigError struct {
	Root string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v %q: %v", ErrConfig, e.Root, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrConfig) succeed for any ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
