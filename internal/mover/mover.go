// Package mover moves a payload of files into a destination folder under the
// configured root, creating the folder when needed.
package mover

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/kk-code-lab/quickmove/internal/debug"
)

var (
	// ErrDestinationExists is returned for a file whose name is already taken
	// in the destination. Nothing is overwritten.
	ErrDestinationExists = errors.New("destination already exists")
	// ErrOutsideRoot is returned when the destination is not inside root.
	ErrOutsideRoot = errors.New("destination is outside the root")
	// ErrIntoItself is returned when a folder would be moved into itself.
	ErrIntoItself = errors.New("cannot move a folder into itself")
	// ErrEmptyPayload is returned when there is nothing to move.
	ErrEmptyPayload = errors.New("nothing to move")
)

// Overridable for tests.
var (
	renameFn   = os.Rename
	mkdirAllFn = os.MkdirAll
)

// Options tunes MoveAll.
type Options struct {
	// DryRun plans every move without touching the filesystem.
	DryRun bool
}

// Move is one planned or completed file move.
type Move struct {
	Source string
	Target string
}

// Result describes what MoveAll did (or would do, in a dry run).
type Result struct {
	Destination string
	// Created is set when the destination folder did not exist.
	Created bool
	Moves   []Move
}

// MoveError is a failure for a single payload entry.
type MoveError struct {
	Source string
	Target string
	Err    error
}

func (e *MoveError) Error() string {
	if e.Target == "" {
		return fmt.Sprintf("%s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("%s -> %s: %v", e.Source, e.Target, e.Err)
}

func (e *MoveError) Unwrap() error { return e.Err }

// BatchError collects every per-file failure of one MoveAll call.
type BatchError struct {
	Failures []*MoveError
}

func (e *BatchError) Error() string {
	if len(e.Failures) == 1 {
		return e.Failures[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d files could not be moved:", len(e.Failures))
	for _, f := range e.Failures {
		b.WriteString("\n  ")
		b.WriteString(f.Error())
	}
	return b.String()
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *BatchError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}

// MoveAll moves every payload path into dest, which must lie inside root.
//
// A missing dest (and any missing parents) is created first. Every file is
// attempted even after a failure; failures are returned together as a
// *BatchError alongside the moves that succeeded.
func MoveAll(root, dest string, payload []string, opts Options) (Result, error) {
	if len(payload) == 0 {
		return Result{}, ErrEmptyPayload
	}

	dest, err := checkInsideRoot(root, dest)
	if err != nil {
		return Result{}, err
	}
	res := Result{Destination: dest}

	info, err := os.Stat(dest)
	switch {
	case err == nil && !info.IsDir():
		return res, fmt.Errorf("destination %s: %w", dest, syscall.ENOTDIR)
	case err == nil:
	case errors.Is(err, os.ErrNotExist):
		res.Created = true
		if !opts.DryRun {
			if err := mkdirAllFn(dest, 0o755); err != nil {
				return res, fmt.Errorf("failed to create destination %s: %w", dest, err)
			}
			debug.Logf("move", "created %s", dest)
		}
	default:
		return res, fmt.Errorf("destination %s: %w", dest, err)
	}

	var batch BatchError
	planned := make(map[string]bool, len(payload))
	for _, src := range payload {
		move, err := plan(src, dest)
		if err == nil && planned[move.Target] {
			err = ErrDestinationExists
		}
		if err == nil && !opts.DryRun {
			err = moveOne(move.Source, move.Target)
		}
		if err != nil {
			batch.Failures = append(batch.Failures, &MoveError{Source: src, Target: move.Target, Err: err})
			continue
		}
		planned[move.Target] = true
		debug.Logf("move", "%s -> %s (dry run: %v)", move.Source, move.Target, opts.DryRun)
		res.Moves = append(res.Moves, move)
	}

	if len(batch.Failures) > 0 {
		return res, &batch
	}
	return res, nil
}

func checkInsideRoot(root, dest string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	absDest, err := filepath.Abs(dest)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absRoot, absDest)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", fmt.Errorf("%s: %w", absDest, ErrOutsideRoot)
	}
	return absDest, nil
}

func plan(src, dest string) (Move, error) {
	absSrc, err := filepath.Abs(src)
	if err != nil {
		return Move{Source: src}, err
	}
	absSrc = filepath.Clean(absSrc)
	realSrc := resolveParent(absSrc)
	target := filepath.Join(dest, filepath.Base(realSrc))
	move := Move{Source: realSrc, Target: target}

	info, err := os.Lstat(realSrc)
	if err != nil {
		return move, err
	}
	if info.IsDir() && (within(dest, absSrc) || within(dest, realSrc)) {
		return move, ErrIntoItself
	}
	if _, err := os.Lstat(target); err == nil {
		return move, ErrDestinationExists
	} else if !errors.Is(err, os.ErrNotExist) {
		return move, err
	}
	return move, nil
}

// resolveParent resolves symlinks in the directories leading to path. The
// entry itself is kept, so a symlinked payload item moves as a link.
func resolveParent(path string) string {
	dir, err := filepath.EvalSymlinks(filepath.Dir(path))
	if err != nil {
		return path
	}
	return filepath.Join(dir, filepath.Base(path))
}

func within(path, dir string) bool {
	return path == dir || strings.HasPrefix(path, dir+string(filepath.Separator))
}

func moveOne(src, target string) error {
	err := renameFn(src, target)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}
	debug.Logf("move", "%s is on another device, copying", src)
	return copyThenRemove(src, target)
}
