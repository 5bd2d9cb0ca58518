// Package clipboard reads the list of files a file manager copied to the
// clipboard.
package clipboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/kk-code-lab/quickmove/internal/debug"
)

var (
	// ErrUnavailable means no usable paste command was found.
	ErrUnavailable = errors.New("no clipboard paste command available")
	// ErrEmpty means the clipboard holds no text.
	ErrEmpty = errors.New("clipboard is empty")
)

const pollInterval = 10 * time.Millisecond

// Overridable for tests.
var lookPath = exec.LookPath

// Reader runs a paste command and returns its standard output.
type Reader struct {
	Command []string
	run     func(ctx context.Context, argv []string) ([]byte, error)
}

// NewReader uses configured as the paste command when set, otherwise the
// first paste tool found on PATH.
func NewReader(configured string) (*Reader, error) {
	if args := ParseCommand(configured); len(args) > 0 {
		return &Reader{Command: args, run: runCommand}, nil
	}
	args, ok := detectPasteCommandInternal(runtime.GOOS, os.Getenv, lookPath)
	if !ok {
		return nil, ErrUnavailable
	}
	return &Reader{Command: args, run: runCommand}, nil
}

// Read returns the clipboard text.
func (r *Reader) Read(ctx context.Context) (string, error) {
	out, err := r.run(ctx, r.Command)
	if err != nil {
		return "", fmt.Errorf("failed to run %s: %w", r.Command[0], err)
	}
	return string(out), nil
}

// WaitForText polls until the clipboard holds non-empty text or ctx is done.
// A context that ends before any text arrived yields ErrEmpty.
func (r *Reader) WaitForText(ctx context.Context) (string, error) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		text, err := r.Read(ctx)
		if err != nil && ctx.Err() == nil {
			return "", err
		}
		if strings.TrimSpace(text) != "" {
			return text, nil
		}
		select {
		case <-ctx.Done():
			return "", ErrEmpty
		case <-ticker.C:
		}
	}
}

// ReadPayload waits for clipboard text and parses it into file paths.
func (r *Reader) ReadPayload(ctx context.Context) ([]string, error) {
	text, err := r.WaitForText(ctx)
	if err != nil {
		return nil, err
	}
	payload := ParsePayload(text)
	if len(payload) == 0 {
		return nil, ErrEmpty
	}
	debug.Logf("clipboard", "payload of %d entries via %s", len(payload), r.Command[0])
	return payload, nil
}

func runCommand(ctx context.Context, argv []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return out, nil
}

func detectPasteCommandInternal(goos string, getenv func(string) string, lookPath func(string) (string, error)) ([]string, bool) {
	if strings.EqualFold(goos, "windows") {
		for _, ps := range []string{"powershell", "powershell.exe", "pwsh"} {
			if path, err := lookPath(ps); err == nil && path != "" {
				return []string{path, "-NoLogo", "-NoProfile", "-Command", "Get-Clipboard"}, true
			}
		}
		return nil, false
	}

	commands := [][]string{
		{"pbpaste"},
		{"wl-paste", "--no-newline"},
		{"xclip", "-selection", "clipboard", "-o"},
		{"xsel", "--clipboard", "--output"},
	}
	for _, cmd := range commands {
		if cmd[0] == "wl-paste" && getenv("WAYLAND_DISPLAY") == "" {
			continue
		}
		if resolved, err := lookPath(cmd[0]); err == nil && resolved != "" {
			return append([]string{resolved}, cmd[1:]...), true
		}
	}

	return nil, false
}
