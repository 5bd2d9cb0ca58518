// Package debug provides opt-in tracing controlled by QUICKMOVE_DEBUG.
//
// Output goes to stderr, or is appended to QUICKMOVE_DEBUG_FILE when set.
// Stderr lines written while the picker owns the terminal are held back
// and flushed once it is released; see HoldStderr.
package debug

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
)

var (
	enabled atomic.Bool
	file    = os.Getenv("QUICKMOVE_DEBUG_FILE")

	mu     sync.Mutex
	output io.Writer
	stderr io.Writer = os.Stderr
	held   *bytes.Buffer
)

func init() {
	enabled.Store(os.Getenv("QUICKMOVE_DEBUG") == "1")
}

// Enabled reports whether debug tracing is on.
func Enabled() bool {
	return enabled.Load()
}

// HoldStderr buffers stderr-bound lines until the returned release func is
// called, which writes them out in order. Use it around a full-screen UI.
func HoldStderr() (release func()) {
	buf := &bytes.Buffer{}
	mu.Lock()
	prev := held
	held = buf
	mu.Unlock()

	return func() {
		mu.Lock()
		defer mu.Unlock()
		if held != buf {
			return
		}
		held = prev
		if prev != nil {
			_, _ = prev.Write(buf.Bytes())
			return
		}
		_, _ = stderr.Write(buf.Bytes())
	}
}

func writeStderr(line string) {
	if held != nil {
		_, _ = held.WriteString(line)
		return
	}
	_, _ = io.WriteString(stderr, line)
}

// SetOutput redirects tracing to w and enables it. Passing nil restores the
// environment defaults.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	if w != nil {
		enabled.Store(true)
		return
	}
	enabled.Store(os.Getenv("QUICKMOVE_DEBUG") == "1")
}

// Logf writes one tagged line when tracing is enabled.
func Logf(tag, format string, args ...any) {
	if !enabled.Load() {
		return
	}
	line := fmt.Sprintf("[%s] "+format+"\n", append([]any{tag}, args...)...)

	mu.Lock()
	defer mu.Unlock()
	if output != nil {
		_, _ = io.WriteString(output, line)
		return
	}
	if file == "" {
		writeStderr(line)
		return
	}

	abspath := file
	if !filepath.IsAbs(abspath) {
		if cwd, err := os.Getwd(); err == nil {
			abspath = filepath.Join(cwd, file)
		}
	}
	f, err := os.OpenFile(abspath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		writeStderr(fmt.Sprintf("[debug] open file error: %v\n", err))
		writeStderr(line)
		return
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			writeStderr(fmt.Sprintf("[debug] close file error: %v\n", cerr))
		}
	}()
	if _, err := io.WriteString(f, line); err != nil {
		writeStderr(fmt.Sprintf("[debug] write file error: %v\n", err))
	}
}
