package clipboard

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// ParsePayload splits clipboard text into file paths, one per line.
//
// Windows Explorer's "Copy as path" quotes every line, so one pair of
// surrounding double quotes is removed; a quote that only ends a line is part
// of the file name. file:// URIs (as copied by GTK file managers) are decoded.
// Blank lines are dropped.
func ParsePayload(text string) []string {
	var payload []string
	for _, line := range splitLines(text) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if len(line) >= 2 && strings.HasPrefix(line, `"`) && strings.HasSuffix(line, `"`) {
			line = line[1 : len(line)-1]
		}
		if path, ok := fileURIPath(line); ok {
			line = path
		}
		payload = append(payload, line)
	}
	return payload
}

// splitLines breaks on \n, \r\n and lone \r.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

func fileURIPath(line string) (string, bool) {
	if !strings.HasPrefix(line, "file://") {
		return "", false
	}
	u, err := url.Parse(line)
	if err != nil || (u.Host != "" && u.Host != "localhost") || u.Path == "" {
		return "", false
	}
	return filepath.FromSlash(u.Path), true
}

// ParseCommand splits a configured command line into arguments, honouring
// single and double quotes. A leading "~" in the program is expanded.
func ParseCommand(cmd string) []string {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return nil
	}

	var args []string
	var current strings.Builder
	inSingle := false
	inDouble := false

	for _, r := range cmd {
		switch r {
		case '\'':
			if inDouble {
				current.WriteRune(r)
			} else {
				inSingle = !inSingle
			}
			continue
		case '"':
			if inSingle {
				current.WriteRune(r)
			} else {
				inDouble = !inDouble
			}
			continue
		default:
			if !inSingle && !inDouble && unicode.IsSpace(r) {
				if current.Len() > 0 {
					args = append(args, current.String())
					current.Reset()
				}
				continue
			}
			current.WriteRune(r)
		}
	}

	if current.Len() > 0 {
		args = append(args, current.String())
	}

	if len(args) > 0 {
		args[0] = expandUserPath(args[0])
	}

	return args
}

func expandUserPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	if len(path) > 1 && path[1] != '/' && path[1] != '\\' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
