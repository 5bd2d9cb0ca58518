//go:build !windows

package fs

// IsHidden reports whether a folder is hidden on Unix-like systems (dot prefix).
func IsHidden(_ string, name string) bool {
	return len(name) > 0 && name[0] == '.'
}

// IsProtected is always false outside Windows.
func IsProtected(_, _ string) bool {
	return false
}
