package fs

import (
	"path"
	"strings"
)

// FolderEntry is a directory discovered beneath the scan root.
//
// RelPath is always slash separated and NFC normalised so it can be scored
// and displayed the same way on every platform. AbsPath keeps the on-disk
// spelling and is what file operations must use.
type FolderEntry struct {
	AbsPath   string
	RelPath   string
	Name      string
	Depth     int
	IsSymlink bool
}

// Segments splits the relative path into its components.
func (e FolderEntry) Segments() []string {
	if e.RelPath == "" {
		return nil
	}
	return strings.Split(e.RelPath, "/")
}

// Parent returns the relative path of the containing folder, or "" for
// top-level folders.
func (e FolderEntry) Parent() string {
	dir := path.Dir(e.RelPath)
	if dir == "." {
		return ""
	}
	return dir
}
