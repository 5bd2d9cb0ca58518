package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kk-code-lab/quickmove/internal/debug"
	"golang.org/x/text/unicode/norm"
)

// Overridable for tests.
var (
	readDirFn     = os.ReadDir
	isProtectedFn = IsProtected
)

// DefaultSkipNames are folder names never offered as destinations.
var DefaultSkipNames = []string{".git"}

// ScanOptions tunes a folder scan.
type ScanOptions struct {
	// MaxDepth limits recursion; 0 scans the whole tree.
	MaxDepth int
	// ShowHidden includes dot folders (and hidden-attribute folders on Windows).
	ShowHidden bool
	// SkipNames lists folder names that are skipped together with their subtree.
	SkipNames []string
	// FollowSymlinks descends into symlinked folders. Cycles are detected
	// either way.
	FollowSymlinks bool
}

// DefaultScanOptions returns the options used when nothing is configured.
func DefaultScanOptions() ScanOptions {
	return ScanOptions{
		SkipNames:      append([]string(nil), DefaultSkipNames...),
		FollowSymlinks: true,
	}
}

// ScanError records a subtree that could not be listed. It never fails a scan.
type ScanError struct {
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("skipped %s: %v", e.Path, e.Err)
}

func (e *ScanError) Unwrap() error { return e.Err }

// ScanReport is the result of ScanFolders.
type ScanReport struct {
	Folders []FolderEntry
	Skipped []*ScanError
}

type dirNode struct {
	absPath  string
	relPath  string
	realPath string
	depth    int
	symlink  bool
}

// ScanFolders lists every folder beneath root, breadth first.
//
// Each physical directory is reported at most once. Plain subdirectories are
// walked before symlinked ones so a link pointing back inside the tree never
// shadows the real path, and links resolving to root or one of its ancestors
// are dropped as cycles. An error is returned only when root itself cannot be
// resolved or listed.
func ScanFolders(root string, opts ScanOptions) (ScanReport, error) {
	var report ScanReport

	rootReal, err := filepath.EvalSymlinks(root)
	if err != nil {
		return report, err
	}
	rootReal = filepath.Clean(rootReal)

	rootEntries, err := readDirFn(root)
	if err != nil {
		return report, err
	}

	skip := make(map[string]struct{}, len(opts.SkipNames))
	for _, name := range opts.SkipNames {
		skip[name] = struct{}{}
	}
	visited := map[string]struct{}{rootReal: {}}

	var queue, deferred []dirNode
	enqueue := func(parent dirNode, entries []os.DirEntry) {
		for _, entry := range entries {
			name := entry.Name()
			if _, ok := skip[name]; ok {
				continue
			}
			absPath := filepath.Join(parent.absPath, name)
			isLink := entry.Type()&os.ModeSymlink != 0
			if isLink {
				if !opts.FollowSymlinks {
					continue
				}
				info, statErr := os.Stat(absPath)
				if statErr != nil || !info.IsDir() {
					continue
				}
			} else if !entry.IsDir() {
				continue
			}
			if isProtectedFn(absPath, name) {
				continue
			}
			if !opts.ShowHidden && IsHidden(absPath, name) {
				continue
			}

			child := dirNode{
				absPath: absPath,
				relPath: joinRelPath(parent.relPath, norm.NFC.String(name)),
				depth:   parent.depth + 1,
				symlink: isLink || parent.symlink,
			}
			if isLink {
				target, linkErr := filepath.EvalSymlinks(absPath)
				if linkErr != nil {
					report.Skipped = append(report.Skipped, &ScanError{Path: absPath, Err: linkErr})
					continue
				}
				child.realPath = filepath.Clean(target)
				deferred = append(deferred, child)
				continue
			}
			child.realPath = filepath.Join(parent.realPath, name)
			queue = append(queue, child)
		}
	}

	enqueue(dirNode{absPath: root, realPath: rootReal}, rootEntries)

	for len(queue) > 0 || len(deferred) > 0 {
		if len(queue) == 0 {
			queue, deferred = deferred, nil
		}
		node := queue[0]
		queue = queue[1:]

		if _, seen := visited[node.realPath]; seen {
			debug.Logf("scan", "skip revisit %s -> %s", node.absPath, node.realPath)
			continue
		}
		if isAncestorOrSelf(node.realPath, rootReal) {
			debug.Logf("scan", "skip cycle %s -> %s", node.absPath, node.realPath)
			continue
		}
		visited[node.realPath] = struct{}{}

		report.Folders = append(report.Folders, FolderEntry{
			AbsPath:   node.absPath,
			RelPath:   node.relPath,
			Name:      lastSegment(node.relPath),
			Depth:     node.depth,
			IsSymlink: node.symlink,
		})

		if opts.MaxDepth > 0 && node.depth >= opts.MaxDepth {
			continue
		}

		entries, err := readDirFn(node.absPath)
		if err != nil {
			report.Skipped = append(report.Skipped, &ScanError{Path: node.absPath, Err: err})
			debug.Logf("scan", "cannot list %s: %v", node.absPath, err)
			continue
		}
		enqueue(node, entries)
	}

	return report, nil
}

// isAncestorOrSelf reports whether dir equals path or contains it.
func isAncestorOrSelf(dir, path string) bool {
	if dir == path {
		return true
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func joinRelPath(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "/" + child
}

func lastSegment(rel string) string {
	if idx := strings.LastIndexByte(rel, '/'); idx >= 0 {
		return rel[idx+1:]
	}
	return rel
}
