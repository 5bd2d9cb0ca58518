package fs

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func mkdirs(t *testing.T, root string, rels ...string) {
	t.Helper()
	for _, rel := range rels {
		if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(rel)), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", rel, err)
		}
	}
}

func relPaths(report ScanReport) []string {
	out := make([]string, 0, len(report.Folders))
	for _, f := range report.Folders {
		out = append(out, f.RelPath)
	}
	sort.Strings(out)
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestScanFoldersListsNestedDirectories(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "Music/Rock", "Music/Jazz", "Documents")
	if err := os.WriteFile(filepath.Join(root, "Music", "song.mp3"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	report, err := ScanFolders(root, DefaultScanOptions())
	if err != nil {
		t.Fatalf("ScanFolders: %v", err)
	}

	want := []string{"Documents", "Music", "Music/Jazz", "Music/Rock"}
	if got := relPaths(report); !equalStrings(got, want) {
		t.Fatalf("folders = %v, want %v", got, want)
	}

	for _, f := range report.Folders {
		if f.RelPath == "Music/Rock" {
			if f.Name != "Rock" || f.Depth != 2 || f.Parent() != "Music" {
				t.Fatalf("unexpected entry metadata: %+v", f)
			}
			if f.AbsPath != filepath.Join(root, "Music", "Rock") {
				t.Fatalf("AbsPath = %q", f.AbsPath)
			}
		}
	}
}

func TestScanFoldersHiddenAndSkipNames(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, ".cache/inner", ".git/objects", "visible")

	report, err := ScanFolders(root, DefaultScanOptions())
	if err != nil {
		t.Fatalf("ScanFolders: %v", err)
	}
	if got := relPaths(report); !equalStrings(got, []string{"visible"}) {
		t.Fatalf("hidden folders leaked: %v", got)
	}

	opts := DefaultScanOptions()
	opts.ShowHidden = true
	report, err = ScanFolders(root, opts)
	if err != nil {
		t.Fatalf("ScanFolders: %v", err)
	}
	want := []string{".cache", ".cache/inner", "visible"}
	if got := relPaths(report); !equalStrings(got, want) {
		t.Fatalf("folders = %v, want %v (.git must stay skipped)", got, want)
	}
}

func TestScanFoldersMaxDepth(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "a/b/c")

	opts := DefaultScanOptions()
	opts.MaxDepth = 2
	report, err := ScanFolders(root, opts)
	if err != nil {
		t.Fatalf("ScanFolders: %v", err)
	}
	if got := relPaths(report); !equalStrings(got, []string{"a", "a/b"}) {
		t.Fatalf("folders = %v", got)
	}
}

func TestScanFoldersSymlinkCycleTerminates(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "a/b")
	if err := os.Symlink(root, filepath.Join(root, "a", "b", "loop")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	if err := os.Symlink(filepath.Join(root, "a"), filepath.Join(root, "back")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	report, err := ScanFolders(root, DefaultScanOptions())
	if err != nil {
		t.Fatalf("ScanFolders: %v", err)
	}
	if got := relPaths(report); !equalStrings(got, []string{"a", "a/b"}) {
		t.Fatalf("folders = %v, want each physical folder once", got)
	}
}

func TestScanFoldersFollowsSymlinkOutsideTree(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	mkdirs(t, outside, "projects/alpha")
	if err := os.Symlink(filepath.Join(outside, "projects"), filepath.Join(root, "work")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	report, err := ScanFolders(root, DefaultScanOptions())
	if err != nil {
		t.Fatalf("ScanFolders: %v", err)
	}
	if got := relPaths(report); !equalStrings(got, []string{"work", "work/alpha"}) {
		t.Fatalf("folders = %v", got)
	}
	for _, f := range report.Folders {
		if !f.IsSymlink {
			t.Fatalf("expected %s to be flagged as reached through a symlink", f.RelPath)
		}
	}

	opts := DefaultScanOptions()
	opts.FollowSymlinks = false
	report, err = ScanFolders(root, opts)
	if err != nil {
		t.Fatalf("ScanFolders: %v", err)
	}
	if len(report.Folders) != 0 {
		t.Fatalf("expected symlinks to be ignored, got %v", relPaths(report))
	}
}

func TestScanFoldersSkipsUnreadableSubtree(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "locked/secret", "open/inner")

	denied := filepath.Join(root, "locked")
	prev := readDirFn
	readDirFn = func(name string) ([]os.DirEntry, error) {
		if name == denied {
			return nil, os.ErrPermission
		}
		return prev(name)
	}
	defer func() { readDirFn = prev }()

	report, err := ScanFolders(root, DefaultScanOptions())
	if err != nil {
		t.Fatalf("ScanFolders: %v", err)
	}
	want := []string{"locked", "open", "open/inner"}
	if got := relPaths(report); !equalStrings(got, want) {
		t.Fatalf("folders = %v, want %v", got, want)
	}
	if len(report.Skipped) != 1 || report.Skipped[0].Path != denied {
		t.Fatalf("expected one skipped subtree, got %+v", report.Skipped)
	}
	if !errors.Is(report.Skipped[0], os.ErrPermission) {
		t.Fatalf("skip error should unwrap to ErrPermission: %v", report.Skipped[0])
	}
}

func TestScanFoldersMissingRoot(t *testing.T) {
	_, err := ScanFolders(filepath.Join(t.TempDir(), "nope"), DefaultScanOptions())
	if err == nil || !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestScanFoldersSkipsProtectedEntries(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "Cookies", "Docs")

	prev := isProtectedFn
	isProtectedFn = func(fullPath, name string) bool { return name == "Cookies" }
	defer func() { isProtectedFn = prev }()

	report, err := ScanFolders(root, DefaultScanOptions())
	if err != nil {
		t.Fatalf("ScanFolders: %v", err)
	}
	if got := relPaths(report); !equalStrings(got, []string{"Docs"}) {
		t.Fatalf("folders = %v", got)
	}
}
