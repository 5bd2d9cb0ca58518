package search

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/kk-code-lab/quickmove/internal/debug"
	fsutil "github.com/kk-code-lab/quickmove/internal/fs"
)

// Overridable for tests.
var (
	scanFoldersFn = fsutil.ScanFolders
	userHomeDir   = os.UserHomeDir
)

// Options configures a Matcher.
type Options struct {
	Scan fsutil.ScanOptions
}

// Matcher turns a root and a typed query into ranked destination candidates.
// It keeps no state between calls and never touches the filesystem beyond
// listing it.
type Matcher struct {
	fuzzy *FuzzyMatcher
	opts  Options
}

// NewMatcher creates a Matcher.
func NewMatcher(opts Options) *Matcher {
	return &Matcher{
		fuzzy: NewFuzzyMatcher(),
		opts:  opts,
	}
}

// Match scans root and ranks its folders against query.
func (m *Matcher) Match(root, query string) ([]Candidate, error) {
	absRoot, folders, err := m.Scan(root)
	if err != nil {
		return nil, err
	}
	return m.Rank(absRoot, folders, query), nil
}

// Scan validates root and lists its folders. The returned root is absolute
// and cleaned; pass it to Rank together with the folders.
//
// Unreadable subtrees are dropped and only traced; a root that cannot be
// used yields a *ConfigError.
func (m *Matcher) Scan(root string) (string, []fsutil.FolderEntry, error) {
	absRoot, err := ValidateRoot(root)
	if err != nil {
		return "", nil, err
	}
	report, err := scanFoldersFn(absRoot, m.opts.Scan)
	if err != nil {
		return "", nil, &ConfigError{Root: root, Err: err}
	}
	for _, skipped := range report.Skipped {
		debug.Logf("match", "%v", skipped)
	}
	return absRoot, report.Folders, nil
}

// ValidateRoot returns the absolute form of root, or a *ConfigError when it
// is missing or not a directory.
func ValidateRoot(root string) (string, error) {
	if strings.TrimSpace(root) == "" {
		return "", &ConfigError{Root: root, Err: os.ErrInvalid}
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", &ConfigError{Root: root, Err: err}
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return "", &ConfigError{Root: root, Err: err}
	}
	if !info.IsDir() {
		return "", &ConfigError{Root: root, Err: ErrNotDirectory}
	}
	return absRoot, nil
}

// Rank scores a folder snapshot against query.
//
// An empty (or blank) query returns every folder alphabetically. Otherwise
// folders whose relative path contains the query as a subsequence are
// returned best first, followed by a synthetic "create" candidate unless the
// query already names an existing folder. A query that spells a path inside
// root ("~/...", an absolute path, "./Music", "Music//Rock") is scored in
// its cleaned root-relative form, so it ranks the folder it names first and
// a query naming root itself lists everything.
func (m *Matcher) Rank(root string, folders []fsutil.FolderEntry, query string) []Candidate {
	query = strings.TrimSpace(query)
	rel, inRoot := resolveQuery(root, query)
	scored := rel
	if !inRoot {
		scored = strings.TrimRight(filepath.ToSlash(query), "/")
	}

	if scored == "" {
		out := make([]Candidate, 0, len(folders))
		for _, f := range folders {
			out = append(out, existingCandidate(f, 1.0, nil))
		}
		slices.SortStableFunc(out, compareAlphabetical)
		return out
	}

	pattern := foldRunes(scored)
	foldedQuery := string(pattern)

	out := make([]Candidate, 0, len(folders)/4+1)
	exists := false
	for _, f := range folders {
		text := foldRunes(f.RelPath)
		if inRoot && string(text) == foldedQuery {
			exists = true
		}
		score, matched, details := m.fuzzy.MatchRunes(pattern, text)
		if !matched {
			continue
		}
		score += segmentBoost(foldedQuery, string(text))
		out = append(out, existingCandidate(f, score, details.Spans))
	}
	slices.SortStableFunc(out, compareCandidates)

	if inRoot && !exists {
		out = append(out, Candidate{
			Label:      rel,
			RelPath:    rel,
			TargetPath: filepath.Join(root, filepath.FromSlash(rel)),
			IsNew:      true,
		})
	}
	return out
}

func existingCandidate(f fsutil.FolderEntry, score float64, spans []MatchSpan) Candidate {
	return Candidate{
		Label:      f.RelPath,
		RelPath:    f.RelPath,
		TargetPath: f.AbsPath,
		Score:      score,
		Spans:      MergeMatchSpans(spans),
	}
}

// resolveQuery interprets query as a path under root and returns it slash
// separated and relative to root, with "" naming root itself. "~/..." and
// absolute paths are accepted when they land inside root; anything escaping
// root reports false.
func resolveQuery(root, query string) (string, bool) {
	q := query
	if q == "~" || strings.HasPrefix(q, "~/") || strings.HasPrefix(q, `~\`) {
		home, err := userHomeDir()
		if err != nil {
			return "", false
		}
		q = filepath.Join(home, q[1:])
	}
	if filepath.IsAbs(q) {
		rel, err := filepath.Rel(root, q)
		if err != nil {
			return "", false
		}
		q = rel
	}

	cleaned := filepath.Clean(filepath.FromSlash(q))
	if cleaned == "." {
		return "", true
	}
	if cleaned == ".." || filepath.IsAbs(cleaned) || filepath.VolumeName(cleaned) != "" ||
		strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(cleaned), true
}
