package stratum

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

var errInvalidGlob = errors.New("malformed glob pattern")

// Matcher is a compiled set of glob patterns. An empty pattern set
// matches nothing; the sentinel pattern "*" matches everything.
type Matcher struct {
	patterns  []string
	matchAll  bool
	matchNone bool
}

// BuildMatcher compiles patterns into a Matcher. An empty slice
// compiles to match-nothing; a slice containing the sentinel "*"
// compiles to match-everything regardless of any other pattern present.
func BuildMatcher(patterns []string) (Matcher, error) {
	if len(patterns) == 0 {
		return Matcher{matchNone: true}, nil
	}
	for _, p := range patterns {
		if p == "*" {
			return Matcher{matchAll: true}, nil
		}
	}
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return Matcher{}, &SelectionBuildError{Pattern: p, Err: errInvalidGlob}
		}
	}
	cp := make([]string, len(patterns))
	copy(cp, patterns)
	return Matcher{patterns: cp}, nil
}

// Match reports whether the final component of path matches m.
func (m Matcher) Match(path string) bool {
	if m.matchAll {
		return true
	}
	if m.matchNone {
		return false
	}
	name := filepath.Base(path)
	for _, p := range m.patterns {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

// Selection is four compiled glob matchers applied against the final
// path component only, with no filesystem access: a path matches iff
// its include matcher accepts it and its exclude matcher rejects it.
type Selection struct {
	IncludeFiles Matcher
	ExcludeFiles Matcher
	IncludeDirs  Matcher
	ExcludeDirs  Matcher
}

// DefaultSelection returns the default Selection: every file and
// directory name is included, except that file names beginning with
// any Target's canonical stem are excluded (so a directory listing
// doesn't treat "self.yml" or "item.yml" as library content).
func DefaultSelection() Selection {
	excludePatterns := []string{
		TargetParent.DefaultFileStem() + "*",
		TargetSiblings.DefaultFileStem() + "*",
	}
	includeFiles, _ := BuildMatcher([]string{"*"})
	excludeFiles, _ := BuildMatcher(excludePatterns)
	includeDirs, _ := BuildMatcher([]string{"*"})
	excludeDirs, _ := BuildMatcher(nil)
	return Selection{
		IncludeFiles: includeFiles,
		ExcludeFiles: excludeFiles,
		IncludeDirs:  includeDirs,
		ExcludeDirs:  excludeDirs,
	}
}

// NewSelection builds a Selection from four pattern lists. File names
// beginning with any Target's canonical stem are always excluded, in
// addition to excludeFiles, so sidecar files never count as library
// content.
func NewSelection(includeFiles, excludeFiles, includeDirs, excludeDirs []string) (Selection, error) {
	inf, err := BuildMatcher(includeFiles)
	if err != nil {
		return Selection{}, err
	}
	exf, err := BuildMatcher(append([]string{
		TargetParent.DefaultFileStem() + "*",
		TargetSiblings.DefaultFileStem() + "*",
	}, excludeFiles...))
	if err != nil {
		return Selection{}, err
	}
	ind, err := BuildMatcher(includeDirs)
	if err != nil {
		return Selection{}, err
	}
	exd, err := BuildMatcher(excludeDirs)
	if err != nil {
		return Selection{}, err
	}
	return Selection{IncludeFiles: inf, ExcludeFiles: exf, IncludeDirs: ind, ExcludeDirs: exd}, nil
}

// IsFileMatch is a pure, deterministic function of path's final
// component and s's file matchers: no filesystem access.
func (s Selection) IsFileMatch(path string) bool {
	return s.IncludeFiles.Match(path) && !s.ExcludeFiles.Match(path)
}

// IsDirMatch is a pure, deterministic function of path's final
// component and s's directory matchers: no filesystem access.
func (s Selection) IsDirMatch(path string) bool {
	return s.IncludeDirs.Match(path) && !s.ExcludeDirs.Match(path)
}

// IsSelected consults the filesystem once to decide whether path is a
// file or a directory, then applies the matching predicate. Neither
// (e.g. a socket) is never selected. A path whose stat fails (e.g. a
// dangling symlink) yields an IOError.
func (s Selection) IsSelected(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, &IOError{Path: path, Err: err}
	}
	switch {
	case info.Mode().IsRegular():
		return s.IsFileMatch(path), nil
	case info.IsDir():
		return s.IsDirMatch(path), nil
	default:
		return false, nil
	}
}

// PathResult pairs a selected child path with any error encountered
// while testing it for selection.
type PathResult struct {
	Path string
	Err  error
}

// SelectInDir enumerates the direct children of dir, keeping only
// selected ones. Per-entry IO errors are preserved as an Err result
// rather than aborting the whole listing.
func (s Selection) SelectInDir(dir string) ([]PathResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &IOError{Path: dir, Err: err}
	}
	out := make([]PathResult, 0, len(entries))
	for _, entry := range entries {
		sub := filepath.Join(dir, entry.Name())
		ok, err := s.IsSelected(sub)
		if err != nil {
			out = append(out, PathResult{Path: sub, Err: err})
			continue
		}
		if ok {
			out = append(out, PathResult{Path: sub})
		}
	}
	return out, nil
}

// SelectInDirSorted is SelectInDir followed by a stable sort via
// sorter; Err results sort before Ok results, matching the behavior of
// a result type ordered by (is-it-an-error) before path content.
func (s Selection) SelectInDirSorted(dir string, sorter Sorter) ([]PathResult, error) {
	results, err := s.SelectInDir(dir)
	if err != nil {
		return nil, err
	}
	sorter.SortResults(results)
	return results, nil
}
