package stratum

import (
	"os"
	"path/filepath"
	"sort"
)

// SortBy selects which attribute of two paths Sorter compares on.
type SortBy int

const (
	SortByName SortBy = iota
	SortByModTime
)

// SortOrder selects ascending or descending.
type SortOrder int

const (
	SortAscending SortOrder = iota
	SortDescending
)

// Sorter is a total order over paths: by file name or modification
// time, ascending or descending, with ties broken by lexicographic
// path. Sorting is stable.
type Sorter struct {
	By    SortBy
	Order SortOrder
}

// DefaultSorter sorts by name, ascending.
func DefaultSorter() Sorter { return Sorter{By: SortByName, Order: SortAscending} }

// pathCompare returns -1, 0, or 1 for a vs b under s.By, before order
// reversal. An mtime read failure collapses the comparison to Equal,
// leaving the tiebreak to order the pair; see DESIGN.md.
func (s Sorter) pathCompare(a, b string) int {
	switch s.By {
	case SortByModTime:
		ai, aerr := os.Stat(a)
		bi, berr := os.Stat(b)
		if aerr != nil || berr != nil {
			return 0
		}
		at, bt := ai.ModTime(), bi.ModTime()
		switch {
		case at.Before(bt):
			return -1
		case at.After(bt):
			return 1
		default:
			return 0
		}
	default: // SortByName
		an, bn := filepath.Base(a), filepath.Base(b)
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}
}

// Compare orders a and b under s, applying s.Order's reversal and
// breaking ties lexicographically on the full path.
func (s Sorter) Compare(a, b string) int {
	c := s.pathCompare(a, b)
	if c == 0 {
		switch {
		case a < b:
			c = -1
		case a > b:
			c = 1
		}
	}
	if s.Order == SortDescending {
		c = -c
	}
	return c
}

// SortPaths stably sorts paths in place under s.
func (s Sorter) SortPaths(paths []string) {
	sort.SliceStable(paths, func(i, j int) bool {
		return s.Compare(paths[i], paths[j]) < 0
	})
}

// SortResults stably sorts PathResults in place: Err results sort
// before Ok results, and Ok/Ok pairs sort by s.Compare.
func (s Sorter) SortResults(results []PathResult) {
	sort.SliceStable(results, func(i, j int) bool {
		ri, rj := results[i], results[j]
		switch {
		case ri.Err != nil && rj.Err == nil:
			return true
		case ri.Err == nil && rj.Err != nil:
			return false
		case ri.Err != nil && rj.Err != nil:
			return false
		default:
			return s.Compare(ri.Path, rj.Path) < 0
		}
	})
}
