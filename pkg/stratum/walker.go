package stratum

import (
	"os"
	"path/filepath"
)

// ParentWalker yields an item path, then its parent, grandparent, and
// so on up to the filesystem root. It is finite, lazy, and single-pass.
type ParentWalker struct {
	next string
	done bool
}

// NewParentWalker starts a ParentWalker at path (inclusive).
func NewParentWalker(path string) *ParentWalker {
	return &ParentWalker{next: filepath.Clean(path)}
}

// Next advances the walker and reports whether a path is available.
func (w *ParentWalker) Next() bool {
	if w.done {
		return false
	}
	return true
}

// Path returns the current path and moves the walker to its parent.
// Call Next before the first Path, and again before each subsequent
// one; once Next has returned false, Path keeps returning the
// filesystem root.
func (w *ParentWalker) Path() string {
	cur := w.next
	parent := filepath.Dir(cur)
	if parent == cur {
		w.done = true
	} else {
		w.next = parent
	}
	return cur
}

// Err always returns nil: walking ancestors never touches the
// filesystem.
func (w *ParentWalker) Err() error { return nil }

// ChildWalker yields descendants of a root path in depth-first
// pre-order, the leftmost (per the Sorter) sibling visited first at
// each level, filtered by a Selection. Directories matching
// ExcludeDirs never have their children enqueued. It is lazy and
// single-pass.
type ChildWalker struct {
	selection Selection
	sorter    Sorter
	frontier  []string
	err       error
	cur       string
	started   bool
}

// NewChildWalker starts a ChildWalker rooted at path (exclusive: path
// itself is never yielded, only its selected descendants).
func NewChildWalker(path string, selection Selection, sorter Sorter) *ChildWalker {
	return &ChildWalker{selection: selection, sorter: sorter, frontier: []string{path}}
}

// Next advances the walker, expanding directories as it goes, and
// reports whether another path is available. On I/O failure it records
// the error (retrievable via Err) and continues with the remaining
// frontier, rather than aborting the walk; descendant
// traversal errors are non-fatal.
func (w *ChildWalker) Next() bool {
	for len(w.frontier) > 0 {
		p := w.frontier[0]
		w.frontier = w.frontier[1:]

		if w.started {
			w.cur = p
			w.expand(p)
			return true
		}
		// The root itself is never yielded; only expand it.
		w.started = true
		w.expand(p)
	}
	return false
}

// expand enqueues the selected, sorted children of dir at the front of
// the frontier (in sorted order, so the leftmost child ends up first),
// provided dir itself passes the directory
// exclude filter. Non-directories and directories excluded by
// ExcludeDirs do not descend.
func (w *ChildWalker) expand(dir string) {
	if !w.selection.IsDirMatch(dir) {
		return
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return
	}
	results, err := w.selection.SelectInDirSorted(dir, w.sorter)
	if err != nil {
		w.err = err
		return
	}
	var children []string
	for _, r := range results {
		if r.Err != nil {
			w.err = r.Err
			continue
		}
		children = append(children, r.Path)
	}
	w.frontier = append(children, w.frontier...)
}

// Path returns the path produced by the most recent call to Next.
func (w *ChildWalker) Path() string { return w.cur }

// Err returns the most recent I/O error encountered while expanding a
// directory, if any. It is not reset between calls to Next; callers
// that care about per-node attribution should check it immediately
// after each Next.
func (w *ChildWalker) Err() error { return w.err }
