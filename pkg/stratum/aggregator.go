package stratum

import (
	"os"

	"github.com/gobbles/stratum/internal/logx"
)

// AggMethod selects how Aggregate folds the lazy (value, path) sequence
// produced by walking an item's descendants.
type AggMethod int

const (
	// AggFirst takes the first value found, or Nil if none.
	AggFirst AggMethod = iota
	// AggCollect gathers every value found into a Sequence, in
	// emission order.
	AggCollect
)

// FieldHit pairs a discovered field value with the descendant path it
// was found at.
type FieldHit struct {
	Value Value
	Path  string
}

// ResolveField looks up field in path's own flattened block,
// without descending further. This is the single-node primitive that
// both Aggregate and the ancestor-level field lookups build on.
func ResolveField(path string, field string, selection Selection, sorter Sorter, dec Decoder, naming SidecarNaming) (Value, bool, error) {
	block, err := ProcessItem(path, selection, sorter, dec, naming)
	if err != nil {
		return Nil, false, err
	}
	v, ok := block.Get(field)
	return v, ok, nil
}

// aggregatorFrontier walks item and its descendants in DFS pre-order,
// starting at item itself, yielding a FieldHit at the first node on
// each branch where field is defined, and never descending past that
// node. A positive limit stops the walk as soon as that many hits have
// been gathered, so a first-hit caller does not pay for the rest of
// the tree; limit 0 means no cap. I/O and parse errors at a given node
// are logged and that branch is simply abandoned, never aborting the
// walk.
func aggregatorFrontier(item, field string, selection Selection, sorter Sorter, dec Decoder, naming SidecarNaming, limit int) []FieldHit {
	var hits []FieldHit

	frontier := []string{item}
	for len(frontier) > 0 {
		p := frontier[0]
		frontier = frontier[1:]

		v, ok, err := ResolveField(p, field, selection, sorter, dec, naming)
		if err != nil {
			logx.Warnf("cannot process metadata for %s: %s", p, err)
			continue
		}
		if ok {
			hits = append(hits, FieldHit{Value: v, Path: p})
			if limit > 0 && len(hits) >= limit {
				return hits
			}
			continue
		}

		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			continue
		}
		children, err := selection.SelectInDirSorted(p, sorter)
		if err != nil {
			logx.Warnf("cannot list %s: %s", p, err)
			continue
		}
		var toPrepend []string
		for _, r := range children {
			if r.Err != nil {
				logx.Warnf("cannot select entry under %s: %s", p, r.Err)
				continue
			}
			toPrepend = append(toPrepend, r.Path)
		}
		// Enqueue at the front, leftmost child first, so DFS pre-order
		// is preserved rather than degrading to breadth-first.
		frontier = append(toPrepend, frontier...)
	}

	return hits
}

// Aggregate resolves field across item's descendant sub-tree,
// folding the hits per method. AggFirst caps the walk at one hit.
func Aggregate(item, field string, selection Selection, sorter Sorter, dec Decoder, naming SidecarNaming, method AggMethod) Value {
	switch method {
	case AggFirst:
		hits := aggregatorFrontier(item, field, selection, sorter, dec, naming, 1)
		if len(hits) == 0 {
			return Nil
		}
		return hits[0].Value
	default: // AggCollect
		hits := aggregatorFrontier(item, field, selection, sorter, dec, naming, 0)
		vs := make([]Value, 0, len(hits))
		for _, h := range hits {
			vs = append(vs, h.Value)
		}
		return NewSequence(vs)
	}
}
