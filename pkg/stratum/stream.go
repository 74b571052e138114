package stratum

// StreamItem is one element produced by a ValueStream: a resolved
// value plus the item path it came from, or an error.
type StreamItem struct {
	Path  string
	Value Value
	Err   error
}

// ValueStream adapts a Plexer's (path, block) pairs into a stream of
// (path, value) pairs at a fixed KeyPath, skipping blocks where the
// key path resolves to nothing. It is fused and single-use, mirroring
// the Plexer it wraps.
type ValueStream struct {
	plexer *Plexer
	path   KeyPath
	done   bool
}

// NewValueStream wraps plexer, resolving keyPath within each block it
// produces.
func NewValueStream(plexer *Plexer, keyPath KeyPath) *ValueStream {
	return &ValueStream{plexer: plexer, path: keyPath}
}

// Next advances the stream, returning the next item and whether one
// was produced. Blocks whose key path does not resolve are skipped
// transparently; plexer diagnostic errors surface as Err items rather
// than being skipped. Only key-path absences within a block are
// silently passed over.
func (vs *ValueStream) Next() (StreamItem, bool) {
	if vs.done {
		return StreamItem{}, false
	}
	for {
		res, ok := vs.plexer.Next()
		if !ok {
			vs.done = true
			return StreamItem{}, false
		}
		if res.Err != nil {
			return StreamItem{Err: res.Err}, true
		}
		v, found := vs.path.Resolve(BlockAsValue(res.Block))
		if !found {
			continue
		}
		return StreamItem{Path: res.Path, Value: v}, true
	}
}

// Collect drains vs entirely into a slice, stopping at (and returning)
// the first error encountered.
func (vs *ValueStream) Collect() ([]Value, error) {
	var out []Value
	for {
		item, ok := vs.Next()
		if !ok {
			return out, nil
		}
		if item.Err != nil {
			return out, item.Err
		}
		out = append(out, item.Value)
	}
}
