package stratum

import "path/filepath"

// PathIterator is the scanner-style contract a Plexer consumes: Next
// advances and reports availability, Path returns the current value,
// and Err reports any I/O failure the producer encountered. It mirrors
// ChildWalker and ParentWalker so either can feed a Plexer directly.
type PathIterator interface {
	Next() bool
	Path() string
	Err() error
}

// sliceIterator adapts a plain slice of paths to PathIterator, used
// internally once the Seq case has materialized and sorted its input.
type sliceIterator struct {
	paths []string
	i     int
}

func (s *sliceIterator) Next() bool {
	if s.i >= len(s.paths) {
		return false
	}
	s.i++
	return true
}
func (s *sliceIterator) Path() string { return s.paths[s.i-1] }
func (s *sliceIterator) Err() error   { return nil }

// PlexResult is one item produced by a Plexer: either a successful
// (path, block) pairing, or a diagnostic error.
type PlexResult struct {
	Path  string
	Block *Block
	Err   error
}

// Plexer binds one parsed Schema to an iterator of candidate item
// paths, emitting (path, block) pairs or diagnostic errors. It is a
// fused iterator: once exhausted, it stays exhausted.
type Plexer struct {
	kind SchemaKind
	path PathIterator

	// One
	oneBlock *Block
	oneTaken bool
	oneDone  bool

	// Seq
	seqBlocks []*Block
	seqIdx    int
	seqPaths  []string
	seqPIdx   int

	// Map
	mapping *BlockMapping
	mapDone bool
}

// NewPlexer constructs a Plexer for schema over pathIter, using sorter
// to order paths for a Seq schema (materializing the iterator first).
func NewPlexer(schema Schema, pathIter PathIterator, sorter Sorter) *Plexer {
	p := &Plexer{kind: schema.Kind(), path: pathIter}
	switch schema.Kind() {
	case SchemaOne:
		b, _ := schema.One()
		p.oneBlock = b
	case SchemaSeq:
		bs, _ := schema.Seq()
		p.seqBlocks = bs
		var paths []string
		for pathIter.Next() {
			paths = append(paths, pathIter.Path())
		}
		sorter.SortPaths(paths)
		p.seqPaths = paths
	case SchemaMap:
		m, _ := schema.Map()
		p.mapping = m
	}
	return p
}

// Next produces the next PlexResult, or reports false once exhausted.
func (p *Plexer) Next() (PlexResult, bool) {
	switch p.kind {
	case SchemaOne:
		return p.nextOne()
	case SchemaSeq:
		return p.nextSeq()
	default:
		return p.nextMap()
	}
}

func (p *Plexer) nextOne() (PlexResult, bool) {
	if p.oneDone {
		return PlexResult{}, false
	}
	hasPath := p.path.Next()
	if hasPath {
		if err := p.path.Err(); err != nil {
			return PlexResult{Err: err}, true
		}
	}
	switch {
	case !p.oneTaken && hasPath:
		p.oneTaken = true
		return PlexResult{Path: p.path.Path(), Block: p.oneBlock}, true
	case !p.oneTaken && !hasPath:
		p.oneDone = true
		return PlexResult{Err: &UnusedBlockError{Block: p.oneBlock}}, true
	case p.oneTaken && hasPath:
		return PlexResult{Err: &UnusedItemPathError{Path: p.path.Path()}}, true
	default: // taken && !hasPath
		p.oneDone = true
		return PlexResult{}, false
	}
}

func (p *Plexer) nextSeq() (PlexResult, bool) {
	haveBlock := p.seqIdx < len(p.seqBlocks)
	havePath := p.seqPIdx < len(p.seqPaths)
	switch {
	case haveBlock && havePath:
		b := p.seqBlocks[p.seqIdx]
		path := p.seqPaths[p.seqPIdx]
		p.seqIdx++
		p.seqPIdx++
		return PlexResult{Path: path, Block: b}, true
	case haveBlock && !havePath:
		b := p.seqBlocks[p.seqIdx]
		p.seqIdx++
		return PlexResult{Err: &UnusedBlockError{Block: b}}, true
	case !haveBlock && havePath:
		path := p.seqPaths[p.seqPIdx]
		p.seqPIdx++
		return PlexResult{Err: &UnusedItemPathError{Path: path}}, true
	default:
		return PlexResult{}, false
	}
}

func (p *Plexer) nextMap() (PlexResult, bool) {
	if p.mapDone {
		return PlexResult{}, false
	}
	if p.path.Next() {
		if err := p.path.Err(); err != nil {
			return PlexResult{Err: err}, true
		}
		path := p.path.Path()
		name := filepath.Base(path)
		if name == "" || name == "." || name == string(filepath.Separator) {
			return PlexResult{Err: &NamelessItemPathError{Path: path}}, true
		}
		block, ok := p.mapping.Get(name)
		if !ok {
			return PlexResult{Err: &UnusedItemPathError{Path: path}}, true
		}
		p.mapping.Delete(name)
		return PlexResult{Path: path, Block: block}, true
	}
	// Path iterator exhausted: drain remaining mapping entries, in
	// their iteration order, as unused tagged blocks.
	pair := p.mapping.Oldest()
	if pair == nil {
		p.mapDone = true
		return PlexResult{}, false
	}
	p.mapping.Delete(pair.Key)
	return PlexResult{Err: &UnusedTaggedBlockError{Block: pair.Value, Tag: pair.Key}}, true
}
