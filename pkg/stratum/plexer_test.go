package stratum

import "testing"

func strVal(s string) Value { return NewString(s) }

func blockWithKey(key string, v Value) *Block {
	b := NewBlock()
	b.Set(key, v)
	return b
}

func drain(p *Plexer) []PlexResult {
	var out []PlexResult
	for {
		r, ok := p.Next()
		if !ok {
			break
		}
		out = append(out, r)
	}
	return out
}

func TestPlexerOneSinglePath(t *testing.T) {
	block := blockWithKey("k", strVal("v"))
	p := NewPlexer(OneSchema(block), &sliceIterator{paths: []string{"/a"}}, DefaultSorter())
	results := drain(p)
	if len(results) != 1 || results[0].Err != nil || results[0].Path != "/a" || results[0].Block != block {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestPlexerOneZeroPathsYieldsUnusedBlock(t *testing.T) {
	block := blockWithKey("k", strVal("v"))
	p := NewPlexer(OneSchema(block), &sliceIterator{}, DefaultSorter())
	results := drain(p)
	if len(results) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %+v", results)
	}
	if _, ok := results[0].Err.(*UnusedBlockError); !ok {
		t.Fatalf("expected UnusedBlockError, got %T", results[0].Err)
	}
}

func TestPlexerOneExtraPathsYieldUnusedItemPath(t *testing.T) {
	block := blockWithKey("k", strVal("v"))
	p := NewPlexer(OneSchema(block), &sliceIterator{paths: []string{"/a", "/b", "/c"}}, DefaultSorter())
	results := drain(p)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d: %+v", len(results), results)
	}
	if results[0].Err != nil || results[0].Path != "/a" {
		t.Fatalf("first result should pair the block with the first path: %+v", results[0])
	}
	for _, r := range results[1:] {
		if _, ok := r.Err.(*UnusedItemPathError); !ok {
			t.Fatalf("expected UnusedItemPathError, got %T", r.Err)
		}
	}
}

// Seq([{k:1},{k:2},{k:3}]) plexed against [p1, p2] (sorted) pairs
// p1 with {k:1} and p2 with {k:2}, then reports {k:3} unused.
func TestPlexerSeqExtraBlocks(t *testing.T) {
	b1 := blockWithKey("k", NewInt(1))
	b2 := blockWithKey("k", NewInt(2))
	b3 := blockWithKey("k", NewInt(3))
	p := NewPlexer(SeqSchema([]*Block{b1, b2, b3}), &sliceIterator{paths: []string{"/p2", "/p1"}}, DefaultSorter())
	results := drain(p)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Err != nil || results[0].Path != "/p1" || results[0].Block != b1 {
		t.Fatalf("result 0 = %+v", results[0])
	}
	if results[1].Err != nil || results[1].Path != "/p2" || results[1].Block != b2 {
		t.Fatalf("result 1 = %+v", results[1])
	}
	if ub, ok := results[2].Err.(*UnusedBlockError); !ok || ub.Block != b3 {
		t.Fatalf("result 2 should be UnusedBlockError(b3), got %+v", results[2])
	}
}

func TestPlexerSeqExtraPaths(t *testing.T) {
	b1 := blockWithKey("k", NewInt(1))
	p := NewPlexer(SeqSchema([]*Block{b1}), &sliceIterator{paths: []string{"/p1", "/p2"}}, DefaultSorter())
	results := drain(p)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Block != b1 || results[0].Path != "/p1" {
		t.Fatalf("result 0 = %+v", results[0])
	}
	if _, ok := results[1].Err.(*UnusedItemPathError); !ok {
		t.Fatalf("expected UnusedItemPathError, got %T", results[1].Err)
	}
}

func TestPlexerMapHitsAndMisses(t *testing.T) {
	m := NewBlockMapping()
	bAlice := blockWithKey("name", strVal("alice"))
	bBob := blockWithKey("name", strVal("bob"))
	m.Set("alice.flac", bAlice)
	m.Set("bob.flac", bBob)

	p := NewPlexer(MapSchema(m), &sliceIterator{paths: []string{"/dir/alice.flac", "/dir/carol.flac"}}, DefaultSorter())
	results := drain(p)
	if len(results) != 3 {
		t.Fatalf("expected 3 results (1 hit, 1 miss, 1 leftover), got %d: %+v", len(results), results)
	}
	if results[0].Err != nil || results[0].Block != bAlice {
		t.Fatalf("result 0 should pair alice.flac with bAlice, got %+v", results[0])
	}
	if _, ok := results[1].Err.(*UnusedItemPathError); !ok {
		t.Fatalf("carol.flac should be UnusedItemPath, got %+v", results[1])
	}
	tb, ok := results[2].Err.(*UnusedTaggedBlockError)
	if !ok || tb.Block != bBob || tb.Tag != "bob.flac" {
		t.Fatalf("leftover bob.flac should surface as UnusedTaggedBlockError, got %+v", results[2])
	}
}

// Testable property 4: plexer conservation for Map — emitted path
// multiset equals input path multiset, emitted block multiset equals
// the schema's block multiset.
func TestPlexerMapConservation(t *testing.T) {
	m := NewBlockMapping()
	blockA := blockWithKey("k", NewInt(1))
	blockB := blockWithKey("k", NewInt(2))
	m.Set("a", blockA)
	m.Set("b", blockB)
	paths := []string{"/dir/a", "/dir/b", "/dir/c"}

	p := NewPlexer(MapSchema(m), &sliceIterator{paths: paths}, DefaultSorter())
	results := drain(p)

	gotPaths := map[string]int{}
	gotBlocks := map[*Block]int{}
	for _, r := range results {
		switch e := r.Err.(type) {
		case nil:
			gotPaths[r.Path]++
			gotBlocks[r.Block]++
		case *UnusedItemPathError:
			gotPaths[e.Path]++
		case *UnusedTaggedBlockError:
			gotBlocks[e.Block]++
		}
	}
	for _, want := range paths {
		if gotPaths[want] != 1 {
			t.Fatalf("path %q emitted %d times, want 1: %+v", want, gotPaths[want], results)
		}
	}
	for _, want := range []*Block{blockA, blockB} {
		if gotBlocks[want] != 1 {
			t.Fatalf("block %p emitted %d times, want 1: %+v", want, gotBlocks[want], results)
		}
	}
}

func TestPlexerMapNamelessPath(t *testing.T) {
	m := NewBlockMapping()
	p := NewPlexer(MapSchema(m), &sliceIterator{paths: []string{"/"}}, DefaultSorter())
	results := drain(p)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %+v", results)
	}
	if _, ok := results[0].Err.(*NamelessItemPathError); !ok {
		t.Fatalf("expected NamelessItemPathError, got %T", results[0].Err)
	}
}
