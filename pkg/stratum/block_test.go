package stratum

import "testing"

func blockKeys(b *Block) []string {
	var out []string
	for pair := b.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

func TestMergeIntoChildOverridesParentByKey(t *testing.T) {
	dst := NewBlock()
	dst.Set("x", NewString("R"))

	src := NewBlock()
	src.Set("x", NewString("A"))
	src.Set("y", NewString("A"))

	MergeInto(dst, src)

	x, _ := dst.Get("x")
	y, _ := dst.Get("y")
	if s, _ := x.AsString(); s != "A" {
		t.Fatalf("x should be overridden to %q, got %q", "A", s)
	}
	if s, _ := y.AsString(); s != "A" {
		t.Fatalf("y should be added as %q, got %q", "A", s)
	}
}

// root/self.yml: {x: R}; a/self.yml: {x: A, y: A}; a/item.yml entry
// for b: {y: B}; b/self.yml: {z: Z}. Merging root-to-leaf should
// produce {x: A, y: B, z: Z} with insertion order x, y, z (x first
// seen at root, y first seen at a, z first seen at b).
func TestMergeIntoAncestorChainInsertionOrder(t *testing.T) {
	flattened := NewBlock()

	root := NewBlock()
	root.Set("x", NewString("R"))
	MergeInto(flattened, root)

	a := NewBlock()
	a.Set("x", NewString("A"))
	a.Set("y", NewString("A"))
	MergeInto(flattened, a)

	bOverride := NewBlock()
	bOverride.Set("y", NewString("B"))
	MergeInto(flattened, bOverride)

	bSelf := NewBlock()
	bSelf.Set("z", NewString("Z"))
	MergeInto(flattened, bSelf)

	wantOrder := []string{"x", "y", "z"}
	if got := blockKeys(flattened); !equalStrings(got, wantOrder) {
		t.Fatalf("key order = %v, want %v", got, wantOrder)
	}
	x, _ := flattened.Get("x")
	y, _ := flattened.Get("y")
	z, _ := flattened.Get("z")
	if s, _ := x.AsString(); s != "A" {
		t.Fatalf("x = %q, want A", s)
	}
	if s, _ := y.AsString(); s != "B" {
		t.Fatalf("y = %q, want B", s)
	}
	if s, _ := z.AsString(); s != "Z" {
		t.Fatalf("z = %q, want Z", s)
	}
}

func TestMergeIntoNilSrcIsNoop(t *testing.T) {
	dst := NewBlock()
	dst.Set("x", NewString("keep"))
	MergeInto(dst, nil)
	x, _ := dst.Get("x")
	if s, _ := x.AsString(); s != "keep" {
		t.Fatalf("merging a nil src should be a no-op, got %q", s)
	}
}

func TestCloneBlockIsIndependent(t *testing.T) {
	orig := NewBlock()
	orig.Set("a", NewInt(1))
	clone := CloneBlock(orig)
	clone.Set("a", NewInt(2))
	clone.Set("b", NewInt(3))

	origA, _ := orig.Get("a")
	if n, _ := origA.AsInt(); n != 1 {
		t.Fatalf("mutating the clone should not affect the original, got %d", n)
	}
	if _, ok := orig.Get("b"); ok {
		t.Fatal("a key added to the clone should not appear in the original")
	}
}

func TestBlockAsValueRoundTrips(t *testing.T) {
	b := NewBlock()
	b.Set("name", NewString("alice"))
	v := BlockAsValue(b)
	m, err := v.AsMapping()
	if err != nil {
		t.Fatal(err)
	}
	got, ok := m.Get(StringKey("name"))
	if !ok {
		t.Fatal("expected the \"name\" key to be present")
	}
	if s, _ := got.AsString(); s != "alice" {
		t.Fatalf("got %q, want alice", s)
	}
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
