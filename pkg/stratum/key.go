package stratum

import "strconv"

// KeyKind distinguishes the two Key alternatives.
type KeyKind int

const (
	KeyKindString KeyKind = iota
	KeyKindInt
)

// Key is either a string or an integer, used to index a Mapping value.
// String keys compare lexicographically; integer keys compare
// numerically. Comparing a string Key to an integer Key is undefined
// and is never produced by this package's own decoders.
type Key struct {
	kind KeyKind
	s    string
	i    int64
}

// StringKey wraps a string key.
func StringKey(s string) Key { return Key{kind: KeyKindString, s: s} }

// IntKey wraps an integer key.
func IntKey(i int64) Key { return Key{kind: KeyKindInt, i: i} }

// Kind reports which alternative is populated.
func (k Key) Kind() KeyKind { return k.kind }

// String renders the key for diagnostics and for use as a Block field
// name (Blocks are always string-keyed; a Mapping Value may use
// integer keys, which are rendered here in decimal).
func (k Key) String() string {
	if k.kind == KeyKindInt {
		return strconv.FormatInt(k.i, 10)
	}
	return k.s
}

// Equal reports whether two keys denote the same mapping entry.
func (k Key) Equal(other Key) bool {
	if k.kind != other.kind {
		return false
	}
	if k.kind == KeyKindInt {
		return k.i == other.i
	}
	return k.s == other.s
}

// Less orders two same-kind keys; mixed-kind comparison always reports
// false (parsers never emit mixed-kind key sets, per the type's
// invariant).
func (k Key) Less(other Key) bool {
	if k.kind != other.kind {
		return false
	}
	if k.kind == KeyKindInt {
		return k.i < other.i
	}
	return k.s < other.s
}

// KeyPath is a finite ordered list of Keys, used to descend into nested
// Mapping values one step at a time.
type KeyPath []Key

// Resolve descends v one Key at a time. Encountering a non-Mapping
// value or a missing key at any step yields (Nil, false).
func (kp KeyPath) Resolve(v Value) (Value, bool) {
	cur := v
	for _, k := range kp {
		m, err := cur.AsMapping()
		if err != nil {
			return Nil, false
		}
		next, ok := m.Get(k)
		if !ok {
			return Nil, false
		}
		cur = next
	}
	return cur, true
}
