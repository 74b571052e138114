package stratum

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Block is an insertion-ordered mapping from field name to Value. Order
// is preserved for reproducibility (diagnostics, round-trip
// serialization) but carries no semantic weight for equality.
type Block = orderedmap.OrderedMap[string, Value]

// NewBlock returns an empty Block.
func NewBlock() *Block {
	return orderedmap.New[string, Value]()
}

// CloneBlock returns a shallow copy of b, preserving key order.
func CloneBlock(b *Block) *Block {
	out := NewBlock()
	if b == nil {
		return out
	}
	for pair := b.Oldest(); pair != nil; pair = pair.Next() {
		out.Set(pair.Key, pair.Value)
	}
	return out
}

// Mapping is the Key-keyed counterpart of Block, used for the Mapping
// alternative of Value. Unlike Block, whose field names are always
// strings, a Mapping's keys may be string or integer (e.g. a sidecar
// field whose decoded value is itself a YAML mapping with numeric
// keys).
type Mapping = orderedmap.OrderedMap[Key, Value]

// NewMappingMap returns an empty Mapping.
func NewMappingMap() *Mapping {
	return orderedmap.New[Key, Value]()
}

// BlockAsValue wraps b as a Mapping Value, re-keying every string field
// name as a string Key. Used to seed a value stream at the root key
// path, where the "current value" at an ancestor is the whole
// block.
func BlockAsValue(b *Block) Value {
	m := NewMappingMap()
	if b != nil {
		for pair := b.Oldest(); pair != nil; pair = pair.Next() {
			m.Set(StringKey(pair.Key), pair.Value)
		}
	}
	return NewMapping(m)
}

// MergeInto overlays src onto dst, key by key: a key present in both
// keeps dst's existing position if already set, but src's value always
// wins (src is assumed more specific). Keys new to dst are appended in
// src's iteration order. This is the single merge step used by the
// processor to fold one more ancestor level toward the item.
func MergeInto(dst *Block, src *Block) {
	if src == nil {
		return
	}
	for pair := src.Oldest(); pair != nil; pair = pair.Next() {
		dst.Set(pair.Key, pair.Value)
	}
}
