package stratum

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// orderedBlockMap is the concrete insertion-ordered name-to-block map
// backing BlockMapping.
type orderedBlockMap = orderedmap.OrderedMap[string, *Block]

// NewBlockMapping returns an empty BlockMapping.
func NewBlockMapping() *BlockMapping {
	return orderedmap.New[string, *Block]()
}

// SchemaKind identifies which alternative of Schema is populated.
type SchemaKind int

const (
	SchemaOne SchemaKind = iota
	SchemaSeq
	SchemaMap
)

// Schema is the parsed shape of a sidecar file: a single block (One), an
// ordered sequence of blocks (Seq), or a name-to-block mapping (Map). A
// Parent sidecar's schema must be One; a Siblings sidecar's schema must
// be Seq or Map — that invariant is enforced by the decoder, not here.
type Schema struct {
	kind SchemaKind
	one  *Block
	seq  []*Block
	mp   *BlockMapping
}

// BlockMapping is the insertion-ordered name-to-block mapping backing a
// Map schema. Its keys are unique by construction: the decoders in
// package decoder do not reject a repeated tag, and the later entry
// replaces the earlier one.
type BlockMapping = orderedBlockMap

// OneSchema wraps a single block.
func OneSchema(b *Block) Schema { return Schema{kind: SchemaOne, one: b} }

// SeqSchema wraps an ordered sequence of blocks.
func SeqSchema(bs []*Block) Schema { return Schema{kind: SchemaSeq, seq: bs} }

// MapSchema wraps a name-to-block mapping.
func MapSchema(m *BlockMapping) Schema { return Schema{kind: SchemaMap, mp: m} }

// Kind reports which alternative is populated.
func (s Schema) Kind() SchemaKind { return s.kind }

// One returns the wrapped block for a One schema.
func (s Schema) One() (*Block, error) {
	if s.kind != SchemaOne {
		return nil, fmt.Errorf("schema is not One")
	}
	return s.one, nil
}

// Seq returns the wrapped slice for a Seq schema.
func (s Schema) Seq() ([]*Block, error) {
	if s.kind != SchemaSeq {
		return nil, fmt.Errorf("schema is not Seq")
	}
	return s.seq, nil
}

// Map returns the wrapped mapping for a Map schema.
func (s Schema) Map() (*BlockMapping, error) {
	if s.kind != SchemaMap {
		return nil, fmt.Errorf("schema is not Map")
	}
	return s.mp, nil
}
