// Package stratum resolves tree-assembled metadata for items in a
// hierarchical filesystem from sidecar files, and transforms the result
// through a small stack-based script engine.
package stratum

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind identifies which alternative of the Value sum type is populated.
type Kind int

const (
	KindNil Kind = iota
	KindString
	KindInt
	KindDecimal
	KindBool
	KindSequence
	KindMapping
)

// String returns the name of the kind, used in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindString:
		return "string"
	case KindInt:
		return "integer"
	case KindDecimal:
		return "decimal"
	case KindBool:
		return "boolean"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Value is the recursive value type flowing through blocks, streams, and
// the script engine. The zero Value is Nil.
type Value struct {
	kind Kind
	str  string
	i    int64
	dec  decimal.Decimal
	b    bool
	seq  []Value
	m    *Mapping
}

// Nil is the canonical absent value.
var Nil = Value{kind: KindNil}

// NewString wraps a string.
func NewString(s string) Value { return Value{kind: KindString, str: s} }

// NewInt wraps a signed integer.
func NewInt(i int64) Value { return Value{kind: KindInt, i: i} }

// NewDecimal wraps an arbitrary-precision signed decimal.
func NewDecimal(d decimal.Decimal) Value { return Value{kind: KindDecimal, dec: d} }

// NewBool wraps a boolean.
func NewBool(b bool) Value { return Value{kind: KindBool, b: b} }

// NewSequence wraps an ordered list of values. The slice is not copied;
// callers should not mutate it afterward.
func NewSequence(vs []Value) Value { return Value{kind: KindSequence, seq: vs} }

// NewMapping wraps an insertion-ordered, Key-keyed mapping.
func NewMapping(m *Mapping) Value { return Value{kind: KindMapping, m: m} }

// Kind reports which alternative is populated.
func (v Value) Kind() Kind { return v.kind }

// IsNil reports whether v is the Nil alternative.
func (v Value) IsNil() bool { return v.kind == KindNil }

// AsString returns the wrapped string, or an error if v is not a String.
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", fmt.Errorf("value is %s, not string", v.kind)
	}
	return v.str, nil
}

// AsInt returns the wrapped integer, or an error if v is not an Integer.
func (v Value) AsInt() (int64, error) {
	if v.kind != KindInt {
		return 0, fmt.Errorf("value is %s, not integer", v.kind)
	}
	return v.i, nil
}

// AsDecimal returns v widened to a Decimal. Valid for Integer and Decimal.
func (v Value) AsDecimal() (decimal.Decimal, error) {
	switch v.kind {
	case KindDecimal:
		return v.dec, nil
	case KindInt:
		return decimal.NewFromInt(v.i), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("value is %s, not numeric", v.kind)
	}
}

// IsNumeric reports whether v is an Integer or a Decimal.
func (v Value) IsNumeric() bool { return v.kind == KindInt || v.kind == KindDecimal }

// AsBool returns the wrapped boolean, or an error if v is not a Boolean.
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, fmt.Errorf("value is %s, not boolean", v.kind)
	}
	return v.b, nil
}

// AsSequence returns the wrapped slice, or an error if v is not a Sequence.
func (v Value) AsSequence() ([]Value, error) {
	if v.kind != KindSequence {
		return nil, fmt.Errorf("value is %s, not sequence", v.kind)
	}
	return v.seq, nil
}

// AsMapping returns the wrapped mapping, or an error if v is not a Mapping.
func (v Value) AsMapping() (*Mapping, error) {
	if v.kind != KindMapping {
		return nil, fmt.Errorf("value is %s, not mapping", v.kind)
	}
	return v.m, nil
}

// Equal reports structural equality between v and other.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		if v.IsNumeric() && other.IsNumeric() {
			a, _ := v.AsDecimal()
			b, _ := other.AsDecimal()
			return a.Equal(b)
		}
		return false
	}
	switch v.kind {
	case KindNil:
		return true
	case KindString:
		return v.str == other.str
	case KindInt:
		return v.i == other.i
	case KindDecimal:
		return v.dec.Equal(other.dec)
	case KindBool:
		return v.b == other.b
	case KindSequence:
		if len(v.seq) != len(other.seq) {
			return false
		}
		for i := range v.seq {
			if !v.seq[i].Equal(other.seq[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if v.m.Len() != other.m.Len() {
			return false
		}
		for pair := v.m.Oldest(); pair != nil; pair = pair.Next() {
			ov, ok := other.m.Get(pair.Key)
			if !ok || !pair.Value.Equal(ov) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// ErrNotComparable is returned by Compare when two values have
// incompatible kinds, or contain a nested incomparable pair.
var ErrNotComparable = fmt.Errorf("values are not comparable")

// Compare establishes a total order between v and other for comparable
// kinds: String-String (lexicographic), Bool-Bool (false < true),
// Integer/Decimal against Integer/Decimal (numeric, integers widened
// losslessly to decimal), and Sequence-Sequence (lexicographic,
// element-wise, itself requiring every paired element to be
// comparable). Nil compares equal only to Nil. Mappings are never
// comparable. It returns -1, 0, or 1, or ErrNotComparable.
func (v Value) Compare(other Value) (int, error) {
	if v.kind == KindNil && other.kind == KindNil {
		return 0, nil
	}
	if v.IsNumeric() && other.IsNumeric() {
		a, _ := v.AsDecimal()
		b, _ := other.AsDecimal()
		return a.Cmp(b), nil
	}
	if v.kind != other.kind {
		return 0, ErrNotComparable
	}
	switch v.kind {
	case KindString:
		switch {
		case v.str < other.str:
			return -1, nil
		case v.str > other.str:
			return 1, nil
		default:
			return 0, nil
		}
	case KindBool:
		if v.b == other.b {
			return 0, nil
		}
		if !v.b && other.b {
			return -1, nil
		}
		return 1, nil
	case KindSequence:
		for i := 0; i < len(v.seq) && i < len(other.seq); i++ {
			c, err := v.seq[i].Compare(other.seq[i])
			if err != nil {
				return 0, err
			}
			if c != 0 {
				return c, nil
			}
		}
		switch {
		case len(v.seq) < len(other.seq):
			return -1, nil
		case len(v.seq) > len(other.seq):
			return 1, nil
		default:
			return 0, nil
		}
	default:
		return 0, ErrNotComparable
	}
}

// CanonicalKey returns a string encoding of v. Values with the same
// encoding are always Equal, and Equal values share one encoding (an
// Integer and a Decimal with the same numeric value included), with one
// exception: Mapping entries are encoded in insertion order, so Equal
// Mappings holding their entries in different orders get different
// encodings. Used by the script engine's Unique operator to dedup via a set
// rather than an O(n^2) pairwise comparison.
func CanonicalKey(v Value) string { return canonicalKey(v) }

// canonicalKey returns a string encoding of v suitable for use as a set
// key in Unique, where structural equality (not a total order) is all
// that's required.
func canonicalKey(v Value) string {
	switch v.kind {
	case KindNil:
		return "n:"
	case KindString:
		return fmt.Sprintf("s%d:%s", len(v.str), v.str)
	case KindInt, KindDecimal:
		d, _ := v.AsDecimal()
		return "d:" + d.String() + ";"
	case KindBool:
		return fmt.Sprintf("b:%t", v.b)
	case KindSequence:
		out := "q:["
		for _, e := range v.seq {
			out += canonicalKey(e) + ","
		}
		return out + "]"
	case KindMapping:
		out := "m:{"
		for pair := v.m.Oldest(); pair != nil; pair = pair.Next() {
			out += fmt.Sprintf("%d", pair.Key.kind) + canonicalKey(NewString(pair.Key.String())) + "=" + canonicalKey(pair.Value) + ","
		}
		return out + "}"
	default:
		return "?"
	}
}
