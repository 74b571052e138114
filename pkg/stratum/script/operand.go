// Package script is a stack machine over lazy value streams: a small set
// of operand kinds (Value, Stream, Usize, Predicate, Converter) and a
// fixed-arity operator library that pops operands off a stack and
// pushes exactly one result.
package script

import (
	"github.com/gobbles/stratum/pkg/stratum"
)

// Kind identifies which alternative of Operand is populated.
type Kind int

const (
	KindValue Kind = iota
	KindStream
	KindUsize
	KindPredicate
	KindConverter
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindStream:
		return "stream"
	case KindUsize:
		return "usize"
	case KindPredicate:
		return "predicate"
	case KindConverter:
		return "converter"
	default:
		return "unknown"
	}
}

// StreamFunc is a single-use, demand-driven producer of values: each
// call returns either the next value, or (zero, false, nil) at
// exhaustion, or (zero, false, err) on failure. Once it has reported
// exhaustion or an error it must keep doing so.
type StreamFunc func() (stratum.Value, bool, error)

// Predicate is a total unary test over a value: predicates
// never fail. A predicate built on a fallible comparison (e.g. an
// ordering test against an incomparable operand) reports false rather
// than propagating an error.
type Predicate func(stratum.Value) bool

// Converter is a fallible unary value transform; failures propagate as
// a stream error at the point the value is forced.
type Converter func(stratum.Value) (stratum.Value, error)

// Operand is the tagged union the engine's stack holds.
type Operand struct {
	kind   Kind
	value  stratum.Value
	stream StreamFunc
	usize  uint64
	pred   Predicate
	conv   Converter
}

// ValueOperand wraps a concrete Value.
func ValueOperand(v stratum.Value) Operand { return Operand{kind: KindValue, value: v} }

// StreamOperand wraps a lazy producer.
func StreamOperand(fn StreamFunc) Operand { return Operand{kind: KindStream, stream: fn} }

// UsizeOperand wraps a non-negative integer.
func UsizeOperand(n uint64) Operand { return Operand{kind: KindUsize, usize: n} }

// PredicateOperand wraps a total unary test.
func PredicateOperand(p Predicate) Operand { return Operand{kind: KindPredicate, pred: p} }

// ConverterOperand wraps a fallible unary transform.
func ConverterOperand(c Converter) Operand { return Operand{kind: KindConverter, conv: c} }

// Kind reports which alternative is populated.
func (o Operand) Kind() Kind { return o.kind }

// AsValue returns o as a Value, forcing a Stream by draining it into a
// Sequence (the first error encountered aborts the force).
func (o Operand) AsValue() (stratum.Value, error) {
	switch o.kind {
	case KindValue:
		return o.value, nil
	case KindStream:
		var vs []stratum.Value
		for {
			v, ok, err := o.stream()
			if err != nil {
				return stratum.Nil, err
			}
			if !ok {
				return stratum.NewSequence(vs), nil
			}
			vs = append(vs, v)
		}
	default:
		return stratum.Nil, stratum.ErrNotIterable
	}
}

// AsUsize returns o's wrapped integer.
func (o Operand) AsUsize() (uint64, error) {
	if o.kind != KindUsize {
		return 0, stratum.ErrNotUsize
	}
	return o.usize, nil
}

// AsPredicate returns o's wrapped predicate.
func (o Operand) AsPredicate() (Predicate, error) {
	if o.kind != KindPredicate {
		return nil, stratum.ErrNotPredicate
	}
	return o.pred, nil
}

// AsConverter returns o's wrapped converter.
func (o Operand) AsConverter() (Converter, error) {
	if o.kind != KindConverter {
		return nil, stratum.ErrNotConverter
	}
	return o.conv, nil
}
