package script

import "github.com/gobbles/stratum/pkg/stratum"

// Iterable is the IterableLike abstraction: any operand that is
// either a Stream or a Value::Sequence, unified behind one pull
// interface. wasStream records which, so operators can make their
// output kind follow their input kind.
type Iterable struct {
	next      StreamFunc
	wasStream bool
}

// AsIterable views op as an Iterable, or reports ErrNotIterable if op
// is neither a Stream nor a Sequence Value.
func AsIterable(op Operand) (Iterable, error) {
	switch op.kind {
	case KindStream:
		return Iterable{next: op.stream, wasStream: true}, nil
	case KindValue:
		seq, err := op.value.AsSequence()
		if err != nil {
			return Iterable{}, stratum.ErrNotIterable
		}
		return sliceIterable(seq), nil
	default:
		return Iterable{}, stratum.ErrNotIterable
	}
}

// sliceIterable adapts an in-memory slice to the pull interface.
func sliceIterable(vs []stratum.Value) Iterable {
	i := 0
	return Iterable{
		wasStream: false,
		next: func() (stratum.Value, bool, error) {
			if i >= len(vs) {
				return stratum.Nil, false, nil
			}
			v := vs[i]
			i++
			return v, true, nil
		},
	}
}

// Next pulls the next element.
func (it Iterable) Next() (stratum.Value, bool, error) { return it.next() }

// collectAll drains next to completion, or to the first error.
func collectAll(next StreamFunc) ([]stratum.Value, error) {
	var out []stratum.Value
	for {
		v, ok, err := next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, v)
	}
}

// wrapLike produces the result Operand for an iterable-producing
// operator: if the input was a Stream, the result stays a lazily
// pulled Stream; if the input was a Sequence, the result is collected
// immediately into a Sequence Value so any error surfaces at the
// operator call rather than being deferred.
func wrapLike(wasStream bool, next StreamFunc) (Operand, error) {
	if wasStream {
		return StreamOperand(next), nil
	}
	vs, err := collectAll(next)
	if err != nil {
		return Operand{}, err
	}
	return ValueOperand(stratum.NewSequence(vs)), nil
}
