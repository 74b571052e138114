package script

import "github.com/gobbles/stratum/pkg/stratum"

// EqualsPredicate builds a Predicate testing structural equality
// against want.
func EqualsPredicate(want stratum.Value) Predicate {
	return func(v stratum.Value) bool { return v.Equal(want) }
}

// CompareOp names one of the four relational tests ComparePredicate
// builds.
type CompareOp int

const (
	CompareLess CompareOp = iota
	CompareLessOrEqual
	CompareGreater
	CompareGreaterOrEqual
)

// ComparePredicate builds a Predicate applying op against want.
// Predicates are total: a comparison against an incomparable
// value reports false rather than propagating NotComparable.
func ComparePredicate(op CompareOp, want stratum.Value) Predicate {
	return func(v stratum.Value) bool {
		c, err := v.Compare(want)
		if err != nil {
			return false
		}
		switch op {
		case CompareLess:
			return c < 0
		case CompareLessOrEqual:
			return c <= 0
		case CompareGreater:
			return c > 0
		case CompareGreaterOrEqual:
			return c >= 0
		default:
			return false
		}
	}
}

// NotPredicate negates p.
func NotPredicate(p Predicate) Predicate {
	return func(v stratum.Value) bool { return !p(v) }
}

// FieldConverter builds a Converter that projects a Mapping value
// through kp, yielding Nil (not an error) when the path doesn't
// resolve — mirroring KeyPath.Resolve's own "absence, not failure"
// semantics.
func FieldConverter(kp stratum.KeyPath) Converter {
	return func(v stratum.Value) (stratum.Value, error) {
		out, ok := kp.Resolve(v)
		if !ok {
			return stratum.Nil, nil
		}
		return out, nil
	}
}
