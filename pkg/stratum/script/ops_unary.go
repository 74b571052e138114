package script

import (
	"sort"

	"github.com/gobbles/stratum/pkg/stratum"
)

// unaryOp pops one operand (an IterableLike) and pushes one result.
type unaryOp func(Iterable) (Operand, error)

func opCollect(it Iterable) (Operand, error) {
	vs, err := collectAll(it.next)
	if err != nil {
		return Operand{}, err
	}
	return ValueOperand(stratum.NewSequence(vs)), nil
}

func opCount(it Iterable) (Operand, error) {
	n := 0
	for {
		_, ok, err := it.Next()
		if err != nil {
			return Operand{}, err
		}
		if !ok {
			return ValueOperand(stratum.NewInt(int64(n))), nil
		}
		n++
	}
}

func opFirst(it Iterable) (Operand, error) {
	v, ok, err := it.Next()
	if err != nil {
		return Operand{}, err
	}
	if !ok {
		return ValueOperand(stratum.Nil), nil
	}
	return ValueOperand(v), nil
}

func opLast(it Iterable) (Operand, error) {
	var last stratum.Value = stratum.Nil
	for {
		v, ok, err := it.Next()
		if err != nil {
			return Operand{}, err
		}
		if !ok {
			return ValueOperand(last), nil
		}
		last = v
	}
}

// nth (arity 2: Iter, Usize) is wired through ops_binary.go's opNth and
// registry.go's arity-2 entry but implemented here alongside its unary
// siblings.
func nth(it Iterable, n uint64) (Operand, error) {
	var i uint64
	for {
		v, ok, err := it.Next()
		if err != nil {
			return Operand{}, err
		}
		if !ok {
			return Operand{}, stratum.ErrOutOfBounds
		}
		if i == n {
			return ValueOperand(v), nil
		}
		i++
	}
}

func opMax(it Iterable) (Operand, error) {
	v, err := maxReduce(it)
	if err != nil {
		return Operand{}, err
	}
	return ValueOperand(v), nil
}

func opMin(it Iterable) (Operand, error) {
	v, err := minReduce(it)
	if err != nil {
		return Operand{}, err
	}
	return ValueOperand(v), nil
}

func opSum(it Iterable) (Operand, error) {
	v, err := sumReduce(it)
	if err != nil {
		return Operand{}, err
	}
	return ValueOperand(v), nil
}

func opProduct(it Iterable) (Operand, error) {
	v, err := productReduce(it)
	if err != nil {
		return Operand{}, err
	}
	return ValueOperand(v), nil
}

func opAllEqual(it Iterable) (Operand, error) {
	var first stratum.Value
	has := false
	for {
		v, ok, err := it.Next()
		if err != nil {
			return Operand{}, err
		}
		if !ok {
			return ValueOperand(stratum.NewBool(true)), nil
		}
		if !has {
			first, has = v, true
			continue
		}
		if !first.Equal(v) {
			return ValueOperand(stratum.NewBool(false)), nil
		}
	}
}

func opSort(it Iterable) (Operand, error) {
	vs, err := collectAll(it.next)
	if err != nil {
		return Operand{}, err
	}
	out := make([]stratum.Value, len(vs))
	copy(out, vs)
	var sortErr error
	sort.SliceStable(out, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		c, err := out[i].Compare(out[j])
		if err != nil {
			sortErr = err
			return false
		}
		return c < 0
	})
	if sortErr != nil {
		return Operand{}, sortErr
	}
	return ValueOperand(stratum.NewSequence(out)), nil
}

func opRev(it Iterable) (Operand, error) {
	vs, err := collectAll(it.next)
	if err != nil {
		return Operand{}, err
	}
	out := make([]stratum.Value, len(vs))
	for i, v := range vs {
		out[len(vs)-1-i] = v
	}
	return ValueOperand(stratum.NewSequence(out)), nil
}

func opFlatten(it Iterable) (Operand, error) {
	next := func() func() (stratum.Value, bool, error) {
		var cur []stratum.Value
		var idx int
		return func() (stratum.Value, bool, error) {
			for {
				if idx < len(cur) {
					v := cur[idx]
					idx++
					return v, true, nil
				}
				v, ok, err := it.Next()
				if err != nil {
					return stratum.Nil, false, err
				}
				if !ok {
					return stratum.Nil, false, nil
				}
				if seq, err := v.AsSequence(); err == nil {
					cur, idx = seq, 0
					continue
				}
				return v, true, nil
			}
		}
	}()
	return wrapLike(it.wasStream, next)
}

func opDedup(it Iterable) (Operand, error) {
	var prev stratum.Value
	has := false
	next := func() (stratum.Value, bool, error) {
		for {
			v, ok, err := it.Next()
			if err != nil {
				return stratum.Nil, false, err
			}
			if !ok {
				return stratum.Nil, false, nil
			}
			if has && prev.Equal(v) {
				continue
			}
			prev, has = v, true
			return v, true, nil
		}
	}
	return wrapLike(it.wasStream, next)
}

func opUnique(it Iterable) (Operand, error) {
	seen := map[string]struct{}{}
	next := func() (stratum.Value, bool, error) {
		for {
			v, ok, err := it.Next()
			if err != nil {
				return stratum.Nil, false, err
			}
			if !ok {
				return stratum.Nil, false, nil
			}
			key := stratum.CanonicalKey(v)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			return v, true, nil
		}
	}
	return wrapLike(it.wasStream, next)
}
