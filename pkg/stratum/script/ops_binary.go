package script

import "github.com/gobbles/stratum/pkg/stratum"

func opNth(it Iterable, n uint64) (Operand, error) {
	return nth(it, n)
}

func opStepBy(it Iterable, n uint64) (Operand, error) {
	if n == 0 {
		return Operand{}, stratum.ErrZeroStep
	}
	var i uint64
	next := func() (stratum.Value, bool, error) {
		for {
			v, ok, err := it.Next()
			if err != nil {
				return stratum.Nil, false, err
			}
			if !ok {
				return stratum.Nil, false, nil
			}
			take := i%n == 0
			i++
			if take {
				return v, true, nil
			}
		}
	}
	return wrapLike(it.wasStream, next)
}

func opSkip(it Iterable, n uint64) (Operand, error) {
	var skipped uint64
	next := func() (stratum.Value, bool, error) {
		for skipped < n {
			_, ok, err := it.Next()
			if err != nil {
				return stratum.Nil, false, err
			}
			if !ok {
				return stratum.Nil, false, nil
			}
			skipped++
		}
		return it.Next()
	}
	return wrapLike(it.wasStream, next)
}

func opTake(it Iterable, n uint64) (Operand, error) {
	var taken uint64
	next := func() (stratum.Value, bool, error) {
		if taken >= n {
			return stratum.Nil, false, nil
		}
		v, ok, err := it.Next()
		if err != nil || !ok {
			return stratum.Nil, false, err
		}
		taken++
		return v, true, nil
	}
	return wrapLike(it.wasStream, next)
}

func opFilter(it Iterable, pred Predicate) (Operand, error) {
	next := func() (stratum.Value, bool, error) {
		for {
			v, ok, err := it.Next()
			if err != nil {
				return stratum.Nil, false, err
			}
			if !ok {
				return stratum.Nil, false, nil
			}
			if pred(v) {
				return v, true, nil
			}
		}
	}
	return wrapLike(it.wasStream, next)
}

func opMap(it Iterable, conv Converter) (Operand, error) {
	next := func() (stratum.Value, bool, error) {
		v, ok, err := it.Next()
		if err != nil || !ok {
			return stratum.Nil, false, err
		}
		out, err := conv(v)
		if err != nil {
			return stratum.Nil, false, err
		}
		return out, true, nil
	}
	return wrapLike(it.wasStream, next)
}

func opSkipWhile(it Iterable, pred Predicate) (Operand, error) {
	skipping := true
	next := func() (stratum.Value, bool, error) {
		for {
			v, ok, err := it.Next()
			if err != nil {
				return stratum.Nil, false, err
			}
			if !ok {
				return stratum.Nil, false, nil
			}
			if skipping && pred(v) {
				continue
			}
			skipping = false
			return v, true, nil
		}
	}
	return wrapLike(it.wasStream, next)
}

func opTakeWhile(it Iterable, pred Predicate) (Operand, error) {
	done := false
	next := func() (stratum.Value, bool, error) {
		if done {
			return stratum.Nil, false, nil
		}
		v, ok, err := it.Next()
		if err != nil || !ok {
			done = true
			return stratum.Nil, false, err
		}
		if !pred(v) {
			done = true
			return stratum.Nil, false, nil
		}
		return v, true, nil
	}
	return wrapLike(it.wasStream, next)
}

func opChain(a, b Iterable) (Operand, error) {
	onA := true
	next := func() (stratum.Value, bool, error) {
		for {
			if onA {
				v, ok, err := a.Next()
				if err != nil {
					return stratum.Nil, false, err
				}
				if ok {
					return v, true, nil
				}
				onA = false
				continue
			}
			return b.Next()
		}
	}
	return wrapLike(a.wasStream || b.wasStream, next)
}

func opZip(a, b Iterable) (Operand, error) {
	next := func() (stratum.Value, bool, error) {
		av, aok, aerr := a.Next()
		if aerr != nil {
			return stratum.Nil, false, aerr
		}
		bv, bok, berr := b.Next()
		if berr != nil {
			return stratum.Nil, false, berr
		}
		if !aok || !bok {
			return stratum.Nil, false, nil
		}
		return stratum.NewSequence([]stratum.Value{av, bv}), true, nil
	}
	return wrapLike(a.wasStream || b.wasStream, next)
}

func opInterleave(a, b Iterable) (Operand, error) {
	onA := true
	aDone, bDone := false, false
	next := func() (stratum.Value, bool, error) {
		for {
			if aDone && bDone {
				return stratum.Nil, false, nil
			}
			if onA && !aDone {
				onA = false
				v, ok, err := a.Next()
				if err != nil {
					return stratum.Nil, false, err
				}
				if !ok {
					aDone = true
					continue
				}
				return v, true, nil
			}
			if !bDone {
				onA = true
				v, ok, err := b.Next()
				if err != nil {
					return stratum.Nil, false, err
				}
				if !ok {
					bDone = true
					continue
				}
				return v, true, nil
			}
			onA = true
		}
	}
	return wrapLike(a.wasStream || b.wasStream, next)
}

func opIntersperse(it Iterable, sep stratum.Value) (Operand, error) {
	pending, hasPending := stratum.Nil, false
	started := false
	next := func() (stratum.Value, bool, error) {
		if hasPending {
			hasPending = false
			return pending, true, nil
		}
		v, ok, err := it.Next()
		if err != nil || !ok {
			return stratum.Nil, false, err
		}
		if started {
			pending, hasPending = v, true
			return sep, true, nil
		}
		started = true
		return v, true, nil
	}
	return wrapLike(it.wasStream, next)
}

func opAll(it Iterable, pred Predicate) (Operand, error) {
	for {
		v, ok, err := it.Next()
		if err != nil {
			return Operand{}, err
		}
		if !ok {
			return ValueOperand(stratum.NewBool(true)), nil
		}
		if !pred(v) {
			return ValueOperand(stratum.NewBool(false)), nil
		}
	}
}

func opAny(it Iterable, pred Predicate) (Operand, error) {
	for {
		v, ok, err := it.Next()
		if err != nil {
			return Operand{}, err
		}
		if !ok {
			return ValueOperand(stratum.NewBool(false)), nil
		}
		if pred(v) {
			return ValueOperand(stratum.NewBool(true)), nil
		}
	}
}

func opFind(it Iterable, pred Predicate) (Operand, error) {
	for {
		v, ok, err := it.Next()
		if err != nil {
			return Operand{}, err
		}
		if !ok {
			return Operand{}, stratum.ErrItemNotFound
		}
		if pred(v) {
			return ValueOperand(v), nil
		}
	}
}

func opPosition(it Iterable, pred Predicate) (Operand, error) {
	var i uint64
	for {
		v, ok, err := it.Next()
		if err != nil {
			return Operand{}, err
		}
		if !ok {
			return Operand{}, stratum.ErrItemNotFound
		}
		if pred(v) {
			return ValueOperand(stratum.NewInt(int64(i))), nil
		}
		i++
	}
}
