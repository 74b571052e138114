package script

import (
	"github.com/shopspring/decimal"

	"github.com/gobbles/stratum/pkg/stratum"
)

// toDecimal widens v to a decimal, or reports ErrNotNumeric.
func toDecimal(v stratum.Value) (decimal.Decimal, error) {
	if !v.IsNumeric() {
		return decimal.Decimal{}, stratum.ErrNotNumeric
	}
	d, _ := v.AsDecimal()
	return d, nil
}

// numericValue renders a decimal result back as an Integer Value when
// every input was an Integer, otherwise as a Decimal Value — keeping
// Sum/Product over a stream of all-Integer inputs itself Integer.
func numericValue(d decimal.Decimal, allInt bool) stratum.Value {
	if allInt {
		return stratum.NewInt(d.IntPart())
	}
	return stratum.NewDecimal(d)
}

func sumReduce(it Iterable) (stratum.Value, error) {
	total := decimal.Zero
	allInt := true
	for {
		v, ok, err := it.Next()
		if err != nil {
			return stratum.Nil, err
		}
		if !ok {
			return numericValue(total, allInt), nil
		}
		d, err := toDecimal(v)
		if err != nil {
			return stratum.Nil, err
		}
		if v.Kind() != stratum.KindInt {
			allInt = false
		}
		total = total.Add(d)
	}
}

func productReduce(it Iterable) (stratum.Value, error) {
	total := decimal.NewFromInt(1)
	allInt := true
	for {
		v, ok, err := it.Next()
		if err != nil {
			return stratum.Nil, err
		}
		if !ok {
			return numericValue(total, allInt), nil
		}
		d, err := toDecimal(v)
		if err != nil {
			return stratum.Nil, err
		}
		if v.Kind() != stratum.KindInt {
			allInt = false
		}
		total = total.Mul(d)
	}
}

func maxReduce(it Iterable) (stratum.Value, error) {
	return minMaxReduce(it, true)
}

func minReduce(it Iterable) (stratum.Value, error) {
	return minMaxReduce(it, false)
}

func minMaxReduce(it Iterable, wantMax bool) (stratum.Value, error) {
	var best stratum.Value
	var bestD decimal.Decimal
	has := false
	for {
		v, ok, err := it.Next()
		if err != nil {
			return stratum.Nil, err
		}
		if !ok {
			if !has {
				return stratum.Nil, stratum.ErrEmptyIterable
			}
			return best, nil
		}
		d, err := toDecimal(v)
		if err != nil {
			return stratum.Nil, err
		}
		if !has {
			best, bestD, has = v, d, true
			continue
		}
		cmp := d.Cmp(bestD)
		if (wantMax && cmp > 0) || (!wantMax && cmp < 0) {
			best, bestD = v, d
		}
	}
}
