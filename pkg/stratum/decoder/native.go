package decoder

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/gobbles/stratum/pkg/stratum"
)

// nativeKV is one entry of a nativeMap, kept as a slice rather than a
// Go map so that document order survives the decode step; stratum's
// Block and Mapping types are insertion-ordered, so the decoder must
// be too.
type nativeKV struct {
	Key string
	Val interface{}
}

type nativeMap []nativeKV

type nativeSeq []interface{}

// valueFromNative converts one node of the order-preserving
// intermediate tree (produced by either the YAML or JSON reader) into
// a stratum.Value.
func valueFromNative(raw interface{}) (stratum.Value, error) {
	switch v := raw.(type) {
	case nil:
		return stratum.Nil, nil
	case string:
		return stratum.NewString(v), nil
	case bool:
		return stratum.NewBool(v), nil
	case int64:
		return stratum.NewInt(v), nil
	case decimal.Decimal:
		return stratum.NewDecimal(v), nil
	case nativeSeq:
		out := make([]stratum.Value, 0, len(v))
		for _, e := range v {
			ev, err := valueFromNative(e)
			if err != nil {
				return stratum.Nil, err
			}
			out = append(out, ev)
		}
		return stratum.NewSequence(out), nil
	case nativeMap:
		m := stratum.NewMappingMap()
		for _, kv := range v {
			ev, err := valueFromNative(kv.Val)
			if err != nil {
				return stratum.Nil, err
			}
			m.Set(stratum.StringKey(kv.Key), ev)
		}
		return stratum.NewMapping(m), nil
	default:
		return stratum.NewString(toFallbackString(v)), nil
	}
}

func toFallbackString(v interface{}) string {
	switch t := v.(type) {
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return ""
	}
}

// blockFromNative requires raw to be a nativeMap and converts it
// directly into a Block (string-keyed), preserving document order.
func blockFromNative(raw interface{}) (*stratum.Block, bool) {
	m, ok := raw.(nativeMap)
	if !ok {
		return nil, false
	}
	b := stratum.NewBlock()
	for _, kv := range m {
		v, err := valueFromNative(kv.Val)
		if err != nil {
			return nil, false
		}
		b.Set(kv.Key, v)
	}
	return b, true
}

// classifyTopLevel interprets the decoded top-level native node as a
// Schema appropriate to target: One for Parent, Seq or Map for
// Siblings.
func classifyTopLevel(raw interface{}, target stratum.Target) (stratum.Schema, error) {
	switch target {
	case stratum.TargetParent:
		block, ok := blockFromNative(raw)
		if !ok {
			return stratum.Schema{}, &stratum.SchemaMismatchError{Target: target}
		}
		return stratum.OneSchema(block), nil

	case stratum.TargetSiblings:
		if seq, ok := raw.(nativeSeq); ok {
			blocks := make([]*stratum.Block, 0, len(seq))
			for _, e := range seq {
				b, ok := blockFromNative(e)
				if !ok {
					return stratum.Schema{}, &stratum.SchemaMismatchError{Target: target}
				}
				blocks = append(blocks, b)
			}
			return stratum.SeqSchema(blocks), nil
		}
		if m, ok := raw.(nativeMap); ok {
			bm := stratum.NewBlockMapping()
			allBlocks := true
			for _, kv := range m {
				b, ok := blockFromNative(kv.Val)
				if !ok {
					allBlocks = false
					break
				}
				bm.Set(kv.Key, b)
			}
			if allBlocks {
				return stratum.MapSchema(bm), nil
			}
		}
		return stratum.Schema{}, &stratum.SchemaMismatchError{Target: target}

	default:
		return stratum.Schema{}, &stratum.SchemaMismatchError{Target: target}
	}
}
