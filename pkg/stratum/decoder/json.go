package decoder

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gobbles/stratum/pkg/stratum"
)

func init() {
	stratum.RegisterDecoder(stratum.FormatJSON, JSONDecoder{})
}

// JSONDecoder decodes sidecars written in JSON. It reads with a
// token-level json.Decoder rather than unmarshaling into
// map[string]interface{}, because the latter is unordered and JSON
// object key order must survive into the resulting Block.
type JSONDecoder struct{}

// DefaultExtension returns "json".
func (JSONDecoder) DefaultExtension() string { return "json" }

// Decode parses text as JSON and classifies its top level against
// target.
func (JSONDecoder) Decode(text []byte, target stratum.Target) (stratum.Schema, error) {
	dec := json.NewDecoder(bytes.NewReader(text))
	dec.UseNumber()

	native, err := decodeJSONValue(dec)
	if err != nil {
		return stratum.Schema{}, &stratum.DecodeError{Err: err}
	}
	return classifyTopLevel(native, target)
}

func decodeJSONValue(dec *json.Decoder) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return jsonTokenToNative(dec, tok)
}

func jsonTokenToNative(dec *json.Decoder, tok json.Token) (interface{}, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			return decodeJSONArray(dec)
		default:
			return nil, fmt.Errorf("unexpected json delimiter %q", t)
		}
	case json.Number:
		return jsonNumberToNative(t)
	case string:
		return t, nil
	case bool:
		return t, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("unexpected json token %v", tok)
	}
}

func jsonNumberToNative(n json.Number) (interface{}, error) {
	if i, err := n.Int64(); err == nil {
		return i, nil
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return nil, err
	}
	return d, nil
}

func decodeJSONObject(dec *json.Decoder) (nativeMap, error) {
	out := nativeMap{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("json object key is not a string: %v", keyTok)
		}
		val, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}
		out = append(out, nativeKV{Key: key, Val: val})
	}
	// consume closing '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeJSONArray(dec *json.Decoder) (nativeSeq, error) {
	out := nativeSeq{}
	for dec.More() {
		val, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}
		out = append(out, val)
	}
	// consume closing ']'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}
