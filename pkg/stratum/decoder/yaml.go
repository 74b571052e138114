package decoder

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/gobbles/stratum/pkg/stratum"
)

func init() {
	stratum.RegisterDecoder(stratum.FormatYAML, YAMLDecoder{})
}

// YAMLDecoder decodes sidecars written in YAML.
type YAMLDecoder struct{}

// DefaultExtension returns "yml".
func (YAMLDecoder) DefaultExtension() string { return "yml" }

// Decode parses text as YAML and classifies its top level against
// target.
func (YAMLDecoder) Decode(text []byte, target stratum.Target) (stratum.Schema, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(text, &doc); err != nil {
		return stratum.Schema{}, &stratum.DecodeError{Err: err}
	}
	if len(doc.Content) == 0 {
		return classifyTopLevel(nativeMap(nil), target)
	}
	native, err := nodeToNative(doc.Content[0])
	if err != nil {
		return stratum.Schema{}, &stratum.DecodeError{Err: err}
	}
	return classifyTopLevel(native, target)
}

// nodeToNative walks a yaml.Node tree into the decoder's
// order-preserving intermediate representation, keeping mapping key
// order exactly as written.
func nodeToNative(n *yaml.Node) (interface{}, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return nodeToNative(n.Content[0])

	case yaml.AliasNode:
		return nodeToNative(n.Alias)

	case yaml.ScalarNode:
		return scalarToNative(n)

	case yaml.SequenceNode:
		out := make(nativeSeq, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeToNative(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil

	case yaml.MappingNode:
		out := make(nativeMap, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode := n.Content[i]
			valNode := n.Content[i+1]
			key, err := scalarKeyString(keyNode)
			if err != nil {
				return nil, err
			}
			val, err := nodeToNative(valNode)
			if err != nil {
				return nil, err
			}
			out = append(out, nativeKV{Key: key, Val: val})
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unsupported yaml node kind %v", n.Kind)
	}
}

func scalarKeyString(n *yaml.Node) (string, error) {
	if n.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("mapping key at line %d is not a scalar", n.Line)
	}
	return n.Value, nil
}

func scalarToNative(n *yaml.Node) (interface{}, error) {
	switch n.Tag {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return b, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, err
		}
		return i, nil
	case "!!float":
		d, err := decimal.NewFromString(n.Value)
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		return n.Value, nil
	}
}
