package main

import (
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/gobbles/stratum/pkg/stratum"
)

// dumpYAML renders v as YAML text, the mirror image of what
// pkg/stratum/decoder's YAMLDecoder does on the way in: it walks Value
// into a yaml.Node tree (rather than going through an
// order-losing interface{} round trip) so Block and Mapping field
// order survives into the printed document.
func dumpYAML(v stratum.Value) (string, error) {
	node := valueToNode(v)
	out, err := yaml.Marshal(node)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func valueToNode(v stratum.Value) *yaml.Node {
	switch v.Kind() {
	case stratum.KindNil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}

	case stratum.KindString:
		s, _ := v.AsString()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}

	case stratum.KindInt:
		n, _ := v.AsInt()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(n, 10)}

	case stratum.KindDecimal:
		d, _ := v.AsDecimal()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: d.String()}

	case stratum.KindBool:
		b, _ := v.AsBool()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(b)}

	case stratum.KindSequence:
		seq, _ := v.AsSequence()
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, elem := range seq {
			node.Content = append(node.Content, valueToNode(elem))
		}
		return node

	case stratum.KindMapping:
		m, _ := v.AsMapping()
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		if m != nil {
			for pair := m.Oldest(); pair != nil; pair = pair.Next() {
				node.Content = append(node.Content,
					&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pair.Key.String()},
					valueToNode(pair.Value),
				)
			}
		}
		return node

	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}
