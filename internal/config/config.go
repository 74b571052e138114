// Package config loads the on-disk configuration document recognized
// by the stratum CLI and converts it into a stratum.Configuration. The
// document covers exactly the options the engine's public API accepts:
// selection patterns, sort order, serialize format, and sidecar stem
// overrides.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gobbles/stratum/pkg/stratum"
)

// StringOrList is a pattern field that accepts either a bare scalar
// ("include_files: '*.flac'") or a sequence of scalars. Both spell a
// list of glob patterns; the scalar form is just the one-element case.
type StringOrList []string

// UnmarshalYAML accepts a scalar or a sequence. The loader decodes
// JSON documents through yaml.v3 as well, so this covers both config
// formats.
func (s *StringOrList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var one string
		if err := node.Decode(&one); err != nil {
			return err
		}
		*s = StringOrList{one}
		return nil
	case yaml.SequenceNode:
		var many []string
		if err := node.Decode(&many); err != nil {
			return err
		}
		*s = StringOrList(many)
		return nil
	default:
		return fmt.Errorf("line %d: expected a glob pattern or a list of glob patterns", node.Line)
	}
}

// Document is the shape of a stratum config file (YAML or JSON; both
// decode through the same yaml.v3 unmarshaler). Every field is
// optional; an absent field falls back to stratum.DefaultConfiguration.
type Document struct {
	IncludeFiles StringOrList `yaml:"include_files"`
	ExcludeFiles StringOrList `yaml:"exclude_files"`
	IncludeDirs  StringOrList `yaml:"include_dirs"`
	ExcludeDirs  StringOrList `yaml:"exclude_dirs"`

	SortBy    string `yaml:"sort_by"`
	SortOrder string `yaml:"sort_order"`

	SerializeFormat string `yaml:"serialize_format"`

	SelfFn string `yaml:"self_fn"`
	ItemFn string `yaml:"item_fn"`
}

// ToConfiguration validates d and converts it to a stratum.Configuration.
// Absent enum fields take DefaultConfiguration's values.
func (d Document) ToConfiguration() (stratum.Configuration, error) {
	if err := Validate(d); err != nil {
		return stratum.Configuration{}, err
	}

	cfg := stratum.DefaultConfiguration()
	cfg.IncludeFiles = []string(d.IncludeFiles)
	cfg.ExcludeFiles = []string(d.ExcludeFiles)
	cfg.IncludeDirs = []string(d.IncludeDirs)
	cfg.ExcludeDirs = []string(d.ExcludeDirs)
	cfg.SelfFn = d.SelfFn
	cfg.ItemFn = d.ItemFn

	switch d.SortBy {
	case "", "name":
		cfg.SortBy = stratum.SortByName
	case "mod_time":
		cfg.SortBy = stratum.SortByModTime
	}

	switch d.SortOrder {
	case "", "ascending":
		cfg.SortOrder = stratum.SortAscending
	case "descending":
		cfg.SortOrder = stratum.SortDescending
	}

	switch d.SerializeFormat {
	case "", "yaml":
		cfg.SerializeFormat = stratum.FormatYAML
	case "json":
		cfg.SerializeFormat = stratum.FormatJSON
	}

	return cfg, nil
}
