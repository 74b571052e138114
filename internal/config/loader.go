package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads path and decodes it as a Document. yaml.v3 also accepts
// JSON, which is a subset of YAML for the flat documents this package
// deals with, so a single loader serves both serialize_format choices
// the rest of the engine supports.
func Load(path string) (Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Document{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return doc, nil
}
