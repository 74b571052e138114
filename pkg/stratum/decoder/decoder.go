// Package decoder adapts the two interchangeable sidecar text encodings
// (YAML-style and JSON) into stratum.Schema values. Text-format decoding
// itself is treated as an external collaborator to the engine; this
// package is that collaborator's concrete home.
package decoder

import "github.com/gobbles/stratum/pkg/stratum"

// Decoder decodes sidecar text into a Schema shaped for target, or
// reports a DecodeError / SchemaMismatchError.
type Decoder interface {
	// Decode parses text as a sidecar for target.
	Decode(text []byte, target stratum.Target) (stratum.Schema, error)
	// DefaultExtension returns the canonical file extension for this
	// format (e.g. "yml", "json").
	DefaultExtension() string
}
