package stratum

// Target distinguishes the two sidecar shapes that can live in a
// directory: a Parent file describing the directory itself, and a
// Siblings file describing the directory's entries.
type Target int

const (
	// TargetParent identifies the sidecar describing the directory
	// that contains it. Its schema must be One.
	TargetParent Target = iota
	// TargetSiblings identifies the sidecar describing the entries
	// inside the directory that contains it. Its schema must be Seq
	// or Map.
	TargetSiblings
)

// String renders the target name used in diagnostics.
func (t Target) String() string {
	switch t {
	case TargetParent:
		return "parent"
	case TargetSiblings:
		return "siblings"
	default:
		return "unknown"
	}
}

// DefaultFileStem returns the canonical file stem for t, absent any
// config-supplied override (item_fn / self_fn).
func (t Target) DefaultFileStem() string {
	switch t {
	case TargetParent:
		return "self"
	case TargetSiblings:
		return "item"
	default:
		return ""
	}
}
