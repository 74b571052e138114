package stratum

// SerializeFormat selects which text encoding a Configuration's
// decoder implements.
type SerializeFormat int

const (
	FormatYAML SerializeFormat = iota
	FormatJSON
)

// Configuration is the single recognized document of options:
// selection patterns, sort order, serialize format, and sidecar file
// stem overrides. The zero value is not valid; use DefaultConfiguration.
type Configuration struct {
	IncludeFiles []string
	ExcludeFiles []string
	IncludeDirs  []string
	ExcludeDirs  []string

	SortBy    SortBy
	SortOrder SortOrder

	SerializeFormat SerializeFormat

	// SelfFn / ItemFn override the canonical file stem for the Parent
	// / Siblings sidecar respectively. Empty means use Target's
	// default.
	SelfFn string
	ItemFn string
}

// DefaultConfiguration returns the configuration used by Get: default
// selection, name-ascending sort, YAML serialization, default sidecar
// stems.
func DefaultConfiguration() Configuration {
	return Configuration{
		SortBy:          SortByName,
		SortOrder:       SortAscending,
		SerializeFormat: FormatYAML,
	}
}

// Selection compiles c's include/exclude patterns into a Selection. An
// entirely empty set of patterns across all four fields falls back to
// DefaultSelection, matching the library's convenience default;
// otherwise each field compiles independently: an empty include field
// means match-all, and an empty exclude field excludes nothing beyond
// what NewSelection always excludes (the canonical sidecar stems).
func (c Configuration) Selection() (Selection, error) {
	if len(c.IncludeFiles) == 0 && len(c.ExcludeFiles) == 0 && len(c.IncludeDirs) == 0 && len(c.ExcludeDirs) == 0 {
		return DefaultSelection(), nil
	}
	includeFiles := c.IncludeFiles
	if includeFiles == nil {
		includeFiles = []string{"*"}
	}
	includeDirs := c.IncludeDirs
	if includeDirs == nil {
		includeDirs = []string{"*"}
	}
	return NewSelection(includeFiles, c.ExcludeFiles, includeDirs, c.ExcludeDirs)
}

// Sorter compiles c's sort options.
func (c Configuration) Sorter() Sorter {
	return Sorter{By: c.SortBy, Order: c.SortOrder}
}

// Naming resolves c's sidecar stem overrides.
func (c Configuration) Naming() SidecarNaming {
	return SidecarNaming{SelfStem: c.SelfFn, ItemStem: c.ItemFn}
}
