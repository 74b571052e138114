package config

import "strings"

// ValidationError reports one rejected field of a Document.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors aggregates every ValidationError found by Validate.
type ValidationErrors []ValidationError

func (es ValidationErrors) Error() string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}

var validSortBy = []string{"", "name", "mod_time"}
var validSortOrder = []string{"", "ascending", "descending"}
var validSerializeFormat = []string{"", "yaml", "json"}

// Validate checks d's enum-valued fields against the values the engine
// actually recognizes. An empty string always validates, since it means
// "use the default".
func Validate(d Document) error {
	var errs ValidationErrors

	if !contains(validSortBy, d.SortBy) {
		errs = append(errs, ValidationError{
			Field: "sort_by", Value: d.SortBy,
			Message: "must be one of: name, mod_time",
		})
	}
	if !contains(validSortOrder, d.SortOrder) {
		errs = append(errs, ValidationError{
			Field: "sort_order", Value: d.SortOrder,
			Message: "must be one of: ascending, descending",
		})
	}
	if !contains(validSerializeFormat, d.SerializeFormat) {
		errs = append(errs, ValidationError{
			Field: "serialize_format", Value: d.SerializeFormat,
			Message: "must be one of: yaml, json",
		})
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func contains(valid []string, v string) bool {
	for _, s := range valid {
		if s == v {
			return true
		}
	}
	return false
}
