package stratum

// Get resolves path's flattened metadata block using the default
// configuration.
func Get(path string) (*Block, error) {
	return GetWithConfig(path, DefaultConfiguration())
}

// GetWithConfig resolves path's flattened metadata block using the
// caller-supplied configuration.
func GetWithConfig(path string, config Configuration) (*Block, error) {
	selection, err := config.Selection()
	if err != nil {
		return nil, err
	}
	dec, ok := DecoderFor(config.SerializeFormat)
	if !ok {
		return nil, ErrNoDecoder
	}
	return ProcessItem(path, selection, config.Sorter(), dec, config.Naming())
}

// AggregateWithConfig resolves field across path's descendant
// sub-tree using the caller-supplied configuration.
func AggregateWithConfig(path, field string, config Configuration, method AggMethod) (Value, error) {
	selection, err := config.Selection()
	if err != nil {
		return Nil, err
	}
	dec, ok := DecoderFor(config.SerializeFormat)
	if !ok {
		return Nil, ErrNoDecoder
	}
	return Aggregate(path, field, selection, config.Sorter(), dec, config.Naming(), method), nil
}
