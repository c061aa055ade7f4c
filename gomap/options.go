package gomap

// MapOption is an option for controlling the mapping process from Go
// values to nodes.
type MapOption interface {
	applyMap(*mapConfig)
}

// UnmapOption is an option for controlling the unmapping process from
// nodes to Go values.
type UnmapOption interface {
	applyUnmap(*unmapConfig)
}

// mapConfig holds configuration for the mapping process.
type mapConfig struct {
	// OmitNulls drops struct fields that encode to null.
	OmitNulls bool
}

// unmapConfig holds configuration for the unmapping process.
type unmapConfig struct {
	// Partial suppresses missing-field errors, populating only the
	// fields present in the node.
	Partial bool
}

func newMapConfig(opts ...MapOption) *mapConfig {
	cfg := &mapConfig{}
	for _, opt := range opts {
		opt.applyMap(cfg)
	}
	return cfg
}

func newUnmapConfig(opts ...UnmapOption) *unmapConfig {
	cfg := &unmapConfig{}
	for _, opt := range opts {
		opt.applyUnmap(cfg)
	}
	return cfg
}

type mapOptionFunc func(*mapConfig)

func (f mapOptionFunc) applyMap(cfg *mapConfig) { f(cfg) }

type unmapOptionFunc func(*unmapConfig)

func (f unmapOptionFunc) applyUnmap(cfg *unmapConfig) { f(cfg) }

// OmitNulls controls whether struct fields encoding to null are dropped
// from the resulting object. DynamoDB items frequently omit absent
// attributes instead of storing NULL members.
func OmitNulls(v bool) MapOption {
	return mapOptionFunc(func(cfg *mapConfig) {
		cfg.OmitNulls = v
	})
}

// Partial suppresses missing-field errors on decode.
func Partial(v bool) UnmapOption {
	return unmapOptionFunc(func(cfg *unmapConfig) {
		cfg.Partial = v
	})
}
