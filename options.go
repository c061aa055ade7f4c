package marshall

// DefaultMaxDepth bounds recursion for both transcoding directions.
// Nesting beyond the limit degrades to Null rather than risking stack
// exhaustion on adversarial input.
const DefaultMaxDepth = 256

// Option is an option for controlling the value transcoder.
type Option interface {
	apply(*config)
}

type config struct {
	maxDepth int
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt.apply(cfg)
	}
	return cfg
}

type optionFunc func(*config)

func (f optionFunc) apply(cfg *config) { f(cfg) }

// MaxDepth overrides the nesting depth limit.
func MaxDepth(n int) Option {
	return optionFunc(func(cfg *config) {
		cfg.maxDepth = n
	})
}
