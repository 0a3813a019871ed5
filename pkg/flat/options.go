package flat

// DefaultMaxDepth bounds nesting when Options.MaxDepth is unset.
const DefaultMaxDepth = 4096

// Options controls linearization.
type Options struct {
	// MaxDepth is the deepest level allowed. Zero or negative means DefaultMaxDepth.
	MaxDepth int
}

// DefaultOptions returns options with the default depth limit.
func DefaultOptions() Options {
	return Options{MaxDepth: DefaultMaxDepth}
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}
