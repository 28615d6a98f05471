package score

// DefaultMaxOrder is the highest n-gram order used when none is configured.
const DefaultMaxOrder = 4

// options holds scoring configuration.
type options struct {
	// maxOrder is the highest n-gram order N; orders 1..N are scored.
	maxOrder int
}

func newOptions(opt ...Option) *options {
	opts := &options{maxOrder: DefaultMaxOrder}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option configures BLEU scoring.
type Option func(*options)

// WithMaxOrder sets the highest n-gram order. Values below 1 are rejected
// when scoring.
func WithMaxOrder(n int) Option {
	return func(o *options) {
		o.maxOrder = n
	}
}
