package store

import "context"

type Option func(*Options)

type Options struct {
	Location string
	Context  context.Context
}

func WithLocation(loc string) Option {
	return func(o *Options) {
		o.Location = loc
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Context: context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

type SearchOption func(*SearchOptions)

type SearchOptions struct {
	MinSimilarity float32
	Filtered      bool
}

// WithMinSimilarity filters the ranked search to records whose similarity is
// at least threshold. Absence of this option means an unfiltered search; no
// sentinel value is involved.
func WithMinSimilarity(threshold float32) SearchOption {
	return func(o *SearchOptions) {
		o.MinSimilarity = threshold
		o.Filtered = true
	}
}

func NewSearchOptions(opts ...SearchOption) SearchOptions {
	options := SearchOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
