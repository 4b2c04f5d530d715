package embedder

import "context"

// Embedder converts text into a fixed-dimension vector. The query flag lets
// backends that distinguish search queries from indexed documents apply the
// right encoding; backends without that distinction ignore it.
type Embedder interface {
	Embed(ctx context.Context, text string, query bool) ([]float32, error)
}
