package store

import "context"

// Store persists chunk text, metadata, and embeddings, and ranks stored
// records by cosine similarity to a query vector. The schema dimension is
// fixed by EnsureSchema; every vector that crosses the boundary afterwards
// must match it exactly.
type Store interface {
	EnsureSchema(ctx context.Context, dim int) error
	Add(ctx context.Context, texts []string, metadatas []map[string]any, embeddings [][]float32) error
	Clear(ctx context.Context) error
	Search(ctx context.Context, vector []float32, limit int, opts ...SearchOption) ([]Result, error)
	Close() error
}

// Result is one ranked match. Similarity is 1 - cosine_distance, so higher
// is more relevant.
type Result struct {
	Content    string
	Metadata   map[string]any
	Similarity float32
}

// SimilaritySearch is the two-phase retrieval policy: it runs a
// threshold-filtered search first and relaxes the filter only when that
// search returns nothing, so a query never silently returns nothing while
// some content exists. A zero-length query vector short-circuits to an empty
// result without issuing a query.
func SimilaritySearch(ctx context.Context, s Store, vector []float32, limit int, threshold float32) ([]Result, error) {
	if len(vector) == 0 {
		return nil, nil
	}

	results, err := s.Search(ctx, vector, limit, WithMinSimilarity(threshold))
	if err != nil {
		return nil, err
	}

	if len(results) > 0 {
		return results, nil
	}

	return s.Search(ctx, vector, limit)
}
