package memory

import (
	"context"
	"fmt"
	"maps"
	"math"
	"sort"
	"sync"

	"github.com/w-h-a/rag/store"
)

type record struct {
	content   string
	metadata  map[string]any
	embedding []float32
}

// memoryStore ranks records by exact cosine similarity. It backs tests and
// local runs that have no Postgres available.
type memoryStore struct {
	options store.Options
	records []record
	dim     int
	mtx     sync.RWMutex
}

func (s *memoryStore) EnsureSchema(ctx context.Context, dim int) error {
	if dim <= 0 {
		return fmt.Errorf("embedding dimension must be positive, got %d", dim)
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.dim > 0 && s.dim != dim {
		return &store.DimensionMismatchError{Want: s.dim, Got: dim}
	}

	s.dim = dim

	return nil
}

func (s *memoryStore) Add(ctx context.Context, texts []string, metadatas []map[string]any, embeddings [][]float32) error {
	if len(texts) != len(metadatas) || len(texts) != len(embeddings) {
		return fmt.Errorf("misaligned batch: %d texts, %d metadatas, %d embeddings", len(texts), len(metadatas), len(embeddings))
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.dim == 0 {
		return store.ErrSchemaNotInitialized
	}

	// Validate the whole batch before touching state so a bad row never
	// leaves a half-ingested set behind.
	for _, embedding := range embeddings {
		if len(embedding) != s.dim {
			return &store.DimensionMismatchError{Want: s.dim, Got: len(embedding)}
		}
	}

	for i := range texts {
		cpy := make([]float32, len(embeddings[i]))
		copy(cpy, embeddings[i])

		meta := make(map[string]any, len(metadatas[i]))
		maps.Copy(meta, metadatas[i])

		s.records = append(s.records, record{
			content:   texts[i],
			metadata:  meta,
			embedding: cpy,
		})
	}

	return nil
}

func (s *memoryStore) Clear(ctx context.Context) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.records = nil

	return nil
}

func (s *memoryStore) Search(ctx context.Context, vector []float32, limit int, opts ...store.SearchOption) ([]store.Result, error) {
	if len(vector) == 0 || limit < 1 {
		return nil, nil
	}

	options := store.NewSearchOptions(opts...)

	s.mtx.RLock()
	defer s.mtx.RUnlock()

	if s.dim > 0 && len(vector) != s.dim {
		return nil, &store.DimensionMismatchError{Want: s.dim, Got: len(vector)}
	}

	candidates := make([]store.Result, 0, len(s.records))

	for _, rec := range s.records {
		similarity := float32(cosineSimilarity(vector, rec.embedding))
		if options.Filtered && similarity < options.MinSimilarity {
			continue
		}

		meta := make(map[string]any, len(rec.metadata))
		maps.Copy(meta, rec.metadata)

		candidates = append(candidates, store.Result{
			Content:    rec.content,
			Metadata:   meta,
			Similarity: similarity,
		})
	}

	// Stable sort keeps insertion order on similarity ties.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Similarity > candidates[j].Similarity
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	if len(candidates) == 0 {
		return nil, nil
	}

	return candidates, nil
}

func (s *memoryStore) Close() error {
	return nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

func NewStore(opts ...store.Option) store.Store {
	options := store.NewOptions(opts...)

	s := &memoryStore{
		options: options,
		records: []record{},
		mtx:     sync.RWMutex{},
	}

	return s
}
