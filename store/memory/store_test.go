package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/w-h-a/rag/store"
)

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()

	s := NewStore()
	require.NoError(t, s.EnsureSchema(ctx, 3))

	vec := []float32{0.1, 0.2, 0.3}
	err := s.Add(ctx, []string{"hello world"}, []map[string]any{{"source": "greetings.txt"}}, [][]float32{vec})
	require.NoError(t, err)

	results, err := s.Search(ctx, vec, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, "hello world", results[0].Content)
	assert.Equal(t, "greetings.txt", results[0].Metadata["source"])
	assert.InDelta(t, 1.0, results[0].Similarity, 1e-6)
}

func TestSearch_DescendingOrder(t *testing.T) {
	ctx := context.Background()

	s := NewStore()
	require.NoError(t, s.EnsureSchema(ctx, 2))

	err := s.Add(ctx,
		[]string{"orthogonal", "diagonal", "identical"},
		[]map[string]any{{}, {}, {}},
		[][]float32{{0, 1}, {0.7, 0.7}, {1, 0}},
	)
	require.NoError(t, err)

	results, err := s.Search(ctx, []float32{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "identical", results[0].Content)
	assert.Equal(t, "diagonal", results[1].Content)
	assert.Equal(t, "orthogonal", results[2].Content)

	for i := 1; i < len(results); i++ {
		assert.Less(t, results[i].Similarity, results[i-1].Similarity)
	}
}

func TestSearch_ThresholdFilter(t *testing.T) {
	ctx := context.Background()

	s := NewStore()
	require.NoError(t, s.EnsureSchema(ctx, 2))

	err := s.Add(ctx,
		[]string{"strong", "weak"},
		[]map[string]any{{}, {}},
		[][]float32{{1, 0}, {0, 1}},
	)
	require.NoError(t, err)

	results, err := s.Search(ctx, []float32{1, 0}, 5, store.WithMinSimilarity(0.5))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "strong", results[0].Content)
}

func TestSimilaritySearch_FallbackBelowThreshold(t *testing.T) {
	ctx := context.Background()

	s := NewStore()
	require.NoError(t, s.EnsureSchema(ctx, 2))

	// cos of the stored vector against the query is exactly 0.2.
	err := s.Add(ctx,
		[]string{"barely related"},
		[]map[string]any{{"source": "notes.txt"}},
		[][]float32{{0.2, 0.9797959}},
	)
	require.NoError(t, err)

	results, err := store.SimilaritySearch(ctx, s, []float32{1, 0}, 5, 0.3)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, "barely related", results[0].Content)
	assert.InDelta(t, 0.2, results[0].Similarity, 1e-4)
}

func TestAdd_DimensionMismatchAbortsBatch(t *testing.T) {
	ctx := context.Background()

	s := NewStore()
	require.NoError(t, s.EnsureSchema(ctx, 3))

	err := s.Add(ctx,
		[]string{"good", "bad"},
		[]map[string]any{{}, {}},
		[][]float32{{1, 0, 0}, {1, 0}},
	)

	var mismatch *store.DimensionMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 3, mismatch.Want)
	assert.Equal(t, 2, mismatch.Got)

	// The whole batch aborts; the good row is not half-ingested.
	results, err := s.Search(ctx, []float32{1, 0, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_WrongDimensionQuery(t *testing.T) {
	ctx := context.Background()

	s := NewStore()
	require.NoError(t, s.EnsureSchema(ctx, 3))
	require.NoError(t, s.Add(ctx, []string{"content"}, []map[string]any{{}}, [][]float32{{1, 0, 0}}))

	results, err := s.Search(ctx, []float32{1, 0}, 5)

	var mismatch *store.DimensionMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 3, mismatch.Want)
	assert.Equal(t, 2, mismatch.Got)
	assert.Empty(t, results)
}

func TestSearch_MetadataCopiedOut(t *testing.T) {
	ctx := context.Background()

	s := NewStore()
	require.NoError(t, s.EnsureSchema(ctx, 2))

	vec := []float32{1, 0}
	require.NoError(t, s.Add(ctx, []string{"content"}, []map[string]any{{"source": "a.txt"}}, [][]float32{vec}))

	results, err := s.Search(ctx, vec, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)

	results[0].Metadata["source"] = "tampered"

	results, err = s.Search(ctx, vec, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "a.txt", results[0].Metadata["source"])
}

func TestAdd_BeforeSchema(t *testing.T) {
	ctx := context.Background()

	s := NewStore()

	err := s.Add(ctx, []string{"orphan"}, []map[string]any{{}}, [][]float32{{1, 0}})
	assert.True(t, errors.Is(err, store.ErrSchemaNotInitialized))
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	ctx := context.Background()

	s := NewStore()
	require.NoError(t, s.EnsureSchema(ctx, 4))
	require.NoError(t, s.EnsureSchema(ctx, 4))

	var mismatch *store.DimensionMismatchError
	err := s.EnsureSchema(ctx, 8)
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 4, mismatch.Want)
	assert.Equal(t, 8, mismatch.Got)
}

func TestSearch_EmptyCorpus(t *testing.T) {
	ctx := context.Background()

	s := NewStore()
	require.NoError(t, s.EnsureSchema(ctx, 2))

	results, err := s.Search(ctx, []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_EmptyVectorShortCircuits(t *testing.T) {
	ctx := context.Background()

	s := NewStore()
	require.NoError(t, s.EnsureSchema(ctx, 2))
	require.NoError(t, s.Add(ctx, []string{"content"}, []map[string]any{{}}, [][]float32{{1, 0}}))

	results, err := s.Search(ctx, nil, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestClear(t *testing.T) {
	ctx := context.Background()

	s := NewStore()
	require.NoError(t, s.EnsureSchema(ctx, 2))
	require.NoError(t, s.Add(ctx, []string{"content"}, []map[string]any{{}}, [][]float32{{1, 0}}))

	require.NoError(t, s.Clear(ctx))

	results, err := s.Search(ctx, []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}
