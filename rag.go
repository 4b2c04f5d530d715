package rag

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/w-h-a/rag/chunker"
	"github.com/w-h-a/rag/embedder"
	"github.com/w-h-a/rag/generator"
	"github.com/w-h-a/rag/store"
	getsafe "github.com/w-h-a/rag/util/get_safe"
)

const promptTemplate = `You are an internal policy assistant. Answer the question using ONLY the provided context.
If the answer is not in the context, say you do not have enough information.

Question:
%s

Context:
%s

Answer with concise bullet points and include sources in brackets like [source].`

// Pipeline sequences embed -> retrieve -> assemble context -> build prompt ->
// generate into a question/answer flow, and chunk -> embed -> persist into an
// ingestion flow.
type Pipeline struct {
	config    Config
	embedder  embedder.Embedder
	generator generator.Generator
	store     store.Store
	pool      *ants.Pool
	logger    *slog.Logger
}

// Answer is one answered query: the generated text plus the retrieval
// metadata backing it, in the same order as the context blocks the generator
// saw.
type Answer struct {
	Answer  string
	Sources []map[string]any
}

// New resolves the configured backends once and wires them into a Pipeline.
// Unknown model identifiers or store locations fail here, not on first use.
func New(config Config, opts ...Option) (*Pipeline, error) {
	if config.ChunkSize <= 0 {
		config.ChunkSize = 500
	}
	if config.TopK <= 0 {
		config.TopK = 5
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = 1024
	}

	p := &Pipeline{
		config: config,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.embedder == nil {
		e, err := newEmbedder(config)
		if err != nil {
			return nil, err
		}
		p.embedder = e
	}

	// Ingestion-only callers may leave the generation model unset.
	if p.generator == nil && len(config.Generator) > 0 {
		g, err := newGenerator(config)
		if err != nil {
			return nil, err
		}
		p.generator = g
	}

	if p.store == nil {
		s, err := newStore(config)
		if err != nil {
			return nil, err
		}
		p.store = s
	}

	workers := config.Workers
	if workers < 1 {
		workers = runtime.NumCPU() / 2
	}
	if workers < 1 {
		workers = 1
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, err
	}
	p.pool = pool

	return p, nil
}

// Answer embeds the question, retrieves context through the two-phase
// threshold/fallback search, and generates an answer citing its sources.
// An empty corpus still answers: the prompt instructs the model to admit
// insufficient information.
func (p *Pipeline) Answer(ctx context.Context, question string) (*Answer, error) {
	if p.generator == nil {
		return nil, errors.New("no generation backend configured")
	}

	vec, err := p.embedder.Embed(ctx, question, true)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	results, err := store.SimilaritySearch(ctx, p.store, vec, p.config.TopK, p.config.Threshold)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	prompt := fmt.Sprintf(promptTemplate, question, buildContext(results))

	text, err := p.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	sources := make([]map[string]any, 0, len(results))
	for _, res := range results {
		sources = append(sources, res.Metadata)
	}

	return &Answer{
		Answer:  text,
		Sources: sources,
	}, nil
}

// Ingest chunks the documents, embeds each chunk on a bounded worker pool,
// and persists the whole batch in one transaction. Chunk embeddings are
// independent, so they run concurrently and are rejoined by index before
// insertion. Returns the number of chunks written.
func (p *Pipeline) Ingest(ctx context.Context, docs []chunker.Document) (int, error) {
	texts, metadatas, err := chunker.Chunk(docs, p.config.ChunkSize, p.config.ChunkOverlap)
	if err != nil {
		return 0, err
	}

	if len(texts) == 0 {
		return 0, nil
	}

	embeddings := make([][]float32, len(texts))
	errs := make([]error, len(texts))

	var wg sync.WaitGroup
	for i, text := range texts {
		i, text := i, text
		wg.Add(1)
		if err := p.pool.Submit(func() {
			defer wg.Done()
			embeddings[i], errs[i] = p.embedder.Embed(ctx, text, false)
		}); err != nil {
			wg.Done()
			wg.Wait()
			return 0, fmt.Errorf("submit embedding task: %w", err)
		}
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return 0, fmt.Errorf("embed chunk %d: %w", i, err)
		}
	}

	if err := p.store.EnsureSchema(ctx, len(embeddings[0])); err != nil {
		return 0, err
	}

	if err := p.store.Add(ctx, texts, metadatas, embeddings); err != nil {
		return 0, err
	}

	p.logger.InfoContext(ctx, "ingested chunks", "documents", len(docs), "chunks", len(texts))

	return len(texts), nil
}

// Reset removes every stored record. Explicit resets only; nothing in the
// pipeline calls this implicitly.
func (p *Pipeline) Reset(ctx context.Context) error {
	return p.store.Clear(ctx)
}

func (p *Pipeline) Close() error {
	p.pool.Release()
	return p.store.Close()
}

func buildContext(results []store.Result) string {
	blocks := make([]string, 0, len(results))

	for _, res := range results {
		source := getsafe.String(res.Metadata, "source")
		blocks = append(blocks, fmt.Sprintf("Source: %s\nSimilarity: %.3f\n%s", source, res.Similarity, res.Content))
	}

	return strings.Join(blocks, "\n\n")
}
