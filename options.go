package rag

import (
	"log/slog"

	"github.com/w-h-a/rag/embedder"
	"github.com/w-h-a/rag/generator"
	"github.com/w-h-a/rag/store"
)

type Option func(*Pipeline)

// WithEmbedder bypasses model-identifier dispatch with a caller-supplied
// embedding backend.
func WithEmbedder(e embedder.Embedder) Option {
	return func(p *Pipeline) {
		p.embedder = e
	}
}

// WithGenerator bypasses model-identifier dispatch with a caller-supplied
// generation backend.
func WithGenerator(g generator.Generator) Option {
	return func(p *Pipeline) {
		p.generator = g
	}
}

// WithStore bypasses store-location dispatch with a caller-supplied store.
func WithStore(s store.Store) Option {
	return func(p *Pipeline) {
		p.store = s
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
	}
}
