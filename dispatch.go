package rag

import (
	"fmt"
	"strings"

	"github.com/w-h-a/rag/embedder"
	bedrockembedder "github.com/w-h-a/rag/embedder/bedrock"
	googleembedder "github.com/w-h-a/rag/embedder/google"
	openaiembedder "github.com/w-h-a/rag/embedder/openai"
	"github.com/w-h-a/rag/generator"
	anthropicgenerator "github.com/w-h-a/rag/generator/anthropic"
	bedrockgenerator "github.com/w-h-a/rag/generator/bedrock"
	openaigenerator "github.com/w-h-a/rag/generator/openai"
	"github.com/w-h-a/rag/store"
	memorystore "github.com/w-h-a/rag/store/memory"
	postgresstore "github.com/w-h-a/rag/store/postgres"
)

// newEmbedder resolves the embedding backend family from the configured model
// identifier. Resolution happens exactly once; an unknown identifier is a
// construction-time failure, never a silent default.
func newEmbedder(config Config) (embedder.Embedder, error) {
	model := config.Embedder

	switch {
	case strings.Contains(model, "titan-embed"), strings.Contains(model, "cohere.embed"):
		return bedrockembedder.NewEmbedder(
			embedder.WithModel(model),
			embedder.WithRegion(config.Region),
		)
	case strings.HasPrefix(model, "models/"), strings.Contains(model, "embedding-001"):
		return googleembedder.NewEmbedder(
			embedder.WithApiKey(config.EmbedderKey),
			embedder.WithModel(model),
		)
	case strings.Contains(model, "text-embedding"):
		return openaiembedder.NewEmbedder(
			embedder.WithApiKey(config.EmbedderKey),
			embedder.WithModel(model),
		)
	}

	return nil, &embedder.UnsupportedModelError{Model: model}
}

// newGenerator mirrors newEmbedder's dispatch for generation backends,
// independently.
func newGenerator(config Config) (generator.Generator, error) {
	model := config.Generator

	switch {
	case strings.Contains(model, "anthropic.claude"), strings.Contains(model, "mistral."):
		return bedrockgenerator.NewGenerator(
			generator.WithModel(model),
			generator.WithRegion(config.Region),
			generator.WithMaxTokens(config.MaxTokens),
			generator.WithTemperature(config.Temperature),
		)
	case strings.HasPrefix(model, "claude"):
		return anthropicgenerator.NewGenerator(
			generator.WithApiKey(config.GeneratorKey),
			generator.WithModel(model),
			generator.WithMaxTokens(config.MaxTokens),
			generator.WithTemperature(config.Temperature),
		)
	case strings.HasPrefix(model, "gpt"):
		return openaigenerator.NewGenerator(
			generator.WithApiKey(config.GeneratorKey),
			generator.WithModel(model),
			generator.WithMaxTokens(config.MaxTokens),
			generator.WithTemperature(config.Temperature),
		)
	}

	return nil, &generator.UnsupportedModelError{Model: model}
}

func newStore(config Config) (store.Store, error) {
	loc := config.StoreLocation

	switch {
	case strings.HasPrefix(loc, "postgres://"), strings.HasPrefix(loc, "postgresql://"):
		return postgresstore.NewStore(store.WithLocation(loc))
	case loc == "", loc == "memory":
		return memorystore.NewStore(), nil
	}

	return nil, fmt.Errorf("unsupported store location: %s", loc)
}
