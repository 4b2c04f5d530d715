package rag

// Config is the immutable configuration for a Pipeline, constructed once at
// process start and passed by value. Model identifiers select backend
// families at construction; an unrecognized identifier fails fast there.
type Config struct {
	// Region selects the AWS region for Bedrock-family backends.
	Region string

	// Embedder is the embedding model identifier; EmbedderKey is the API key
	// for non-Bedrock embedding backends.
	Embedder    string
	EmbedderKey string

	// Generator is the generation model identifier; GeneratorKey is the API
	// key for non-Bedrock generation backends.
	Generator    string
	GeneratorKey string

	// StoreLocation is the vector store location: a postgres:// DSN, or
	// "memory" for the in-memory store.
	StoreLocation string

	ChunkSize    int
	ChunkOverlap int

	TopK      int
	Threshold float32

	MaxTokens   int
	Temperature float64

	// Workers bounds the ingestion embedding pool. Zero means half the CPUs.
	Workers int
}
