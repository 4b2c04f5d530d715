package openai

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"
	"github.com/w-h-a/rag/embedder"
)

type openAIEmbedder struct {
	options embedder.Options
	client  *openai.Client
}

// Embed ignores the query flag; the OpenAI embeddings API has no
// query/document distinction.
func (e *openAIEmbedder) Embed(ctx context.Context, text string, query bool) ([]float32, error) {
	if len(text) == 0 {
		return nil, nil
	}

	rsp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(e.options.Model),
	})
	if err != nil {
		return nil, err
	}

	if len(rsp.Data) == 0 || len(rsp.Data[0].Embedding) == 0 {
		return nil, errors.New("no response from OpenAI")
	}

	return rsp.Data[0].Embedding, nil
}

func NewEmbedder(opts ...embedder.Option) (embedder.Embedder, error) {
	options := embedder.NewOptions(opts...)

	e := &openAIEmbedder{
		options: options,
	}

	e.client = openai.NewClient(options.ApiKey)

	return e, nil
}
