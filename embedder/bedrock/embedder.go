package bedrock

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/w-h-a/rag/embedder"
)

type family int

const (
	titan family = iota
	cohere
)

type bedrockEmbedder struct {
	options embedder.Options
	family  family
	client  *bedrockruntime.Client
}

func (e *bedrockEmbedder) Embed(ctx context.Context, text string, query bool) ([]float32, error) {
	if len(text) == 0 {
		return nil, nil
	}

	body, err := e.buildRequest(text, query)
	if err != nil {
		return nil, err
	}

	rsp, err := e.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(e.options.Model),
		Body:        body,
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, err
	}

	return e.parseResponse(rsp.Body)
}

func (e *bedrockEmbedder) buildRequest(text string, query bool) ([]byte, error) {
	switch e.family {
	case titan:
		return json.Marshal(titanRequest{InputText: text})
	case cohere:
		inputType := "search_document"
		if query {
			inputType = "search_query"
		}
		return json.Marshal(cohereRequest{Texts: []string{text}, InputType: inputType})
	}
	return nil, &embedder.UnsupportedModelError{Model: e.options.Model}
}

func (e *bedrockEmbedder) parseResponse(body []byte) ([]float32, error) {
	switch e.family {
	case titan:
		var payload titanResponse
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, err
		}
		if len(payload.Embedding) == 0 {
			return nil, errors.New("no embedding from Titan")
		}
		return payload.Embedding, nil
	case cohere:
		var payload cohereResponse
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, err
		}
		if len(payload.Embeddings) == 0 || len(payload.Embeddings[0]) == 0 {
			return nil, errors.New("no embedding from Cohere")
		}
		return payload.Embeddings[0], nil
	}
	return nil, &embedder.UnsupportedModelError{Model: e.options.Model}
}

type titanRequest struct {
	InputText string `json:"inputText"`
}

type titanResponse struct {
	Embedding []float32 `json:"embedding"`
}

type cohereRequest struct {
	Texts     []string `json:"texts"`
	InputType string   `json:"input_type"`
}

type cohereResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

func NewEmbedder(opts ...embedder.Option) (embedder.Embedder, error) {
	options := embedder.NewOptions(opts...)

	var f family
	switch {
	case strings.Contains(options.Model, "titan-embed"):
		f = titan
	case strings.Contains(options.Model, "cohere.embed"):
		f = cohere
	default:
		return nil, &embedder.UnsupportedModelError{Model: options.Model}
	}

	cfg, err := awsconfig.LoadDefaultConfig(
		options.Context,
		awsconfig.WithRegion(options.Region),
	)
	if err != nil {
		return nil, err
	}

	e := &bedrockEmbedder{
		options: options,
		family:  f,
		client:  bedrockruntime.NewFromConfig(cfg),
	}

	return e, nil
}
