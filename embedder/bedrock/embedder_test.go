package bedrock

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/w-h-a/rag/embedder"
)

func TestBuildRequest_Titan(t *testing.T) {
	e := &bedrockEmbedder{family: titan}

	body, err := e.buildRequest("hello world", true)
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(body, &payload))

	assert.Equal(t, "hello world", payload["inputText"])
	assert.NotContains(t, payload, "input_type")
}

func TestBuildRequest_CohereInputType(t *testing.T) {
	e := &bedrockEmbedder{family: cohere}

	t.Run("query", func(t *testing.T) {
		body, err := e.buildRequest("hello", true)
		require.NoError(t, err)

		var payload cohereRequest
		require.NoError(t, json.Unmarshal(body, &payload))

		assert.Equal(t, []string{"hello"}, payload.Texts)
		assert.Equal(t, "search_query", payload.InputType)
	})

	t.Run("document", func(t *testing.T) {
		body, err := e.buildRequest("hello", false)
		require.NoError(t, err)

		var payload cohereRequest
		require.NoError(t, json.Unmarshal(body, &payload))

		assert.Equal(t, "search_document", payload.InputType)
	})
}

func TestParseResponse_Titan(t *testing.T) {
	e := &bedrockEmbedder{family: titan}

	vec, err := e.parseResponse([]byte(`{"embedding":[0.1,0.2,0.3]}`))
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)

	_, err = e.parseResponse([]byte(`{"embedding":[]}`))
	assert.Error(t, err)
}

func TestParseResponse_Cohere(t *testing.T) {
	e := &bedrockEmbedder{family: cohere}

	vec, err := e.parseResponse([]byte(`{"embeddings":[[0.4,0.5]]}`))
	require.NoError(t, err)
	assert.Equal(t, []float32{0.4, 0.5}, vec)

	_, err = e.parseResponse([]byte(`{"embeddings":[]}`))
	assert.Error(t, err)
}

func TestEmbed_EmptyText(t *testing.T) {
	e := &bedrockEmbedder{family: titan}

	vec, err := e.Embed(context.Background(), "", true)
	require.NoError(t, err)
	assert.Empty(t, vec)
}

func TestNewEmbedder_UnsupportedModel(t *testing.T) {
	_, err := NewEmbedder(embedder.WithModel("meta.llama3-8b-instruct-v1:0"))

	var unsupported *embedder.UnsupportedModelError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "meta.llama3-8b-instruct-v1:0", unsupported.Model)
}
