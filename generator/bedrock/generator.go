package bedrock

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/w-h-a/rag/generator"
)

type family int

const (
	claude family = iota
	mistral
)

type bedrockGenerator struct {
	options generator.Options
	family  family
	client  *bedrockruntime.Client
}

func (g *bedrockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := g.buildRequest(prompt)
	if err != nil {
		return "", err
	}

	rsp, err := g.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(g.options.Model),
		Body:        body,
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", err
	}

	return g.parseResponse(rsp.Body)
}

func (g *bedrockGenerator) buildRequest(prompt string) ([]byte, error) {
	switch g.family {
	case claude:
		return json.Marshal(claudeRequest{
			AnthropicVersion: "bedrock-2023-05-31",
			MaxTokens:        g.options.MaxTokens,
			Temperature:      g.options.Temperature,
			Messages: []claudeMessage{
				{Role: "user", Content: prompt},
			},
		})
	case mistral:
		return json.Marshal(mistralRequest{
			Prompt:      prompt,
			MaxTokens:   g.options.MaxTokens,
			Temperature: g.options.Temperature,
			TopP:        0.9,
		})
	}
	return nil, &generator.UnsupportedModelError{Model: g.options.Model}
}

func (g *bedrockGenerator) parseResponse(body []byte) (string, error) {
	switch g.family {
	case claude:
		var payload claudeResponse
		if err := json.Unmarshal(body, &payload); err != nil {
			return "", err
		}
		if len(payload.Content) == 0 || len(payload.Content[0].Text) == 0 {
			return "", errors.New("no response from Claude")
		}
		return strings.TrimSpace(payload.Content[0].Text), nil
	case mistral:
		var payload mistralResponse
		if err := json.Unmarshal(body, &payload); err != nil {
			return "", err
		}
		if len(payload.Outputs) == 0 || len(payload.Outputs[0].Text) == 0 {
			return "", errors.New("no response from Mistral")
		}
		return strings.TrimSpace(payload.Outputs[0].Text), nil
	}
	return "", &generator.UnsupportedModelError{Model: g.options.Model}
}

type claudeRequest struct {
	AnthropicVersion string          `json:"anthropic_version"`
	MaxTokens        int             `json:"max_tokens"`
	Temperature      float64         `json:"temperature"`
	Messages         []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

type mistralRequest struct {
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
}

type mistralResponse struct {
	Outputs []struct {
		Text string `json:"text"`
	} `json:"outputs"`
}

func NewGenerator(opts ...generator.Option) (generator.Generator, error) {
	options := generator.NewOptions(opts...)

	var f family
	switch {
	case strings.Contains(options.Model, "anthropic.claude"):
		f = claude
	case strings.Contains(options.Model, "mistral."):
		f = mistral
	default:
		return nil, &generator.UnsupportedModelError{Model: options.Model}
	}

	cfg, err := awsconfig.LoadDefaultConfig(
		options.Context,
		awsconfig.WithRegion(options.Region),
	)
	if err != nil {
		return nil, err
	}

	g := &bedrockGenerator{
		options: options,
		family:  f,
		client:  bedrockruntime.NewFromConfig(cfg),
	}

	return g, nil
}
