package generator

import "context"

// Generator turns a composed prompt into generated text. The contract is
// synchronous request/response; there is no token streaming.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
