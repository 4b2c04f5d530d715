package embedder

import "fmt"

// UnsupportedModelError reports a model identifier that matches no known
// embedding backend family. It is raised at construction, never deferred to
// the first call.
type UnsupportedModelError struct {
	Model string
}

func (e *UnsupportedModelError) Error() string {
	return fmt.Sprintf("unsupported embeddings model: %s", e.Model)
}
