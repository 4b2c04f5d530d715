package store

import (
	"errors"
	"fmt"
)

// ErrSchemaNotInitialized is returned by inserts attempted before
// EnsureSchema has established the store's dimension.
var ErrSchemaNotInitialized = errors.New("schema not initialized: call EnsureSchema first")

// DimensionMismatchError reports a vector whose dimension is inconsistent
// with the store's established schema dimension. The offending batch is
// never partially applied.
type DimensionMismatchError struct {
	Want int
	Got  int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("embedding dimension mismatch: store expects %d, got %d", e.Want, e.Got)
}
