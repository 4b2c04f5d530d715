package chunker

import (
	"fmt"
	"strings"
)

// Document is a unit of raw source text handed to the core by an external
// loader. The loader owns format parsing; the core only sees text plus a
// source identifier used for citations.
type Document struct {
	Text   string
	Source string
}

// Chunk splits each document into consecutive windows of up to size runes,
// where each window after the first starts size-overlap runes past the
// previous window's start. The returned texts and metadatas are index-aligned
// and every metadata carries the originating document's source identifier.
// Whitespace-only documents yield no chunks.
func Chunk(docs []Document, size int, overlap int) ([]string, []map[string]any, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}

	if overlap < 0 || overlap >= size {
		return nil, nil, fmt.Errorf("chunk overlap must be in [0, size), got overlap=%d size=%d", overlap, size)
	}

	stride := size - overlap

	var texts []string
	var metadatas []map[string]any

	for _, doc := range docs {
		if len(strings.TrimSpace(doc.Text)) == 0 {
			continue
		}

		runes := []rune(doc.Text)

		for start := 0; start < len(runes); start += stride {
			end := start + size
			if end > len(runes) {
				end = len(runes)
			}

			texts = append(texts, string(runes[start:end]))
			metadatas = append(metadatas, map[string]any{"source": doc.Source})

			if end == len(runes) {
				break
			}
		}
	}

	return texts, metadatas, nil
}
