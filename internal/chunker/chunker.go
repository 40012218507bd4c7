// Package chunker splits raw document text into overlapping fixed-size
// segments suitable for embedding.
package chunker

import (
	"strings"

	"github.com/arclabs/arcai/internal/domain"
)

const (
	// DefaultSize is the default chunk length in runes.
	DefaultSize = 1200
	// DefaultOverlap is the default overlap between consecutive chunks.
	DefaultOverlap = 200
)

// Normalize collapses all runs of whitespace to a single space and
// trims leading and trailing whitespace.
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Split normalizes text and cuts it into consecutive chunks of at most
// size runes, each new chunk starting size-overlap runes after the
// previous one. The last chunk may be shorter. The result is
// deterministic for a given input and parameters.
func Split(text string, size, overlap int) ([]string, error) {
	if size <= 0 || overlap < 0 || overlap >= size {
		return nil, domain.ErrInvalidChunkConfig
	}

	clean := Normalize(text)
	if clean == "" {
		return nil, nil
	}

	runes := []rune(clean)
	step := size - overlap

	chunks := make([]string, 0, (len(runes)+step-1)/step)
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}

	return chunks, nil
}
