package cli

import (
	"context"
	"errors"

	"github.com/arclabs/arcai/internal/domain"
)

var errNoProvider = errors.New("embedding provider not configured: ARC_OPENAI_API_KEY required")

// The no-op implementations keep the server bootable without an OpenAI
// key so health checks and migrations still work in that mode.

type noOpAnswerer struct{}

func (s *noOpAnswerer) Answer(ctx context.Context, query string) (string, error) {
	return "", errNoProvider
}

type noOpSearcher struct{}

func (s *noOpSearcher) Search(ctx context.Context, query string, matchCount int, matchThreshold float64) ([]domain.Match, error) {
	return nil, errNoProvider
}

type noOpInserter struct{}

func (s *noOpInserter) InsertDocument(ctx context.Context, title, content string) (string, error) {
	return "", errNoProvider
}
