package service

import (
	"context"
	"fmt"
	"log"

	"github.com/arclabs/arcai/internal/domain"
	"github.com/arclabs/arcai/internal/telemetry"
)

const (
	// DefaultMatchCount bounds the context block handed to generation.
	DefaultMatchCount = 8
	// DefaultMatchThreshold is a starting point, not a tuned value;
	// callers override it per use case.
	DefaultMatchThreshold = 0.55
)

// SimilaritySearcher defines the store interface used by retrieval.
type SimilaritySearcher interface {
	SimilaritySearch(ctx context.Context, queryEmbedding []float32, matchCount int, matchThreshold float64) ([]domain.Match, error)
}

// RetrievalService embeds a query and ranks stored chunks against it.
type RetrievalService struct {
	client EmbeddingClient
	store  SimilaritySearcher
}

func NewRetrievalService(client EmbeddingClient, store SimilaritySearcher) *RetrievalService {
	return &RetrievalService{client: client, store: store}
}

// Search embeds the query and returns ranked matches. Failures
// propagate; this is the single-shot search entry point.
func (s *RetrievalService) Search(ctx context.Context, query string, matchCount int, matchThreshold float64) ([]domain.Match, error) {
	embedding, err := s.client.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, err
	}

	return s.store.SimilaritySearch(ctx, embedding, matchCount, matchThreshold)
}

// Retrieve embeds the query and returns ranked context items for one
// answer-generation request. Ranks are 1-based and match the store's
// similarity ordering; the model later cites them as "Chunk N".
// Failures degrade to an empty result so the answer flow continues
// with no context; the error is logged and reported, never surfaced.
func (s *RetrievalService) Retrieve(ctx context.Context, query string, matchCount int, matchThreshold float64) []domain.ContextItem {
	matches, err := s.Search(ctx, query, matchCount, matchThreshold)
	if err != nil {
		log.Printf("retrieval degraded to empty context: %v", err)
		telemetry.CaptureError(err, "retrieve")
		return nil
	}

	items := make([]domain.ContextItem, 0, len(matches))
	for i, m := range matches {
		items = append(items, domain.ContextItem{
			Rank:       i + 1,
			Title:      m.Title,
			Content:    m.Content,
			Similarity: m.Similarity,
		})
	}
	return items
}

// FormatContextItem renders one retrieved chunk as a labeled block.
// The label is the citation key, so it must track the item's rank.
func FormatContextItem(item domain.ContextItem) string {
	return fmt.Sprintf("Chunk %d | Title: %s\n%s", item.Rank, item.Title, item.Content)
}
