package service

import (
	"context"
	"log"

	"github.com/arclabs/arcai/internal/domain"
)

// MissingEmbeddingStore defines the store interface used by the
// backfill reconciler.
type MissingEmbeddingStore interface {
	FindMissingEmbeddings(ctx context.Context) ([]domain.Document, error)
	UpdateEmbedding(ctx context.Context, id string, embedding []float32) error
}

// RowFailure records one row the reconciler could not heal.
type RowFailure struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Err   string `json:"error"`
}

// BackfillReport summarizes one reconciler pass.
type BackfillReport struct {
	Attempted int          `json:"attempted"`
	Healed    int          `json:"healed"`
	Failed    int          `json:"failed"`
	Failures  []RowFailure `json:"failures,omitempty"`
}

// BackfillService repairs rows that were stored without an embedding.
// Rows that already have one are filtered at the source query, so a
// pass over a complete store attempts nothing and the operation is
// idempotent.
type BackfillService struct {
	client EmbeddingClient
	store  MissingEmbeddingStore
}

func NewBackfillService(client EmbeddingClient, store MissingEmbeddingStore) *BackfillService {
	return &BackfillService{client: client, store: store}
}

// Backfill embeds and updates every row missing its vector. A failure
// on one row is recorded and does not block subsequent rows; only a
// failure of the source query itself aborts the pass.
func (s *BackfillService) Backfill(ctx context.Context) (*BackfillReport, error) {
	rows, err := s.store.FindMissingEmbeddings(ctx)
	if err != nil {
		return nil, err
	}

	report := &BackfillReport{Attempted: len(rows)}
	if len(rows) == 0 {
		return report, nil
	}

	log.Printf("backfilling %d rows missing embeddings", len(rows))

	for _, row := range rows {
		embedding, err := s.client.GenerateEmbedding(ctx, row.Content)
		if err != nil {
			log.Printf("backfill embedding failed for %s (%s): %v", row.Title, row.ID, err)
			report.Failed++
			report.Failures = append(report.Failures, RowFailure{ID: row.ID, Title: row.Title, Err: err.Error()})
			continue
		}

		if err := s.store.UpdateEmbedding(ctx, row.ID, embedding); err != nil {
			log.Printf("backfill update failed for %s (%s): %v", row.Title, row.ID, err)
			report.Failed++
			report.Failures = append(report.Failures, RowFailure{ID: row.ID, Title: row.Title, Err: err.Error()})
			continue
		}

		report.Healed++
	}

	return report, nil
}
