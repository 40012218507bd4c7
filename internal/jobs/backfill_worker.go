package jobs

import (
	"context"
	"fmt"
	"log"

	"github.com/arclabs/arcai/internal/service"
)

// Reconciler defines the interface for the embedding repair pass
type Reconciler interface {
	Backfill(ctx context.Context) (*service.BackfillReport, error)
}

// BackfillWorker periodically heals rows that lost their embedding to
// a partial ingestion failure. Safe to run any number of times: a
// complete store yields an empty pass.
type BackfillWorker struct {
	reconciler Reconciler
}

// NewBackfillWorker creates a new BackfillWorker instance
func NewBackfillWorker(reconciler Reconciler) *BackfillWorker {
	return &BackfillWorker{reconciler: reconciler}
}

// ProcessJobs implements the JobProcessor interface
func (w *BackfillWorker) ProcessJobs(ctx context.Context) error {
	report, err := w.reconciler.Backfill(ctx)
	if err != nil {
		return fmt.Errorf("backfill pass failed: %w", err)
	}

	if report.Attempted > 0 {
		log.Printf("backfill pass: attempted=%d healed=%d failed=%d",
			report.Attempted, report.Healed, report.Failed)
	}

	return nil
}
