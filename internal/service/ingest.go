package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/arclabs/arcai/internal/chunker"
	"github.com/arclabs/arcai/internal/domain"
)

// EmbeddingClient defines the interface for generating embeddings
type EmbeddingClient interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// DocumentInserter defines the store interface used by ingestion
type DocumentInserter interface {
	Insert(ctx context.Context, title, content string, embedding []float32) (string, error)
}

// ChunkFailure records one chunk that could not be embedded or stored.
type ChunkFailure struct {
	Part  int    `json:"part"`
	Title string `json:"title"`
	Err   string `json:"error"`
}

// SourceReport summarizes ingestion of one source document.
type SourceReport struct {
	Source     string         `json:"source"`
	ChunkCount int            `json:"chunk_count"`
	Inserted   int            `json:"inserted"`
	Skipped    int            `json:"skipped"`
	Failures   []ChunkFailure `json:"failures,omitempty"`
}

// IngestService drives chunking, embedding and insertion of source
// documents.
type IngestService struct {
	client       EmbeddingClient
	store        DocumentInserter
	chunkSize    int
	chunkOverlap int
}

func NewIngestService(client EmbeddingClient, store DocumentInserter, chunkSize, chunkOverlap int) *IngestService {
	if chunkSize <= 0 {
		chunkSize = chunker.DefaultSize
		chunkOverlap = chunker.DefaultOverlap
	}
	return &IngestService{
		client:       client,
		store:        store,
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
	}
}

// IngestSource chunks one source document and embeds and inserts each
// chunk in order. Chunk titles are "<name> (part k/N)", 1-indexed.
// Per-chunk failures are recorded in the report and do not abort the
// remaining chunks; only an invalid chunk configuration is fatal.
func (s *IngestService) IngestSource(ctx context.Context, name, text string) (*SourceReport, error) {
	chunks, err := chunker.Split(text, s.chunkSize, s.chunkOverlap)
	if err != nil {
		return nil, err
	}

	report := &SourceReport{
		Source:     name,
		ChunkCount: len(chunks),
	}

	log.Printf("ingesting %s: %d chunks", name, len(chunks))

	total := len(chunks)
	for i, chunk := range chunks {
		title := fmt.Sprintf("%s (part %d/%d)", name, i+1, total)

		embedding, err := s.client.GenerateEmbedding(ctx, chunk)
		if err != nil {
			log.Printf("embedding failed for %q: %v", title, err)
			report.Failures = append(report.Failures, ChunkFailure{Part: i + 1, Title: title, Err: err.Error()})
			continue
		}

		if _, err := s.store.Insert(ctx, title, chunk, embedding); err != nil {
			if errors.Is(err, domain.ErrDuplicateDocument) {
				report.Skipped++
				continue
			}
			log.Printf("insert failed for %q: %v", title, err)
			report.Failures = append(report.Failures, ChunkFailure{Part: i + 1, Title: title, Err: err.Error()})
			continue
		}

		report.Inserted++
	}

	return report, nil
}

// InsertDocument embeds and stores one document as a single chunk,
// without splitting. Unlike batch ingestion this is a single-shot
// operation: the first failure propagates to the caller.
func (s *IngestService) InsertDocument(ctx context.Context, title, content string) (string, error) {
	if content == "" {
		return "", domain.ErrEmptyContent
	}

	embedding, err := s.client.GenerateEmbedding(ctx, content)
	if err != nil {
		return "", err
	}

	return s.store.Insert(ctx, title, content, embedding)
}

// IngestAll processes each source document in order and returns one
// report per source.
func (s *IngestService) IngestAll(ctx context.Context, docs []domain.SourceDocument) ([]*SourceReport, error) {
	reports := make([]*SourceReport, 0, len(docs))
	for _, doc := range docs {
		report, err := s.IngestSource(ctx, doc.Name, doc.Text)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}
