package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/arclabs/arcai/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// DocumentRepository handles persistence and similarity search of
// document chunks.
type DocumentRepository struct {
	db         dbtx
	dimensions int
}

func NewDocumentRepository(pool *pgxpool.Pool, dimensions int) *DocumentRepository {
	return &DocumentRepository{db: pool, dimensions: dimensions}
}

func NewDocumentRepositoryWithTx(tx pgx.Tx, dimensions int) *DocumentRepository {
	return &DocumentRepository{db: tx, dimensions: dimensions}
}

// ContentHash is the natural key for insert-or-skip idempotency:
// re-ingesting the same chunk is a no-op rather than a duplicate row.
func ContentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// Insert stores a new document chunk and returns the store-assigned
// id. A chunk whose content hash already exists is skipped and
// reported as domain.ErrDuplicateDocument.
func (r *DocumentRepository) Insert(ctx context.Context, title, content string, embedding []float32) (string, error) {
	if content == "" {
		return "", domain.ErrEmptyContent
	}
	if len(embedding) != r.dimensions {
		return "", domain.ErrInvalidEmbedding
	}

	var id string
	err := r.db.QueryRow(ctx,
		`INSERT INTO documents (title, content, content_hash, embedding)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (content_hash) DO NOTHING
		 RETURNING id`,
		title, content, ContentHash(content), pgvector.NewVector(embedding),
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrDuplicateDocument
		}
		return "", domain.StoreError("insert", err)
	}

	return id, nil
}

// FindMissingEmbeddings returns rows whose embedding is absent, the
// work queue for the backfill reconciler.
func (r *DocumentRepository) FindMissingEmbeddings(ctx context.Context) ([]domain.Document, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, title, content
		 FROM documents
		 WHERE embedding IS NULL
		 ORDER BY created_at`,
	)
	if err != nil {
		return nil, domain.StoreError("find missing embeddings", err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var d domain.Document
		if err := rows.Scan(&d.ID, &d.Title, &d.Content); err != nil {
			return nil, domain.StoreError("scan missing embeddings", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StoreError("find missing embeddings", err)
	}

	return docs, nil
}

// UpdateEmbedding completes a row that was stored without a vector.
func (r *DocumentRepository) UpdateEmbedding(ctx context.Context, id string, embedding []float32) error {
	if len(embedding) != r.dimensions {
		return domain.ErrInvalidEmbedding
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE documents SET embedding = $2 WHERE id = $1`,
		id, pgvector.NewVector(embedding),
	)
	if err != nil {
		return domain.StoreError("update embedding", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDocumentNotFound
	}

	return nil
}

// SimilaritySearch returns up to matchCount rows whose cosine
// similarity to queryEmbedding is at least matchThreshold, ordered by
// descending similarity. Rows without an embedding are never
// considered.
func (r *DocumentRepository) SimilaritySearch(ctx context.Context, queryEmbedding []float32, matchCount int, matchThreshold float64) ([]domain.Match, error) {
	if len(queryEmbedding) != r.dimensions {
		return nil, domain.ErrInvalidEmbedding
	}
	if matchCount <= 0 {
		matchCount = 8
	}

	vec := pgvector.NewVector(queryEmbedding)
	rows, err := r.db.Query(ctx,
		`SELECT id, title, content, 1 - (embedding <=> $1) AS similarity
		 FROM documents
		 WHERE embedding IS NOT NULL
		   AND 1 - (embedding <=> $1) >= $3
		 ORDER BY embedding <=> $1
		 LIMIT $2`,
		vec, matchCount, matchThreshold,
	)
	if err != nil {
		return nil, domain.StoreError("similarity search", err)
	}
	defer rows.Close()

	var matches []domain.Match
	for rows.Next() {
		var m domain.Match
		if err := rows.Scan(&m.ID, &m.Title, &m.Content, &m.Similarity); err != nil {
			return nil, domain.StoreError("scan similarity search", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StoreError("similarity search", err)
	}

	return matches, nil
}

// Count returns the number of stored document chunks.
func (r *DocumentRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM documents`).Scan(&n); err != nil {
		return 0, domain.StoreError("count", err)
	}
	return n, nil
}
