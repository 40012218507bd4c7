package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/arclabs/arcai/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestIngestSource_SingleChunk(t *testing.T) {
	client := new(MockEmbeddingClient)
	store := new(MockDocumentStore)
	svc := NewIngestService(client, store, 1200, 200)

	ctx := context.Background()
	embedding := testEmbedding(1536)

	client.On("GenerateEmbedding", ctx, "PPAR-gamma improves insulin sensitivity.").Return(embedding, nil)
	store.On("Insert", ctx, "Notes (part 1/1)", "PPAR-gamma improves insulin sensitivity.", embedding).Return("id-1", nil)

	report, err := svc.IngestSource(ctx, "Notes", "PPAR-gamma improves insulin sensitivity.")

	require.NoError(t, err)
	assert.Equal(t, "Notes", report.Source)
	assert.Equal(t, 1, report.ChunkCount)
	assert.Equal(t, 1, report.Inserted)
	assert.Equal(t, 0, report.Skipped)
	assert.Empty(t, report.Failures)
	client.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestIngestSource_PartTitlesAreSequential(t *testing.T) {
	client := new(MockEmbeddingClient)
	store := new(MockDocumentStore)
	svc := NewIngestService(client, store, 50, 10)

	ctx := context.Background()
	text := strings.Repeat("word ", 40) // normalizes to 199 chars, 5 chunks of step 40

	client.On("GenerateEmbedding", ctx, mock.AnythingOfType("string")).Return(testEmbedding(1536), nil)

	var titles []string
	store.On("Insert", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.Anything).
		Run(func(args mock.Arguments) {
			titles = append(titles, args.String(1))
		}).
		Return("id", nil)

	report, err := svc.IngestSource(ctx, "longdoc.txt", text)

	require.NoError(t, err)
	require.Equal(t, report.ChunkCount, len(titles))
	for i, title := range titles {
		assert.Equal(t, fmt.Sprintf("longdoc.txt (part %d/%d)", i+1, report.ChunkCount), title)
	}
}

func TestIngestSource_EmbeddingFailureDoesNotAbortBatch(t *testing.T) {
	client := new(MockEmbeddingClient)
	store := new(MockDocumentStore)
	svc := NewIngestService(client, store, 50, 10)

	ctx := context.Background()
	text := strings.Repeat("alpha beta gamma delta ", 10)
	embedErr := errors.New("quota exceeded")

	calls := 0
	client.On("GenerateEmbedding", ctx, mock.AnythingOfType("string")).
		Return(nil, embedErr).
		Once()
	client.On("GenerateEmbedding", ctx, mock.AnythingOfType("string")).
		Run(func(mock.Arguments) { calls++ }).
		Return(testEmbedding(1536), nil)
	store.On("Insert", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.Anything).Return("id", nil)

	report, err := svc.IngestSource(ctx, "doc", text)

	require.NoError(t, err)
	assert.Equal(t, report.ChunkCount-1, report.Inserted)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, 1, report.Failures[0].Part)
	assert.Contains(t, report.Failures[0].Err, "quota exceeded")
	assert.Equal(t, report.ChunkCount-1, calls, "remaining chunks still processed")
}

func TestIngestSource_DuplicateChunkSkipped(t *testing.T) {
	client := new(MockEmbeddingClient)
	store := new(MockDocumentStore)
	svc := NewIngestService(client, store, 1200, 200)

	ctx := context.Background()
	embedding := testEmbedding(1536)

	client.On("GenerateEmbedding", ctx, "same content").Return(embedding, nil)
	store.On("Insert", ctx, "dup (part 1/1)", "same content", embedding).Return("", domain.ErrDuplicateDocument)

	report, err := svc.IngestSource(ctx, "dup", "same content")

	require.NoError(t, err)
	assert.Equal(t, 0, report.Inserted)
	assert.Equal(t, 1, report.Skipped)
	assert.Empty(t, report.Failures)
}

func TestIngestSource_InsertFailureRecorded(t *testing.T) {
	client := new(MockEmbeddingClient)
	store := new(MockDocumentStore)
	svc := NewIngestService(client, store, 1200, 200)

	ctx := context.Background()
	embedding := testEmbedding(1536)

	client.On("GenerateEmbedding", ctx, "content").Return(embedding, nil)
	store.On("Insert", ctx, "doc (part 1/1)", "content", embedding).
		Return("", domain.StoreError("insert", errors.New("connection reset")))

	report, err := svc.IngestSource(ctx, "doc", "content")

	require.NoError(t, err)
	assert.Equal(t, 0, report.Inserted)
	require.Len(t, report.Failures, 1)
	assert.Contains(t, report.Failures[0].Err, "connection reset")
}

func TestIngestSource_EmptyText(t *testing.T) {
	client := new(MockEmbeddingClient)
	store := new(MockDocumentStore)
	svc := NewIngestService(client, store, 1200, 200)

	report, err := svc.IngestSource(context.Background(), "empty.txt", "   \n ")

	require.NoError(t, err)
	assert.Equal(t, 0, report.ChunkCount)
	client.AssertNotCalled(t, "GenerateEmbedding", mock.Anything, mock.Anything)
}

func TestIngestAll_ReportPerSource(t *testing.T) {
	client := new(MockEmbeddingClient)
	store := new(MockDocumentStore)
	svc := NewIngestService(client, store, 1200, 200)

	ctx := context.Background()
	client.On("GenerateEmbedding", ctx, mock.AnythingOfType("string")).Return(testEmbedding(1536), nil)
	store.On("Insert", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.Anything).Return("id", nil)

	reports, err := svc.IngestAll(ctx, []domain.SourceDocument{
		{Name: "a.txt", Text: "first document"},
		{Name: "b.md", Text: "second document"},
	})

	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "a.txt", reports[0].Source)
	assert.Equal(t, "b.md", reports[1].Source)
}
