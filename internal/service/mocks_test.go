package service

import (
	"context"

	"github.com/arclabs/arcai/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockEmbeddingClient is a mock implementation of EmbeddingClient
type MockEmbeddingClient struct {
	mock.Mock
}

func (m *MockEmbeddingClient) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

// MockDocumentStore is a mock implementation of the store interfaces
type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) Insert(ctx context.Context, title, content string, embedding []float32) (string, error) {
	args := m.Called(ctx, title, content, embedding)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentStore) FindMissingEmbeddings(ctx context.Context) ([]domain.Document, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentStore) UpdateEmbedding(ctx context.Context, id string, embedding []float32) error {
	args := m.Called(ctx, id, embedding)
	return args.Error(0)
}

func (m *MockDocumentStore) SimilaritySearch(ctx context.Context, queryEmbedding []float32, matchCount int, matchThreshold float64) ([]domain.Match, error) {
	args := m.Called(ctx, queryEmbedding, matchCount, matchThreshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Match), args.Error(1)
}

// MockGenerationClient is a mock implementation of GenerationClient
type MockGenerationClient struct {
	mock.Mock
}

func (m *MockGenerationClient) GenerateAnswer(ctx context.Context, system, user string) (string, error) {
	args := m.Called(ctx, system, user)
	return args.String(0), args.Error(1)
}

// MockRetriever is a mock implementation of Retriever
type MockRetriever struct {
	mock.Mock
}

func (m *MockRetriever) Retrieve(ctx context.Context, query string, matchCount int, matchThreshold float64) []domain.ContextItem {
	args := m.Called(ctx, query, matchCount, matchThreshold)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.ContextItem)
}

func testEmbedding(dims int) []float32 {
	embedding := make([]float32, dims)
	for i := range embedding {
		embedding[i] = float32(i) * 0.001
	}
	return embedding
}
