package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/arclabs/arcai/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAnswerer is a mock implementation of Answerer
type MockAnswerer struct {
	mock.Mock
}

func (m *MockAnswerer) Answer(ctx context.Context, query string) (string, error) {
	args := m.Called(ctx, query)
	return args.String(0), args.Error(1)
}

// MockSearcher is a mock implementation of Searcher
type MockSearcher struct {
	mock.Mock
}

func (m *MockSearcher) Search(ctx context.Context, query string, matchCount int, matchThreshold float64) ([]domain.Match, error) {
	args := m.Called(ctx, query, matchCount, matchThreshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Match), args.Error(1)
}

// MockInserter is a mock implementation of DocumentInserter
type MockInserter struct {
	mock.Mock
}

func (m *MockInserter) InsertDocument(ctx context.Context, title, content string) (string, error) {
	args := m.Called(ctx, title, content)
	return args.String(0), args.Error(1)
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestChatHandler_Success(t *testing.T) {
	svc := new(MockAnswerer)
	handler := NewChatHandler(svc)

	svc.On("Answer", mock.Anything, "What does PPAR-gamma do?").
		Return("It improves insulin sensitivity [source: Chunk 1].", nil)

	rec := postJSON(t, handler.Chat, `{"message":"What does PPAR-gamma do?"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data ChatResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Data.Response, "Chunk 1")
}

func TestChatHandler_MissingMessage(t *testing.T) {
	handler := NewChatHandler(new(MockAnswerer))

	rec := postJSON(t, handler.Chat, `{"message":"  "}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "message")
}

func TestChatHandler_InvalidBody(t *testing.T) {
	handler := NewChatHandler(new(MockAnswerer))

	rec := postJSON(t, handler.Chat, `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatHandler_GenerationFailure(t *testing.T) {
	svc := new(MockAnswerer)
	handler := NewChatHandler(svc)

	svc.On("Answer", mock.Anything, "q").
		Return("", domain.GenerationError(errors.New("internal detail: token abc123")))

	rec := postJSON(t, handler.Chat, `{"message":"q"}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	// Sanitized: the raw cause never reaches the client
	assert.NotContains(t, rec.Body.String(), "abc123")
}

func TestSearchHandler_Defaults(t *testing.T) {
	svc := new(MockSearcher)
	handler := NewSearchHandler(svc, 8, 0.55)

	svc.On("Search", mock.Anything, "magnesium", 8, 0.55).
		Return([]domain.Match{{ID: "id-1", Title: "Notes (part 1/1)", Content: "c", Similarity: 0.8}}, nil)

	rec := postJSON(t, handler.Search, `{"query":"magnesium"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data SearchResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Results, 1)
	assert.Equal(t, "Notes (part 1/1)", resp.Data.Results[0].Title)
	svc.AssertExpectations(t)
}

func TestSearchHandler_ExplicitZeroThreshold(t *testing.T) {
	svc := new(MockSearcher)
	handler := NewSearchHandler(svc, 8, 0.55)

	svc.On("Search", mock.Anything, "q", 5, 0.0).Return([]domain.Match{}, nil)

	rec := postJSON(t, handler.Search, `{"query":"q","limit":5,"threshold":0.0}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestSearchHandler_StoreFailure(t *testing.T) {
	svc := new(MockSearcher)
	handler := NewSearchHandler(svc, 8, 0.55)

	svc.On("Search", mock.Anything, "q", 8, 0.55).
		Return(nil, domain.StoreError("similarity search", errors.New("down")))

	rec := postJSON(t, handler.Search, `{"query":"q"}`)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestDocumentHandler_Insert(t *testing.T) {
	svc := new(MockInserter)
	handler := NewDocumentHandler(svc)

	svc.On("InsertDocument", mock.Anything, "Embedding Test", "This is a test document.").
		Return("id-42", nil)

	rec := postJSON(t, handler.Insert, `{"title":"Embedding Test","content":"This is a test document."}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "id-42"))
}

func TestDocumentHandler_Duplicate(t *testing.T) {
	svc := new(MockInserter)
	handler := NewDocumentHandler(svc)

	svc.On("InsertDocument", mock.Anything, "T", "C").
		Return("", domain.ErrDuplicateDocument)

	rec := postJSON(t, handler.Insert, `{"title":"T","content":"C"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDocumentHandler_MissingFields(t *testing.T) {
	handler := NewDocumentHandler(new(MockInserter))

	rec := postJSON(t, handler.Insert, `{"title":"only title"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
