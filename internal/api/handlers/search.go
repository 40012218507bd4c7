package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/arclabs/arcai/internal/api"
	"github.com/arclabs/arcai/internal/domain"
)

// Searcher defines the retrieval interface used by the search endpoint
type Searcher interface {
	Search(ctx context.Context, query string, matchCount int, matchThreshold float64) ([]domain.Match, error)
}

// SearchRequest is the body of POST /search.
type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
	// Pointer so an explicit 0.0 (maximum recall) is distinguishable
	// from an omitted field.
	Threshold *float64 `json:"threshold,omitempty"`
}

// SearchResult is one ranked match.
type SearchResult struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	Similarity float64 `json:"similarity"`
}

// SearchResponse carries ranked matches.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

// SearchHandler serves similarity search over stored chunks.
type SearchHandler struct {
	svc              Searcher
	defaultCount     int
	defaultThreshold float64
}

func NewSearchHandler(svc Searcher, defaultCount int, defaultThreshold float64) *SearchHandler {
	return &SearchHandler{svc: svc, defaultCount: defaultCount, defaultThreshold: defaultThreshold}
}

func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		api.Error(w, http.StatusBadRequest, `missing "query" in body`)
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = h.defaultCount
	}
	threshold := h.defaultThreshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}

	matches, err := h.svc.Search(r.Context(), query, limit, threshold)
	if err != nil {
		log.Printf("search failed: %v", err)
		api.HandleError(w, err)
		return
	}

	results := make([]SearchResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, SearchResult{
			ID:         m.ID,
			Title:      m.Title,
			Content:    m.Content,
			Similarity: m.Similarity,
		})
	}

	api.Success(w, http.StatusOK, SearchResponse{Results: results})
}
