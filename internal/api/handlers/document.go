package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/arclabs/arcai/internal/api"
)

// DocumentInserter defines the single-document ingestion interface
type DocumentInserter interface {
	InsertDocument(ctx context.Context, title, content string) (string, error)
}

// InsertDocumentRequest is the body of POST /documents.
type InsertDocumentRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// InsertDocumentResponse carries the store-assigned id.
type InsertDocumentResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// DocumentHandler serves single-document inserts.
type DocumentHandler struct {
	svc DocumentInserter
}

func NewDocumentHandler(svc DocumentInserter) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

func (h *DocumentHandler) Insert(w http.ResponseWriter, r *http.Request) {
	var req InsertDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		api.Error(w, http.StatusBadRequest, `both "title" and "content" are required`)
		return
	}

	id, err := h.svc.InsertDocument(r.Context(), title, content)
	if err != nil {
		log.Printf("document insert failed: %v", err)
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusCreated, InsertDocumentResponse{ID: id, Title: title})
}
