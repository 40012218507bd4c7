package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/arclabs/arcai/internal/api"
)

// Answerer defines the answer orchestration interface
type Answerer interface {
	Answer(ctx context.Context, query string) (string, error)
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse carries the generated answer.
type ChatResponse struct {
	Response string `json:"response"`
}

// ChatHandler serves retrieval-augmented answers.
type ChatHandler struct {
	svc Answerer
}

func NewChatHandler(svc Answerer) *ChatHandler {
	return &ChatHandler{svc: svc}
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		api.Error(w, http.StatusBadRequest, `missing "message" in body`)
		return
	}

	answer, err := h.svc.Answer(r.Context(), message)
	if err != nil {
		log.Printf("answer failed: %v", err)
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, ChatResponse{Response: answer})
}
