package server

import (
	"net/http"

	"github.com/arclabs/arcai/internal/api"
	"github.com/arclabs/arcai/internal/api/handlers"
	"github.com/arclabs/arcai/internal/api/middleware"
	"github.com/go-chi/chi/v5"
)

type RouterConfig struct {
	ChatHandler     *handlers.ChatHandler
	SearchHandler   *handlers.SearchHandler
	DocumentHandler *handlers.DocumentHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 1 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/chat", cfg.ChatHandler.Chat)
	r.Post("/search", cfg.SearchHandler.Search)
	r.Post("/documents", cfg.DocumentHandler.Insert)

	return r
}
