package cli

import (
	"context"
	"fmt"

	"github.com/arclabs/arcai/internal/config"
	"github.com/arclabs/arcai/internal/database"
	"github.com/arclabs/arcai/internal/openai"
	"github.com/arclabs/arcai/internal/repository"
	"github.com/arclabs/arcai/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
)

// App wires config, store and pipeline services for one CLI
// invocation. Commands that talk to OpenAI and the database build one
// App, use it, and Close it.
type App struct {
	Cfg       *config.Config
	Pool      *pgxpool.Pool
	AI        *openai.Client
	Docs      *repository.DocumentRepository
	Ingest    *service.IngestService
	Backfill  *service.BackfillService
	Retrieval *service.RetrievalService
	Answer    *service.AnswerService
}

// NewApp loads configuration, connects to the database and constructs
// the full pipeline. It fails fast when the OpenAI key is missing,
// since every command that uses an App needs live embedding calls.
func NewApp(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.RequireOpenAI(); err != nil {
		return nil, err
	}

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	ai := newAIClient(cfg)
	docs := repository.NewDocumentRepository(pool, cfg.EmbeddingDimensions)
	retrieval := service.NewRetrievalService(ai, docs)

	return &App{
		Cfg:       cfg,
		Pool:      pool,
		AI:        ai,
		Docs:      docs,
		Ingest:    service.NewIngestService(ai, docs, cfg.ChunkSize, cfg.ChunkOverlap),
		Backfill:  service.NewBackfillService(ai, docs),
		Retrieval: retrieval,
		Answer:    service.NewAnswerService(retrieval, ai, cfg.MatchCount, cfg.MatchThreshold),
	}, nil
}

// Close releases the database pool.
func (a *App) Close() {
	a.Pool.Close()
}

func newAIClient(cfg *config.Config) *openai.Client {
	return openai.NewClientWithConfig(openai.Config{
		APIKey:              cfg.OpenAIAPIKey,
		EmbeddingModel:      cfg.EmbeddingModel,
		EmbeddingDimensions: cfg.EmbeddingDimensions,
		ChatModel:           cfg.ChatModel,
		Temperature:         cfg.Temperature,
	})
}
