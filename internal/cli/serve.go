package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arclabs/arcai/internal/api/handlers"
	"github.com/arclabs/arcai/internal/config"
	"github.com/arclabs/arcai/internal/database"
	"github.com/arclabs/arcai/internal/jobs"
	"github.com/arclabs/arcai/internal/repository"
	"github.com/arclabs/arcai/internal/server"
	"github.com/arclabs/arcai/internal/service"
	"github.com/arclabs/arcai/internal/telemetry"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the arc API server with the chat, search and document endpoints",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	cmd.Flags().Bool("no-migrate", false, "Skip automatic database migrations on startup")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.SentryDSN != "" {
		// Default to 10% sampling in production, 100% in development
		sampleRate := 0.1
		if cfg.Environment == "development" {
			sampleRate = 1.0
		}

		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			TracesSampleRate: sampleRate,
			Debug:            cfg.Debug,
		})
		if err != nil {
			log.Printf("telemetry init failed (continuing without tracing): %v", err)
		} else {
			defer shutdownTelemetry()
		}
	}

	portFlag, _ := cmd.Flags().GetString("port")
	if portFlag != "" && portFlag != "8080" {
		cfg.Port = portFlag
	}

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()
	log.Println("connected to database")

	noMigrate, _ := cmd.Flags().GetBool("no-migrate")
	if !noMigrate {
		if err := runMigrations(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	docs := repository.NewDocumentRepository(pool, cfg.EmbeddingDimensions)

	var chatHandler *handlers.ChatHandler
	var searchHandler *handlers.SearchHandler
	var documentHandler *handlers.DocumentHandler
	var backfillWorker *jobs.Worker

	if cfg.HasOpenAI() {
		ai := newAIClient(cfg)
		retrievalSvc := service.NewRetrievalService(ai, docs)
		answerSvc := service.NewAnswerService(retrievalSvc, ai, cfg.MatchCount, cfg.MatchThreshold)
		ingestSvc := service.NewIngestService(ai, docs, cfg.ChunkSize, cfg.ChunkOverlap)

		chatHandler = handlers.NewChatHandler(answerSvc)
		searchHandler = handlers.NewSearchHandler(retrievalSvc, cfg.MatchCount, cfg.MatchThreshold)
		documentHandler = handlers.NewDocumentHandler(ingestSvc)

		if cfg.BackfillIntervalSeconds > 0 {
			backfillSvc := service.NewBackfillService(ai, docs)
			processor := jobs.NewBackfillWorker(backfillSvc)
			interval := time.Duration(cfg.BackfillIntervalSeconds) * time.Second
			backfillWorker = jobs.NewWorker("backfill", processor, interval)
			go backfillWorker.Start(ctx)
			log.Println("backfill worker started")
		}
	} else {
		log.Println("no OpenAI key configured: chat, search and document endpoints disabled")
		chatHandler = handlers.NewChatHandler(&noOpAnswerer{})
		searchHandler = handlers.NewSearchHandler(&noOpSearcher{}, cfg.MatchCount, cfg.MatchThreshold)
		documentHandler = handlers.NewDocumentHandler(&noOpInserter{})
	}

	router := server.NewRouter(server.RouterConfig{
		ChatHandler:     chatHandler,
		SearchHandler:   searchHandler,
		DocumentHandler: documentHandler,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	if backfillWorker != nil {
		backfillWorker.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}

func runMigrations(databaseURL string) error {
	// golang-migrate needs a database/sql handle, not the pgx pool
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database for migrations: %w", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	if err == migrate.ErrNilVersion {
		log.Println("migrations: database is up to date (no migrations applied)")
	} else if dirty {
		return fmt.Errorf("migration version %d is dirty - manual intervention required", version)
	} else if err == migrate.ErrNoChange {
		log.Printf("migrations: database is up to date (version %d)", version)
	} else {
		log.Printf("migrations: applied successfully (version %d)", version)
	}

	return nil
}
