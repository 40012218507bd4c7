package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	OpenAIAPIKey        string  `envconfig:"OPENAI_API_KEY"`
	EmbeddingModel      string  `envconfig:"EMBEDDING_MODEL" default:"text-embedding-3-small"`
	EmbeddingDimensions int     `envconfig:"EMBEDDING_DIMENSIONS" default:"1536"`
	ChatModel           string  `envconfig:"CHAT_MODEL" default:"gpt-4o-mini"`
	Temperature         float32 `envconfig:"TEMPERATURE" default:"0.2"`

	ChunkSize    int `envconfig:"CHUNK_SIZE" default:"1200"`
	ChunkOverlap int `envconfig:"CHUNK_OVERLAP" default:"200"`

	// Retrieval tuning. There is no canonical threshold; lower means
	// more recall, higher means stricter matches.
	MatchCount     int     `envconfig:"MATCH_COUNT" default:"8"`
	MatchThreshold float64 `envconfig:"MATCH_THRESHOLD" default:"0.55"`

	// Backfill worker poll interval in seconds; 0 disables the worker.
	BackfillIntervalSeconds int `envconfig:"BACKFILL_INTERVAL_SECONDS" default:"300"`

	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY_ID"`
	S3SecretKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`

	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("ARC", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.ChunkOverlap >= cfg.ChunkSize || cfg.ChunkSize <= 0 {
		return nil, fmt.Errorf("chunk overlap (%d) must be smaller than chunk size (%d)", cfg.ChunkOverlap, cfg.ChunkSize)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func (c *Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}

func (c *Config) HasS3() bool {
	return c.S3AccessKey != "" && c.S3SecretKey != ""
}

// RequireOpenAI fails when a command needs live OpenAI calls but no
// key is configured.
func (c *Config) RequireOpenAI() error {
	if !c.HasOpenAI() {
		return fmt.Errorf("ARC_OPENAI_API_KEY (or OPENAI_API_KEY) is required for this command")
	}
	return nil
}
