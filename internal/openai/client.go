package openai

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/arclabs/arcai/internal/domain"
	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultEmbeddingModel is the OpenAI model used for generating embeddings
	DefaultEmbeddingModel = openai.SmallEmbedding3
	// DefaultEmbeddingDimensions is the expected dimension of embeddings from text-embedding-3-small
	DefaultEmbeddingDimensions = 1536
	// DefaultChatModel is the OpenAI model used for answer generation
	DefaultChatModel = openai.GPT4oMini
	// DefaultTemperature keeps answers crisp and low-hallucination
	DefaultTemperature = 0.2

	// NoReply is returned when the model produces no content for a
	// well-formed request.
	NoReply = "(no reply)"
)

var (
	// ErrEmptyText is returned when text is empty
	ErrEmptyText = errors.New("text cannot be empty")
	// ErrNoAPIKey is returned when OpenAI API key is not set
	ErrNoAPIKey = errors.New("OPENAI_API_KEY environment variable not set")
)

// CompletionAPI defines the interface for embedding and chat calls.
type CompletionAPI interface {
	CreateEmbedding(ctx context.Context, text string) ([]float32, error)
	CreateChatCompletion(ctx context.Context, system, user string) (string, error)
}

// Client wraps the OpenAI API behind the two calls the pipeline needs.
type Client struct {
	api        CompletionAPI
	dimensions int
}

// OpenAIAdapter is the live implementation of CompletionAPI.
type OpenAIAdapter struct {
	client         *openai.Client
	embeddingModel openai.EmbeddingModel
	chatModel      string
	temperature    float32
}

func NewOpenAIAdapter(apiKey, embeddingModel, chatModel string, temperature float32) *OpenAIAdapter {
	if embeddingModel == "" {
		embeddingModel = string(DefaultEmbeddingModel)
	}
	if chatModel == "" {
		chatModel = DefaultChatModel
	}
	return &OpenAIAdapter{
		client:         openai.NewClient(apiKey),
		embeddingModel: openai.EmbeddingModel(embeddingModel),
		chatModel:      chatModel,
		temperature:    temperature,
	}
}

// CreateEmbedding calls the OpenAI API to embed a single text.
func (a *OpenAIAdapter) CreateEmbedding(ctx context.Context, text string) ([]float32, error) {
	resp, err := a.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: a.embeddingModel,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Data) == 0 {
		return nil, errors.New("no embedding data returned")
	}

	return resp.Data[0].Embedding, nil
}

// CreateChatCompletion runs one chat completion with a system and a user turn.
func (a *OpenAIAdapter) CreateChatCompletion(ctx context.Context, system, user string) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.chatModel,
		Temperature: a.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}

	return resp.Choices[0].Message.Content, nil
}

type Config struct {
	APIKey              string
	EmbeddingModel      string
	EmbeddingDimensions int
	ChatModel           string
	Temperature         float32
}

// NewClient creates a new OpenAI client using defaults.
func NewClient(apiKey string) *Client {
	return NewClientWithConfig(Config{APIKey: apiKey, Temperature: DefaultTemperature})
}

// NewClientWithConfig creates a new OpenAI client with explicit configuration.
func NewClientWithConfig(cfg Config) *Client {
	dimensions := cfg.EmbeddingDimensions
	if dimensions <= 0 {
		dimensions = DefaultEmbeddingDimensions
	}
	return &Client{
		api:        NewOpenAIAdapter(cfg.APIKey, cfg.EmbeddingModel, cfg.ChatModel, cfg.Temperature),
		dimensions: dimensions,
	}
}

// NewClientFromEnv creates a new OpenAI client using OPENAI_API_KEY environment variable
func NewClientFromEnv() (*Client, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	return NewClient(apiKey), nil
}

// Dimensions returns the expected embedding vector length.
func (c *Client) Dimensions() int {
	return c.dimensions
}

// GenerateEmbedding generates an embedding for the given text. The
// vector length is validated against the configured dimensions so a
// model mismatch fails here rather than at the store.
func (c *Client) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	embedding, err := c.api.CreateEmbedding(ctx, text)
	if err != nil {
		return nil, domain.EmbeddingError(err)
	}

	if len(embedding) != c.dimensions {
		return nil, domain.ErrInvalidEmbedding
	}

	return embedding, nil
}

// GenerateAnswer runs one generation call and returns the trimmed
// answer text, or NoReply when the model returns no content.
func (c *Client) GenerateAnswer(ctx context.Context, system, user string) (string, error) {
	reply, err := c.api.CreateChatCompletion(ctx, system, user)
	if err != nil {
		return "", domain.GenerationError(err)
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return NoReply, nil
	}
	return reply, nil
}
