package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/arclabs/arcai/internal/domain"
)

// NoMatchesContext is handed to the model when retrieval produced
// nothing; the model must never see an ambiguous empty string.
const NoMatchesContext = "CONTEXT: (no strong matches found)"

// GenerationClient defines the interface for the final answer call
type GenerationClient interface {
	GenerateAnswer(ctx context.Context, system, user string) (string, error)
}

// Retriever defines the retrieval interface used by the orchestrator
type Retriever interface {
	Retrieve(ctx context.Context, query string, matchCount int, matchThreshold float64) []domain.ContextItem
}

// AnswerService assembles retrieved context and the behavioral
// contract into a single generation request.
type AnswerService struct {
	retriever      Retriever
	client         GenerationClient
	contract       SystemContract
	matchCount     int
	matchThreshold float64
}

func NewAnswerService(retriever Retriever, client GenerationClient, matchCount int, matchThreshold float64) *AnswerService {
	if matchCount <= 0 {
		matchCount = DefaultMatchCount
	}
	return &AnswerService{
		retriever:      retriever,
		client:         client,
		contract:       DefaultSystemContract(),
		matchCount:     matchCount,
		matchThreshold: matchThreshold,
	}
}

// BuildContextBlock concatenates formatted chunks under a labeled
// header, or substitutes the explicit no-matches marker.
func BuildContextBlock(items []domain.ContextItem) string {
	if len(items) == 0 {
		return NoMatchesContext
	}

	blocks := make([]string, 0, len(items))
	for _, item := range items {
		blocks = append(blocks, FormatContextItem(item))
	}

	return fmt.Sprintf(
		"CONTEXT (top matches from your knowledge):\n%s\n-- end of context --",
		strings.Join(blocks, "\n\n"),
	)
}

// BuildUserPrompt combines the context block with the literal question
// and the citation instruction.
func BuildUserPrompt(contextBlock, query string) string {
	return fmt.Sprintf(`%s

USER QUESTION:
%s

When you reference a fact from the context, add [source: Chunk N].
If context is empty or insufficient, say so and answer with general knowledge carefully.
Keep it concise and actionable.`, contextBlock, query)
}

// Answer runs the full flow for one question: retrieve, assemble,
// generate. Retrieval failure degrades to no context; a generation
// failure is the one terminal condition and propagates to the caller.
func (s *AnswerService) Answer(ctx context.Context, query string) (string, error) {
	items := s.retriever.Retrieve(ctx, query, s.matchCount, s.matchThreshold)

	contextBlock := BuildContextBlock(items)
	userPrompt := BuildUserPrompt(contextBlock, query)

	return s.client.GenerateAnswer(ctx, s.contract.Render(), userPrompt)
}
