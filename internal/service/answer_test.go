package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/arclabs/arcai/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBuildContextBlock_WithItems(t *testing.T) {
	items := []domain.ContextItem{
		{Rank: 1, Title: "A", Content: "first"},
		{Rank: 2, Title: "B", Content: "second"},
	}

	block := BuildContextBlock(items)

	assert.True(t, strings.HasPrefix(block, "CONTEXT (top matches from your knowledge):"))
	assert.Contains(t, block, "Chunk 1 | Title: A\nfirst")
	assert.Contains(t, block, "Chunk 2 | Title: B\nsecond")
	assert.True(t, strings.HasSuffix(block, "-- end of context --"))
	// Ranked order preserved
	assert.Less(t, strings.Index(block, "Chunk 1"), strings.Index(block, "Chunk 2"))
}

func TestBuildContextBlock_Empty(t *testing.T) {
	assert.Equal(t, NoMatchesContext, BuildContextBlock(nil))
	assert.Equal(t, NoMatchesContext, BuildContextBlock([]domain.ContextItem{}))
}

func TestBuildUserPrompt(t *testing.T) {
	prompt := BuildUserPrompt("CONTEXT: (no strong matches found)", "What does PPAR-gamma do?")

	assert.Contains(t, prompt, "CONTEXT: (no strong matches found)")
	assert.Contains(t, prompt, "USER QUESTION:\nWhat does PPAR-gamma do?")
	assert.Contains(t, prompt, "[source: Chunk N]")
}

func TestAnswer_EndToEndWithSingleChunk(t *testing.T) {
	retriever := new(MockRetriever)
	generator := new(MockGenerationClient)
	svc := NewAnswerService(retriever, generator, 8, 0.0)

	ctx := context.Background()
	query := "What does PPAR-gamma do?"
	items := []domain.ContextItem{{
		Rank:       1,
		Title:      "Notes (part 1/1)",
		Content:    "PPAR-gamma improves insulin sensitivity.",
		Similarity: 0.9,
	}}

	retriever.On("Retrieve", ctx, query, 8, 0.0).Return(items)

	var sentSystem, sentUser string
	generator.On("GenerateAnswer", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			sentSystem = args.String(1)
			sentUser = args.String(2)
		}).
		Return("It improves insulin sensitivity [source: Chunk 1].", nil)

	answer, err := svc.Answer(ctx, query)

	require.NoError(t, err)
	assert.Equal(t, "It improves insulin sensitivity [source: Chunk 1].", answer)
	assert.Contains(t, sentUser, "Chunk 1")
	assert.Contains(t, sentUser, "PPAR-gamma improves insulin sensitivity.")
	assert.Contains(t, sentUser, query)
	assert.Contains(t, sentSystem, "ARC")
}

func TestAnswer_NoMatchesStillAnswers(t *testing.T) {
	retriever := new(MockRetriever)
	generator := new(MockGenerationClient)
	svc := NewAnswerService(retriever, generator, 8, 0.55)

	ctx := context.Background()
	retriever.On("Retrieve", ctx, "anything", 8, 0.55).Return(nil)

	var sentUser string
	generator.On("GenerateAnswer", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { sentUser = args.String(2) }).
		Return("I could not find that in your notes.", nil)

	answer, err := svc.Answer(ctx, "anything")

	require.NoError(t, err)
	assert.NotEmpty(t, answer)
	assert.Contains(t, sentUser, "(no strong matches found)")
}

func TestAnswer_GenerationFailureIsTerminal(t *testing.T) {
	retriever := new(MockRetriever)
	generator := new(MockGenerationClient)
	svc := NewAnswerService(retriever, generator, 8, 0.55)

	ctx := context.Background()
	retriever.On("Retrieve", ctx, "q", 8, 0.55).Return(nil)
	generator.On("GenerateAnswer", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string")).
		Return("", domain.GenerationError(errors.New("model overloaded")))

	answer, err := svc.Answer(ctx, "q")

	assert.Error(t, err)
	assert.Empty(t, answer)
	assert.True(t, domain.IsCode(err, domain.ErrCodeGeneration))
}

func TestAnswer_ContractSentOnEveryCall(t *testing.T) {
	retriever := new(MockRetriever)
	generator := new(MockGenerationClient)
	svc := NewAnswerService(retriever, generator, 8, 0.55)

	ctx := context.Background()
	retriever.On("Retrieve", ctx, mock.AnythingOfType("string"), 8, 0.55).Return(nil)

	var systems []string
	generator.On("GenerateAnswer", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { systems = append(systems, args.String(1)) }).
		Return("ok", nil)

	_, err := svc.Answer(ctx, "first")
	require.NoError(t, err)
	_, err = svc.Answer(ctx, "second")
	require.NoError(t, err)

	require.Len(t, systems, 2)
	assert.Equal(t, systems[0], systems[1], "contract is static, not data-dependent")
}
