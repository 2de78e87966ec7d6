package ollama

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/mindgraph/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// WordGenerator implements ai.WordGenerator using Ollama's native chat API.
type WordGenerator struct {
	client    llms.Model
	wordCount int
	logger    *slog.Logger
}

// newWordGenerator is an internal constructor that returns the concrete type.
func newWordGenerator(config *ai.Config) (*WordGenerator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := ollama.New(
		ollama.WithServerURL(config.Host),
		ollama.WithModel(config.GeneratorModel),
	)
	if err != nil {
		return nil, err
	}

	return &WordGenerator{
		client:    client,
		wordCount: config.WordCount,
		logger:    slog.Default().With("component", "ollama-generator"),
	}, nil
}

// NewWordGenerator creates a new word generator using the provided configuration.
//
// Returns ai.WordGenerator interface to enforce abstraction.
func NewWordGenerator(config *ai.Config) (ai.WordGenerator, error) {
	return newWordGenerator(config)
}

// GenerateRelatedWords asks the model for words related to the keyword.
// Unparseable responses degrade to an empty list. There is no retry policy.
func (g *WordGenerator) GenerateRelatedWords(ctx context.Context, keyword string) ([]ai.RelatedWord, error) {
	prompt := fmt.Sprintf("Give me %d concepts related to %q.", g.wordCount, keyword)
	return g.generate(ctx, prompt)
}

// DeepDive asks the model for words related to a concept, steering it away
// from the neighbors that already surround the node.
func (g *WordGenerator) DeepDive(ctx context.Context, label string, neighbors []string) ([]ai.RelatedWord, error) {
	if len(neighbors) == 0 {
		return g.GenerateRelatedWords(ctx, label)
	}
	prompt := fmt.Sprintf(
		"Give me %d concepts related to %q that go deeper into the topic. "+
			"It is already connected to: %s. Do not repeat these.",
		g.wordCount, label, strings.Join(neighbors, ", "))
	return g.generate(ctx, prompt)
}

func (g *WordGenerator) generate(ctx context.Context, userPrompt string) ([]ai.RelatedWord, error) {
	system := "You are a concept-mapping assistant. Reply with a JSON array of objects, " +
		"each with a \"word\" and a \"relation\" field. Words are lowercase, 1-3 words each. " +
		"The relation must be one of: " + strings.Join(ai.RelationTypes, ", ") +
		". Reply with the JSON array only, no explanations."

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(system)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(userPrompt)},
		},
	}

	response, err := g.client.GenerateContent(ctx, content, llms.WithTemperature(0.7))
	if err != nil {
		g.logger.Error("failed to generate content", "err", err)
		return nil, err
	}

	if len(response.Choices) < 1 {
		g.logger.Debug("no choices returned from model")
		return []ai.RelatedWord{}, nil
	}

	words := ai.ParseRelatedWords(response.Choices[0].Content)
	if len(words) > g.wordCount {
		words = words[:g.wordCount]
	}
	return words, nil
}
