// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"log/slog"

	"github.com/poiesic/mindgraph/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// WordGenerator implements ai.WordGenerator using OpenAI-compatible chat APIs.
type WordGenerator struct {
	client    llms.Model
	wordCount int
	logger    *slog.Logger
}

// newWordGenerator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newWordGenerator(config *ai.Config) (*WordGenerator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.Token),
		openai.WithModel(config.GeneratorModel),
	)
	if err != nil {
		return nil, err
	}

	return &WordGenerator{
		client:    client,
		wordCount: config.WordCount,
		logger:    slog.Default().With("component", "openai-generator"),
	}, nil
}

// NewWordGenerator creates a new word generator using the provided configuration.
//
// Returns ai.WordGenerator interface to enforce abstraction.
func NewWordGenerator(config *ai.Config) (ai.WordGenerator, error) {
	return newWordGenerator(config)
}

// GenerateRelatedWords asks the model for words related to the keyword.
// Unparseable responses degrade to an empty list; only transport or API
// failures surface as errors. There is no retry policy.
func (g *WordGenerator) GenerateRelatedWords(ctx context.Context, keyword string) ([]ai.RelatedWord, error) {
	return g.generate(ctx, buildRelatedWordsPrompt(keyword, g.wordCount))
}

// DeepDive asks the model for words related to a concept, steering it away
// from the neighbors that already surround the node.
func (g *WordGenerator) DeepDive(ctx context.Context, label string, neighbors []string) ([]ai.RelatedWord, error) {
	return g.generate(ctx, buildDeepDivePrompt(label, neighbors, g.wordCount))
}

func (g *WordGenerator) generate(ctx context.Context, userPrompt string) ([]ai.RelatedWord, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildSystemPrompt()),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(userPrompt),
			},
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

	g.logger.Debug("generated related words", "count", len(words))
	return words, nil
}
