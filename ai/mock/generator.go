package mock

import (
	"context"
	"fmt"

	"github.com/poiesic/mindgraph/ai"
)

// MockWordGenerator is a test double for ai.WordGenerator.
// It allows custom behavior injection via function fields.
type MockWordGenerator struct {
	// GenerateRelatedWordsFunc is called by GenerateRelatedWords if set.
	// If nil, uses default canned behavior.
	GenerateRelatedWordsFunc func(ctx context.Context, keyword string) ([]ai.RelatedWord, error)

	// DeepDiveFunc is called by DeepDive if set.
	// If nil, uses default canned behavior.
	DeepDiveFunc func(ctx context.Context, label string, neighbors []string) ([]ai.RelatedWord, error)

	callCount int
}

// NewMockWordGenerator creates a mock generator with default canned behavior.
// Note: Returns concrete type to allow test assertions via GetMockGenerator().
func NewMockWordGenerator() *MockWordGenerator {
	return &MockWordGenerator{}
}

// GenerateRelatedWords returns canned words derived from the keyword.
func (m *MockWordGenerator) GenerateRelatedWords(ctx context.Context, keyword string) ([]ai.RelatedWord, error) {
	m.callCount++

	if m.GenerateRelatedWordsFunc != nil {
		return m.GenerateRelatedWordsFunc(ctx, keyword)
	}

	return cannedWords(keyword), nil
}

// DeepDive returns canned words derived from the label, skipping any that
// match a neighbor label.
func (m *MockWordGenerator) DeepDive(ctx context.Context, label string, neighbors []string) ([]ai.RelatedWord, error) {
	m.callCount++

	if m.DeepDiveFunc != nil {
		return m.DeepDiveFunc(ctx, label, neighbors)
	}

	known := make(map[string]bool, len(neighbors))
	for _, n := range neighbors {
		known[n] = true
	}

	words := make([]ai.RelatedWord, 0, 3)
	for _, w := range cannedWords(label) {
		if !known[w.Word] {
			words = append(words, w)
		}
	}
	return words, nil
}

// CallCount returns the number of times any method was called.
func (m *MockWordGenerator) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockWordGenerator) Reset() {
	m.callCount = 0
	m.GenerateRelatedWordsFunc = nil
	m.DeepDiveFunc = nil
}

// cannedWords derives a small deterministic word list from a keyword.
func cannedWords(keyword string) []ai.RelatedWord {
	return []ai.RelatedWord{
		{Word: fmt.Sprintf("%s theory", keyword), Relation: "related-to"},
		{Word: fmt.Sprintf("%s example", keyword), Relation: "example-of"},
		{Word: fmt.Sprintf("applied %s", keyword), Relation: "used-for"},
	}
}
