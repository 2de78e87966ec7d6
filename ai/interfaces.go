package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings.
	// The returned slice contains embeddings in the same order as the
	// input texts. Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// WordGenerator produces candidate concepts for graph expansion.
// Implementations must be thread-safe for concurrent use.
type WordGenerator interface {
	// GenerateRelatedWords returns a short list of words related to the
	// given keyword, each with a relation label. A response the backend
	// cannot parse degrades to an empty list rather than an error.
	GenerateRelatedWords(ctx context.Context, keyword string) ([]RelatedWord, error)

	// DeepDive returns related words for a concept given the labels of its
	// current neighbors, so the backend can propose concepts that are not
	// already present around the node.
	DeepDive(ctx context.Context, label string, neighbors []string) ([]RelatedWord, error)
}

// Provider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages Embedder and
// WordGenerator instances, ensuring they share configuration and resources.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// WordGenerator returns the concept generation service.
	// The returned WordGenerator is safe for concurrent use.
	WordGenerator() WordGenerator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
