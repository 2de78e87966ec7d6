package embedding

import "errors"

var (
	// ErrRepositoryRequired indicates a missing graph repository.
	ErrRepositoryRequired = errors.New("graph repository is required")

	// ErrEmbedderRequired indicates a missing embedder.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrVectorCountMismatch indicates the embedder returned a different
	// number of vectors than texts submitted.
	ErrVectorCountMismatch = errors.New("vector count does not match text count")
)
