package storage

import (
	"context"

	"github.com/poiesic/mindgraph/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// FindSimilar finds nodes similar to the given vector.
	// Returns nodes with similarity >= minSimilarity, up to limit results.
	// Results are ordered by similarity score (highest first).
	FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.NodeMatch, error)

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// GraphRepository provides operations for persisting concept graphs.
type GraphRepository interface {
	Repository

	// PutNodes upserts one or more nodes.
	// Sets CreatedAt on first insert; UpdatedAt is always refreshed.
	// Returns the nodes with timestamps populated.
	PutNodes(ctx context.Context, nodes ...*core.Node) ([]*core.Node, error)

	// GetNode retrieves a single node by ID.
	// Returns ErrNotFound if the node doesn't exist.
	GetNode(ctx context.Context, id string) (*core.Node, error)

	// GetNodeByLabel retrieves a node by its label, case-insensitively.
	// Returns ErrNotFound if no matching node exists.
	GetNodeByLabel(ctx context.Context, label string) (*core.Node, error)

	// GetAllNodes retrieves all nodes from storage.
	GetAllNodes(ctx context.Context) ([]*core.Node, error)

	// DeleteNodes removes nodes by their IDs, along with any edges that
	// reference them. Returns ErrNotFound if any node doesn't exist.
	DeleteNodes(ctx context.Context, ids ...string) error

	// PutEdges upserts one or more edges, keyed by unordered endpoint pair.
	// Edges referencing missing nodes are rejected with ErrNotFound.
	PutEdges(ctx context.Context, edges ...*core.Edge) error

	// DeleteEdge removes the edge between two nodes, in either endpoint
	// order. Returns ErrNotFound if no such edge exists.
	DeleteEdge(ctx context.Context, source, target string) error

	// GetAllEdges retrieves all edges from storage.
	GetAllEdges(ctx context.Context) ([]*core.Edge, error)

	// Clear removes all nodes and edges.
	Clear(ctx context.Context) error
}
