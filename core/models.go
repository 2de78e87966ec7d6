package core

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// IDFromLabel generates a deterministic node ID from a display label using
// BLAKE2b hashing. Labels are trimmed and lowercased first, so labels that
// differ only in case map to the same ID.
func IDFromLabel(label string) string {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(strings.ToLower(strings.TrimSpace(label))))
	return hex.EncodeToString(h.Sum(nil))
}

// PairKey returns the canonical key for an unordered pair of node IDs.
// Edges are stored as directed pairs but treated as undirected; the pair key
// is identical regardless of argument order.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}

// Node represents a single concept in a graph.
// It may be enriched with an embedding vector during processing.
type Node struct {
	Id           string
	Label        string
	Depth        int       // Distance from the chosen root node
	Vector       []float32 // Embedding vector (populated by an Embedder)
	Visible      bool
	Expanded     bool
	LLMGenerated bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	c := *n
	if n.Vector != nil {
		c.Vector = make([]float32, len(n.Vector))
		copy(c.Vector, n.Vector)
	}
	return &c
}

// Edge represents a relation between two nodes.
// Stored as a directed pair but treated as undirected: lookups use the
// unordered pair key, and at most one edge exists per unordered pair.
type Edge struct {
	Source   string
	Target   string
	Relation string  // Optional relation label (e.g. "is-a", "part-of")
	Weight   float32 // Optional similarity score
}

// Key returns the unordered pair key for the edge.
func (e *Edge) Key() string {
	return PairKey(e.Source, e.Target)
}

// NodeMatch represents a node match from vector similarity search.
type NodeMatch struct {
	Node  *Node
	Score float32
}
