package graph

import "errors"

var (
	// ErrNodeNotFound indicates that the requested node is not in the graph.
	ErrNodeNotFound = errors.New("node not found")

	// ErrEdgeNotFound indicates that the requested edge is not in the graph.
	ErrEdgeNotFound = errors.New("edge not found")

	// ErrDuplicateNode indicates an attempt to add a node whose ID is taken.
	ErrDuplicateNode = errors.New("duplicate node")

	// ErrMissingEndpoint indicates an edge referencing a node not in the graph.
	ErrMissingEndpoint = errors.New("edge endpoint not in graph")
)
