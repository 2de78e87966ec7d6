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


package graph

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/poiesic/mindgraph/core"
)

// Graph is an in-memory concept graph: a mapping from id to node plus a
// mapping from unordered pair key to edge. Arbitrary graphs are allowed;
// no cycle prevention is performed.
//
// Nodes iterate in insertion order, which also serves as the stable
// tie-break order for similarity ranking.
type Graph struct {
	mu        sync.RWMutex
	nodes     map[string]*core.Node
	edges     map[string]*core.Edge
	order     []string // node ids in insertion order
	edgeOrder []string // edge pair keys in insertion order
	dims      int      // established vector dimensionality, 0 until first vector
	logger    *slog.Logger
}

// Option configures a Graph.
type Option func(*Graph)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(g *Graph) {
		if logger == nil {
			logger = slog.Default()
		}
		g.logger = logger
	}
}

// New creates an empty graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		nodes:  make(map[string]*core.Node),
		edges:  make(map[string]*core.Edge),
		logger: slog.Default().With("component", "graph"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AddNode adds a node to the graph. The node is validated first; adding a
// node whose ID is already present returns ErrDuplicateNode. CreatedAt is
// set if zero.
//
// The first node with a non-empty vector establishes the session's vector
// dimensionality; later mismatches are accepted with a logged warning and
// degrade to similarity 0 wherever they are compared.
func (g *Graph) AddNode(node *core.Node) error {
	if err := core.ValidateNode(node); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.nodes[node.Id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNode, node.Id)
	}

	if node.CreatedAt.IsZero() {
		node.CreatedAt = time.Now().UTC()
	}
	node.UpdatedAt = node.CreatedAt

	if len(node.Vector) > 0 {
		if g.dims == 0 {
			g.dims = len(node.Vector)
		} else if len(node.Vector) != g.dims {
			g.logger.Warn("node vector length differs from session dimensionality",
				"id", node.Id,
				"len", len(node.Vector),
				"dims", g.dims)
		}
	}

	g.nodes[node.Id] = node
	g.order = append(g.order, node.Id)
	return nil
}

// SetVector assigns an embedding vector to an existing node.
func (g *Graph) SetVector(id string, vector []float32) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	node, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}

	if len(vector) > 0 && g.dims == 0 {
		g.dims = len(vector)
	}
	node.Vector = vector
	node.UpdatedAt = time.Now().UTC()
	return nil
}

// AddEdge adds an edge between two existing nodes. Edges are deduplicated
// by unordered pair key: adding an edge for a pair that already has one
// (in either direction) returns added=false and leaves the stored edge
// untouched.
func (g *Graph) AddEdge(edge *core.Edge) (added bool, err error) {
	if err := core.ValidateEdge(edge); err != nil {
		return false, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.nodes[edge.Source]; !ok {
		return false, fmt.Errorf("%w: %s", ErrMissingEndpoint, edge.Source)
	}
	if _, ok := g.nodes[edge.Target]; !ok {
		return false, fmt.Errorf("%w: %s", ErrMissingEndpoint, edge.Target)
	}

	key := edge.Key()
	if _, exists := g.edges[key]; exists {
		return false, nil
	}

	g.edges[key] = edge
	g.edgeOrder = append(g.edgeOrder, key)
	return true, nil
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (*core.Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	node, ok := g.nodes[id]
	return node, ok
}

// NodeByLabel returns the first node whose label matches case-insensitively,
// scanning in insertion order.
func (g *Graph) NodeByLabel(label string) (*core.Node, bool) {
	want := strings.ToLower(strings.TrimSpace(label))

	g.mu.RLock()
	defer g.mu.RUnlock()

	for _, id := range g.order {
		node := g.nodes[id]
		if strings.ToLower(node.Label) == want {
			return node, true
		}
	}
	return nil, false
}

// HasEdge reports whether an edge exists between the two nodes, in either
// direction.
func (g *Graph) HasEdge(source, target string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.edges[core.PairKey(source, target)]
	return ok
}

// Edge returns the edge between the two nodes, if any, in either direction.
func (g *Graph) Edge(source, target string) (*core.Edge, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	edge, ok := g.edges[core.PairKey(source, target)]
	return edge, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*core.Node {
	g.mu.RLock()
	defer g.mu.RUnlock()

	nodes := make([]*core.Node, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []*core.Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	edges := make([]*core.Edge, 0, len(g.edges))
	for _, key := range g.edgeOrder {
		if edge, ok := g.edges[key]; ok {
			edges = append(edges, edge)
		}
	}
	return edges
}

// Neighbors returns the labels of all nodes connected to the given node.
func (g *Graph) Neighbors(id string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var labels []string
	for _, other := range g.order {
		if other == id {
			continue
		}
		if _, ok := g.edges[core.PairKey(id, other)]; ok {
			labels = append(labels, g.nodes[other].Label)
		}
	}
	return labels
}

// RemoveNode deletes a node and every edge touching it.
func (g *Graph) RemoveNode(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.nodes[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}

	delete(g.nodes, id)
	for i, nid := range g.order {
		if nid == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}

	for key, edge := range g.edges {
		if edge.Source == id || edge.Target == id {
			delete(g.edges, key)
		}
	}
	g.compactEdgeOrder()
	return nil
}

// compactEdgeOrder drops pair keys whose edges were deleted.
// Callers must hold the write lock.
func (g *Graph) compactEdgeOrder() {
	keys := g.edgeOrder[:0]
	for _, key := range g.edgeOrder {
		if _, ok := g.edges[key]; ok {
			keys = append(keys, key)
		}
	}
	g.edgeOrder = keys
}

// RemoveEdge deletes the edge between two nodes, in either direction.
func (g *Graph) RemoveEdge(source, target string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := core.PairKey(source, target)
	if _, ok := g.edges[key]; !ok {
		return fmt.Errorf("%w: %s", ErrEdgeNotFound, key)
	}
	delete(g.edges, key)
	g.compactEdgeOrder()
	return nil
}

// SetVisible toggles a node's visibility flag.
func (g *Graph) SetVisible(id string, visible bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	node, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	node.Visible = visible
	node.UpdatedAt = time.Now().UTC()
	return nil
}

// SetExpanded toggles a node's expansion flag.
func (g *Graph) SetExpanded(id string, expanded bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	node, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	node.Expanded = expanded
	node.UpdatedAt = time.Now().UTC()
	return nil
}

// Clear removes every node and edge and resets the session dimensionality.
func (g *Graph) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.nodes = make(map[string]*core.Node)
	g.edges = make(map[string]*core.Edge)
	g.order = nil
	g.edgeOrder = nil
	g.dims = 0
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.edges)
}
