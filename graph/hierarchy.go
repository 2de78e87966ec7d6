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
	"sort"

	"github.com/poiesic/mindgraph/core"
)

const (
	// DefaultBranching is the maximum number of children selected per node.
	DefaultBranching = 3

	// DefaultMaxDepth is the maximum hierarchy depth below the root.
	DefaultMaxDepth = 3
)

// HierarchyNode is one node of the derived tree view. Score is the cosine
// similarity to the parent (1 for the root itself).
type HierarchyNode struct {
	Node     *core.Node
	Score    float32
	Children []*HierarchyNode
}

// HierarchyOption configures BuildHierarchy.
type HierarchyOption func(*hierarchyParams)

type hierarchyParams struct {
	branching int
	maxDepth  int
}

// WithBranching caps the number of children per node.
// Default is DefaultBranching.
func WithBranching(n int) HierarchyOption {
	return func(p *hierarchyParams) {
		if n > 0 {
			p.branching = n
		}
	}
}

// WithMaxDepth caps the hierarchy depth below the root.
// Default is DefaultMaxDepth.
func WithMaxDepth(n int) HierarchyOption {
	return func(p *hierarchyParams) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

// BuildHierarchy derives an ephemeral tree view rooted at the given node.
//
// At each node, every remaining visible candidate is scored against the
// current node; candidates strictly above the threshold are sorted
// descending by similarity (stable, so ties keep insertion order), the top
// `branching` are taken as children and marked used, then each child is
// expanded in turn until maxDepth. A node used at one level is never
// reconsidered at a deeper level, so no node appears under two parents.
//
// The tree is not persisted; callers recompute it on every root or
// threshold change.
func (g *Graph) BuildHierarchy(rootID string, threshold float32, opts ...HierarchyOption) (*HierarchyNode, error) {
	params := &hierarchyParams{
		branching: DefaultBranching,
		maxDepth:  DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(params)
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	rootNode, ok := g.nodes[rootID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, rootID)
	}

	used := map[string]bool{rootID: true}
	root := &HierarchyNode{Node: rootNode, Score: 1}
	root.Children = g.buildLevel(rootNode, threshold, params, used, 1)
	return root, nil
}

type scoredNode struct {
	node  *core.Node
	score float32
}

// buildLevel selects children for one parent and recurses depth-first.
// Callers must hold at least the read lock.
func (g *Graph) buildLevel(parent *core.Node, threshold float32, params *hierarchyParams, used map[string]bool, level int) []*HierarchyNode {
	if level > params.maxDepth {
		return nil
	}

	// Score every unused visible candidate against the parent,
	// in insertion order so ties break deterministically.
	var candidates []scoredNode
	for _, id := range g.order {
		node := g.nodes[id]
		if used[id] || !node.Visible {
			continue
		}
		score := core.Cosine(parent.Vector, node.Vector)
		if score > threshold {
			candidates = append(candidates, scoredNode{node: node, score: score})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > params.branching {
		candidates = candidates[:params.branching]
	}

	// Mark the whole level used before recursing so siblings cannot
	// claim each other's children.
	for _, c := range candidates {
		used[c.node.Id] = true
	}

	children := make([]*HierarchyNode, 0, len(candidates))
	for _, c := range candidates {
		child := &HierarchyNode{Node: c.node, Score: c.score}
		child.Children = g.buildLevel(c.node, threshold, params, used, level+1)
		children = append(children, child)
	}
	return children
}

// Walk visits the hierarchy depth-first, calling fn with each node and its
// depth below the root (root is depth 0).
func (h *HierarchyNode) Walk(fn func(node *HierarchyNode, depth int)) {
	h.walk(fn, 0)
}

func (h *HierarchyNode) walk(fn func(node *HierarchyNode, depth int), depth int) {
	fn(h, depth)
	for _, child := range h.Children {
		child.walk(fn, depth+1)
	}
}
