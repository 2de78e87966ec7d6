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
	"sort"

	"github.com/poiesic/mindgraph/core"
)

// DefaultMaxEdgesPerNode caps how many similarity edges each node
// contributes during GenerateSimilarityEdges.
const DefaultMaxEdgesPerNode = 3

// GenerateSimilarityEdges adds a k-nearest-neighbor-like edge set over all
// embedded nodes: for each node, the other nodes strictly above the
// threshold are sorted descending by similarity and capped to maxPerNode,
// and an edge is added for each, deduplicated by unordered pair key.
//
// The result is independent of any root. Edges carry the similarity as
// Weight and an empty relation. Returns the edges actually added (pairs
// that already had an edge are skipped).
func (g *Graph) GenerateSimilarityEdges(threshold float32, maxPerNode int) []*core.Edge {
	if maxPerNode <= 0 {
		maxPerNode = DefaultMaxEdgesPerNode
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	var added []*core.Edge
	for _, id := range g.order {
		node := g.nodes[id]
		if len(node.Vector) == 0 {
			continue
		}

		var candidates []scoredNode
		for _, otherID := range g.order {
			if otherID == id {
				continue
			}
			other := g.nodes[otherID]
			score := core.Cosine(node.Vector, other.Vector)
			if score > threshold {
				candidates = append(candidates, scoredNode{node: other, score: score})
			}
		}

		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].score > candidates[j].score
		})

		if len(candidates) > maxPerNode {
			candidates = candidates[:maxPerNode]
		}

		for _, c := range candidates {
			key := core.PairKey(id, c.node.Id)
			if _, exists := g.edges[key]; exists {
				continue
			}
			edge := &core.Edge{
				Source: id,
				Target: c.node.Id,
				Weight: c.score,
			}
			g.edges[key] = edge
			g.edgeOrder = append(g.edgeOrder, key)
			added = append(added, edge)
		}
	}

	g.logger.Debug("generated similarity edges",
		"threshold", threshold,
		"maxPerNode", maxPerNode,
		"added", len(added))
	return added
}
