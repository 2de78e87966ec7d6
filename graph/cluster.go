package graph

import "github.com/poiesic/mindgraph/core"

// Cluster groups node IDs around a seed node. The seed is the first member.
type Cluster struct {
	Seed    string
	Members []string
}

// ClusterNodes greedily partitions embedded nodes by similarity. Nodes are
// visited in insertion order; each unassigned node seeds a new cluster and
// claims every remaining unassigned node strictly above the threshold.
// Nodes without vectors are left out entirely.
//
// Every embedded node lands in exactly one cluster; like the hierarchy
// view, the result is derived and never persisted.
func (g *Graph) ClusterNodes(threshold float32) []Cluster {
	g.mu.RLock()
	defer g.mu.RUnlock()

	assigned := make(map[string]bool, len(g.nodes))
	var clusters []Cluster

	for _, id := range g.order {
		seed := g.nodes[id]
		if assigned[id] || len(seed.Vector) == 0 {
			continue
		}

		cluster := Cluster{Seed: id, Members: []string{id}}
		assigned[id] = true

		for _, otherID := range g.order {
			if assigned[otherID] {
				continue
			}
			other := g.nodes[otherID]
			if len(other.Vector) == 0 {
				continue
			}
			if core.Cosine(seed.Vector, other.Vector) > threshold {
				cluster.Members = append(cluster.Members, otherID)
				assigned[otherID] = true
			}
		}

		clusters = append(clusters, cluster)
	}

	return clusters
}
