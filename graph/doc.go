// Package graph provides the in-memory concept graph and the similarity
// heuristics that structure it.
//
// A Graph holds nodes and undirected, deduplicated edges. Three operations
// derive structure from node embeddings:
//
//   - BuildHierarchy: an ephemeral tree view rooted at a chosen node, built
//     by greedy nearest-neighbor selection with a branching cap and depth
//     bound. Recomputed on every root or threshold change, never persisted.
//   - GenerateSimilarityEdges: a root-independent k-nearest-neighbor-like
//     edge set over all embedded nodes.
//   - ClusterNodes: greedy seed-based clustering over the same similarity
//     primitive.
//
// All methods are safe for concurrent use.
package graph
