package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/mindgraph/core"
	"github.com/poiesic/mindgraph/storage"
)

func TestGraphNodeBasics(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	node := &core.Node{
		Id:      core.IDFromLabel("quantum physics"),
		Label:   "quantum physics",
		Visible: true,
		Vector:  []float32{0.1, 0.2, 0.3},
	}

	added, err := repo.PutNodes(ctx, node)
	if err != nil {
		t.Fatalf("Failed to put node: %v", err)
	}
	if len(added) != 1 {
		t.Fatalf("Expected 1 node, got %d", len(added))
	}
	if added[0].CreatedAt.IsZero() {
		t.Fatal("Expected CreatedAt to be set")
	}

	retrieved, err := repo.GetNode(ctx, node.Id)
	if err != nil {
		t.Fatalf("Failed to get node: %v", err)
	}
	if retrieved.Label != "quantum physics" {
		t.Fatalf("Expected 'quantum physics', got '%s'", retrieved.Label)
	}
	if len(retrieved.Vector) != 3 {
		t.Fatalf("Expected vector of length 3, got %d", len(retrieved.Vector))
	}

	// Label lookup is case-insensitive
	byLabel, err := repo.GetNodeByLabel(ctx, "Quantum Physics")
	if err != nil {
		t.Fatalf("Failed to get node by label: %v", err)
	}
	if byLabel.Id != node.Id {
		t.Fatalf("Expected id %s, got %s", node.Id, byLabel.Id)
	}
}

func TestGraphNodeUpsert(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	node := &core.Node{Id: "n1", Label: "apple", Visible: true}
	first, err := repo.PutNodes(ctx, node)
	if err != nil {
		t.Fatalf("Failed to put node: %v", err)
	}
	createdAt := first[0].CreatedAt

	// Re-put with a changed label; CreatedAt survives and the old label
	// index entry is gone.
	update := &core.Node{Id: "n1", Label: "apples", Visible: true}
	if _, err := repo.PutNodes(ctx, update); err != nil {
		t.Fatalf("Failed to update node: %v", err)
	}
	if !update.CreatedAt.Equal(createdAt) {
		t.Fatal("Expected CreatedAt to be preserved on update")
	}

	if _, err := repo.GetNodeByLabel(ctx, "apple"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for stale label, got %v", err)
	}
	if _, err := repo.GetNodeByLabel(ctx, "apples"); err != nil {
		t.Fatalf("Failed to get node by new label: %v", err)
	}
}

func TestGraphNodeNotFound(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	if _, err := repo.GetNode(ctx, "ghost"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetNodeByLabel(ctx, "ghost"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if err := repo.DeleteNodes(ctx, "ghost"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestGraphEdges(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	nodes := []*core.Node{
		{Id: "a", Label: "apple", Visible: true},
		{Id: "b", Label: "banana", Visible: true},
		{Id: "c", Label: "cherry", Visible: true},
	}
	if _, err := repo.PutNodes(ctx, nodes...); err != nil {
		t.Fatalf("Failed to put nodes: %v", err)
	}

	if err := repo.PutEdges(ctx, &core.Edge{Source: "a", Target: "b", Relation: "related-to"}); err != nil {
		t.Fatalf("Failed to put edge: %v", err)
	}

	// Same unordered pair overwrites instead of duplicating
	if err := repo.PutEdges(ctx, &core.Edge{Source: "b", Target: "a", Relation: "is-a"}); err != nil {
		t.Fatalf("Failed to put reversed edge: %v", err)
	}

	edges, err := repo.GetAllEdges(ctx)
	if err != nil {
		t.Fatalf("Failed to get edges: %v", err)
	}
	if len(edges) != 1 {
		t.Fatalf("Expected 1 edge, got %d", len(edges))
	}
	if edges[0].Relation != "is-a" {
		t.Fatalf("Expected relation 'is-a', got '%s'", edges[0].Relation)
	}

	// Edge to a missing node is rejected
	err = repo.PutEdges(ctx, &core.Edge{Source: "a", Target: "ghost"})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	// Delete in reversed endpoint order
	if err := repo.DeleteEdge(ctx, "b", "a"); err != nil {
		t.Fatalf("Failed to delete edge: %v", err)
	}
	if err := repo.DeleteEdge(ctx, "a", "b"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestGraphDeleteNodeCascades(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	nodes := []*core.Node{
		{Id: "a", Label: "apple", Visible: true},
		{Id: "b", Label: "banana", Visible: true},
		{Id: "c", Label: "cherry", Visible: true},
	}
	if _, err := repo.PutNodes(ctx, nodes...); err != nil {
		t.Fatalf("Failed to put nodes: %v", err)
	}
	edges := []*core.Edge{
		{Source: "a", Target: "b"},
		{Source: "b", Target: "c"},
		{Source: "a", Target: "c"},
	}
	if err := repo.PutEdges(ctx, edges...); err != nil {
		t.Fatalf("Failed to put edges: %v", err)
	}

	if err := repo.DeleteNodes(ctx, "b"); err != nil {
		t.Fatalf("Failed to delete node: %v", err)
	}

	remaining, err := repo.GetAllEdges(ctx)
	if err != nil {
		t.Fatalf("Failed to get edges: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("Expected 1 edge after cascade, got %d", len(remaining))
	}
	if remaining[0].Key() != core.PairKey("a", "c") {
		t.Fatalf("Unexpected surviving edge %s-%s", remaining[0].Source, remaining[0].Target)
	}
}

func TestGraphGetAllNodes(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	for _, label := range []string{"apple", "banana", "cherry"} {
		node := &core.Node{Id: core.IDFromLabel(label), Label: label, Visible: true}
		if _, err := repo.PutNodes(ctx, node); err != nil {
			t.Fatalf("Failed to put node: %v", err)
		}
	}

	all, err := repo.GetAllNodes(ctx)
	if err != nil {
		t.Fatalf("Failed to get all nodes: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 nodes, got %d", len(all))
	}
}

func TestGraphFindSimilar(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	nodes := []*core.Node{
		{Id: "a", Label: "apple", Visible: true, Vector: []float32{1, 0}},
		{Id: "b", Label: "banana", Visible: true, Vector: []float32{0.9, 0.436}},
		{Id: "c", Label: "cherry", Visible: true, Vector: []float32{0, 1}},
		{Id: "d", Label: "date", Visible: true}, // no vector
	}
	if _, err := repo.PutNodes(ctx, nodes...); err != nil {
		t.Fatalf("Failed to put nodes: %v", err)
	}

	matches, err := repo.FindSimilar(ctx, []float32{1, 0}, 0.5, 10)
	if err != nil {
		t.Fatalf("Failed to find similar: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}
	if matches[0].Node.Id != "a" {
		t.Fatalf("Expected best match 'a', got '%s'", matches[0].Node.Id)
	}
	if matches[0].Score < matches[1].Score {
		t.Fatal("Expected matches ordered by descending score")
	}

	// Limit applies after sorting
	limited, err := repo.FindSimilar(ctx, []float32{1, 0}, 0.5, 1)
	if err != nil {
		t.Fatalf("Failed to find similar: %v", err)
	}
	if len(limited) != 1 || limited[0].Node.Id != "a" {
		t.Fatal("Expected single best match 'a'")
	}
}

func TestGraphClear(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	nodes := []*core.Node{
		{Id: "a", Label: "apple", Visible: true},
		{Id: "b", Label: "banana", Visible: true},
	}
	if _, err := repo.PutNodes(ctx, nodes...); err != nil {
		t.Fatalf("Failed to put nodes: %v", err)
	}
	if err := repo.PutEdges(ctx, &core.Edge{Source: "a", Target: "b"}); err != nil {
		t.Fatalf("Failed to put edge: %v", err)
	}

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("Failed to clear: %v", err)
	}

	all, err := repo.GetAllNodes(ctx)
	if err != nil {
		t.Fatalf("Failed to get all nodes: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("Expected empty store, got %d nodes", len(all))
	}
	edges, err := repo.GetAllEdges(ctx)
	if err != nil {
		t.Fatalf("Failed to get all edges: %v", err)
	}
	if len(edges) != 0 {
		t.Fatalf("Expected no edges, got %d", len(edges))
	}
}
