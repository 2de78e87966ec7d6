package expand

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/mindgraph/ai"
	"github.com/poiesic/mindgraph/ai/mock"
	"github.com/poiesic/mindgraph/core"
	"github.com/poiesic/mindgraph/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandKeyword(t *testing.T) {
	ctx := context.Background()

	t.Run("creates root and children", func(t *testing.T) {
		g := graph.New()
		provider := mock.NewMockProvider()
		e := NewExpander(g, provider)

		root, linked, err := e.ExpandKeyword(ctx, "physics")
		require.NoError(t, err)

		assert.Equal(t, "physics", root.Label)
		assert.Equal(t, 0, root.Depth)
		assert.False(t, root.LLMGenerated)
		assert.NotEmpty(t, root.Vector)
		assert.True(t, root.Expanded)

		// Canned generator yields three children
		require.Len(t, linked, 3)
		assert.Equal(t, 4, g.NodeCount())
		assert.Equal(t, 3, g.EdgeCount())

		for _, child := range linked {
			assert.Equal(t, 1, child.Depth)
			assert.True(t, child.LLMGenerated)
			assert.True(t, child.Visible)
			assert.NotEmpty(t, child.Vector)
		}
	})

	t.Run("edges carry relations", func(t *testing.T) {
		g := graph.New()
		provider := mock.NewMockProvider().(*mock.MockProvider)
		provider.GetMockGenerator().GenerateRelatedWordsFunc = func(ctx context.Context, keyword string) ([]ai.RelatedWord, error) {
			return []ai.RelatedWord{{Word: "mechanics", Relation: "part-of"}}, nil
		}
		e := NewExpander(g, provider)

		root, linked, err := e.ExpandKeyword(ctx, "physics")
		require.NoError(t, err)
		require.Len(t, linked, 1)

		edge, ok := g.Edge(root.Id, linked[0].Id)
		require.True(t, ok)
		assert.Equal(t, "part-of", edge.Relation)
	})

	t.Run("reuses existing node by label", func(t *testing.T) {
		g := graph.New()
		existing := &core.Node{
			Id:      core.IDFromLabel("Mechanics"),
			Label:   "Mechanics",
			Depth:   5,
			Visible: true,
		}
		require.NoError(t, g.AddNode(existing))

		provider := mock.NewMockProvider().(*mock.MockProvider)
		provider.GetMockGenerator().GenerateRelatedWordsFunc = func(ctx context.Context, keyword string) ([]ai.RelatedWord, error) {
			return []ai.RelatedWord{{Word: "mechanics", Relation: "part-of"}}, nil
		}
		e := NewExpander(g, provider)

		root, linked, err := e.ExpandKeyword(ctx, "physics")
		require.NoError(t, err)
		require.Len(t, linked, 1)

		// No second mechanics node; the existing one keeps its depth and
		// does not become LLM-generated.
		assert.Equal(t, 2, g.NodeCount())
		assert.Same(t, existing, linked[0])
		assert.Equal(t, 5, linked[0].Depth)
		assert.False(t, linked[0].LLMGenerated)
		assert.True(t, g.HasEdge(root.Id, existing.Id))
	})

	t.Run("reuses existing keyword node", func(t *testing.T) {
		g := graph.New()
		root := &core.Node{
			Id:      core.IDFromLabel("physics"),
			Label:   "physics",
			Depth:   2,
			Visible: true,
		}
		require.NoError(t, g.AddNode(root))

		provider := mock.NewMockProvider().(*mock.MockProvider)
		e := NewExpander(g, provider)

		got, linked, err := e.ExpandKeyword(ctx, "Physics")
		require.NoError(t, err)
		assert.Same(t, root, got)
		require.Len(t, linked, 3)

		// Children hang one level below the existing node's depth
		assert.Equal(t, 3, linked[0].Depth)
	})

	t.Run("empty keyword", func(t *testing.T) {
		e := NewExpander(graph.New(), mock.NewMockProvider())
		_, _, err := e.ExpandKeyword(ctx, "   ")
		assert.ErrorIs(t, err, ErrEmptyKeyword)
	})

	t.Run("empty generator output still marks expanded", func(t *testing.T) {
		g := graph.New()
		provider := mock.NewMockProvider().(*mock.MockProvider)
		provider.GetMockGenerator().GenerateRelatedWordsFunc = func(ctx context.Context, keyword string) ([]ai.RelatedWord, error) {
			return nil, nil
		}
		e := NewExpander(g, provider)

		root, linked, err := e.ExpandKeyword(ctx, "physics")
		require.NoError(t, err)
		assert.Empty(t, linked)
		assert.True(t, root.Expanded)
		assert.Equal(t, 1, g.NodeCount())
	})

	t.Run("generator errors surface", func(t *testing.T) {
		g := graph.New()
		provider := mock.NewMockProvider().(*mock.MockProvider)
		genErr := errors.New("model unavailable")
		provider.GetMockGenerator().GenerateRelatedWordsFunc = func(ctx context.Context, keyword string) ([]ai.RelatedWord, error) {
			return nil, genErr
		}
		e := NewExpander(g, provider)

		_, _, err := e.ExpandKeyword(ctx, "physics")
		assert.ErrorIs(t, err, genErr)
	})

	t.Run("embedder errors surface", func(t *testing.T) {
		g := graph.New()
		provider := mock.NewMockProvider().(*mock.MockProvider)
		embedErr := errors.New("embedding backend down")
		provider.GetMockEmbedder().EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
			return nil, embedErr
		}
		e := NewExpander(g, provider)

		_, _, err := e.ExpandKeyword(ctx, "physics")
		assert.ErrorIs(t, err, embedErr)
	})

	t.Run("generator echoing the keyword adds no self loop", func(t *testing.T) {
		g := graph.New()
		provider := mock.NewMockProvider().(*mock.MockProvider)
		provider.GetMockGenerator().GenerateRelatedWordsFunc = func(ctx context.Context, keyword string) ([]ai.RelatedWord, error) {
			return []ai.RelatedWord{{Word: keyword, Relation: "related-to"}}, nil
		}
		e := NewExpander(g, provider)

		_, linked, err := e.ExpandKeyword(ctx, "physics")
		require.NoError(t, err)
		assert.Empty(t, linked)
		assert.Equal(t, 0, g.EdgeCount())
	})
}

func TestDeepDive(t *testing.T) {
	ctx := context.Background()

	t.Run("passes neighbor labels to the generator", func(t *testing.T) {
		g := graph.New()
		root := &core.Node{Id: "r", Label: "physics", Visible: true, Depth: 0}
		child := &core.Node{Id: "c", Label: "mechanics", Visible: true, Depth: 1}
		require.NoError(t, g.AddNode(root))
		require.NoError(t, g.AddNode(child))
		_, err := g.AddEdge(&core.Edge{Source: "r", Target: "c"})
		require.NoError(t, err)

		var gotNeighbors []string
		provider := mock.NewMockProvider().(*mock.MockProvider)
		provider.GetMockGenerator().DeepDiveFunc = func(ctx context.Context, label string, neighbors []string) ([]ai.RelatedWord, error) {
			gotNeighbors = neighbors
			return []ai.RelatedWord{{Word: "thermodynamics", Relation: "part-of"}}, nil
		}
		e := NewExpander(g, provider)

		linked, err := e.DeepDive(ctx, "r")
		require.NoError(t, err)
		assert.Equal(t, []string{"mechanics"}, gotNeighbors)
		require.Len(t, linked, 1)
		assert.Equal(t, "thermodynamics", linked[0].Label)
		assert.Equal(t, 1, linked[0].Depth)
	})

	t.Run("unknown node", func(t *testing.T) {
		e := NewExpander(graph.New(), mock.NewMockProvider())
		_, err := e.DeepDive(ctx, "ghost")
		assert.ErrorIs(t, err, ErrNodeNotFound)
	})
}
