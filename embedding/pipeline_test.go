package embedding

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/poiesic/mindgraph/ai/mock"
	"github.com/poiesic/mindgraph/core"
	"github.com/poiesic/mindgraph/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineRun(t *testing.T) {
	ctx := context.Background()

	t.Run("embeds nodes without vectors", func(t *testing.T) {
		repo, backend, err := badger.NewMemoryRepository()
		require.NoError(t, err)
		defer func() { repo.Close(); backend.Close() }()

		nodes := []*core.Node{
			{Id: "a", Label: "apple", Visible: true},
			{Id: "b", Label: "banana", Visible: true},
			{Id: "c", Label: "cherry", Visible: true, Vector: []float32{1, 0}},
		}
		_, err = repo.PutNodes(ctx, nodes...)
		require.NoError(t, err)

		embedder := mock.NewMockEmbedder()
		p, err := NewPipeline(repo, embedder)
		require.NoError(t, err)
		defer p.Release()

		count, err := p.Run(ctx, false)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		for _, id := range []string{"a", "b"} {
			node, err := repo.GetNode(ctx, id)
			require.NoError(t, err)
			assert.NotEmpty(t, node.Vector, "node %s should have a vector", id)
		}

		// The already-embedded node keeps its original vector
		c, err := repo.GetNode(ctx, "c")
		require.NoError(t, err)
		assert.Equal(t, []float32{1, 0}, c.Vector)
	})

	t.Run("force re-embeds everything", func(t *testing.T) {
		repo, backend, err := badger.NewMemoryRepository()
		require.NoError(t, err)
		defer func() { repo.Close(); backend.Close() }()

		_, err = repo.PutNodes(ctx, &core.Node{Id: "a", Label: "apple", Visible: true, Vector: []float32{1, 0}})
		require.NoError(t, err)

		embedder := mock.NewMockEmbedder()
		p, err := NewPipeline(repo, embedder)
		require.NoError(t, err)
		defer p.Release()

		count, err := p.Run(ctx, true)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		node, err := repo.GetNode(ctx, "a")
		require.NoError(t, err)
		assert.NotEqual(t, []float32{1, 0}, node.Vector)
	})

	t.Run("empty repository", func(t *testing.T) {
		repo, backend, err := badger.NewMemoryRepository()
		require.NoError(t, err)
		defer func() { repo.Close(); backend.Close() }()

		p, err := NewPipeline(repo, mock.NewMockEmbedder())
		require.NoError(t, err)
		defer p.Release()

		count, err := p.Run(ctx, false)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("failed batches do not lose good batches", func(t *testing.T) {
		repo, backend, err := badger.NewMemoryRepository()
		require.NoError(t, err)
		defer func() { repo.Close(); backend.Close() }()

		var nodes []*core.Node
		labels := []string{"apple", "banana", "cherry", "date"}
		for _, label := range labels {
			nodes = append(nodes, &core.Node{Id: core.IDFromLabel(label), Label: label, Visible: true})
		}
		_, err = repo.PutNodes(ctx, nodes...)
		require.NoError(t, err)

		embedErr := errors.New("backend unavailable")
		var mu sync.Mutex
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			mu.Lock()
			defer mu.Unlock()
			// Fail any batch containing "banana"
			for _, text := range texts {
				if strings.Contains(text, "banana") {
					return nil, embedErr
				}
			}
			vectors := make([][]float32, len(texts))
			for i := range texts {
				vectors[i] = []float32{1, 0}
			}
			return vectors, nil
		}

		// Batch size 1 so exactly one batch fails
		p, err := NewPipeline(repo, embedder, WithBatchSize(1))
		require.NoError(t, err)
		defer p.Release()

		count, err := p.Run(ctx, false)
		assert.ErrorIs(t, err, embedErr)
		assert.Equal(t, 3, count)

		embedded := 0
		all, err := repo.GetAllNodes(ctx)
		require.NoError(t, err)
		for _, node := range all {
			if len(node.Vector) > 0 {
				embedded++
			}
		}
		assert.Equal(t, 3, embedded)
	})

	t.Run("vector count mismatch is an error", func(t *testing.T) {
		repo, backend, err := badger.NewMemoryRepository()
		require.NoError(t, err)
		defer func() { repo.Close(); backend.Close() }()

		_, err = repo.PutNodes(ctx, &core.Node{Id: "a", Label: "apple", Visible: true})
		require.NoError(t, err)

		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			return nil, nil
		}

		p, err := NewPipeline(repo, embedder)
		require.NoError(t, err)
		defer p.Release()

		_, err = p.Run(ctx, false)
		assert.ErrorIs(t, err, ErrVectorCountMismatch)
	})
}

func TestNewPipelineValidation(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() { repo.Close(); backend.Close() }()

	_, err = NewPipeline(nil, mock.NewMockEmbedder())
	assert.ErrorIs(t, err, ErrRepositoryRequired)

	_, err = NewPipeline(repo, nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}
