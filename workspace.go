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


package mindgraph

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/mindgraph/ai"
	"github.com/poiesic/mindgraph/ai/mock"
	"github.com/poiesic/mindgraph/ai/ollama"
	"github.com/poiesic/mindgraph/ai/openai"
	"github.com/poiesic/mindgraph/embedding"
	"github.com/poiesic/mindgraph/expand"
	"github.com/poiesic/mindgraph/graph"
	"github.com/poiesic/mindgraph/storage"
	"github.com/poiesic/mindgraph/storage/badger"
)

// Workspace ties a persistent concept graph to its AI services.
// The AI provider is initialized lazily, so read-only operations never
// touch an AI backend.
type Workspace struct {
	backend  *badger.Backend
	repo     storage.GraphRepository
	provider *ai.Lazy
	logger   *slog.Logger
}

// WorkspaceOption configures a Workspace.
type WorkspaceOption func(*workspaceOptions)

type workspaceOptions struct {
	aiConfig *ai.Config
	inMemory bool
}

// WithAIConfig sets the AI provider configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) WorkspaceOption {
	return func(o *workspaceOptions) {
		o.aiConfig = config
	}
}

// WithInMemoryStorage uses an in-memory store instead of a directory.
// Intended for tests.
func WithInMemoryStorage() WorkspaceOption {
	return func(o *workspaceOptions) {
		o.inMemory = true
	}
}

// NewWorkspace opens (or creates) a workspace at the given directory.
func NewWorkspace(filePath string, opts ...WorkspaceOption) (*Workspace, error) {
	options := &workspaceOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	if err := options.aiConfig.Validate(); err != nil {
		return nil, err
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	repo, err := badger.NewGraphRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	cfg := options.aiConfig
	return &Workspace{
		backend:  backend,
		repo:     repo,
		provider: ai.NewLazy(func() (ai.Provider, error) { return newProvider(cfg) }),
		logger:   slog.Default(),
	}, nil
}

// newProvider constructs the provider selected by the config.
func newProvider(config *ai.Config) (ai.Provider, error) {
	switch config.Backend {
	case ai.BackendOpenAI:
		return openai.NewProvider(config)
	case ai.BackendOllama:
		return ollama.NewProvider(config)
	case ai.BackendMock:
		return mock.NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown AI backend %q", config.Backend)
	}
}

// Close closes the AI provider, repository, and backend, in that order.
func (w *Workspace) Close() error {
	if err := w.provider.Close(); err != nil {
		w.logger.Error("error closing AI provider", "err", err)
	}

	if err := w.repo.Close(); err != nil {
		w.logger.Error("error closing graph repository", "err", err)
		return err
	}

	if err := w.backend.Close(); err != nil {
		w.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// GraphRepository returns the underlying graph repository.
func (w *Workspace) GraphRepository() storage.GraphRepository {
	return w.repo
}

// Provider returns the AI provider, constructing it on first use.
func (w *Workspace) Provider() (ai.Provider, error) {
	return w.provider.Get()
}

// LoadGraph materializes the stored nodes and edges as an in-memory graph.
func (w *Workspace) LoadGraph(ctx context.Context) (*graph.Graph, error) {
	g := graph.New()

	nodes, err := w.repo.GetAllNodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading nodes: %w", err)
	}
	for _, node := range nodes {
		if err := g.AddNode(node); err != nil {
			return nil, fmt.Errorf("loading node %q: %w", node.Id, err)
		}
	}

	edges, err := w.repo.GetAllEdges(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading edges: %w", err)
	}
	for _, edge := range edges {
		if _, err := g.AddEdge(edge); err != nil {
			return nil, fmt.Errorf("loading edge %s-%s: %w", edge.Source, edge.Target, err)
		}
	}

	return g, nil
}

// SaveGraph replaces the stored graph with the contents of g.
func (w *Workspace) SaveGraph(ctx context.Context, g *graph.Graph) error {
	if err := w.repo.Clear(ctx); err != nil {
		return fmt.Errorf("clearing store: %w", err)
	}

	nodes := g.Nodes()
	if len(nodes) > 0 {
		if _, err := w.repo.PutNodes(ctx, nodes...); err != nil {
			return fmt.Errorf("saving nodes: %w", err)
		}
	}

	edges := g.Edges()
	if len(edges) > 0 {
		if err := w.repo.PutEdges(ctx, edges...); err != nil {
			return fmt.Errorf("saving edges: %w", err)
		}
	}

	return nil
}

// NewExpander creates an expander for the given graph using the
// workspace's AI provider.
func (w *Workspace) NewExpander(g *graph.Graph, opts ...expand.ExpanderOption) (*expand.Expander, error) {
	provider, err := w.provider.Get()
	if err != nil {
		return nil, err
	}
	return expand.NewExpander(g, provider, opts...), nil
}

// NewEmbeddingPipeline creates an embedding pipeline over the workspace's
// repository using the workspace's AI provider.
func (w *Workspace) NewEmbeddingPipeline(opts ...embedding.Option) (*embedding.Pipeline, error) {
	provider, err := w.provider.Get()
	if err != nil {
		return nil, err
	}
	return embedding.NewPipeline(w.repo, provider.Embedder(), opts...)
}
