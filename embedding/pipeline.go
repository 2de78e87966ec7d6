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


package embedding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/mindgraph/ai"
	"github.com/poiesic/mindgraph/core"
	"github.com/poiesic/mindgraph/storage"
)

const defaultBatchSize = 16

// Pipeline embeds node labels concurrently and persists the results.
type Pipeline struct {
	repo      storage.GraphRepository
	embedder  ai.Embedder
	pool      *ants.Pool
	batchSize int
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithBatchSize sets how many labels are embedded per request.
// Default is 16.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		p.batchSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new embedding pipeline.
func NewPipeline(repo storage.GraphRepository, embedder ai.Embedder, opts ...Option) (*Pipeline, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		repo:      repo,
		embedder:  embedder,
		pool:      pool,
		batchSize: defaultBatchSize,
		logger:    slog.Default().With("component", "embedding"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Run embeds every node that has no vector yet, or every node when force
// is true. Batches fail independently: the pipeline keeps going and
// returns the failures joined at the end. Returns the number of nodes
// successfully embedded.
func (p *Pipeline) Run(ctx context.Context, force bool) (int, error) {
	nodes, err := p.repo.GetAllNodes(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing nodes: %w", err)
	}

	var pending []*core.Node
	for _, node := range nodes {
		if force || len(node.Vector) == 0 {
			pending = append(pending, node)
		}
	}
	if len(pending) == 0 {
		p.logger.Info("nothing to embed")
		return 0, nil
	}

	p.logger.Info("embedding nodes", "count", len(pending), "batch_size", p.batchSize)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		errs      []error
		completed int
	)

	for start := 0; start < len(pending); start += p.batchSize {
		end := start + p.batchSize
		if end > len(pending) {
			end = len(pending)
		}
		batch := pending[start:end]

		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			n, err := p.embedBatch(ctx, batch)
			mu.Lock()
			defer mu.Unlock()
			completed += n
			if err != nil {
				p.logger.Error("batch failed", "err", err)
				errs = append(errs, err)
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			errs = append(errs, submitErr)
			mu.Unlock()
		}
	}

	wg.Wait()
	return completed, errors.Join(errs...)
}

// embedBatch embeds one batch of nodes and persists them.
func (p *Pipeline) embedBatch(ctx context.Context, batch []*core.Node) (int, error) {
	texts := make([]string, len(batch))
	for i, node := range batch {
		texts[i] = node.Label
	}

	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embedding batch of %d: %w", len(batch), err)
	}
	if len(vectors) != len(batch) {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrVectorCountMismatch, len(vectors), len(batch))
	}

	for i, node := range batch {
		node.Vector = vectors[i]
	}

	if _, err := p.repo.PutNodes(ctx, batch...); err != nil {
		return 0, fmt.Errorf("persisting batch of %d: %w", len(batch), err)
	}
	return len(batch), nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
