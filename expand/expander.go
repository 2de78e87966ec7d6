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


package expand

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/mindgraph/ai"
	"github.com/poiesic/mindgraph/core"
	"github.com/poiesic/mindgraph/graph"
)

// Expander merges AI-generated related concepts into a graph.
type Expander struct {
	graph    *graph.Graph
	provider ai.Provider
	logger   *slog.Logger
}

// ExpanderOption configures an Expander.
type ExpanderOption func(*Expander)

// WithLogger sets the logger used by the expander.
func WithLogger(logger *slog.Logger) ExpanderOption {
	return func(e *Expander) {
		e.logger = logger
	}
}

// NewExpander creates an Expander that grows g using the given provider.
func NewExpander(g *graph.Graph, provider ai.Provider, opts ...ExpanderOption) *Expander {
	e := &Expander{
		graph:    g,
		provider: provider,
		logger:   slog.Default().With("component", "expander"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExpandKeyword expands the graph around a keyword. If no node with the
// keyword's label exists, one is created at depth 0 and embedded first.
// Returns the root node and the nodes added or linked during expansion.
func (e *Expander) ExpandKeyword(ctx context.Context, keyword string) (*core.Node, []*core.Node, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, nil, ErrEmptyKeyword
	}

	root, ok := e.graph.NodeByLabel(keyword)
	if !ok {
		vector, err := e.provider.Embedder().EmbedText(ctx, keyword)
		if err != nil {
			return nil, nil, fmt.Errorf("embedding keyword %q: %w", keyword, err)
		}
		root = &core.Node{
			Id:      core.IDFromLabel(keyword),
			Label:   keyword,
			Depth:   0,
			Vector:  vector,
			Visible: true,
		}
		if err := e.graph.AddNode(root); err != nil {
			return nil, nil, err
		}
	}

	words, err := e.provider.WordGenerator().GenerateRelatedWords(ctx, root.Label)
	if err != nil {
		return nil, nil, fmt.Errorf("generating related words for %q: %w", root.Label, err)
	}

	linked, err := e.merge(ctx, root, words)
	if err != nil {
		return nil, nil, err
	}
	return root, linked, nil
}

// DeepDive expands an existing node, passing its current neighbor labels to
// the generator so it can propose concepts not already present around it.
// Returns the nodes added or linked.
func (e *Expander) DeepDive(ctx context.Context, nodeID string) ([]*core.Node, error) {
	node, ok := e.graph.Node(nodeID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, nodeID)
	}

	words, err := e.provider.WordGenerator().DeepDive(ctx, node.Label, e.graph.Neighbors(nodeID))
	if err != nil {
		return nil, fmt.Errorf("deep dive on %q: %w", node.Label, err)
	}

	return e.merge(ctx, node, words)
}

// merge links generated words under parent. Labels matching an existing
// node, case-insensitively, reuse it and gain only an edge; new labels
// become new nodes one level below parent. The parent is marked expanded
// even when the generator returned nothing.
func (e *Expander) merge(ctx context.Context, parent *core.Node, words []ai.RelatedWord) ([]*core.Node, error) {
	var linked []*core.Node

	for _, word := range words {
		child, ok := e.graph.NodeByLabel(word.Word)
		if !ok {
			vector, err := e.provider.Embedder().EmbedText(ctx, word.Word)
			if err != nil {
				return linked, fmt.Errorf("embedding %q: %w", word.Word, err)
			}
			child = &core.Node{
				Id:           core.IDFromLabel(word.Word),
				Label:        word.Word,
				Depth:        parent.Depth + 1,
				Vector:       vector,
				Visible:      true,
				LLMGenerated: true,
			}
			if err := e.graph.AddNode(child); err != nil {
				return linked, err
			}
		}

		if child.Id == parent.Id {
			e.logger.Debug("generator returned the keyword itself", "word", word.Word)
			continue
		}

		added, err := e.graph.AddEdge(&core.Edge{
			Source:   parent.Id,
			Target:   child.Id,
			Relation: word.Relation,
		})
		if err != nil {
			return linked, err
		}
		if !added {
			e.logger.Debug("edge already present", "parent", parent.Label, "child", child.Label)
		}
		linked = append(linked, child)
	}

	if err := e.graph.SetExpanded(parent.Id, true); err != nil {
		return linked, err
	}

	e.logger.Info("expanded node",
		"label", parent.Label,
		"generated", len(words),
		"linked", len(linked))
	return linked, nil
}
