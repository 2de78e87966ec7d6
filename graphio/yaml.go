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


package graphio

import (
	"fmt"
	"io"

	"github.com/poiesic/mindgraph/core"
	"github.com/poiesic/mindgraph/graph"
	"gopkg.in/yaml.v3"
)

// Document is the YAML persistence shape for a concept graph.
type Document struct {
	Metadata map[string]any `yaml:"metadata,omitempty"`
	Nodes    []NodeDoc      `yaml:"nodes"`
	Edges    []EdgeDoc      `yaml:"edges"`
}

// NodeDoc is the YAML shape of a single node. Visible is a pointer so a
// missing field can default to true on import.
type NodeDoc struct {
	Id           string `yaml:"id"`
	Label        string `yaml:"label"`
	Depth        int    `yaml:"depth"`
	Visible      *bool  `yaml:"visible,omitempty"`
	Expanded     bool   `yaml:"expanded,omitempty"`
	LLMGenerated bool   `yaml:"llmGenerated,omitempty"`
}

// EdgeDoc is the YAML shape of a single edge.
type EdgeDoc struct {
	Source   string `yaml:"source"`
	Target   string `yaml:"target"`
	Relation string `yaml:"relation,omitempty"`
}

// ExportYAML writes the graph to w in the Document shape. Node and edge
// order follows graph insertion order, so exports are deterministic.
// Vectors are intentionally not exported.
func ExportYAML(w io.Writer, g *graph.Graph, metadata map[string]any) error {
	doc := Document{Metadata: metadata}

	for _, node := range g.Nodes() {
		visible := node.Visible
		doc.Nodes = append(doc.Nodes, NodeDoc{
			Id:           node.Id,
			Label:        node.Label,
			Depth:        node.Depth,
			Visible:      &visible,
			Expanded:     node.Expanded,
			LLMGenerated: node.LLMGenerated,
		})
	}

	for _, edge := range g.Edges() {
		doc.Edges = append(doc.Edges, EdgeDoc{
			Source:   edge.Source,
			Target:   edge.Target,
			Relation: edge.Relation,
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding graph: %w", err)
	}
	return enc.Close()
}

// ImportYAML reads a Document from r and builds a graph from it.
//
// Missing optional fields take their stated defaults: visible=true,
// expanded=false, depth=0, relation="". Nodes without an id get one derived
// from the label. Edges referencing unknown nodes are an error; duplicate
// unordered pairs collapse to a single edge.
func ImportYAML(r io.Reader) (*graph.Graph, map[string]any, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("decoding graph: %w", err)
	}

	g := graph.New()
	for _, nd := range doc.Nodes {
		id := nd.Id
		if id == "" {
			id = core.IDFromLabel(nd.Label)
		}
		visible := true
		if nd.Visible != nil {
			visible = *nd.Visible
		}
		node := &core.Node{
			Id:           id,
			Label:        nd.Label,
			Depth:        nd.Depth,
			Visible:      visible,
			Expanded:     nd.Expanded,
			LLMGenerated: nd.LLMGenerated,
		}
		if err := g.AddNode(node); err != nil {
			return nil, nil, fmt.Errorf("node %q: %w", id, err)
		}
	}

	for _, ed := range doc.Edges {
		edge := &core.Edge{
			Source:   ed.Source,
			Target:   ed.Target,
			Relation: ed.Relation,
		}
		if _, err := g.AddEdge(edge); err != nil {
			return nil, nil, fmt.Errorf("edge %s-%s: %w", ed.Source, ed.Target, err)
		}
	}

	return g, doc.Metadata, nil
}
