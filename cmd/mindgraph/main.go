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


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/poiesic/mindgraph"
	"github.com/poiesic/mindgraph/ai"
	"github.com/poiesic/mindgraph/embedding"
	"github.com/poiesic/mindgraph/graph"
	"github.com/poiesic/mindgraph/graphio"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "mindgraph",
		Usage: "Concept graph builder with AI-assisted expansion",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "import",
				Usage:  "Import a graph from a YAML document or CSV edge list",
				Action: importCommand,
				Flags: append(dbFlags(),
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to the input file (.yaml, .yml or .csv)",
						Required: true,
					},
				),
			},
			{
				Name:   "export",
				Usage:  "Export the graph as a YAML document",
				Action: exportCommand,
				Flags: append(dbFlags(),
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Path to the output file (defaults to stdout)",
					},
				),
			},
			{
				Name:   "embed",
				Usage:  "Generate embeddings for nodes that lack them",
				Action: embedCommand,
				Flags: append(append(dbFlags(), aiFlags()...),
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Re-embed every node, not just the ones without vectors",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of labels to embed per request",
						Value: 16,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of concurrent embedding workers",
					},
				),
			},
			{
				Name:      "expand",
				Usage:     "Expand the graph around a keyword with AI-generated concepts",
				Action:    expandCommand,
				ArgsUsage: "KEYWORD",
				Flags:     append(dbFlags(), aiFlags()...),
			},
			{
				Name:      "deepdive",
				Usage:     "Expand an existing node, avoiding concepts already around it",
				Action:    deepDiveCommand,
				ArgsUsage: "LABEL",
				Flags:     append(dbFlags(), aiFlags()...),
			},
			{
				Name:      "hierarchy",
				Usage:     "Print a similarity hierarchy rooted at a node",
				Action:    hierarchyCommand,
				ArgsUsage: "LABEL",
				Flags: append(dbFlags(),
					&cli.Float64Flag{
						Name:  "threshold",
						Usage: "Similarity a node must exceed to become a child",
						Value: 0.5,
					},
					&cli.IntFlag{
						Name:  "branching",
						Usage: "Maximum children per node",
						Value: graph.DefaultBranching,
					},
					&cli.IntFlag{
						Name:  "max-depth",
						Usage: "Maximum hierarchy depth",
						Value: graph.DefaultMaxDepth,
					},
				),
			},
			{
				Name:   "edges",
				Usage:  "Generate similarity edges between embedded nodes",
				Action: edgesCommand,
				Flags: append(dbFlags(),
					&cli.Float64Flag{
						Name:  "threshold",
						Usage: "Similarity a pair must exceed to gain an edge",
						Value: 0.7,
					},
					&cli.IntFlag{
						Name:  "max-per-node",
						Usage: "Maximum new edges per node",
						Value: 3,
					},
				),
			},
			{
				Name:   "cluster",
				Usage:  "Group embedded nodes into similarity clusters",
				Action: clusterCommand,
				Flags: append(dbFlags(),
					&cli.Float64Flag{
						Name:  "threshold",
						Usage: "Similarity a node must exceed to join a cluster",
						Value: 0.7,
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func dbFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
	}
}

func aiFlags() []cli.Flag {
	defaults := ai.DefaultConfig()
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "backend",
			Usage: "AI backend (openai, ollama, mock)",
			Value: defaults.Backend,
		},
		&cli.StringFlag{
			Name:  "host",
			Usage: "AI service host URL",
			Value: defaults.Host,
		},
		&cli.StringFlag{
			Name:    "token",
			Usage:   "API token for the AI service",
			Value:   defaults.Token,
			EnvVars: []string{"MINDGRAPH_API_TOKEN"},
		},
		&cli.StringFlag{
			Name:  "generator-model",
			Usage: "Chat model used for related-word generation",
			Value: defaults.GeneratorModel,
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Model used for text embeddings",
			Value: defaults.EmbeddingModel,
		},
		&cli.IntFlag{
			Name:  "word-count",
			Usage: "How many related words to request (1-10)",
			Value: defaults.WordCount,
		},
	}
}

func aiConfigFromFlags(c *cli.Context) *ai.Config {
	return ai.NewConfig(
		ai.WithBackend(c.String("backend")),
		ai.WithHost(c.String("host")),
		ai.WithToken(c.String("token")),
		ai.WithGeneratorModel(c.String("generator-model")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithWordCount(c.Int("word-count")),
	)
}

func openWorkspace(c *cli.Context) (*mindgraph.Workspace, error) {
	var opts []mindgraph.WorkspaceOption
	if hasAIFlags(c) {
		opts = append(opts, mindgraph.WithAIConfig(aiConfigFromFlags(c)))
	}
	return mindgraph.NewWorkspace(c.String("db"), opts...)
}

// hasAIFlags reports whether this command declares the AI flag set at all.
func hasAIFlags(c *cli.Context) bool {
	for _, name := range c.FlagNames() {
		if name == "backend" {
			return true
		}
	}
	return false
}

func importCommand(c *cli.Context) error {
	ctx := context.Background()
	path := c.String("file")

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	var g *graph.Graph
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		g, err = graphio.ImportCSV(f)
	case ".yaml", ".yml":
		g, _, err = graphio.ImportYAML(f)
	default:
		return fmt.Errorf("unsupported file extension %q (want .yaml, .yml or .csv)", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	w, err := openWorkspace(c)
	if err != nil {
		return fmt.Errorf("failed to open workspace: %w", err)
	}
	defer w.Close()

	if err := w.SaveGraph(ctx, g); err != nil {
		return fmt.Errorf("failed to save graph: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Imported %d nodes and %d edges\n", g.NodeCount(), g.EdgeCount())
	return nil
}

func exportCommand(c *cli.Context) error {
	ctx := context.Background()

	w, err := openWorkspace(c)
	if err != nil {
		return fmt.Errorf("failed to open workspace: %w", err)
	}
	defer w.Close()

	g, err := w.LoadGraph(ctx)
	if err != nil {
		return fmt.Errorf("failed to load graph: %w", err)
	}

	out := os.Stdout
	if path := c.String("file"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := graphio.ExportYAML(out, g, nil); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	return nil
}

func embedCommand(c *cli.Context) error {
	ctx := context.Background()

	w, err := openWorkspace(c)
	if err != nil {
		return fmt.Errorf("failed to open workspace: %w", err)
	}
	defer w.Close()

	opts := []embedding.Option{
		embedding.WithBatchSize(c.Int("batch-size")),
	}
	if c.IsSet("pool-size") {
		opts = append(opts, embedding.WithPoolSize(c.Int("pool-size")))
	}

	pipeline, err := w.NewEmbeddingPipeline(opts...)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	count, err := pipeline.Run(ctx, c.Bool("force"))
	if err != nil {
		return fmt.Errorf("embedding failed after %d nodes: %w", count, err)
	}

	fmt.Fprintf(os.Stderr, "Embedded %d nodes\n", count)
	return nil
}

func expandCommand(c *cli.Context) error {
	ctx := context.Background()

	keyword := c.Args().First()
	if keyword == "" {
		return fmt.Errorf("keyword argument is required")
	}

	w, err := openWorkspace(c)
	if err != nil {
		return fmt.Errorf("failed to open workspace: %w", err)
	}
	defer w.Close()

	g, err := w.LoadGraph(ctx)
	if err != nil {
		return fmt.Errorf("failed to load graph: %w", err)
	}

	expander, err := w.NewExpander(g)
	if err != nil {
		return fmt.Errorf("failed to create expander: %w", err)
	}

	root, linked, err := expander.ExpandKeyword(ctx, keyword)
	if err != nil {
		return fmt.Errorf("expansion failed: %w", err)
	}

	if err := w.SaveGraph(ctx, g); err != nil {
		return fmt.Errorf("failed to save graph: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Expanded %q with %d concepts:\n", root.Label, len(linked))
	for _, node := range linked {
		relation := ""
		if edge, ok := g.Edge(root.Id, node.Id); ok {
			relation = edge.Relation
		}
		fmt.Printf("  %s (%s)\n", node.Label, relation)
	}
	return nil
}

func deepDiveCommand(c *cli.Context) error {
	ctx := context.Background()

	label := c.Args().First()
	if label == "" {
		return fmt.Errorf("label argument is required")
	}

	w, err := openWorkspace(c)
	if err != nil {
		return fmt.Errorf("failed to open workspace: %w", err)
	}
	defer w.Close()

	g, err := w.LoadGraph(ctx)
	if err != nil {
		return fmt.Errorf("failed to load graph: %w", err)
	}

	node, ok := g.NodeByLabel(label)
	if !ok {
		return fmt.Errorf("no node labelled %q", label)
	}

	expander, err := w.NewExpander(g)
	if err != nil {
		return fmt.Errorf("failed to create expander: %w", err)
	}

	linked, err := expander.DeepDive(ctx, node.Id)
	if err != nil {
		return fmt.Errorf("deep dive failed: %w", err)
	}

	if err := w.SaveGraph(ctx, g); err != nil {
		return fmt.Errorf("failed to save graph: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Linked %d concepts under %q:\n", len(linked), node.Label)
	for _, n := range linked {
		fmt.Printf("  %s\n", n.Label)
	}
	return nil
}

func hierarchyCommand(c *cli.Context) error {
	ctx := context.Background()

	label := c.Args().First()
	if label == "" {
		return fmt.Errorf("label argument is required")
	}

	w, err := openWorkspace(c)
	if err != nil {
		return fmt.Errorf("failed to open workspace: %w", err)
	}
	defer w.Close()

	g, err := w.LoadGraph(ctx)
	if err != nil {
		return fmt.Errorf("failed to load graph: %w", err)
	}

	root, ok := g.NodeByLabel(label)
	if !ok {
		return fmt.Errorf("no node labelled %q", label)
	}

	h, err := g.BuildHierarchy(root.Id, float32(c.Float64("threshold")),
		graph.WithBranching(c.Int("branching")),
		graph.WithMaxDepth(c.Int("max-depth")))
	if err != nil {
		return fmt.Errorf("failed to build hierarchy: %w", err)
	}

	h.Walk(func(n *graph.HierarchyNode, depth int) {
		indent := strings.Repeat("  ", depth)
		if depth == 0 {
			fmt.Printf("%s%s\n", indent, n.Node.Label)
			return
		}
		fmt.Printf("%s%s (%.3f)\n", indent, n.Node.Label, n.Score)
	})
	return nil
}

func edgesCommand(c *cli.Context) error {
	ctx := context.Background()

	w, err := openWorkspace(c)
	if err != nil {
		return fmt.Errorf("failed to open workspace: %w", err)
	}
	defer w.Close()

	g, err := w.LoadGraph(ctx)
	if err != nil {
		return fmt.Errorf("failed to load graph: %w", err)
	}

	added := g.GenerateSimilarityEdges(float32(c.Float64("threshold")), c.Int("max-per-node"))
	if len(added) > 0 {
		if err := w.SaveGraph(ctx, g); err != nil {
			return fmt.Errorf("failed to save graph: %w", err)
		}
	}

	fmt.Fprintf(os.Stderr, "Added %d similarity edges\n", len(added))
	for _, edge := range added {
		source, _ := g.Node(edge.Source)
		target, _ := g.Node(edge.Target)
		fmt.Printf("  %s -- %s (%.3f)\n", source.Label, target.Label, edge.Weight)
	}
	return nil
}

func clusterCommand(c *cli.Context) error {
	ctx := context.Background()

	w, err := openWorkspace(c)
	if err != nil {
		return fmt.Errorf("failed to open workspace: %w", err)
	}
	defer w.Close()

	g, err := w.LoadGraph(ctx)
	if err != nil {
		return fmt.Errorf("failed to load graph: %w", err)
	}

	clusters := g.ClusterNodes(float32(c.Float64("threshold")))
	fmt.Fprintf(os.Stderr, "%d clusters\n", len(clusters))
	for i, cluster := range clusters {
		fmt.Printf("cluster %d (seed %s):\n", i+1, labelOf(g, cluster.Seed))
		for _, id := range cluster.Members {
			fmt.Printf("  %s\n", labelOf(g, id))
		}
	}
	return nil
}

func labelOf(g *graph.Graph, id string) string {
	if node, ok := g.Node(id); ok {
		return node.Label
	}
	return id
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
