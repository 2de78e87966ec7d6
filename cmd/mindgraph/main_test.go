package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poiesic/mindgraph/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestSetupLogger(t *testing.T) {
	original := slog.Default()
	defer slog.SetDefault(original)

	newContext := func(level string) *cli.Context {
		set := flag.NewFlagSet("test", flag.ContinueOnError)
		set.String("log-level", level, "")
		return cli.NewContext(cli.NewApp(), set, nil)
	}

	t.Run("accepts valid levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "DEBUG", "Info"} {
			assert.NoError(t, setupLogger(newContext(level)), "level %q", level)
		}
	})

	t.Run("rejects invalid level", func(t *testing.T) {
		err := setupLogger(newContext("verbose"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "verbose")
	})
}

func TestAIConfigFromFlags(t *testing.T) {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String("backend", "", "")
	set.String("host", "", "")
	set.String("token", "", "")
	set.String("generator-model", "", "")
	set.String("embedding-model", "", "")
	set.Int("word-count", 0, "")
	require.NoError(t, set.Parse([]string{}))
	require.NoError(t, set.Set("backend", "ollama"))
	require.NoError(t, set.Set("host", "http://localhost:11434"))
	require.NoError(t, set.Set("token", "secret"))
	require.NoError(t, set.Set("generator-model", "llama3"))
	require.NoError(t, set.Set("embedding-model", "nomic-embed-text"))
	require.NoError(t, set.Set("word-count", "7"))

	c := cli.NewContext(cli.NewApp(), set, nil)
	cfg := aiConfigFromFlags(c)

	assert.Equal(t, ai.BackendOllama, cfg.Backend)
	assert.Equal(t, "http://localhost:11434", cfg.Host)
	assert.Equal(t, "secret", cfg.Token)
	assert.Equal(t, "llama3", cfg.GeneratorModel)
	assert.Equal(t, "nomic-embed-text", cfg.EmbeddingModel)
	assert.Equal(t, 7, cfg.WordCount)
	assert.NoError(t, cfg.Validate())
}

func TestImportExportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "db")
	inputPath := filepath.Join(dir, "graph.yaml")
	outputPath := filepath.Join(dir, "out.yaml")

	doc := `
nodes:
  - id: n1
    label: apple
  - id: n2
    label: banana
edges:
  - source: n1
    target: n2
    relation: related-to
`
	require.NoError(t, os.WriteFile(inputPath, []byte(doc), 0644))

	app := newTestApp()
	require.NoError(t, app.Run([]string{"mindgraph", "import", "--db", dbPath, "--file", inputPath}))
	require.NoError(t, app.Run([]string{"mindgraph", "export", "--db", dbPath, "--file", outputPath}))

	out, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(out), "apple")
	assert.Contains(t, string(out), "banana")
	assert.Contains(t, string(out), "related-to")
}

func TestImportRejectsUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "graph.txt")
	require.NoError(t, os.WriteFile(inputPath, []byte("a,b\n"), 0644))

	app := newTestApp()
	err := app.Run([]string{"mindgraph", "import", "--db", filepath.Join(dir, "db"), "--file", inputPath})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file extension")
}

func TestImportCSVCommand(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "db")
	inputPath := filepath.Join(dir, "edges.csv")
	outputPath := filepath.Join(dir, "out.yaml")

	csv := "apple,banana\nbanana,cherry\n"
	require.NoError(t, os.WriteFile(inputPath, []byte(csv), 0644))

	app := newTestApp()
	require.NoError(t, app.Run([]string{"mindgraph", "import", "--db", dbPath, "--file", inputPath}))
	require.NoError(t, app.Run([]string{"mindgraph", "export", "--db", dbPath, "--file", outputPath}))

	out, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	for _, label := range []string{"apple", "banana", "cherry"} {
		assert.True(t, strings.Contains(string(out), label), "expected %s in export", label)
	}
}

// newTestApp builds an app with the import/export commands wired the same
// way main does.
func newTestApp() *cli.App {
	return &cli.App{
		Name: "mindgraph",
		Commands: []*cli.Command{
			{
				Name:   "import",
				Action: importCommand,
				Flags: append(dbFlags(),
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Required: true},
				),
			},
			{
				Name:   "export",
				Action: exportCommand,
				Flags: append(dbFlags(),
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}},
				),
			},
		},
	}
}
