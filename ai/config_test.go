package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, BackendOpenAI, cfg.Backend)
	assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	assert.Equal(t, 5, cfg.WordCount)
	assert.NoError(t, cfg.Validate())
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig(
		WithBackend(BackendOllama),
		WithHost("http://localhost:11434"),
		WithToken("secret"),
		WithGeneratorModel("llama3"),
		WithEmbeddingModel("nomic-embed-text"),
		WithWordCount(3),
	)

	assert.Equal(t, BackendOllama, cfg.Backend)
	assert.Equal(t, "http://localhost:11434", cfg.Host)
	assert.Equal(t, "secret", cfg.Token)
	assert.Equal(t, "llama3", cfg.GeneratorModel)
	assert.Equal(t, "nomic-embed-text", cfg.EmbeddingModel)
	assert.Equal(t, 3, cfg.WordCount)
}

func TestConfigNormalize(t *testing.T) {
	t.Run("adds v1 suffix for openai backend", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:8080"))
		cfg.Normalize()
		assert.Equal(t, "http://localhost:8080/v1", cfg.Host)
	})

	t.Run("strips trailing slash before adding v1", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:8080/"))
		cfg.Normalize()
		assert.Equal(t, "http://localhost:8080/v1", cfg.Host)
	})

	t.Run("leaves existing v1 suffix alone", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:8080/v1"))
		cfg.Normalize()
		assert.Equal(t, "http://localhost:8080/v1", cfg.Host)
	})

	t.Run("ollama host untouched", func(t *testing.T) {
		cfg := NewConfig(WithBackend(BackendOllama), WithHost("http://localhost:11434"))
		cfg.Normalize()
		assert.Equal(t, "http://localhost:11434", cfg.Host)
	})

	t.Run("backend name lowercased", func(t *testing.T) {
		cfg := NewConfig(WithBackend(" OpenAI "))
		cfg.Normalize()
		assert.Equal(t, BackendOpenAI, cfg.Backend)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Run("unknown backend", func(t *testing.T) {
		cfg := NewConfig(WithBackend("carrier-pigeon"))
		assert.Error(t, cfg.Validate())
	})

	t.Run("mock backend needs nothing else", func(t *testing.T) {
		cfg := &Config{Backend: BackendMock}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing host", func(t *testing.T) {
		cfg := NewConfig(WithHost(""))
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing token for openai", func(t *testing.T) {
		cfg := NewConfig(WithToken(""))
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Token")
	})

	t.Run("missing models", func(t *testing.T) {
		cfg := NewConfig(WithGeneratorModel(""))
		assert.Error(t, cfg.Validate())

		cfg = NewConfig(WithEmbeddingModel(""))
		assert.Error(t, cfg.Validate())
	})

	t.Run("word count bounds", func(t *testing.T) {
		assert.Error(t, NewConfig(WithWordCount(0)).Validate())
		assert.Error(t, NewConfig(WithWordCount(11)).Validate())
		assert.NoError(t, NewConfig(WithWordCount(10)).Validate())
	})
}
