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


package ai

import (
	"errors"
	"fmt"
	"strings"
)

// Backend names selectable via Config.Backend.
const (
	// BackendOpenAI uses an OpenAI-compatible HTTP API (OpenAI, Ollama's
	// /v1 endpoint, LocalAI, vLLM, etc).
	BackendOpenAI = "openai"

	// BackendOllama uses Ollama's native API.
	BackendOllama = "ollama"

	// BackendMock uses deterministic in-process test doubles.
	BackendMock = "mock"
)

// Config holds configuration for AI service providers.
type Config struct {
	// Backend selects the provider implementation: "openai", "ollama" or "mock".
	Backend string

	// Host is the base URL of the backend API.
	// Example: "http://localhost:11434/v1" for a local OpenAI-compatible server.
	Host string

	// Token is the API token for the backend.
	// Local OpenAI-compatible services that don't require authentication
	// accept the placeholder "none".
	Token string

	// GeneratorModel is the chat model used for related-word generation.
	// Example: "qwen2.5:3b", "gpt-4o-mini"
	GeneratorModel string

	// EmbeddingModel is the model used for text embeddings.
	// Example: "embeddinggemma", "text-embedding-3-small"
	EmbeddingModel string

	// WordCount is how many related words the generator is asked for (1-10).
	// Default: 5
	WordCount int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithBackend selects the provider implementation.
func WithBackend(backend string) ConfigOption {
	return func(c *Config) {
		c.Backend = backend
	}
}

// WithHost sets the backend API base URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithToken sets the backend API token.
func WithToken(token string) ConfigOption {
	return func(c *Config) {
		c.Token = token
	}
}

// WithGeneratorModel sets the chat model identifier.
func WithGeneratorModel(model string) ConfigOption {
	return func(c *Config) {
		c.GeneratorModel = model
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithWordCount sets how many related words the generator is asked for.
func WithWordCount(count int) ConfigOption {
	return func(c *Config) {
		c.WordCount = count
	}
}

// DefaultConfig returns a Config with sensible defaults for local
// OpenAI-compatible services.
func DefaultConfig() *Config {
	return &Config{
		Backend:        BackendOpenAI,
		Host:           "http://localhost:11434/v1",
		Token:          "none",
		GeneratorModel: "qwen2.5:3b",
		EmbeddingModel: "embeddinggemma",
		WordCount:      5,
	}
}

// NewConfig creates a Config with the default values and applies the provided
// options. This is the recommended way to create a Config with custom settings.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithBackend(ai.BackendOpenAI),
//	    ai.WithHost("https://api.openai.com"),
//	    ai.WithToken(token),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// The backend name is lowercased, and for the OpenAI backend the /v1 suffix
// is added to the host if missing, which is required by most
// OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))

	if c.Backend == BackendOpenAI && c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		c.Host = strings.TrimSuffix(c.Host, "/")
		c.Host = c.Host + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	switch c.Backend {
	case BackendOpenAI, BackendOllama, BackendMock:
	default:
		return fmt.Errorf("ai config: unknown backend %q", c.Backend)
	}

	if c.Backend == BackendMock {
		return nil
	}

	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if c.Backend == BackendOpenAI && c.Token == "" {
		return errors.New("ai config: Token is required (missing API key)")
	}
	if c.GeneratorModel == "" {
		return errors.New("ai config: GeneratorModel is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.WordCount < 1 || c.WordCount > 10 {
		return errors.New("ai config: WordCount must be between 1 and 10")
	}
	return nil
}
