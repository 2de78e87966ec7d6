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


// Package ai provides abstractions for the AI services used in mindgraph.
//
// This package defines interfaces for text embeddings and related-word
// generation. It follows the dependency inversion principle, allowing the
// graph and expansion logic to depend on abstractions rather than concrete
// implementations.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - Embedder: Generates vector embeddings from text
//   - WordGenerator: Proposes related concepts for graph expansion
//   - Provider: Aggregates AI services for convenient initialization
//
// # Implementation Packages
//
// The ai package includes three implementation sub-packages, selected by
// the Backend field of Config:
//
//   - ai/openai: OpenAI-compatible APIs (OpenAI, Ollama /v1, LocalAI, vLLM)
//   - ai/ollama: Ollama's native API
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Production constructors (openai.NewProvider, ollama.NewProvider) return
// INTERFACE types to enforce abstraction and prevent accidental coupling to
// a concrete backend.
//
//	provider, err := openai.NewProvider(config)  // returns ai.Provider
//
// Test utility constructors (mock.NewMockEmbedder, mock.NewMockWordGenerator)
// return CONCRETE types to enable test assertions and behavior injection via
// the mock's public fields and methods.
//
// # Lazy Initialization
//
// Loading an embedding backend can be expensive, so callers that may never
// need AI services wrap construction in a Lazy handle. Concurrent first
// callers share a single in-flight initialization:
//
//	lazy := ai.NewLazy(func() (ai.Provider, error) {
//	    return openai.NewProvider(cfg)
//	})
//	defer lazy.Close()
//
//	provider, err := lazy.Get()
package ai
