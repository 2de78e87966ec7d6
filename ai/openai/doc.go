// Package openai implements the ai interfaces against OpenAI-compatible
// HTTP APIs. It works with OpenAI itself as well as local services exposing
// the same surface (Ollama's /v1 endpoint, LocalAI, vLLM).
package openai
