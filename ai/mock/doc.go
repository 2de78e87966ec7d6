// Package mock provides test doubles for the ai interfaces.
//
// The mocks default to deterministic behavior (hash-derived embeddings,
// canned related words) so tests are reproducible without external
// services, and expose function fields for injecting custom behavior.
package mock
