// Package embedding fills in missing node vectors using a worker pool.
//
// A Pipeline scans the repository for nodes without embeddings, batches
// their labels, and submits each batch to an embedder concurrently. Failed
// batches are logged and reported together; successful batches are
// persisted independently, so a single bad batch does not lose the rest.
package embedding
