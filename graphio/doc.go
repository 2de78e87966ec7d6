// Package graphio implements the interchange formats for concept graphs:
// a YAML document format for full import/export, and a two-column CSV edge
// list for quick imports. Embeddings are not part of either format; they
// are regenerated after import.
package graphio
