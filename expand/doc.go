// Package expand grows a concept graph with AI-generated related concepts.
//
// An Expander asks a WordGenerator for concepts related to a keyword or an
// existing node and merges the results into the graph. Generated labels
// that match an existing node (case-insensitively) reuse that node and only
// gain an edge; genuinely new labels become new nodes one level deeper than
// their parent, embedded at creation time.
package expand
