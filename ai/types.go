package ai

// RelatedWord is a single candidate concept proposed by a WordGenerator.
type RelatedWord struct {
	// Word is the concept label in lowercase, 1-3 words.
	// Example: "eiffel tower", "paris", "dog"
	Word string `json:"word"`

	// Relation describes how the word relates to the source concept.
	// Should match one of the predefined relation types.
	Relation string `json:"relation"`
}

// RelationTypes defines the relation labels word generators are prompted
// to use when describing how a proposed concept relates to its source.
var RelationTypes = []string{
	"is-a",
	"part-of",
	"has-part",
	"example-of",
	"related-to",
	"opposite-of",
	"causes",
	"used-for",
	"found-in",
	"property-of",
}
