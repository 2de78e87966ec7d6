package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/mindgraph/ai"
)

// buildSystemPrompt constructs the system prompt shared by both generation
// modes. The model is instructed to answer with a bare JSON array so the
// response survives bracket-matching extraction even when the model adds
// surrounding prose.
func buildSystemPrompt() string {
	var sb strings.Builder
	sb.WriteString("You are a concept-mapping assistant. ")
	sb.WriteString("You reply with a JSON array of objects, each with a \"word\" and a \"relation\" field. ")
	sb.WriteString("Words are lowercase, 1-3 words each. ")
	sb.WriteString("The relation describes how the word relates to the given concept and must be one of: ")
	sb.WriteString(strings.Join(ai.RelationTypes, ", "))
	sb.WriteString(". Reply with the JSON array only, no explanations.")
	return sb.String()
}

// buildRelatedWordsPrompt asks for concepts related to a bare keyword.
func buildRelatedWordsPrompt(keyword string, count int) string {
	return fmt.Sprintf("Give me %d concepts related to %q.", count, keyword)
}

// buildDeepDivePrompt asks for concepts related to a node that is already
// embedded in a graph, excluding its existing neighbors.
func buildDeepDivePrompt(label string, neighbors []string, count int) string {
	if len(neighbors) == 0 {
		return buildRelatedWordsPrompt(label, count)
	}
	return fmt.Sprintf(
		"Give me %d concepts related to %q that go deeper into the topic. "+
			"It is already connected to: %s. Do not repeat these.",
		count, label, strings.Join(neighbors, ", "))
}
