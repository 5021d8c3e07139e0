package story

import (
	"strings"

	"github.com/fableworks/storyteller/internal/rag"
)

// ComposePrompt merges the retrieved passages and the user's request into
// the storytelling prompt. It is pure string formatting: identical inputs
// always produce an identical prompt, and an empty result set degrades to
// a context-free prompt rather than failing.
func ComposePrompt(query string, results []rag.SearchResult) string {
	var b strings.Builder

	b.WriteString("You are an AI storyteller specializing in cultural narratives.\n")
	b.WriteString("Use the following retrieved context to help you write a short, creative story based on the user's request.\n")
	b.WriteString("The story should be engaging, culturally relevant, and have a clear beginning, middle, and end.\n\n")

	b.WriteString("CONTEXT:\n")
	for _, res := range results {
		b.WriteString(res.Passage.Text)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString("USER'S REQUEST:\n")
	b.WriteString(query)
	b.WriteString("\n\n")

	b.WriteString("YOUR STORY:\n")

	return b.String()
}
