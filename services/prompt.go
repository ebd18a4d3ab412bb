package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"
)

// Context larger than maxContextRunes is cut down chunk-wise before it is
// substituted into the grounded template, so a fat search result cannot
// crowd the question out of the generation window.
const (
	maxContextRunes  = 24000
	contextChunkSize = 2000
)

const groundedTemplate = `You are a helpful assistant that answers questions based on the provided context from documents.

Context from documents:
%s

User question: %s

Please provide a helpful and accurate answer based on the context above. If the context doesn't contain enough information to fully answer the question, say so and provide what information you can based on what's available. Be specific and cite relevant information from the context when possible.`

const generalTemplate = `You are a helpful assistant. The user asked: %s

No relevant documents were found in the knowledge base for this question. Please provide a helpful general response and suggest that the user might want to ask about topics that are covered in the document knowledge base, or they might need to ingest relevant documents first.`

// BuildPrompt composes the generation prompt for a query. When the search
// text is non-empty after trimming, the grounded template is used and the
// second return value is true; otherwise the general template is used.
func BuildPrompt(query, searchText string) (string, bool) {
	context := strings.TrimSpace(searchText)
	if context == "" {
		return fmt.Sprintf(generalTemplate, query), false
	}
	return fmt.Sprintf(groundedTemplate, truncateContext(context), query), true
}

// truncateContext caps the context at maxContextRunes, cutting on chunk
// boundaries so sentences survive the cut where possible.
func truncateContext(context string) string {
	runes := []rune(context)
	if len(runes) <= maxContextRunes {
		return context
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(contextChunkSize),
		textsplitter.WithChunkOverlap(0),
	)
	chunks, err := splitter.SplitText(context)
	if err != nil {
		log.Printf("SERVICE: Context splitter failed, falling back to prefix cut: %v", err)
		return string(runes[:maxContextRunes])
	}

	var sb strings.Builder
	total := 0
	for _, chunk := range chunks {
		chunkLen := len([]rune(chunk))
		if total+chunkLen > maxContextRunes {
			break
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(chunk)
		total += chunkLen
	}
	if sb.Len() == 0 {
		return string(runes[:maxContextRunes])
	}
	log.Printf("SERVICE: Truncated context from %d to %d runes", len(runes), total)
	return sb.String()
}
