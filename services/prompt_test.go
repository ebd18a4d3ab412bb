package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPromptWithContext(t *testing.T) {
	prompt, contextUsed := BuildPrompt("what is foo?", "foo is a metasyntactic variable")

	assert.True(t, contextUsed)
	assert.Contains(t, prompt, "Context from documents:")
	assert.Contains(t, prompt, "foo is a metasyntactic variable")
	assert.Contains(t, prompt, "User question: what is foo?")
}

func TestBuildPromptWithoutContext(t *testing.T) {
	prompt, contextUsed := BuildPrompt("what is foo?", "")

	assert.False(t, contextUsed)
	assert.Contains(t, prompt, "No relevant documents were found")
	assert.Contains(t, prompt, "what is foo?")
	assert.NotContains(t, prompt, "Context from documents:")
}

func TestBuildPromptWhitespaceOnlyContextIsNoContext(t *testing.T) {
	prompt, contextUsed := BuildPrompt("q", "  \n\t  ")

	assert.False(t, contextUsed)
	assert.Contains(t, prompt, "No relevant documents were found")
	assert.NotContains(t, prompt, "Context from documents:")
}

func TestBuildPromptTruncatesOversizedContext(t *testing.T) {
	huge := strings.Repeat("lorem ipsum dolor sit amet. ", 3000) // ~84k runes

	prompt, contextUsed := BuildPrompt("q", huge)

	assert.True(t, contextUsed)
	overhead := len([]rune(groundedTemplate))
	assert.Less(t, len([]rune(prompt)), maxContextRunes+overhead)
}

func TestTruncateContextKeepsSmallContextIntact(t *testing.T) {
	small := "short context"
	assert.Equal(t, small, truncateContext(small))
}
