package crossref

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractURLs_DeduplicatesPreservingOrder(t *testing.T) {
	text := "see https://go.dev/tour and https://go.dev/doc, also https://go.dev/tour again"

	got := ExtractURLs(text)
	assert.Equal(t, []string{"https://go.dev/tour", "https://go.dev/doc"}, got)
}

func TestExtractURLs_NoMatches(t *testing.T) {
	assert.Nil(t, ExtractURLs("nothing to see here"))
}

func TestExtractURLs_StopsAtBrackets(t *testing.T) {
	got := ExtractURLs("(https://example.com/path) [https://example.org]")
	assert.Equal(t, []string{"https://example.com/path", "https://example.org"}, got)
}

func TestNewLinks_ExcludesKnownResources(t *testing.T) {
	text := "https://react.dev and https://beta.reactjs.org"
	known := []string{"https://react.dev"}

	got := NewLinks(text, known)
	assert.Equal(t, []string{"https://beta.reactjs.org"}, got)
}

func TestNewLinks_AllKnown(t *testing.T) {
	assert.Empty(t, NewLinks("https://react.dev", []string{"https://react.dev"}))
}
