// Package crossref extracts resource links from free-form text so notes
// can surface the URLs pasted into them.
package crossref

import "regexp"

// urlPattern matches http(s) URLs up to the first whitespace or closing
// bracket.
var urlPattern = regexp.MustCompile(`https?://[^\s<>()\[\]"']+`)

// ExtractURLs extracts all http(s) URLs from text. Returns a
// deduplicated list preserving the order of first occurrence.
func ExtractURLs(text string) []string {
	matches := urlPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var result []string
	for _, m := range matches {
		if seen[m] {
			continue
		}
		seen[m] = true
		result = append(result, m)
	}
	return result
}

// NewLinks returns the URLs found in text that are not already in
// known, preserving first-occurrence order.
func NewLinks(text string, known []string) []string {
	existing := make(map[string]bool, len(known))
	for _, k := range known {
		existing[k] = true
	}

	var result []string
	for _, u := range ExtractURLs(text) {
		if !existing[u] {
			result = append(result, u)
		}
	}
	return result
}
