package domain

import (
	"fmt"
	"strings"
)

// FormatFilesForPrompt appends successfully extracted files to the user
// prompt. Text files are fenced by name; images leave a marker only.
func FormatFilesForPrompt(files []ProcessedFile, userPrompt string) string {
	parts := []string{userPrompt}
	for _, file := range files {
		if !file.OK() {
			continue
		}
		switch file.Kind {
		case FileKindText:
			parts = append(parts, fmt.Sprintf("\n\n--- %s ---\n%s\n--- End of %s ---", file.Name, file.Content, file.Name))
		case FileKindImage:
			parts = append(parts, fmt.Sprintf("\n\n[Image attached: %s]", file.Name))
		}
	}
	return strings.Join(parts, "\n")
}

// FormatSearchResults renders results as a numbered block.
func FormatSearchResults(results []SearchResult) string {
	if len(results) == 0 {
		return "No search results found."
	}
	var b strings.Builder
	b.WriteString("Web Search Results:\n\n")
	for i, r := range results {
		fmt.Fprintf(&b, "%d. %s\n", i+1, r.Title)
		fmt.Fprintf(&b, "   URL: %s\n", r.URL)
		fmt.Fprintf(&b, "   %s\n\n", r.Snippet)
	}
	return b.String()
}

// SearchSources returns the non-empty result URLs.
func SearchSources(results []SearchResult) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		if r.URL != "" {
			out = append(out, r.URL)
		}
	}
	return out
}
