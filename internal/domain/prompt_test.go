package domain

import (
	"errors"
	"testing"
)

func TestFormatFilesForPrompt(t *testing.T) {
	files := []ProcessedFile{
		{Name: "notes.txt", Kind: FileKindText, Content: "hello"},
		{Name: "broken.pdf", Kind: FileKindText, Err: errors.New("corrupt")},
		{Name: "cat.png", Kind: FileKindImage, Content: "/tmp/cat.png"},
	}
	got := FormatFilesForPrompt(files, "Summarize")
	want := "Summarize\n\n\n--- notes.txt ---\nhello\n--- End of notes.txt ---\n\n\n[Image attached: cat.png]"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if got := FormatFilesForPrompt(nil, "only"); got != "only" {
		t.Errorf("got %q, want %q", got, "only")
	}
}

func TestFormatSearchResults(t *testing.T) {
	if got := FormatSearchResults(nil); got != "No search results found." {
		t.Errorf("empty: got %q", got)
	}

	results := []SearchResult{
		{Title: "A", URL: "https://a", Snippet: "sa"},
		{Title: "B", URL: "", Snippet: "sb"},
	}
	want := "Web Search Results:\n\n1. A\n   URL: https://a\n   sa\n\n2. B\n   URL: \n   sb\n\n"
	if got := FormatSearchResults(results); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	sources := SearchSources(results)
	if len(sources) != 1 || sources[0] != "https://a" {
		t.Errorf("SearchSources = %v", sources)
	}
}
