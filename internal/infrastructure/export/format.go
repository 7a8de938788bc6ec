package export

import (
	"fmt"
	"strings"

	"github.com/tinlera/tinlera-go/internal/domain"
)

const unknown = "Unknown"

var (
	banner = strings.Repeat("=", 60)
	rule   = strings.Repeat("-", 60)
	// batchSeparator follows every entry in txt and markdown batch exports.
	batchSeparator = "\n" + strings.Repeat("=", 80) + "\n"
)

func orUnknown(value string) string {
	if value == "" {
		return unknown
	}
	return value
}

func formatText(entry domain.HistoryEntry) string {
	lines := []string{
		banner,
		"RESEARCH REPORT",
		banner,
		"Date: " + orUnknown(entry.Timestamp),
		"Model: " + orUnknown(entry.Model),
		banner,
		"\nPROMPT:",
		rule,
		entry.Prompt,
		"\n",
	}

	if len(entry.Files) > 0 {
		lines = append(lines, "ATTACHED FILES:", rule)
		for _, path := range entry.Files {
			lines = append(lines, "  • "+path)
		}
		lines = append(lines, "\n")
	}

	if len(entry.WebSearchResults) > 0 {
		lines = append(lines, "WEB SEARCH RESULTS:", rule)
		for i, result := range entry.WebSearchResults {
			lines = append(lines,
				fmt.Sprintf("\n%d. %s", i+1, result.Title),
				"   URL: "+result.URL,
				"   "+result.Snippet,
			)
		}
		lines = append(lines, "\n")
	}

	lines = append(lines, "RESPONSE:", rule, entry.Response, "\n")

	if len(entry.WebSearchResults) > 0 {
		lines = append(lines, "SOURCES:", rule)
		for _, result := range entry.WebSearchResults {
			lines = append(lines, "  • "+result.URL)
		}
	}
	return strings.Join(lines, "\n")
}

func formatMarkdown(entry domain.HistoryEntry) string {
	lines := []string{
		"# Research Report\n",
		"**Date:** " + orUnknown(entry.Timestamp) + "\n",
		"**Model:** " + orUnknown(entry.Model) + "\n\n",
		"## Prompt\n",
		entry.Prompt + "\n\n",
	}

	if len(entry.Files) > 0 {
		lines = append(lines, "## Attached Files\n")
		for _, path := range entry.Files {
			lines = append(lines, "- "+path+"\n")
		}
		lines = append(lines, "\n")
	}

	if len(entry.WebSearchResults) > 0 {
		lines = append(lines, "## Web Search Results\n")
		for i, result := range entry.WebSearchResults {
			lines = append(lines,
				fmt.Sprintf("### %d. %s\n", i+1, result.Title),
				"**URL:** "+result.URL+"\n",
				result.Snippet+"\n\n",
			)
		}
	}

	lines = append(lines, "## Response\n", entry.Response+"\n\n")

	if len(entry.WebSearchResults) > 0 {
		lines = append(lines, "## Sources\n")
		for _, result := range entry.WebSearchResults {
			lines = append(lines, "- "+result.URL+"\n")
		}
	}
	return strings.Join(lines, "\n")
}
