package domain

import (
	"fmt"
	"time"
)

// SearchResult is one web search hit folded into a prompt.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// HistoryEntry captures one completed exchange. Entries are append-only and
// removed only wholesale (delete by id or clear).
type HistoryEntry struct {
	ID               string         `json:"id"`
	Timestamp        string         `json:"timestamp"`
	Model            string         `json:"model"`
	Prompt           string         `json:"prompt"`
	Response         string         `json:"response"`
	Files            []string       `json:"files"`
	WebSearchResults []SearchResult `json:"web_search_results"`
}

// NewHistoryEntry holds the caller-provided fields of an entry; the store
// assigns ID and Timestamp.
type NewHistoryEntry struct {
	Model            string
	Prompt           string
	Response         string
	Files            []string
	WebSearchResults []SearchResult
}

// HistoryStats summarizes the log.
type HistoryStats struct {
	TotalEntries int      `json:"total_entries"`
	ModelsUsed   []string `json:"models_used"`
	TotalFiles   int      `json:"total_files"`
}

// Materialize stamps a new entry with its identifier and ISO timestamp.
// ordinal is the log length at insertion time.
func (n NewHistoryEntry) Materialize(now time.Time, ordinal int) HistoryEntry {
	files := n.Files
	if files == nil {
		files = []string{}
	}
	results := n.WebSearchResults
	if results == nil {
		results = []SearchResult{}
	}
	return HistoryEntry{
		ID:               HistoryID(now, ordinal),
		Timestamp:        now.Format(HistoryTimestampFormat),
		Model:            n.Model,
		Prompt:           n.Prompt,
		Response:         n.Response,
		Files:            files,
		WebSearchResults: results,
	}
}

// HistoryID builds "<YYYYmmddHHMMSS>_<ordinal>".
func HistoryID(now time.Time, ordinal int) string {
	return fmt.Sprintf("%s_%d", now.Format(HistoryIDFormat), ordinal)
}

// ParseHistoryTimestamp accepts the stored layout and RFC3339.
func ParseHistoryTimestamp(value string) (time.Time, error) {
	if t, err := time.ParseInLocation(HistoryTimestampFormat, value, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
