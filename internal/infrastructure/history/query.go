package history

import (
	"sort"
	"strings"
	"time"

	"github.com/tinlera/tinlera-go/internal/domain"
)

// Filters shared by both backends so they agree on matching rules.

func searchEntries(entries []domain.HistoryEntry, query string) []domain.HistoryEntry {
	needle := strings.ToLower(query)
	out := []domain.HistoryEntry{}
	for _, entry := range entries {
		if strings.Contains(strings.ToLower(entry.Prompt), needle) ||
			strings.Contains(strings.ToLower(entry.Response), needle) {
			out = append(out, entry)
		}
	}
	return out
}

func filterByModel(entries []domain.HistoryEntry, model string) []domain.HistoryEntry {
	out := []domain.HistoryEntry{}
	for _, entry := range entries {
		if entry.Model == model {
			out = append(out, entry)
		}
	}
	return out
}

// filterByDate compares ISO timestamps as strings; an empty bound is open.
func filterByDate(entries []domain.HistoryEntry, start, end string) []domain.HistoryEntry {
	out := []domain.HistoryEntry{}
	for _, entry := range entries {
		if entry.Timestamp == "" {
			continue
		}
		if start != "" && entry.Timestamp < start {
			continue
		}
		if end != "" && entry.Timestamp > end {
			continue
		}
		out = append(out, entry)
	}
	return out
}

func computeStats(entries []domain.HistoryEntry) domain.HistoryStats {
	stats := domain.HistoryStats{ModelsUsed: []string{}}
	seen := map[string]struct{}{}
	for _, entry := range entries {
		model := entry.Model
		if model == "" {
			model = "Unknown"
		}
		if _, ok := seen[model]; !ok {
			seen[model] = struct{}{}
			stats.ModelsUsed = append(stats.ModelsUsed, model)
		}
		stats.TotalFiles += len(entry.Files)
	}
	stats.TotalEntries = len(entries)
	sort.Strings(stats.ModelsUsed)
	return stats
}

// materialize stamps n with the next ID, bumping the ordinal past any
// identifier already taken.
func materialize(n domain.NewHistoryEntry, now time.Time, ordinal int, taken func(id string) bool) domain.HistoryEntry {
	entry := n.Materialize(now, ordinal)
	for taken(entry.ID) {
		ordinal++
		entry.ID = domain.HistoryID(now, ordinal)
	}
	return entry
}
