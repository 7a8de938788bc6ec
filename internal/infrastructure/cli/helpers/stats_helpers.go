package helpers

import (
	"sort"

	"github.com/tinlera/tinlera-go/internal/domain"
)

// ModelStatistic represents how often a model appears in the history.
type ModelStatistic struct {
	Model string
	Count int
}

// CalculateTopModels returns the N most used models.
// If limit is 0 or negative, returns all models
func CalculateTopModels(entries []domain.HistoryEntry, limit int) []ModelStatistic {
	frequency := make(map[string]int)
	for _, entry := range entries {
		model := entry.Model
		if model == "" {
			model = "Unknown"
		}
		frequency[model]++
	}

	stats := make([]ModelStatistic, 0, len(frequency))
	for model, count := range frequency {
		stats = append(stats, ModelStatistic{Model: model, Count: count})
	}
	// count descending, then name ascending
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count == stats[j].Count {
			return stats[i].Model < stats[j].Model
		}
		return stats[i].Count > stats[j].Count
	})

	if limit > 0 && len(stats) > limit {
		return stats[:limit]
	}
	return stats
}

// CountWebResearch returns how many entries used web search results.
func CountWebResearch(entries []domain.HistoryEntry) int {
	count := 0
	for _, entry := range entries {
		if len(entry.WebSearchResults) > 0 {
			count++
		}
	}
	return count
}
