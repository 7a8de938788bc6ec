package websearch

import (
	"context"

	"github.com/tinlera/tinlera-go/internal/domain"
	"github.com/tinlera/tinlera-go/internal/ports"
)

// Silent swallows provider failures: it logs a warning and reports no results.
type Silent struct {
	inner  ports.WebSearcher
	logger ports.Logger
}

// NewSilent wraps inner.
func NewSilent(inner ports.WebSearcher, logger ports.Logger) *Silent {
	return &Silent{inner: inner, logger: logger}
}

// Search implements ports.WebSearcher and never returns an error.
func (s *Silent) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	results, err := s.inner.Search(ctx, query, limit)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("web search failed", map[string]interface{}{"query": query, "error": err.Error()})
		}
		return []domain.SearchResult{}, nil
	}
	return results, nil
}

var _ ports.WebSearcher = (*Silent)(nil)
