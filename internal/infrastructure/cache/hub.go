package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/tinlera/tinlera-go/internal/domain"
	"github.com/tinlera/tinlera-go/internal/ports"
)

// CachedHub serves repeated model searches from a CacheRepository.
// Empty results are not cached since they usually mean a missing token or a
// failed lookup.
type CachedHub struct {
	inner  ports.ModelHub
	store  ports.CacheRepository
	logger ports.Logger
}

// NewCachedHub wraps inner.
func NewCachedHub(inner ports.ModelHub, store ports.CacheRepository, logger ports.Logger) *CachedHub {
	return &CachedHub{inner: inner, store: store, logger: logger}
}

// Key derives the cache key for a search.
func Key(query, task string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(query) + "\x00" + strings.TrimSpace(task)))
	return hex.EncodeToString(sum[:])
}

// SearchModels implements ports.ModelHub.
func (h *CachedHub) SearchModels(ctx context.Context, query, task string) ([]domain.ModelDescriptor, error) {
	key := Key(query, task)
	if entry, ok, err := h.store.Get(key); err == nil && ok {
		h.debug("model search cache hit", query, task)
		return entry.Models, nil
	}

	models, err := h.inner.SearchModels(ctx, query, task)
	if err != nil || len(models) == 0 {
		return models, err
	}
	if err := h.store.Set(domain.CacheEntry{Key: key, Query: query, Task: task, Models: models}); err != nil && h.logger != nil {
		h.logger.Warn("model search cache write failed", map[string]interface{}{"error": err.Error()})
	}
	return models, nil
}

// GetModelInfo is not cached.
func (h *CachedHub) GetModelInfo(ctx context.Context, model string) (*domain.ModelDescriptor, error) {
	return h.inner.GetModelInfo(ctx, model)
}

func (h *CachedHub) debug(msg, query, task string) {
	if h.logger != nil {
		h.logger.Debug(msg, map[string]interface{}{"query": query, "task": task})
	}
}

var _ ports.ModelHub = (*CachedHub)(nil)
