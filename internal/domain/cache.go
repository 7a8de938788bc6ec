package domain

import "time"

// CacheEntry stores a model hub search result.
type CacheEntry struct {
	Key       string            `json:"key"`
	Query     string            `json:"query"`
	Task      string            `json:"task"`
	Models    []ModelDescriptor `json:"models"`
	CreatedAt time.Time         `json:"created_at"`
}
