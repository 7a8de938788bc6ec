package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/tinlera/tinlera-go/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if err := validateInference(cfg.Inference); err != nil {
		return err
	}
	if err := validateHistory(cfg.History); err != nil {
		return err
	}
	if err := validateSearch(cfg.Search); err != nil {
		return err
	}
	if cfg.Extract.MaxFileBytes <= 0 {
		return fmt.Errorf("extract.max_file_bytes must be > 0")
	}
	if err := validateCache(cfg.Cache); err != nil {
		return err
	}
	return validateLog(cfg.Log)
}

func validateInference(inf domain.InferenceConfig) error {
	if err := validateURL("inference.base_url", inf.BaseURL); err != nil {
		return err
	}
	return validateURL("inference.hub_url", inf.HubURL)
}

func validateHistory(history domain.HistorySettings) error {
	switch strings.ToLower(history.Backend) {
	case domain.HistoryBackendJSON, domain.HistoryBackendSQLite:
		return nil
	default:
		return fmt.Errorf("history.backend must be json|sqlite, got %s", history.Backend)
	}
}

func validateSearch(search domain.SearchSettings) error {
	if err := validateURL("search.endpoint", search.Endpoint); err != nil {
		return err
	}
	if search.MaxResults <= 0 {
		return fmt.Errorf("search.max_results must be > 0")
	}
	return nil
}

func validateCache(cache domain.CacheSettings) error {
	if _, err := time.ParseDuration(cache.TTL); err != nil {
		return fmt.Errorf("cache.ttl invalid: %w", err)
	}
	if cache.MaxEntries <= 0 {
		return fmt.Errorf("cache.max_entries must be > 0")
	}
	return nil
}

func validateLog(log domain.LogSettings) error {
	switch strings.ToLower(log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug|info|warn|error, got %s", log.Level)
	}
	switch strings.ToLower(log.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console|json, got %s", log.Format)
	}
	return nil
}

func validateURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s must be an absolute URL, got %q", field, raw)
	}
	return nil
}
