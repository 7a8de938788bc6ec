package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// HasToken reports whether an API token is configured.
func (s *Settings) HasToken() bool {
	return strings.TrimSpace(s.Token) != ""
}

// FeatureEnabled returns the toggle state; unknown features are off.
func (s *Settings) FeatureEnabled(name string) bool {
	switch name {
	case FeatureWebSearch:
		return s.Features.WebSearch
	case FeatureHistory:
		return s.Features.History
	case FeatureExport:
		return s.Features.Export
	default:
		return false
	}
}

// SetFeature toggles a feature by name.
func (s *Settings) SetFeature(name string, enabled bool) error {
	switch name {
	case FeatureWebSearch:
		s.Features.WebSearch = enabled
	case FeatureHistory:
		s.Features.History = enabled
	case FeatureExport:
		s.Features.Export = enabled
	default:
		return fmt.Errorf("unknown feature %q (want one of %s)", name, strings.Join(FeatureNames(), ", "))
	}
	return nil
}

// FeatureNames lists the supported feature toggles.
func FeatureNames() []string {
	names := []string{FeatureWebSearch, FeatureHistory, FeatureExport}
	sort.Strings(names)
	return names
}

// SetDefaultModel updates the default model.
func (s *Settings) SetDefaultModel(model string) error {
	model = strings.TrimSpace(model)
	if model == "" {
		return fmt.Errorf("model id cannot be empty")
	}
	s.DefaultModel = model
	return nil
}

// ResolveModel returns override when set, the default model otherwise.
func (s *Settings) ResolveModel(override string) string {
	if strings.TrimSpace(override) != "" {
		return strings.TrimSpace(override)
	}
	if s.DefaultModel != "" {
		return s.DefaultModel
	}
	return DefaultModel
}

// Timeout returns the per-request HTTP timeout.
func (s *Settings) Timeout() time.Duration {
	if s.APITimeout <= 0 {
		return DefaultAPITimeoutSeconds * time.Second
	}
	return time.Duration(s.APITimeout) * time.Second
}

// Retries returns the attempt budget, never less than one.
func (s *Settings) Retries() int {
	if s.MaxRetries <= 0 {
		return DefaultMaxRetries
	}
	return s.MaxRetries
}

// Validate rejects out-of-range values before they are persisted.
func (s *Settings) Validate() error {
	if s.APITimeout < 0 {
		return fmt.Errorf("api_timeout must be >= 0, got %d", s.APITimeout)
	}
	if s.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be >= 0, got %d", s.MaxRetries)
	}
	return nil
}
