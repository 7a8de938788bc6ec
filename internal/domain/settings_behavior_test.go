package domain_test

import (
	"testing"
	"time"

	"github.com/tinlera/tinlera-go/internal/domain"
)

// TestSettings_ResolveModel tests the model override precedence
func TestSettings_ResolveModel(t *testing.T) {
	tests := []struct {
		name     string
		settings domain.Settings
		override string
		want     string
	}{
		{
			name:     "override wins",
			settings: domain.Settings{DefaultModel: "google/gemma-7b-it"},
			override: " Qwen/Qwen2.5-7B-Instruct ",
			want:     "Qwen/Qwen2.5-7B-Instruct",
		},
		{
			name:     "falls back to stored default",
			settings: domain.Settings{DefaultModel: "google/gemma-7b-it"},
			want:     "google/gemma-7b-it",
		},
		{
			name: "falls back to built-in default",
			want: domain.DefaultModel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.settings.ResolveModel(tt.override); got != tt.want {
				t.Errorf("ResolveModel() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestSettings_SetFeature tests toggling known and unknown features
func TestSettings_SetFeature(t *testing.T) {
	tests := []struct {
		name      string
		feature   string
		enabled   bool
		wantError bool
	}{
		{name: "disables web search", feature: domain.FeatureWebSearch, enabled: false},
		{name: "enables history", feature: domain.FeatureHistory, enabled: true},
		{name: "disables export", feature: domain.FeatureExport, enabled: false},
		{name: "rejects unknown feature", feature: "telepathy", enabled: true, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := domain.DefaultSettings()
			err := s.SetFeature(tt.feature, tt.enabled)
			if tt.wantError {
				if err == nil {
					t.Error("SetFeature() error = nil, want error")
				}
				if s.FeatureEnabled(tt.feature) {
					t.Error("unknown feature reported as enabled")
				}
				return
			}
			if err != nil {
				t.Fatalf("SetFeature() unexpected error = %v", err)
			}
			if got := s.FeatureEnabled(tt.feature); got != tt.enabled {
				t.Errorf("FeatureEnabled() = %v, want %v", got, tt.enabled)
			}
		})
	}
}

// TestSettings_TimeoutAndRetries tests zero values fall back to defaults
func TestSettings_TimeoutAndRetries(t *testing.T) {
	var zero domain.Settings
	if got := zero.Timeout(); got != domain.DefaultAPITimeoutSeconds*time.Second {
		t.Errorf("Timeout() = %v, want default", got)
	}
	if got := zero.Retries(); got != domain.DefaultMaxRetries {
		t.Errorf("Retries() = %d, want %d", got, domain.DefaultMaxRetries)
	}

	s := domain.Settings{APITimeout: 5, MaxRetries: 1}
	if got := s.Timeout(); got != 5*time.Second {
		t.Errorf("Timeout() = %v, want 5s", got)
	}
	if got := s.Retries(); got != 1 {
		t.Errorf("Retries() = %d, want 1", got)
	}
}

// TestSettings_Validate tests negative values are rejected
func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name      string
		settings  domain.Settings
		wantError bool
	}{
		{name: "defaults are valid", settings: domain.DefaultSettings()},
		{name: "negative timeout", settings: domain.Settings{APITimeout: -1}, wantError: true},
		{name: "negative retries", settings: domain.Settings{MaxRetries: -2}, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

// TestParseExportFormat tests accepted names and aliases
func TestParseExportFormat(t *testing.T) {
	tests := []struct {
		in        string
		want      domain.ExportFormat
		wantError bool
	}{
		{in: "", want: domain.ExportText},
		{in: "TXT", want: domain.ExportText},
		{in: "md", want: domain.ExportMarkdown},
		{in: "word", want: domain.ExportDocx},
		{in: "pdf", want: domain.ExportPDF},
		{in: "odt", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParseExportFormat(tt.in)
			if (err != nil) != tt.wantError {
				t.Fatalf("ParseExportFormat() error = %v, wantError %v", err, tt.wantError)
			}
			if got != tt.want {
				t.Errorf("ParseExportFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestHistoryID tests the identifier layout
func TestHistoryID(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local)
	if got := domain.HistoryID(now, 12); got != "20240309140507_12" {
		t.Errorf("HistoryID() = %q", got)
	}
	entry := domain.NewHistoryEntry{Prompt: "p"}.Materialize(now, 0)
	if entry.Files == nil || entry.WebSearchResults == nil {
		t.Error("Materialize should default nil slices to empty")
	}
	if entry.Timestamp != "2024-03-09T14:05:07.000000" {
		t.Errorf("Timestamp = %q", entry.Timestamp)
	}
}
