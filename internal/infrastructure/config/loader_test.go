package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/tinlera/tinlera-go/internal/domain"
)

func TestLoadWritesDefaultOnFirstRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}
	if cfg.Inference.BaseURL != domain.DefaultInferenceBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.Inference.BaseURL, domain.DefaultInferenceBaseURL)
	}
	if cfg.History.Backend != domain.HistoryBackendJSON {
		t.Errorf("Backend = %q, want json", cfg.History.Backend)
	}
	want := filepath.Join(dir, "data", "history")
	if cfg.Paths.HistoryDir != want {
		t.Errorf("HistoryDir = %q, want %q", cfg.Paths.HistoryDir, want)
	}
}

func TestLoadHydratesMissingKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := "history:\n  backend: sqlite\nsearch:\n  report_errors: true\n"
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"backend kept", cfg.History.Backend, domain.HistoryBackendSQLite},
		{"report errors kept", cfg.Search.ReportErrors, true},
		{"search endpoint default", cfg.Search.Endpoint, domain.DefaultSearchEndpoint},
		{"max results default", cfg.Search.MaxResults, domain.DefaultSearchResults},
		{"max file bytes default", cfg.Extract.MaxFileBytes, int64(domain.DefaultMaxFileBytes)},
		{"cache ttl default", cfg.Cache.TTL, "1h0m0s"},
		{"log format default", cfg.Log.Format, "console"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("inference: [unterminated"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewFileLoader(path).Load(context.Background()); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestResetKeepsBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	backup, err := NewFileLoader(path).Reset()
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	data, err := os.ReadFile(backup)
	if err != nil {
		t.Fatalf("backup missing: %v", err)
	}
	if string(data) != "log:\n  level: debug\n" {
		t.Errorf("backup content = %q", string(data))
	}
}

func TestDefaultsMatchFirstLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)

	loaded, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defaults, err := loader.Defaults()
	if err != nil {
		t.Fatalf("Defaults failed: %v", err)
	}
	if loaded != defaults {
		t.Errorf("Defaults() = %+v, want %+v", defaults, loaded)
	}
}
