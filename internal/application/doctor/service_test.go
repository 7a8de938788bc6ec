package doctor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/tinlera/tinlera-go/internal/domain"
)

type stubConfig struct {
	err error
}

func (s stubConfig) Load(context.Context) (domain.Config, error) {
	return domain.Config{ConfigFormatVersion: "1"}, s.err
}

type stubSettings struct {
	settings domain.Settings
}

func (s stubSettings) Load() (domain.Settings, error) { return s.settings, nil }
func (s stubSettings) Save(domain.Settings) error     { return nil }

type stubExporter struct{ dir string }

func (e stubExporter) ExportEntry(domain.HistoryEntry, domain.ExportFormat, string) (string, error) {
	return "", nil
}
func (e stubExporter) ExportBatch([]domain.HistoryEntry, domain.ExportFormat, string) (string, error) {
	return "", nil
}
func (e stubExporter) Dir() string { return e.dir }

func statusOf(report domain.HealthReport, name string) domain.HealthStatus {
	for _, check := range report.Checks {
		if check.Name == name {
			return check.Status
		}
	}
	return ""
}

func TestRunReportsChecks(t *testing.T) {
	dir := t.TempDir()
	keyPath := filepath.Join(dir, ".key")
	if err := os.WriteFile(keyPath, []byte("k"), 0o644); err != nil {
		t.Fatal(err)
	}

	svc := &Service{
		ConfigProvider: stubConfig{},
		Settings:       stubSettings{settings: domain.DefaultSettings()},
		Exporter:       stubExporter{dir: filepath.Join(dir, "exports")},
		KeyPath:        keyPath,
	}
	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	tests := []struct {
		name string
		want domain.HealthStatus
	}{
		{"Config file", domain.HealthOK},
		{"Settings", domain.HealthOK},
		{"API token", domain.HealthWarn},
		{"Export dir", domain.HealthOK},
	}
	if runtime.GOOS != "windows" {
		tests = append(tests, struct {
			name string
			want domain.HealthStatus
		}{"Key file", domain.HealthWarn})
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusOf(report, tt.name); got != tt.want {
				t.Errorf("status = %q, want %q", got, tt.want)
			}
		})
	}
	if report.HasErrors() {
		t.Errorf("unexpected errors: %+v", report.Checks)
	}
}

func TestRunTokenOverride(t *testing.T) {
	svc := &Service{
		ConfigProvider: stubConfig{},
		Settings:       stubSettings{settings: domain.DefaultSettings()},
		TokenOverride:  "hf_env",
	}
	report, _ := svc.Run(context.Background())
	if got := statusOf(report, "API token"); got != domain.HealthOK {
		t.Errorf("API token status = %q, want ok", got)
	}
}

func TestRunConfigFailure(t *testing.T) {
	svc := &Service{ConfigProvider: stubConfig{err: errors.New("bad yaml")}}
	report, err := svc.Run(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !report.HasErrors() {
		t.Error("report should contain an error check")
	}
}
