package doctor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/tinlera/tinlera-go/internal/domain"
	"github.com/tinlera/tinlera-go/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Settings       ports.SettingsStore
	History        ports.HistoryRepository
	Exporter       ports.Exporter
	// KeyPath locates the token encryption key.
	KeyPath string
	// TokenOverride is the HF_TOKEN value, if any.
	TokenOverride string
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("format version %s", cfg.ConfigFormatVersion)))

	settings, err := s.Settings.Load()
	if err != nil {
		checks = append(checks, fail("Settings", err.Error()))
	} else {
		checks = append(checks, ok("Settings", fmt.Sprintf("default model %s", settings.ResolveModel(""))))
		checks = append(checks, tokenCheck(settings, s.TokenOverride))
	}

	checks = append(checks, keyFileCheck(s.KeyPath))

	if s.History != nil {
		if entries, err := s.History.All(); err != nil {
			checks = append(checks, fail("History", err.Error()))
		} else {
			checks = append(checks, ok("History", fmt.Sprintf("%d entries in %s", len(entries), s.History.Path())))
		}
	}

	if s.Exporter != nil {
		checks = append(checks, writableDirCheck("Export dir", s.Exporter.Dir()))
	}

	return domain.HealthReport{Checks: checks}, nil
}

func tokenCheck(settings domain.Settings, override string) domain.HealthCheck {
	switch {
	case override != "":
		return ok("API token", "provided by HF_TOKEN")
	case settings.HasToken():
		return ok("API token", "stored (encrypted)")
	default:
		return warn("API token", "not configured; run `tinlera settings token set <token>`")
	}
}

func keyFileCheck(path string) domain.HealthCheck {
	if path == "" {
		return warn("Key file", "location unknown")
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ok("Key file", "not created yet")
		}
		return fail("Key file", err.Error())
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != domain.SecureFilePermissions {
		return warn("Key file", fmt.Sprintf("%s has mode %o, want 600", path, info.Mode().Perm()))
	}
	return ok("Key file", path)
}

func writableDirCheck(name, dir string) domain.HealthCheck {
	if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
		return fail(name, err.Error())
	}
	probe, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return fail(name, fmt.Sprintf("%s is not writable: %v", dir, err))
	}
	probe.Close()
	_ = os.Remove(probe.Name())
	return ok(name, filepath.Clean(dir))
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
