package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tinlera/tinlera-go/assets"
	"github.com/tinlera/tinlera-go/internal/domain"
	"github.com/tinlera/tinlera-go/internal/pkg/filesystem"
	"github.com/tinlera/tinlera-go/internal/ports"
)

// FileLoader loads YAML configuration from ~/.tinlera/config.yaml (overridable via TINLERA_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. Relative paths in the returned config
// are already resolved against the config file's directory.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return domain.Config{}, err
		}
		if err := writeDefault(path); err != nil {
			return domain.Config{}, err
		}
		data = assets.DefaultConfigYAML
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg = hydrateDefaults(cfg)
	return resolvePaths(cfg, filepath.Dir(path)), nil
}

// Defaults returns the embedded default config resolved as if it lived at Path.
func (l *FileLoader) Defaults() (domain.Config, error) {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse embedded default config: %w", err)
	}
	return resolvePaths(hydrateDefaults(cfg), filepath.Dir(l.Path())), nil
}

// Path returns the config file location.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return filesystem.ExpandPath(l.overridePath)
	}
	if custom := os.Getenv("TINLERA_CONFIG"); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filepath.Join(filesystem.AppHome(), "config.yaml")
}

// Reset overwrites the config file with the embedded default, keeping a .bak
// copy of the previous file when one exists.
func (l *FileLoader) Reset() (string, error) {
	path := l.Path()
	backup := ""
	if data, err := os.ReadFile(path); err == nil {
		backup = path + ".bak"
		if err := os.WriteFile(backup, data, domain.SecureFilePermissions); err != nil {
			return "", err
		}
	}
	if err := writeDefault(path); err != nil {
		return "", err
	}
	return backup, nil
}

func ensureConfigDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, domain.DirectoryPermissions)
}

func writeDefault(path string) error {
	return filesystem.AtomicWrite(path, assets.DefaultConfigYAML, domain.SecureFilePermissions)
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Inference.BaseURL == "" {
		cfg.Inference.BaseURL = domain.DefaultInferenceBaseURL
	}
	if cfg.Inference.HubURL == "" {
		cfg.Inference.HubURL = domain.DefaultHubURL
	}
	if cfg.Paths.SettingsFile == "" {
		cfg.Paths.SettingsFile = filepath.Join("config", "settings.json")
	}
	if cfg.Paths.HistoryDir == "" {
		cfg.Paths.HistoryDir = filepath.Join("data", "history")
	}
	if cfg.Paths.ExportDir == "" {
		cfg.Paths.ExportDir = filepath.Join("data", "exports")
	}
	if cfg.Paths.CacheDir == "" {
		cfg.Paths.CacheDir = "cache"
	}
	if cfg.History.Backend == "" {
		cfg.History.Backend = domain.HistoryBackendJSON
	}
	if cfg.Search.Endpoint == "" {
		cfg.Search.Endpoint = domain.DefaultSearchEndpoint
	}
	if cfg.Search.MaxResults == 0 {
		cfg.Search.MaxResults = domain.DefaultSearchResults
	}
	if cfg.Extract.MaxFileBytes == 0 {
		cfg.Extract.MaxFileBytes = domain.DefaultMaxFileBytes
	}
	if cfg.Cache.TTL == "" {
		cfg.Cache.TTL = domain.DefaultCacheTTL.String()
	}
	if cfg.Cache.MaxEntries == 0 {
		cfg.Cache.MaxEntries = domain.DefaultMaxCacheEntries
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	return cfg
}

func resolvePaths(cfg domain.Config, base string) domain.Config {
	cfg.Paths.SettingsFile = filesystem.ResolveUnder(base, cfg.Paths.SettingsFile)
	cfg.Paths.HistoryDir = filesystem.ResolveUnder(base, cfg.Paths.HistoryDir)
	cfg.Paths.ExportDir = filesystem.ResolveUnder(base, cfg.Paths.ExportDir)
	cfg.Paths.CacheDir = filesystem.ResolveUnder(base, cfg.Paths.CacheDir)
	if cfg.Log.OutputPath != "" {
		cfg.Log.OutputPath = filesystem.ResolveUnder(base, cfg.Log.OutputPath)
	}
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
