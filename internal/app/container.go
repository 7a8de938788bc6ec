package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	appconfig "github.com/tinlera/tinlera-go/internal/application/config"
	"github.com/tinlera/tinlera-go/internal/application/doctor"
	"github.com/tinlera/tinlera-go/internal/application/research"
	"github.com/tinlera/tinlera-go/internal/domain"
	"github.com/tinlera/tinlera-go/internal/infrastructure/cache"
	"github.com/tinlera/tinlera-go/internal/infrastructure/config"
	"github.com/tinlera/tinlera-go/internal/infrastructure/export"
	"github.com/tinlera/tinlera-go/internal/infrastructure/extract"
	"github.com/tinlera/tinlera-go/internal/infrastructure/history"
	"github.com/tinlera/tinlera-go/internal/infrastructure/inference"
	"github.com/tinlera/tinlera-go/internal/infrastructure/settings"
	"github.com/tinlera/tinlera-go/internal/infrastructure/websearch"
	"github.com/tinlera/tinlera-go/internal/pkg/logger"
	"github.com/tinlera/tinlera-go/internal/ports"
)

// TokenEnv overrides the stored API token for the current process.
const TokenEnv = "HF_TOKEN"

// Options controls container construction.
type Options struct {
	Verbose    bool
	ConfigPath string
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config          domain.Config
	ConfigProvider  ports.ConfigProvider
	ConfigLoader    *config.FileLoader
	Logger          *logger.ZapLogger
	SettingsStore   *settings.FileStore
	ClientFactory   *inference.Factory
	HistoryStore    ports.HistoryRepository
	Exporter        ports.Exporter
	CacheStore      ports.CacheRepository
	ResearchService *research.Service
	DoctorService   *doctor.Service
	TokenOverride   string

	closers []func() error
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := appconfig.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", cfgLoader.Path(), err)
	}

	log, err := logger.New(logger.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		OutputPath: cfg.Log.OutputPath,
		Verbose:    opts.Verbose,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	container := &Container{
		Config:         cfg,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Logger:         log,
		SettingsStore:  settings.NewFileStore(cfg.Paths.SettingsFile, log),
		ClientFactory:  inference.NewFactory(cfg.Inference.BaseURL, cfg.Inference.HubURL, nil, log),
		Exporter:       export.NewExporter(cfg.Paths.ExportDir, log),
		CacheStore:     cache.NewFileCache(cfg.Paths.CacheDir, cfg.Cache),
		TokenOverride:  strings.TrimSpace(os.Getenv(TokenEnv)),
	}

	historyStore, err := container.openHistory(cfg)
	if err != nil {
		return nil, err
	}
	container.HistoryStore = historyStore

	container.ResearchService = &research.Service{
		Settings:           container.SettingsStore,
		ClientFactory:      container.ClientFactory,
		Extractor:          extract.NewProcessor(cfg.Extract.MaxFileBytes, log),
		Searcher:           newSearcher(cfg.Search, log),
		History:            historyStore,
		Logger:             log,
		SearchResults:      cfg.Search.MaxResults,
		ReportSearchErrors: cfg.Search.ReportErrors,
		TokenOverride:      container.TokenOverride,
	}

	container.DoctorService = &doctor.Service{
		ConfigProvider: cfgLoader,
		Settings:       container.SettingsStore,
		History:        historyStore,
		Exporter:       container.Exporter,
		KeyPath:        container.SettingsStore.KeyPath(),
		TokenOverride:  container.TokenOverride,
	}

	return container, nil
}

func (c *Container) openHistory(cfg domain.Config) (ports.HistoryRepository, error) {
	switch cfg.History.Backend {
	case domain.HistoryBackendSQLite:
		store, err := history.NewSQLiteStore(cfg.Paths.HistoryDir)
		if err != nil {
			return nil, fmt.Errorf("open history database: %w", err)
		}
		c.closers = append(c.closers, store.Close)
		return store, nil
	default:
		return history.NewFileStore(cfg.Paths.HistoryDir, c.Logger), nil
	}
}

func newSearcher(cfg domain.SearchSettings, log ports.Logger) ports.WebSearcher {
	ddg := websearch.NewDuckDuckGo(cfg.Endpoint, cfg.UserAgent, &http.Client{Timeout: domain.DefaultSearchTimeout})
	if cfg.ReportErrors {
		return ddg
	}
	return websearch.NewSilent(ddg, log)
}

// LoadSettings returns persisted settings with the environment token applied.
func (c *Container) LoadSettings() (domain.Settings, error) {
	s, err := c.SettingsStore.Load()
	if err != nil {
		return s, err
	}
	if c.TokenOverride != "" {
		s.Token = c.TokenOverride
	}
	return s, nil
}

// ModelHub returns a metadata client for the current token, cached when the
// config enables it.
func (c *Container) ModelHub(s domain.Settings) ports.ModelHub {
	hub := c.ClientFactory.HubForSettings(s)
	if !c.Config.Cache.Enabled {
		return hub
	}
	return cache.NewCachedHub(hub, c.CacheStore, c.Logger)
}

// Close releases open stores and flushes the logger.
func (c *Container) Close() error {
	var firstErr error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.Logger != nil {
		c.Logger.Sync()
	}
	return firstErr
}
