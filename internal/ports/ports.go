// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). The research worker depends on these abstractions
// rather than on the Hugging Face client, the DuckDuckGo scraper or the JSON
// stores, so each adapter can be replaced in tests with a stub.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., InferenceClient, HistoryRepository)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"

	"github.com/tinlera/tinlera-go/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.tinlera/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// SettingsStore is the explicit load/save boundary for user settings.
// Nothing is cached between calls; callers hold the loaded value.
type SettingsStore interface {
	Load() (domain.Settings, error)
	Save(domain.Settings) error
}

// InferenceClient turns prompts into generated text against the hosted provider.
type InferenceClient interface {
	GenerateText(ctx context.Context, model, prompt string, params *domain.GenerationParams) (string, error)
	GenerateWithImage(ctx context.Context, model, prompt, imagePath string, params *domain.GenerationParams) (string, error)
	ChatCompletion(ctx context.Context, model string, messages []domain.ChatMessage, params *domain.GenerationParams) (string, error)
}

// InferenceClientFactory builds a client bound to the current settings
// (token, timeout, retry budget).
type InferenceClientFactory interface {
	ForSettings(domain.Settings) InferenceClient
}

// ModelHub performs read-only model metadata lookups.
type ModelHub interface {
	SearchModels(ctx context.Context, query, task string) ([]domain.ModelDescriptor, error)
	GetModelInfo(ctx context.Context, model string) (*domain.ModelDescriptor, error)
}

// FileExtractor turns attached file paths into prompt material.
type FileExtractor interface {
	Process(path string) domain.ProcessedFile
	ProcessAll(paths []string) []domain.ProcessedFile
}

// WebSearcher returns ordered search results. Implementations may swallow
// provider failures and return an empty slice.
type WebSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error)
}

// HistoryRepository is the append-only research log.
type HistoryRepository interface {
	Add(domain.NewHistoryEntry) (domain.HistoryEntry, error)
	Get(id string) (domain.HistoryEntry, bool, error)
	All() ([]domain.HistoryEntry, error)
	Search(query string) ([]domain.HistoryEntry, error)
	FilterByModel(model string) ([]domain.HistoryEntry, error)
	FilterByDate(start, end string) ([]domain.HistoryEntry, error)
	Delete(id string) (bool, error)
	Clear() error
	Stats() (domain.HistoryStats, error)
	Path() string
}

// Exporter writes history entries to files.
type Exporter interface {
	ExportEntry(entry domain.HistoryEntry, format domain.ExportFormat, filename string) (string, error)
	ExportBatch(entries []domain.HistoryEntry, format domain.ExportFormat, filename string) (string, error)
	Dir() string
}

// CacheRepository stores model hub search results.
type CacheRepository interface {
	Get(key string) (domain.CacheEntry, bool, error)
	Set(domain.CacheEntry) error
	Entries() ([]domain.CacheEntry, error)
	Clear() error
	Dir() string
}

// ConfirmationPrompter handles interactive yes/no confirmations for destructive operations.
type ConfirmationPrompter interface {
	Confirm(question string) (bool, error)
	Enabled() bool
}

// Clipboard provides cross-platform clipboard integration for copying responses.
type Clipboard interface {
	Copy(text string) error
	Enabled() bool
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
