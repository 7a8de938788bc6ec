package domain

// Config mirrors ~/.tinlera/config.yaml.
type Config struct {
	ConfigFormatVersion string           `yaml:"config_format_version"`
	Inference           InferenceConfig  `yaml:"inference"`
	Paths               PathsConfig      `yaml:"paths"`
	History             HistorySettings  `yaml:"history"`
	Search              SearchSettings   `yaml:"search"`
	Extract             ExtractSettings  `yaml:"extract"`
	Cache               CacheSettings    `yaml:"cache"`
	Log                 LogSettings      `yaml:"log"`
}

// InferenceConfig locates the hosted provider.
type InferenceConfig struct {
	BaseURL string `yaml:"base_url"`
	HubURL  string `yaml:"hub_url"`
}

// PathsConfig holds on-disk locations. Relative paths are resolved under the
// tinlera home directory.
type PathsConfig struct {
	SettingsFile string `yaml:"settings_file"`
	HistoryDir   string `yaml:"history_dir"`
	ExportDir    string `yaml:"export_dir"`
	CacheDir     string `yaml:"cache_dir"`
}

// History backends.
const (
	HistoryBackendJSON   = "json"
	HistoryBackendSQLite = "sqlite"
)

// HistorySettings selects the history backend.
type HistorySettings struct {
	Backend string `yaml:"backend"`
}

// SearchSettings configures the web search provider.
type SearchSettings struct {
	Endpoint     string `yaml:"endpoint"`
	MaxResults   int    `yaml:"max_results"`
	ReportErrors bool   `yaml:"report_errors"`
	UserAgent    string `yaml:"user_agent"`
}

// ExtractSettings bounds file extraction.
type ExtractSettings struct {
	MaxFileBytes int64 `yaml:"max_file_bytes"`
}

// CacheSettings controls the model hub metadata cache.
type CacheSettings struct {
	Enabled    bool   `yaml:"enabled"`
	TTL        string `yaml:"ttl"`
	MaxEntries int    `yaml:"max_entries"`
}

// LogSettings configures the zap logger.
type LogSettings struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	OutputPath string `yaml:"output_path"`
}
