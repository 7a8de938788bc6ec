package domain

// Feature names accepted by Settings.SetFeature.
const (
	FeatureWebSearch = "web_search"
	FeatureHistory   = "history"
	FeatureExport    = "export"
)

// Features are per-session toggles persisted with the settings.
type Features struct {
	WebSearch bool `json:"web_search"`
	History   bool `json:"history"`
	Export    bool `json:"export"`
}

// Settings is the user-level configuration. Token is plaintext in memory only;
// the settings store encrypts it at rest.
type Settings struct {
	Token        string   `json:"-"`
	DefaultModel string   `json:"default_model"`
	Features     Features `json:"features"`
	APITimeout   int      `json:"api_timeout"`
	MaxRetries   int      `json:"max_retries"`
}

// DefaultSettings returns the settings used when nothing is persisted.
func DefaultSettings() Settings {
	return Settings{
		DefaultModel: DefaultModel,
		Features: Features{
			WebSearch: true,
			History:   true,
			Export:    true,
		},
		APITimeout: DefaultAPITimeoutSeconds,
		MaxRetries: DefaultMaxRetries,
	}
}
