// Package settings persists user settings as JSON with the API token
// encrypted at rest.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tinlera/tinlera-go/internal/domain"
	"github.com/tinlera/tinlera-go/internal/pkg/filesystem"
	"github.com/tinlera/tinlera-go/internal/ports"
)

// KeyFileName sits next to the settings file.
const KeyFileName = ".key"

// fileSettings is the on-disk layout.
type fileSettings struct {
	TokenEncrypted string           `json:"hf_token_encrypted"`
	DefaultModel   string           `json:"default_model"`
	Features       *domain.Features `json:"features,omitempty"`
	APITimeout     int              `json:"api_timeout"`
	MaxRetries     int              `json:"max_retries"`
}

// FileStore reads and writes settings.json. Every Load goes to disk.
type FileStore struct {
	path   string
	cipher tokenCipher
	logger ports.Logger
}

// NewFileStore builds a store rooted at path.
func NewFileStore(path string, logger ports.Logger) *FileStore {
	return &FileStore{
		path:   path,
		cipher: tokenCipher{keyPath: filepath.Join(filepath.Dir(path), KeyFileName)},
		logger: logger,
	}
}

// Path returns the settings file location.
func (s *FileStore) Path() string {
	return s.path
}

// KeyPath returns the encryption key location.
func (s *FileStore) KeyPath() string {
	return s.cipher.keyPath
}

// Load implements ports.SettingsStore.
func (s *FileStore) Load() (domain.Settings, error) {
	settings := domain.DefaultSettings()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings: %w", err)
	}

	// Presence of keys matters for hydration, so decode into a raw map first.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		s.warn("settings file is corrupt; using defaults", map[string]interface{}{"path": s.path, "error": err.Error()})
		return settings, nil
	}

	var stored fileSettings
	if err := json.Unmarshal(data, &stored); err != nil {
		s.warn("settings file is corrupt; using defaults", map[string]interface{}{"path": s.path, "error": err.Error()})
		return settings, nil
	}

	if stored.DefaultModel != "" {
		settings.DefaultModel = stored.DefaultModel
	}
	if features, ok := raw["features"]; ok {
		settings.Features = mergeFeatures(settings.Features, features)
	}
	if _, ok := raw["api_timeout"]; ok {
		settings.APITimeout = stored.APITimeout
	}
	if _, ok := raw["max_retries"]; ok {
		settings.MaxRetries = stored.MaxRetries
	}
	if stored.TokenEncrypted != "" {
		token, err := s.cipher.decrypt(stored.TokenEncrypted)
		if err != nil {
			s.warn("stored token could not be decrypted", map[string]interface{}{"path": s.path})
		} else {
			settings.Token = token
		}
	}
	return settings, nil
}

// Save implements ports.SettingsStore.
func (s *FileStore) Save(settings domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	features := settings.Features
	stored := fileSettings{
		DefaultModel: settings.DefaultModel,
		Features:     &features,
		APITimeout:   settings.APITimeout,
		MaxRetries:   settings.MaxRetries,
	}
	if settings.HasToken() {
		sealed, err := s.cipher.encrypt(settings.Token)
		if err != nil {
			return fmt.Errorf("encrypt token: %w", err)
		}
		stored.TokenEncrypted = sealed
	}

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return err
	}
	return filesystem.AtomicWrite(s.path, data, domain.SecureFilePermissions)
}

// SetToken stores a new token; an empty value clears it.
func (s *FileStore) SetToken(token string) error {
	return s.update(func(settings *domain.Settings) error {
		settings.Token = token
		return nil
	})
}

// SetFeature toggles one feature.
func (s *FileStore) SetFeature(name string, enabled bool) error {
	return s.update(func(settings *domain.Settings) error {
		return settings.SetFeature(name, enabled)
	})
}

// SetDefaultModel persists the model used when none is given.
func (s *FileStore) SetDefaultModel(model string) error {
	return s.update(func(settings *domain.Settings) error {
		return settings.SetDefaultModel(model)
	})
}

// SetAPITimeout persists the per-request timeout in seconds.
func (s *FileStore) SetAPITimeout(seconds int) error {
	return s.update(func(settings *domain.Settings) error {
		settings.APITimeout = seconds
		return nil
	})
}

// SetMaxRetries persists the inference attempt budget.
func (s *FileStore) SetMaxRetries(retries int) error {
	return s.update(func(settings *domain.Settings) error {
		settings.MaxRetries = retries
		return nil
	})
}

func (s *FileStore) update(mutate func(*domain.Settings) error) error {
	settings, err := s.Load()
	if err != nil {
		return err
	}
	if err := mutate(&settings); err != nil {
		return err
	}
	return s.Save(settings)
}

func (s *FileStore) warn(msg string, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.Warn(msg, fields)
	}
}

// mergeFeatures overlays only the feature keys present on disk.
func mergeFeatures(base domain.Features, raw json.RawMessage) domain.Features {
	var present map[string]bool
	if err := json.Unmarshal(raw, &present); err != nil {
		return base
	}
	for name, enabled := range present {
		settings := domain.Settings{Features: base}
		if err := settings.SetFeature(name, enabled); err == nil {
			base = settings.Features
		}
	}
	return base
}

var _ ports.SettingsStore = (*FileStore)(nil)
