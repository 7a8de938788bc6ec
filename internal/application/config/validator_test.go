package config

import (
	"testing"

	"github.com/tinlera/tinlera-go/internal/domain"
)

func validConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		Inference: domain.InferenceConfig{
			BaseURL: domain.DefaultInferenceBaseURL,
			HubURL:  domain.DefaultHubURL,
		},
		History: domain.HistorySettings{Backend: domain.HistoryBackendJSON},
		Search: domain.SearchSettings{
			Endpoint:   domain.DefaultSearchEndpoint,
			MaxResults: 5,
		},
		Extract: domain.ExtractSettings{MaxFileBytes: 1024},
		Cache:   domain.CacheSettings{Enabled: true, TTL: "1h", MaxEntries: 10},
		Log:     domain.LogSettings{Level: "warn", Format: "console"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*domain.Config) {}},
		{name: "sqlite backend", mutate: func(c *domain.Config) { c.History.Backend = "sqlite" }},
		{name: "unknown backend", mutate: func(c *domain.Config) { c.History.Backend = "redis" }, wantErr: true},
		{name: "relative base url", mutate: func(c *domain.Config) { c.Inference.BaseURL = "models" }, wantErr: true},
		{name: "zero search results", mutate: func(c *domain.Config) { c.Search.MaxResults = 0 }, wantErr: true},
		{name: "bad ttl", mutate: func(c *domain.Config) { c.Cache.TTL = "soon" }, wantErr: true},
		{name: "zero max bytes", mutate: func(c *domain.Config) { c.Extract.MaxFileBytes = 0 }, wantErr: true},
		{name: "bad log level", mutate: func(c *domain.Config) { c.Log.Level = "loud" }, wantErr: true},
		{name: "bad log format", mutate: func(c *domain.Config) { c.Log.Format = "xml" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
