package inference

import (
	"net/http"

	"github.com/tinlera/tinlera-go/internal/domain"
	"github.com/tinlera/tinlera-go/internal/ports"
)

// Factory builds inference clients bound to a settings snapshot, so changes to
// the token, timeout or retry budget apply to the next request.
type Factory struct {
	baseURL   string
	hubURL    string
	transport http.RoundTripper
	logger    ports.Logger
}

// NewFactory returns a factory for the given endpoints. A nil transport uses
// http.DefaultTransport.
func NewFactory(baseURL, hubURL string, transport http.RoundTripper, logger ports.Logger) *Factory {
	return &Factory{
		baseURL:   baseURL,
		hubURL:    hubURL,
		transport: transport,
		logger:    logger,
	}
}

// ForSettings implements ports.InferenceClientFactory.
func (f *Factory) ForSettings(settings domain.Settings) ports.InferenceClient {
	return NewClient(Options{
		BaseURL:    f.baseURL,
		Token:      settings.Token,
		MaxRetries: settings.Retries(),
		HTTPClient: &http.Client{Timeout: settings.Timeout(), Transport: f.transport},
		Logger:     f.logger,
	})
}

// HubForSettings returns a metadata client using the settings token.
func (f *Factory) HubForSettings(settings domain.Settings) *HubClient {
	return NewHubClient(f.hubURL, settings.Token, &http.Client{Timeout: domain.HubRequestTimeout, Transport: f.transport}, f.logger)
}

var _ ports.InferenceClientFactory = (*Factory)(nil)
