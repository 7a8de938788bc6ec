package inference

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tinlera/tinlera-go/internal/domain"
	"github.com/tinlera/tinlera-go/internal/ports"
)

// HubClient queries model metadata. Lookups are best effort: without a token
// or on any failure they return empty results and log the cause.
type HubClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     ports.Logger
}

// NewHubClient builds a metadata client.
func NewHubClient(baseURL, token string, httpClient *http.Client, logger ports.Logger) *HubClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: domain.HubRequestTimeout}
	}
	if baseURL == "" {
		baseURL = domain.DefaultHubURL
	}
	return &HubClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      strings.TrimSpace(token),
		httpClient: httpClient,
		logger:     logger,
	}
}

// SearchModels lists models matching query, most downloaded first.
func (h *HubClient) SearchModels(ctx context.Context, query, task string) ([]domain.ModelDescriptor, error) {
	if h.token == "" {
		return []domain.ModelDescriptor{}, nil
	}
	params := url.Values{}
	params.Set("search", query)
	params.Set("sort", "downloads")
	params.Set("direction", "-1")
	params.Set("limit", strconv.Itoa(domain.HubSearchLimit))
	if task != "" {
		params.Set("pipeline_tag", task)
	}

	var models []domain.ModelDescriptor
	if err := h.get(ctx, h.baseURL+"?"+params.Encode(), &models); err != nil {
		h.warn("model search failed", err, map[string]interface{}{"query": query, "task": task})
		return []domain.ModelDescriptor{}, nil
	}
	if models == nil {
		models = []domain.ModelDescriptor{}
	}
	return models, nil
}

// GetModelInfo returns nil when the model is unknown or the lookup fails.
func (h *HubClient) GetModelInfo(ctx context.Context, model string) (*domain.ModelDescriptor, error) {
	if h.token == "" {
		return nil, nil
	}
	var info domain.ModelDescriptor
	if err := h.get(ctx, h.baseURL+"/"+strings.TrimLeft(model, "/"), &info); err != nil {
		h.warn("model info lookup failed", err, map[string]interface{}{"model": model})
		return nil, nil
	}
	return &info, nil
}

func (h *HubClient) get(ctx context.Context, endpoint string, out interface{}) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	httpReq.Header.Set("authorization", "Bearer "+h.token)

	resp, err := h.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("hub: %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (h *HubClient) warn(msg string, err error, fields map[string]interface{}) {
	if h.logger == nil {
		return
	}
	fields["error"] = err.Error()
	h.logger.Warn(msg, fields)
}

var _ ports.ModelHub = (*HubClient)(nil)
