// Package inference talks to the Hugging Face serverless inference API and
// the model hub metadata API.
package inference

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tinlera/tinlera-go/internal/domain"
	"github.com/tinlera/tinlera-go/internal/ports"
)

// Sleeper pauses between attempts. It must return early with ctx.Err() when
// the context is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Options configures a Client.
type Options struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	MaxRetries int
	HTTPClient *http.Client
	Sleep      Sleeper
	Logger     ports.Logger
}

// Client implements ports.InferenceClient.
type Client struct {
	baseURL    string
	token      string
	maxRetries int
	httpClient *http.Client
	sleep      Sleeper
	logger     ports.Logger
}

// NewClient builds a client; zero option values fall back to defaults.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = domain.DefaultAPITimeoutSeconds * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	sleep := opts.Sleep
	if sleep == nil {
		sleep = contextSleep
	}
	retries := opts.MaxRetries
	if retries <= 0 {
		retries = domain.DefaultMaxRetries
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = domain.DefaultInferenceBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		token:      strings.TrimSpace(opts.Token),
		maxRetries: retries,
		httpClient: httpClient,
		sleep:      sleep,
		logger:     opts.Logger,
	}
}

// GenerateText sends a plain prompt.
func (c *Client) GenerateText(ctx context.Context, model, prompt string, params *domain.GenerationParams) (string, error) {
	if c.token == "" {
		return "", domain.ErrMissingCredential
	}
	req := domain.GenerationRequest{Model: model, Prompt: prompt, Params: params}
	body, err := buildTextPayload(req)
	if err != nil {
		return "", err
	}
	return c.dispatch(ctx, req.Model, body)
}

// GenerateWithImage sends a prompt together with a base64-encoded image.
func (c *Client) GenerateWithImage(ctx context.Context, model, prompt, imagePath string, params *domain.GenerationParams) (string, error) {
	if c.token == "" {
		return "", domain.ErrMissingCredential
	}
	raw, err := os.ReadFile(imagePath)
	if err != nil {
		return "", &domain.EncodingError{Path: imagePath, Err: err}
	}
	if len(raw) == 0 {
		return "", &domain.EncodingError{Path: imagePath, Err: errors.New("empty file")}
	}

	req := domain.GenerationRequest{Model: model, Prompt: prompt, Params: params, ImagePath: imagePath}
	body, err := buildImagePayload(req, base64.StdEncoding.EncodeToString(raw))
	if err != nil {
		return "", err
	}
	return c.dispatch(ctx, req.Model, body)
}

// ChatCompletion flattens messages into a single prompt and generates text.
func (c *Client) ChatCompletion(ctx context.Context, model string, messages []domain.ChatMessage, params *domain.GenerationParams) (string, error) {
	return c.GenerateText(ctx, model, FlattenMessages(messages), params)
}

// dispatch posts body to {baseURL}/{model} and applies the retry policy:
// 503 waits for the cold-start hint, timeouts wait TimeoutRetryDelay, and
// every other failure is terminal.
func (c *Client) dispatch(ctx context.Context, model string, body []byte) (string, error) {
	endpoint := c.baseURL + "/" + strings.TrimLeft(model, "/")

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		status, header, respBody, err := c.post(ctx, endpoint, body)
		if err != nil {
			if ctx.Err() != nil {
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					return "", fmt.Errorf("%w: %v", domain.ErrTimeout, ctx.Err())
				}
				return "", ctx.Err()
			}
			if !isTimeout(err) {
				c.logError("inference request failed", err, model, attempt)
				return "", &domain.TransportError{Err: err}
			}
			if attempt >= c.maxRetries {
				c.logError("inference request timed out", err, model, attempt)
				return "", domain.ErrTimeout
			}
			c.logWarn("inference request timed out; retrying", model, attempt, domain.TimeoutRetryDelay)
			if err := c.sleep(ctx, domain.TimeoutRetryDelay); err != nil {
				return "", err
			}
			continue
		}

		switch status {
		case http.StatusOK:
			return parseGeneratedText(respBody)
		case http.StatusServiceUnavailable:
			wait := coldStartWait(header.Get("X-Wait-For-Model"))
			c.logWarn("model is loading; waiting", model, attempt, wait)
			if err := c.sleep(ctx, wait); err != nil {
				return "", err
			}
			continue
		case http.StatusGone:
			c.logError("inference endpoint retired", nil, model, attempt)
			return "", &domain.RetiredEndpointError{Body: string(respBody)}
		case http.StatusNotFound:
			c.logError("model not found", nil, model, attempt)
			return "", &domain.ModelNotFoundError{Model: model}
		default:
			c.logError("inference provider error", nil, model, attempt)
			return "", &domain.ProviderError{Code: status, Body: string(respBody)}
		}
	}

	return "", domain.ErrRetriesExhausted
}

func (c *Client) post(ctx context.Context, endpoint string, body []byte) (int, http.Header, []byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, nil, nil, err
	}
	httpReq.Header.Set("authorization", "Bearer "+c.token)
	httpReq.Header.Set("content-type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, nil, err
	}
	return resp.StatusCode, resp.Header, respBody, nil
}

// coldStartWait parses the X-Wait-For-Model header, which may be fractional.
func coldStartWait(value string) time.Duration {
	seconds, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || seconds < 0 {
		return domain.DefaultColdStartWait
	}
	return time.Duration(seconds * float64(time.Second))
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func contextSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) logWarn(msg, model string, attempt int, wait time.Duration) {
	if c.logger == nil {
		return
	}
	c.logger.Warn(msg, map[string]interface{}{
		"model":       model,
		"attempt":     attempt,
		"max_retries": c.maxRetries,
		"wait":        wait.String(),
	})
}

func (c *Client) logError(msg string, err error, model string, attempt int) {
	if c.logger == nil {
		return
	}
	c.logger.Error(msg, err, map[string]interface{}{
		"model":   model,
		"attempt": attempt,
	})
}

var _ ports.InferenceClient = (*Client)(nil)
