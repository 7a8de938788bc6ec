package domain

import (
	"errors"
	"fmt"
)

// Terminal and exhausted outcomes of the inference client.
var (
	ErrMissingCredential = errors.New("api token is not configured")
	ErrTimeout           = errors.New("request timeout")
	ErrEndpointRetired   = errors.New("inference endpoint has moved; update the base url in config")
	ErrModelNotFound     = errors.New("model not found")
	ErrRetriesExhausted  = errors.New("max retries exceeded")
)

// ErrEntryNotFound is returned by history lookups that expect a match.
var ErrEntryNotFound = errors.New("history entry not found")

// RetiredEndpointError carries the provider body of a 410 response.
type RetiredEndpointError struct {
	Body string
}

func (e *RetiredEndpointError) Error() string {
	return fmt.Sprintf("%s: %s", ErrEndpointRetired, e.Body)
}

func (e *RetiredEndpointError) Unwrap() error { return ErrEndpointRetired }

// ModelNotFoundError names the model the provider rejected with 404.
type ModelNotFoundError struct {
	Model string
}

func (e *ModelNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s (check the model id or use a dedicated inference endpoint)", ErrModelNotFound, e.Model)
}

func (e *ModelNotFoundError) Unwrap() error { return ErrModelNotFound }

// ProviderError is any non-success HTTP response that is not retried.
type ProviderError struct {
	Code int
	Body string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error (%d): %s", e.Code, e.Body)
}

// TransportError wraps a non-timeout failure below HTTP.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// EncodingError reports an image that could not be read or encoded.
type EncodingError struct {
	Path string
	Err  error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("image could not be encoded: %s: %v", e.Path, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// UnsupportedFileFormatError is returned for extensions with no extractor.
type UnsupportedFileFormatError struct {
	Ext string
}

func (e *UnsupportedFileFormatError) Error() string {
	return fmt.Sprintf("unsupported file format: %s", e.Ext)
}

// FileReadError covers missing, unreadable, oversized and corrupt files.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }
