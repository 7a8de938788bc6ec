// Package domain defines core business entities and value objects for tinlera.
//
// This file contains the generation request types and model metadata used by the
// inference client. The domain layer is independent of infrastructure concerns and
// represents pure business logic and data structures.
package domain

import "strings"

// Chat roles understood by the prompt flattener.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage follows the role/content pair required by most chat APIs.
type ChatMessage struct {
	Role    string `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
}

// GenerationParams are optional sampling parameters. Nil fields are omitted
// from the request body so the provider applies its own defaults.
type GenerationParams struct {
	MaxNewTokens *int     `json:"max_new_tokens,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty"`
	TopP         *float64 `json:"top_p,omitempty"`
}

// IsZero reports whether no parameter is set.
func (p *GenerationParams) IsZero() bool {
	return p == nil || (p.MaxNewTokens == nil && p.Temperature == nil && p.TopP == nil)
}

// GenerationRequest is built once per user turn and never mutated after sending.
type GenerationRequest struct {
	Model     string
	Prompt    string
	Params    *GenerationParams
	ImagePath string
}

// ModelDescriptor is the subset of hub metadata tinlera displays.
type ModelDescriptor struct {
	ID           string   `json:"id"`
	ModelID      string   `json:"modelId,omitempty"`
	Author       string   `json:"author,omitempty"`
	Downloads    int64    `json:"downloads"`
	Likes        int64    `json:"likes"`
	PipelineTag  string   `json:"pipeline_tag,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	LastModified string   `json:"lastModified,omitempty"`
	Private      bool     `json:"private"`
	Gated        any      `json:"gated,omitempty"`
}

// Name returns the canonical model identifier.
func (m ModelDescriptor) Name() string {
	if m.ID != "" {
		return m.ID
	}
	return m.ModelID
}

// IsMultimodal reports whether the model is known to accept images.
func IsMultimodal(model string) bool {
	for _, candidate := range MultimodalModels {
		if strings.EqualFold(candidate, model) {
			return true
		}
	}
	return false
}
