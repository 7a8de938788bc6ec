package inference

import (
	"encoding/json"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/tinlera/tinlera-go/internal/domain"
)

type textPayload struct {
	Inputs     string                   `json:"inputs"`
	Parameters *domain.GenerationParams `json:"parameters,omitempty"`
}

type imageInputs struct {
	Image string `json:"image"`
	Text  string `json:"text"`
}

type imagePayload struct {
	Inputs     imageInputs              `json:"inputs"`
	Parameters *domain.GenerationParams `json:"parameters,omitempty"`
}

func buildTextPayload(req domain.GenerationRequest) ([]byte, error) {
	return json.Marshal(textPayload{
		Inputs:     req.Prompt,
		Parameters: paramsOrNil(req.Params),
	})
}

func buildImagePayload(req domain.GenerationRequest, encodedImage string) ([]byte, error) {
	return json.Marshal(imagePayload{
		Inputs:     imageInputs{Image: encodedImage, Text: req.Prompt},
		Parameters: paramsOrNil(req.Params),
	})
}

func paramsOrNil(params *domain.GenerationParams) *domain.GenerationParams {
	if params.IsZero() {
		return nil
	}
	return params
}

// parseGeneratedText extracts generated_text (or text) from an object or
// from the first element of an array. Well-formed JSON without either field
// is returned verbatim.
func parseGeneratedText(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", &domain.ProviderError{Code: http.StatusOK, Body: string(body)}
	}
	root := gjson.ParseBytes(body)
	if root.IsArray() {
		first := root.Get("0")
		if first.IsObject() {
			root = first
		}
	}
	if root.IsObject() {
		for _, field := range []string{"generated_text", "text"} {
			if value := root.Get(field); value.Exists() {
				return value.String(), nil
			}
		}
	}
	return string(body), nil
}
