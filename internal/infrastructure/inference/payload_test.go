package inference

import (
	"errors"
	"net/http"
	"testing"

	"github.com/tinlera/tinlera-go/internal/domain"
)

func TestParseGeneratedText(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "array generated_text", body: `[{"generated_text":"a"}]`, want: "a"},
		{name: "object generated_text", body: `{"generated_text":"b"}`, want: "b"},
		{name: "object text", body: `{"text":"c"}`, want: "c"},
		{name: "array text", body: `[{"text":"d"}]`, want: "d"},
		{name: "generated_text preferred", body: `{"text":"x","generated_text":"y"}`, want: "y"},
		{name: "unknown shape returned raw", body: `{"label":"POSITIVE"}`, want: `{"label":"POSITIVE"}`},
		{name: "empty array returned raw", body: `[]`, want: `[]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseGeneratedText([]byte(tt.body))
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseGeneratedTextRejectsNonJSON(t *testing.T) {
	_, err := parseGeneratedText([]byte("<html>oops</html>"))
	var pe *domain.ProviderError
	if !errors.As(err, &pe) || pe.Code != http.StatusOK {
		t.Errorf("err = %v, want ProviderError{200}", err)
	}
}

func TestFlattenMessages(t *testing.T) {
	tests := []struct {
		name     string
		messages []domain.ChatMessage
		want     string
	}{
		{
			name:     "empty",
			messages: nil,
			want:     "Assistant:",
		},
		{
			name: "system then user",
			messages: []domain.ChatMessage{
				{Role: "system", Content: "S"},
				{Role: "user", Content: "U"},
			},
			want: "System: S\n\nUser: U\n\nAssistant:",
		},
		{
			name: "order preserved",
			messages: []domain.ChatMessage{
				{Role: "user", Content: "1"},
				{Role: "assistant", Content: "2"},
				{Role: "user", Content: "3"},
			},
			want: "User: 1\n\nAssistant: 2\n\nUser: 3\n\nAssistant:",
		},
		{
			name:     "unknown role as user",
			messages: []domain.ChatMessage{{Role: "tool", Content: "T"}},
			want:     "User: T\n\nAssistant:",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FlattenMessages(tt.messages); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
