package helpers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tinlera/tinlera-go/internal/domain"
)

func TestCalculateTopModels(t *testing.T) {
	entries := []domain.HistoryEntry{
		{Model: "b"}, {Model: "a"}, {Model: "b"}, {Model: ""},
	}
	got := CalculateTopModels(entries, 2)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Model != "b" || got[0].Count != 2 {
		t.Errorf("first = %+v, want b/2", got[0])
	}
	if got[1].Model != "Unknown" {
		t.Errorf("second = %+v, want Unknown before a", got[1])
	}
}

func TestParseToggle(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{"on", true, false},
		{"OFF", false, false},
		{"yes", true, false},
		{"maybe", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseToggle(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMaskToken(t *testing.T) {
	if got := MaskToken(""); got != "(not set)" {
		t.Errorf("empty = %q", got)
	}
	if got := MaskToken("hf_abcdef1234"); got != "********1234" {
		t.Errorf("masked = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short\nprompt", 20); got != "short prompt" {
		t.Errorf("got %q", got)
	}
	got := Truncate(strings.Repeat("x", 30), 10)
	if got != "xxxxxxx..." {
		t.Errorf("got %q", got)
	}
}

func TestRenderResearchListsSources(t *testing.T) {
	var buf bytes.Buffer
	RenderResearch(&buf, domain.ResearchResponse{
		Response:         "answer",
		WebSearchResults: []domain.SearchResult{{Title: "Go", URL: "https://go.dev"}},
		HistoryID:        "20240101000000_0",
	})
	out := buf.String()
	for _, want := range []string{"answer", "Sources:", "https://go.dev", "20240101000000_0"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrompterConfirm(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("yes\n"), &out)
	ok, err := p.Confirm("Delete?")
	if err != nil || !ok {
		t.Fatalf("Confirm = %v, %v", ok, err)
	}
	p = NewPrompter(strings.NewReader("\n"), &out)
	if ok, _ := p.Confirm("Delete?"); ok {
		t.Error("empty answer should decline")
	}
}
