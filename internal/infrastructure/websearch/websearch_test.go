package websearch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tinlera/tinlera-go/internal/domain"
	"github.com/tinlera/tinlera-go/internal/pkg/logger"
)

const resultsPage = `<!DOCTYPE html>
<html><body><div id="links">
  <div class="result results_links result--ad">
    <a class="result__a" href="https://ads.example/">Sponsored</a>
    <a class="result__snippet">Buy now</a>
  </div>
  <div class="result results_links">
    <h2 class="result__title"><a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fgo.dev%2Fdoc%2F&amp;rut=abc">The <b>Go</b> Programming Language</a></h2>
    <a class="result__snippet" href="#">Documentation   for the
      Go language.</a>
  </div>
  <div class="result results_links">
    <h2 class="result__title"><a class="result__a" href="https://pkg.go.dev/">Go Packages</a></h2>
    <a class="result__snippet">Discover packages.</a>
  </div>
  <div class="result results_links">
    <h2 class="result__title"><a class="result__a" href="https://example.com/3">Third</a></h2>
  </div>
</div></body></html>`

func TestDuckDuckGoSearch(t *testing.T) {
	var gotQuery, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(resultsPage))
	}))
	defer srv.Close()

	searcher := NewDuckDuckGo(srv.URL+"/html/", "tinlera-test", srv.Client())
	got, err := searcher.Search(context.Background(), "golang docs", 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	want := []domain.SearchResult{
		{Title: "The Go Programming Language", URL: "https://go.dev/doc/", Snippet: "Documentation for the Go language."},
		{Title: "Go Packages", URL: "https://pkg.go.dev/", Snippet: "Discover packages."},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
	if gotQuery != "golang docs" {
		t.Errorf("q = %q", gotQuery)
	}
	if gotAgent != "tinlera-test" {
		t.Errorf("user agent = %q", gotAgent)
	}
}

func TestDuckDuckGoHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewDuckDuckGo(srv.URL, "", srv.Client()).Search(context.Background(), "q", 5)
	if err == nil {
		t.Fatal("expected error for 403")
	}
}

type failingSearcher struct{}

func (failingSearcher) Search(context.Context, string, int) ([]domain.SearchResult, error) {
	return nil, errors.New("rate limited")
}

func TestSilentSwallowsErrors(t *testing.T) {
	got, err := NewSilent(failingSearcher{}, logger.NewNop()).Search(context.Background(), "q", 5)
	if err != nil {
		t.Fatalf("Silent returned error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("got %v, want empty slice", got)
	}
}

func TestResolveLink(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{"", ""},
		{"https://example.com/a", "https://example.com/a"},
		{"//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.org%2F", "https://example.org/"},
		{"/l/?uddg=https%3A%2F%2Fexample.net", "https://example.net"},
	}
	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			if got := resolveLink(tt.href); got != tt.want {
				t.Errorf("resolveLink(%q) = %q, want %q", tt.href, got, tt.want)
			}
		})
	}
}
