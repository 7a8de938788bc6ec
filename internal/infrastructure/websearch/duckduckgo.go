// Package websearch scrapes DuckDuckGo's HTML results page.
package websearch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/tinlera/tinlera-go/internal/domain"
	"github.com/tinlera/tinlera-go/internal/ports"
)

var (
	resultSelector  = cascadia.MustCompile(".result")
	adSelector      = cascadia.MustCompile(".result--ad")
	titleSelector   = cascadia.MustCompile(".result__a")
	snippetSelector = cascadia.MustCompile(".result__snippet")
)

// DuckDuckGo implements ports.WebSearcher. Errors are returned to the caller;
// wrap with Silent to swallow them.
type DuckDuckGo struct {
	endpoint   string
	userAgent  string
	httpClient *http.Client
}

// NewDuckDuckGo builds a searcher against endpoint.
func NewDuckDuckGo(endpoint, userAgent string, httpClient *http.Client) *DuckDuckGo {
	if endpoint == "" {
		endpoint = domain.DefaultSearchEndpoint
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: domain.DefaultSearchTimeout}
	}
	return &DuckDuckGo{endpoint: endpoint, userAgent: userAgent, httpClient: httpClient}
}

// Search returns at most limit results in page order.
func (d *DuckDuckGo) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return []domain.SearchResult{}, nil
	}
	if limit <= 0 {
		limit = domain.DefaultSearchResults
	}

	endpoint, err := url.Parse(d.endpoint)
	if err != nil {
		return nil, fmt.Errorf("search endpoint: %w", err)
	}
	params := endpoint.Query()
	params.Set("q", query)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	if d.userAgent != "" {
		req.Header.Set("user-agent", d.userAgent)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo: %s", resp.Status)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo: parse results: %w", err)
	}
	return parseResults(doc, limit), nil
}

func parseResults(doc *html.Node, limit int) []domain.SearchResult {
	results := make([]domain.SearchResult, 0, limit)
	for _, node := range resultSelector.MatchAll(doc) {
		if len(results) >= limit {
			break
		}
		if adSelector.Match(node) {
			continue
		}
		anchor := titleSelector.MatchFirst(node)
		if anchor == nil {
			continue
		}
		result := domain.SearchResult{
			Title: collapseSpace(nodeText(anchor)),
			URL:   resolveLink(attr(anchor, "href")),
		}
		if snippet := snippetSelector.MatchFirst(node); snippet != nil {
			result.Snippet = collapseSpace(nodeText(snippet))
		}
		if result.Title == "" && result.URL == "" {
			continue
		}
		results = append(results, result)
	}
	return results
}

// resolveLink unwraps DuckDuckGo's /l/?uddg= redirect links.
func resolveLink(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return href
	}
	if strings.HasPrefix(parsed.Path, "/l/") {
		if target := parsed.Query().Get("uddg"); target != "" {
			return target
		}
	}
	return href
}

func attr(node *html.Node, key string) string {
	for _, a := range node.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func nodeText(node *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)
	return b.String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var _ ports.WebSearcher = (*DuckDuckGo)(nil)
