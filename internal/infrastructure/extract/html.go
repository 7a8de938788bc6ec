package extract

import (
	"bytes"
	"errors"
	"strings"

	readability "github.com/go-shiori/go-readability"
)

// htmlStrategy prefers the readable article text and falls back to the raw
// markup read as text.
func htmlStrategy() Strategy {
	return Chain(
		StrategyFunc{Label: "readability", Fn: extractArticle},
		StrategyFunc{Label: "raw", Fn: readText},
	)
}

func extractArticle(data []byte) (string, error) {
	article, err := readability.FromReader(bytes.NewReader(data), nil)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return "", errors.New("no readable content")
	}
	if title := strings.TrimSpace(article.Title); title != "" && !strings.HasPrefix(text, title) {
		text = title + "\n\n" + text
	}
	return text, nil
}

// readText decodes UTF-8, dropping invalid sequences.
func readText(data []byte) (string, error) {
	return strings.ToValidUTF8(string(data), ""), nil
}
