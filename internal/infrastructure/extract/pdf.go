package extract

import (
	"bytes"
	"errors"
	"math"
	"strings"

	lpdf "github.com/ledongthuc/pdf"
	rpdf "rsc.io/pdf"
)

// pdfStrategy tries ledongthuc/pdf first and falls back to rsc.io/pdf.
func pdfStrategy() Strategy {
	return Chain(
		StrategyFunc{Label: "ledongthuc/pdf", Fn: extractPDFPlainText},
		StrategyFunc{Label: "rsc.io/pdf", Fn: extractPDFContentStream},
	)
}

func extractPDFPlainText(data []byte) (string, error) {
	reader, err := lpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	n := reader.NumPage()
	parts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		if s := strings.TrimSpace(text); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n"), nil
}

func extractPDFContentStream(data []byte) (string, error) {
	reader, err := rpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	n := reader.NumPage()
	if n == 0 {
		return "", errors.New("document has no pages")
	}

	parts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		if s := strings.TrimSpace(pageText(page.Content().Text)); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n"), nil
}

// pageText joins glyph runs, starting a new line when the baseline moves.
func pageText(runs []rpdf.Text) string {
	var b strings.Builder
	lastY := math.NaN()
	for _, run := range runs {
		if !math.IsNaN(lastY) && math.Abs(run.Y-lastY) > run.FontSize/2 {
			b.WriteByte('\n')
		}
		b.WriteString(run.S)
		lastY = run.Y
	}
	return b.String()
}
