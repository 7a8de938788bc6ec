package export

import (
	"bytes"
	"fmt"

	"github.com/fumiama/go-docx"

	"github.com/tinlera/tinlera-go/internal/domain"
)

// Half-point font sizes for the title and heading levels 1-3.
var headingSizes = []string{"48", "32", "28", "24"}

// docxBuilder lays out history entries on a go-docx document.
type docxBuilder struct {
	doc *docx.Docx
}

func newDocxBuilder() *docxBuilder {
	return &docxBuilder{doc: docx.New().WithDefaultTheme()}
}

func (d *docxBuilder) heading(text string, level int) {
	if level >= len(headingSizes) {
		level = len(headingSizes) - 1
	}
	para := d.doc.AddParagraph()
	if level == 0 {
		para.Justification("center")
	}
	para.AddText(text).Bold().Size(headingSizes[level])
}

func (d *docxBuilder) paragraph(text string) {
	para := d.doc.AddParagraph()
	if text != "" {
		para.AddText(text)
	}
}

func (d *docxBuilder) bullet(text string) {
	d.doc.AddParagraph().AddText("• " + text)
}

func (d *docxBuilder) pageBreak() {
	d.doc.AddParagraph().AddPageBreaks()
}

func (d *docxBuilder) entry(entry domain.HistoryEntry) {
	d.heading("Research Report", 0)
	d.paragraph("Date: " + orUnknown(entry.Timestamp))
	d.heading("Model", 1)
	d.paragraph("Model: " + orUnknown(entry.Model))
	d.heading("Prompt", 1)
	d.paragraph(entry.Prompt)

	if len(entry.Files) > 0 {
		d.heading("Attached Files", 1)
		for _, path := range entry.Files {
			d.bullet(path)
		}
	}
	if len(entry.WebSearchResults) > 0 {
		d.heading("Web Search Results", 1)
		for i, result := range entry.WebSearchResults {
			d.heading(fmt.Sprintf("%d. %s", i+1, result.Title), 3)
			d.paragraph("URL: " + result.URL)
			d.paragraph(result.Snippet)
			d.paragraph("")
		}
	}

	d.heading("Response", 1)
	d.paragraph(entry.Response)

	if len(entry.WebSearchResults) > 0 {
		d.heading("Sources", 1)
		for _, result := range entry.WebSearchResults {
			d.bullet(result.URL)
		}
	}
}

func (d *docxBuilder) batch(entries []domain.HistoryEntry) {
	d.heading("Batch Research Report", 0)
	for i, entry := range entries {
		if i > 0 {
			d.pageBreak()
		}
		d.heading(fmt.Sprintf("Research %d", i+1), 1)
		d.paragraph("Date: " + orUnknown(entry.Timestamp))
		d.paragraph("Model: " + orUnknown(entry.Model))
		d.heading("Prompt", 2)
		d.paragraph(entry.Prompt)
		d.heading("Response", 2)
		d.paragraph(entry.Response)
	}
}

// bytes packages the document with an A4 section.
func (d *docxBuilder) bytes() ([]byte, error) {
	d.doc.WithA4Page()
	var out bytes.Buffer
	if _, err := d.doc.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("write docx: %w", err)
	}
	return out.Bytes(), nil
}
