package domain

import (
	"fmt"
	"strings"
)

// ResearchRequest captures one user turn originating from the CLI.
type ResearchRequest struct {
	Model         string
	Prompt        string
	Files         []string
	WebSearch     bool
	RecordHistory bool
	Params        *GenerationParams
}

// ResearchResponse is the canonical response propagated back to the CLI.
type ResearchResponse struct {
	RunID            string
	Model            string
	Prompt           string
	FinalPrompt      string
	Response         string
	Files            []ProcessedFile
	ImagePath        string
	WebSearchResults []SearchResult
	HistoryID        string
	Warnings         []string
}

// ResearchOutcome is delivered once on the worker's completion channel.
type ResearchOutcome struct {
	Response ResearchResponse
	Err      error
}

// ExportFormat names an export artifact type.
type ExportFormat string

const (
	ExportText     ExportFormat = "txt"
	ExportMarkdown ExportFormat = "markdown"
	ExportDocx     ExportFormat = "docx"
	ExportPDF      ExportFormat = "pdf"
)

// Extension returns the file extension written for the format.
func (f ExportFormat) Extension() string {
	switch f {
	case ExportMarkdown:
		return "md"
	case ExportDocx:
		return "docx"
	case ExportPDF:
		return "pdf"
	default:
		return "txt"
	}
}

// ParseExportFormat accepts the format names and common aliases.
func ParseExportFormat(value string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "txt", "text":
		return ExportText, nil
	case "md", "markdown":
		return ExportMarkdown, nil
	case "docx", "word":
		return ExportDocx, nil
	case "pdf":
		return ExportPDF, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (want txt|markdown|docx|pdf)", value)
	}
}
