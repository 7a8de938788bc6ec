// Package export writes history entries to txt, markdown and docx files.
package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/tinlera/tinlera-go/internal/domain"
	"github.com/tinlera/tinlera-go/internal/pkg/filesystem"
	"github.com/tinlera/tinlera-go/internal/ports"
)

// Exporter implements ports.Exporter under a single export directory.
type Exporter struct {
	dir    string
	now    func() time.Time
	logger ports.Logger
}

// NewExporter creates an exporter; dir is created on first write.
func NewExporter(dir string, logger ports.Logger) *Exporter {
	return &Exporter{dir: dir, now: time.Now, logger: logger}
}

// Dir returns the export directory.
func (e *Exporter) Dir() string {
	return e.dir
}

// ExportEntry writes one entry and returns the written path. The pdf format
// writes Markdown to a .md file; there is no PDF rendering.
func (e *Exporter) ExportEntry(entry domain.HistoryEntry, format domain.ExportFormat, filename string) (string, error) {
	if format == domain.ExportPDF {
		if filename != "" {
			filename = strings.Replace(filename, ".pdf", ".md", 1)
		}
		format = domain.ExportMarkdown
	}
	path := e.target(filename, "research", format)

	var data []byte
	switch format {
	case domain.ExportDocx:
		doc := newDocxBuilder()
		doc.entry(entry)
		raw, err := doc.bytes()
		if err != nil {
			return "", err
		}
		data = raw
	case domain.ExportMarkdown:
		data = []byte(formatMarkdown(entry))
	case domain.ExportText:
		data = []byte(formatText(entry))
	default:
		return "", fmt.Errorf("unsupported export format %q", format)
	}
	return e.write(path, data, 1)
}

// ExportBatch writes several entries to one file.
func (e *Exporter) ExportBatch(entries []domain.HistoryEntry, format domain.ExportFormat, filename string) (string, error) {
	if len(entries) == 0 {
		return "", fmt.Errorf("no entries to export")
	}
	if format == domain.ExportPDF {
		if filename != "" {
			filename = strings.Replace(filename, ".pdf", ".md", 1)
		}
		format = domain.ExportMarkdown
	}
	path := e.target(filename, "research_batch", format)

	var data []byte
	switch format {
	case domain.ExportDocx:
		doc := newDocxBuilder()
		doc.batch(entries)
		raw, err := doc.bytes()
		if err != nil {
			return "", err
		}
		data = raw
	case domain.ExportMarkdown, domain.ExportText:
		render := formatText
		if format == domain.ExportMarkdown {
			render = formatMarkdown
		}
		parts := make([]string, 0, len(entries)*2)
		for _, entry := range entries {
			parts = append(parts, render(entry), batchSeparator)
		}
		data = []byte(strings.Join(parts, "\n"))
	default:
		return "", fmt.Errorf("unsupported export format %q", format)
	}
	return e.write(path, data, len(entries))
}

// target resolves filename against the export dir, generating a
// timestamped name when empty.
func (e *Exporter) target(filename, prefix string, format domain.ExportFormat) string {
	if filename == "" {
		filename = fmt.Sprintf("%s_%s.%s", prefix, e.now().Format(domain.ExportFileTimeFormat), format.Extension())
	}
	filename = filesystem.ExpandPath(filename)
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(e.dir, filename)
}

func (e *Exporter) write(path string, data []byte, count int) (string, error) {
	if err := filesystem.AtomicWrite(path, data, domain.PublicFilePermissions); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	if e.logger != nil {
		e.logger.Info("export written", map[string]interface{}{"path": path, "entries": count, "bytes": len(data)})
	}
	return path, nil
}

var _ ports.Exporter = (*Exporter)(nil)
