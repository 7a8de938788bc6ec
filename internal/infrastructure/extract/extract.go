// Package extract turns attached files into prompt material.
package extract

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/tinlera/tinlera-go/internal/domain"
	"github.com/tinlera/tinlera-go/internal/ports"
)

var textExtensions = []string{
	".txt", ".md", ".py", ".js", ".java", ".cpp", ".c", ".h", ".hpp", ".cs",
	".go", ".rs", ".rb", ".php", ".css", ".json", ".xml", ".yaml", ".yml",
}

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp"}

// Processor classifies files by extension and runs the matching strategy.
type Processor struct {
	maxBytes   int64
	strategies map[string]Strategy
	logger     ports.Logger
}

// NewProcessor builds a processor; maxBytes <= 0 uses the default limit.
func NewProcessor(maxBytes int64, logger ports.Logger) *Processor {
	if maxBytes <= 0 {
		maxBytes = domain.DefaultMaxFileBytes
	}
	text := StrategyFunc{Label: "text", Fn: readText}
	strategies := map[string]Strategy{
		".pdf":  pdfStrategy(),
		".html": htmlStrategy(),
		".htm":  htmlStrategy(),
	}
	for _, ext := range textExtensions {
		strategies[ext] = text
	}
	return &Processor{maxBytes: maxBytes, strategies: strategies, logger: logger}
}

// SupportedExtensions lists every extension the processor accepts.
func SupportedExtensions() []string {
	out := append([]string{}, textExtensions...)
	out = append(out, ".html", ".htm", ".pdf")
	return append(out, imageExtensions...)
}

// Process extracts one file. Failures are reported in ProcessedFile.Err.
func (p *Processor) Process(path string) domain.ProcessedFile {
	ext := strings.ToLower(filepath.Ext(path))
	result := domain.ProcessedFile{
		Path: path,
		Name: filepath.Base(path),
		Kind: kindFor(ext),
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = errors.New("file not found")
		}
		result.Err = &domain.FileReadError{Path: path, Err: err}
		return p.done(result)
	}
	if info.IsDir() {
		result.Err = &domain.FileReadError{Path: path, Err: errors.New("is a directory")}
		return p.done(result)
	}
	result.Size = info.Size()

	strategy, isText := p.strategies[ext]
	if !isText && result.Kind != domain.FileKindImage {
		result.Err = &domain.UnsupportedFileFormatError{Ext: ext}
		return p.done(result)
	}
	if info.Size() > p.maxBytes {
		result.Err = &domain.FileReadError{
			Path: path,
			Err:  fmt.Errorf("file is %s, limit is %s", humanize.IBytes(uint64(info.Size())), humanize.IBytes(uint64(p.maxBytes))),
		}
		return p.done(result)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Err = &domain.FileReadError{Path: path, Err: err}
		return p.done(result)
	}

	if result.Kind == domain.FileKindImage {
		if _, err := verifyImage(data); err != nil {
			result.Err = &domain.FileReadError{Path: path, Err: err}
			return p.done(result)
		}
		result.Content = path
		return p.done(result)
	}

	text, err := strategy.Extract(data)
	if err != nil {
		result.Err = &domain.FileReadError{Path: path, Err: err}
		return p.done(result)
	}
	result.Content = text
	return p.done(result)
}

// ProcessAll extracts files in order.
func (p *Processor) ProcessAll(paths []string) []domain.ProcessedFile {
	results := make([]domain.ProcessedFile, 0, len(paths))
	for _, path := range paths {
		results = append(results, p.Process(path))
	}
	return results
}

func (p *Processor) done(result domain.ProcessedFile) domain.ProcessedFile {
	if p.logger == nil {
		return result
	}
	fields := map[string]interface{}{"file": result.Name, "kind": string(result.Kind), "size": result.Size}
	if result.Err != nil {
		fields["error"] = result.Err.Error()
		p.logger.Warn("file extraction failed", fields)
	} else {
		p.logger.Debug("file extracted", fields)
	}
	return result
}

func kindFor(ext string) domain.FileKind {
	for _, candidate := range imageExtensions {
		if ext == candidate {
			return domain.FileKindImage
		}
	}
	return domain.FileKindText
}

var _ ports.FileExtractor = (*Processor)(nil)
