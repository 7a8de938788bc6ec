package helpers

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/tinlera/tinlera-go/internal/domain"
)

const previewWidth = 60

// RenderResearch prints a research response followed by its sources.
func RenderResearch(out io.Writer, resp domain.ResearchResponse) {
	fmt.Fprintln(out, strings.TrimSpace(resp.Response))

	attached := 0
	for _, file := range resp.Files {
		if file.OK() {
			attached++
		}
	}
	if attached > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Files:")
		for _, file := range resp.Files {
			if !file.OK() {
				continue
			}
			fmt.Fprintf(out, "  - %s (%s, %s)\n", file.Name, file.Kind, humanize.IBytes(uint64(file.Size)))
		}
	}

	if sources := domain.SearchSources(resp.WebSearchResults); len(sources) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Sources:")
		printSources(out, sources)
	}

	if resp.HistoryID != "" {
		fmt.Fprintf(out, "\nSaved to history as %s\n", resp.HistoryID)
	}
}

// RenderEntryList prints one line per history entry.
func RenderEntryList(out io.Writer, entries []domain.HistoryEntry) {
	for _, entry := range entries {
		fmt.Fprintf(out, "%s | %s | %s | %s\n",
			entry.ID,
			relativeTime(entry.Timestamp),
			orUnknown(entry.Model),
			Truncate(entry.Prompt, previewWidth))
	}
}

// RenderEntry prints a full history entry.
func RenderEntry(out io.Writer, entry domain.HistoryEntry) {
	fmt.Fprintf(out, "ID: %s\n", entry.ID)
	fmt.Fprintf(out, "Timestamp: %s (%s)\n", entry.Timestamp, relativeTime(entry.Timestamp))
	fmt.Fprintf(out, "Model: %s\n", orUnknown(entry.Model))
	if len(entry.Files) > 0 {
		fmt.Fprintf(out, "Files: %s\n", strings.Join(entry.Files, ", "))
	}
	fmt.Fprintf(out, "\nPrompt:\n%s\n", entry.Prompt)
	fmt.Fprintf(out, "\nResponse:\n%s\n", entry.Response)
	if sources := domain.SearchSources(entry.WebSearchResults); len(sources) > 0 {
		fmt.Fprintln(out, "\nSources:")
		printSources(out, sources)
	}
}

// RenderModels prints hub search results.
func RenderModels(out io.Writer, models []domain.ModelDescriptor) {
	for _, model := range models {
		task := model.PipelineTag
		if task == "" {
			task = "-"
		}
		fmt.Fprintf(out, "%s | %s | %s downloads | %s likes\n",
			model.Name(),
			task,
			humanize.Comma(model.Downloads),
			humanize.Comma(model.Likes))
	}
}

// RenderModelInfo prints hub metadata for a single model.
func RenderModelInfo(out io.Writer, model domain.ModelDescriptor) {
	fmt.Fprintf(out, "Model: %s\n", model.Name())
	if model.Author != "" {
		fmt.Fprintf(out, "Author: %s\n", model.Author)
	}
	if model.PipelineTag != "" {
		fmt.Fprintf(out, "Task: %s\n", model.PipelineTag)
	}
	fmt.Fprintf(out, "Downloads: %s\nLikes: %s\n", humanize.Comma(model.Downloads), humanize.Comma(model.Likes))
	if model.LastModified != "" {
		fmt.Fprintf(out, "Last modified: %s\n", model.LastModified)
	}
	if len(model.Tags) > 0 {
		fmt.Fprintf(out, "Tags: %s\n", strings.Join(model.Tags, ", "))
	}
	fmt.Fprintf(out, "Multimodal: %t\n", domain.IsMultimodal(model.Name()))
}

// RenderDoctorReport displays the health check report.
func RenderDoctorReport(out io.Writer, report domain.HealthReport) {
	for _, check := range report.Checks {
		fmt.Fprintf(out, "[%s] %s - %s\n",
			strings.ToUpper(string(check.Status)),
			check.Name,
			check.Details)
	}
}

// Truncate shortens s to width runes on a single line.
func Truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

func printSources(out io.Writer, sources []string) {
	for i, url := range sources {
		fmt.Fprintf(out, "  [%d] %s\n", i+1, url)
	}
}

func relativeTime(timestamp string) string {
	t, err := domain.ParseHistoryTimestamp(timestamp)
	if err != nil {
		return timestamp
	}
	return humanize.Time(t)
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
