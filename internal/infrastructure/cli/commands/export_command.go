package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tinlera/tinlera-go/internal/app"
	"github.com/tinlera/tinlera-go/internal/domain"
)

// NewExportCommand writes history entries to txt, markdown or docx files.
func NewExportCommand(container *app.Container) *cobra.Command {
	var (
		format string
		out    string
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "export [id...]",
		Short: "Export history entries to a file",
		Long: `Export one or more history entries.

A single id writes one document; several ids (or --all) write a batch file
with the entries separated by a rule. The pdf format writes Markdown.
Relative --out names are placed in the export directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Exporter == nil {
				return fmt.Errorf(ErrExporterUnavailable)
			}
			store, err := historyStore(container)
			if err != nil {
				return err
			}
			settings, err := container.LoadSettings()
			if err != nil {
				return fmt.Errorf("failed to load settings: %w", err)
			}
			if !settings.FeatureEnabled(domain.FeatureExport) {
				return fmt.Errorf(ErrFeatureDisabled, domain.FeatureExport, domain.FeatureExport)
			}
			exportFormat, err := domain.ParseExportFormat(format)
			if err != nil {
				return err
			}

			entries, err := selectEntries(store.All, store.Get, args, all)
			if err != nil {
				return err
			}

			var path string
			if len(entries) == 1 && !all {
				path, err = container.Exporter.ExportEntry(entries[0], exportFormat, out)
			} else {
				path, err = container.Exporter.ExportBatch(entries, exportFormat, out)
			}
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", len(entries), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "F", string(domain.ExportMarkdown), "Output format (txt|markdown|docx|pdf)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file name (default: timestamped name in the export directory)")
	cmd.Flags().BoolVar(&all, "all", false, "Export every history entry")
	return cmd
}

// selectEntries resolves ids in the order given, or every entry with all.
func selectEntries(
	listAll func() ([]domain.HistoryEntry, error),
	get func(string) (domain.HistoryEntry, bool, error),
	ids []string,
	all bool,
) ([]domain.HistoryEntry, error) {
	if all {
		entries, err := listAll()
		if err != nil {
			return nil, fmt.Errorf("failed to read history: %w", err)
		}
		if len(entries) == 0 {
			return nil, fmt.Errorf(MsgNoHistoryRecorded)
		}
		return entries, nil
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("pass at least one entry id or --all")
	}
	entries := make([]domain.HistoryEntry, 0, len(ids))
	for _, id := range ids {
		entry, ok, err := get(id)
		if err != nil {
			return nil, fmt.Errorf("failed to read history: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrEntryNotFound, id)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
