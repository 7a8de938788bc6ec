package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tinlera/tinlera-go/internal/app"
	"github.com/tinlera/tinlera-go/internal/domain"
	"github.com/tinlera/tinlera-go/internal/infrastructure/cli/helpers"
	"github.com/tinlera/tinlera-go/internal/ports"
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Browse and manage past research exchanges",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistoryShowCommand(container),
		newHistorySearchCommand(container),
		newHistoryModelCommand(container),
		newHistoryRangeCommand(container),
		newHistoryDeleteCommand(container),
		newHistoryClearCommand(container),
		newHistoryStatsCommand(container),
	)

	return historyCmd
}

// newHistoryListCommand creates the 'history list' subcommand
func newHistoryListCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent history entries (newest last)",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := historyStore(container)
			if err != nil {
				return err
			}
			entries, err := store.All()
			if err != nil {
				return fmt.Errorf("failed to read history: %w", err)
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[len(entries)-limit:]
			}
			return printEntries(cmd.OutOrStdout(), entries, MsgNoHistoryRecorded)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", domain.DefaultHistoryLimit, "Max entries to show (0 for all)")
	return cmd
}

// newHistoryShowCommand creates the 'history show' subcommand
func newHistoryShowCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a full history entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := historyStore(container)
			if err != nil {
				return err
			}
			entry, ok, err := store.Get(args[0])
			if err != nil {
				return fmt.Errorf("failed to read history: %w", err)
			}
			if !ok {
				return fmt.Errorf("%w: %s", domain.ErrEntryNotFound, args[0])
			}
			helpers.RenderEntry(cmd.OutOrStdout(), entry)
			return nil
		},
	}
}

// newHistorySearchCommand creates the 'history search' subcommand
func newHistorySearchCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Case-insensitive search over prompts and responses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := historyStore(container)
			if err != nil {
				return err
			}
			entries, err := store.Search(args[0])
			if err != nil {
				return fmt.Errorf("failed to search history: %w", err)
			}
			return printEntries(cmd.OutOrStdout(), entries, MsgNoMatches)
		},
	}
}

// newHistoryModelCommand creates the 'history model' subcommand
func newHistoryModelCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "model <model-id>",
		Short: "List entries produced by a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := historyStore(container)
			if err != nil {
				return err
			}
			entries, err := store.FilterByModel(args[0])
			if err != nil {
				return fmt.Errorf("failed to filter history: %w", err)
			}
			return printEntries(cmd.OutOrStdout(), entries, MsgNoMatches)
		},
	}
}

// newHistoryRangeCommand creates the 'history range' subcommand
func newHistoryRangeCommand(container *app.Container) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "range",
		Short: "List entries between two ISO-8601 timestamps",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := historyStore(container)
			if err != nil {
				return err
			}
			entries, err := store.FilterByDate(start, end)
			if err != nil {
				return fmt.Errorf("failed to filter history: %w", err)
			}
			return printEntries(cmd.OutOrStdout(), entries, MsgNoMatches)
		},
	}

	cmd.Flags().StringVar(&start, "from", "", "Inclusive lower bound (e.g. 2024-01-01T00:00:00)")
	cmd.Flags().StringVar(&end, "to", "", "Inclusive upper bound")
	return cmd
}

// newHistoryDeleteCommand creates the 'history delete' subcommand
func newHistoryDeleteCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one history entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := historyStore(container)
			if err != nil {
				return err
			}
			removed, err := store.Delete(args[0])
			if err != nil {
				return fmt.Errorf("failed to delete history entry: %w", err)
			}
			if !removed {
				return fmt.Errorf("%w: %s", domain.ErrEntryNotFound, args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

// newHistoryClearCommand creates the 'history clear' subcommand
func newHistoryClearCommand(container *app.Container) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all history entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := historyStore(container)
			if err != nil {
				return err
			}
			if !yes {
				prompter := helpers.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
				ok, err := prompter.Confirm("Delete all history entries?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), MsgCancelled)
					return nil
				}
			}
			if err := store.Clear(); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// newHistoryStatsCommand creates the 'history stats' subcommand
func newHistoryStatsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show entry counts and model usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := historyStore(container)
			if err != nil {
				return err
			}
			stats, err := store.Stats()
			if err != nil {
				return fmt.Errorf("failed to compute history stats: %w", err)
			}
			entries, err := store.All()
			if err != nil {
				return fmt.Errorf("failed to read history: %w", err)
			}
			displayHistoryStatistics(cmd.OutOrStdout(), stats, entries)
			return nil
		},
	}
}

// displayHistoryStatistics displays formatted history statistics
func displayHistoryStatistics(out io.Writer, stats domain.HistoryStats, entries []domain.HistoryEntry) {
	if stats.TotalEntries == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return
	}

	fmt.Fprintf(out, "Total entries: %d\nFiles attached: %d\nWith web research: %d\n",
		stats.TotalEntries,
		stats.TotalFiles,
		helpers.CountWebResearch(entries))

	fmt.Fprintln(out, "Models used:")
	for _, stat := range helpers.CalculateTopModels(entries, 0) {
		fmt.Fprintf(out, "  %s (%d)\n", stat.Model, stat.Count)
	}
}

func printEntries(out io.Writer, entries []domain.HistoryEntry, empty string) error {
	if len(entries) == 0 {
		fmt.Fprintln(out, empty)
		return nil
	}
	helpers.RenderEntryList(out, entries)
	return nil
}

func historyStore(container *app.Container) (ports.HistoryRepository, error) {
	if container.HistoryStore == nil {
		return nil, fmt.Errorf(ErrHistoryStoreUnavailable)
	}
	return container.HistoryStore, nil
}
