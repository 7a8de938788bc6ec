package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tinlera/tinlera-go/internal/app"
	"github.com/tinlera/tinlera-go/internal/ports"
)

// NewCacheCommand creates the cache command with all subcommands
func NewCacheCommand(container *app.Container) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the model search cache",
	}

	cacheCmd.AddCommand(
		newCacheListCommand(container),
		newCacheClearCommand(container),
		newCacheSizeCommand(container),
	)

	return cacheCmd
}

// newCacheListCommand creates the 'cache list' subcommand
func newCacheListCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached model searches",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := cacheStore(container)
			if err != nil {
				return err
			}
			return listCacheEntries(cmd.OutOrStdout(), store)
		},
	}
}

// newCacheClearCommand creates the 'cache clear' subcommand
func newCacheClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := cacheStore(container)
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared.")
			return nil
		},
	}
}

// newCacheSizeCommand creates the 'cache size' subcommand
func newCacheSizeCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "size",
		Short: "Show cache size",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := cacheStore(container)
			if err != nil {
				return err
			}
			dir := store.Dir()
			totalSize, err := calculateDirectorySize(dir)
			if err != nil {
				return fmt.Errorf("failed to calculate cache size: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cache directory: %s\nSize: %s\n", dir, humanize.IBytes(uint64(totalSize)))
			return nil
		},
	}
}

// listCacheEntries lists all cache entries
func listCacheEntries(out io.Writer, store ports.CacheRepository) error {
	entries, err := store.Entries()
	if err != nil {
		return fmt.Errorf("failed to retrieve cache entries: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, MsgNoCachedSearches)
		return nil
	}

	for _, entry := range entries {
		task := entry.Task
		if task == "" {
			task = "-"
		}
		fmt.Fprintf(out, "%s | %s | %d models | %s\n",
			entry.Query,
			task,
			len(entry.Models),
			entry.CreatedAt.Format(TimestampFormat))
	}

	return nil
}

// calculateDirectorySize calculates the total size of a directory
func calculateDirectorySize(dirPath string) (int64, error) {
	var totalSize int64

	err := filepath.WalkDir(dirPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // Skip files that can't be accessed
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		totalSize += info.Size()
		return nil
	})

	if err != nil {
		return 0, err
	}

	return totalSize, nil
}

func cacheStore(container *app.Container) (ports.CacheRepository, error) {
	if container.CacheStore == nil {
		return nil, fmt.Errorf(ErrCacheStoreUnavailable)
	}
	return container.CacheStore, nil
}
