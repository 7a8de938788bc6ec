package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tinlera/tinlera-go/internal/app"
	"github.com/tinlera/tinlera-go/internal/domain"
	"github.com/tinlera/tinlera-go/internal/infrastructure/cli/helpers"
)

// NewSettingsCommand manages the encrypted user settings.
func NewSettingsCommand(container *app.Container) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change user settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showSettings(cmd.OutOrStdout(), container)
		},
	}

	settingsCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show current settings (token masked)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return showSettings(cmd.OutOrStdout(), container)
			},
		},
		newSettingsTokenCommand(container),
		newSettingsFeatureCommand(container),
		newSettingsTimeoutCommand(container),
		newSettingsRetriesCommand(container),
	)

	return settingsCmd
}

// newSettingsTokenCommand creates the 'settings token' subcommand
func newSettingsTokenCommand(container *app.Container) *cobra.Command {
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the Hugging Face API token",
	}

	setCmd := &cobra.Command{
		Use:   "set [token]",
		Short: "Store a token (encrypted); reads stdin when omitted",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := readPrompt(cmd.InOrStdin(), args)
			if err != nil {
				return fmt.Errorf("a token is required")
			}
			if err := container.SettingsStore.SetToken(token); err != nil {
				return fmt.Errorf("failed to store token: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Token saved (%s).\n", helpers.MaskToken(token))
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.SettingsStore.SetToken(""); err != nil {
				return fmt.Errorf("failed to clear token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Token cleared.")
			return nil
		},
	}

	tokenCmd.AddCommand(setCmd, clearCmd)
	return tokenCmd
}

// newSettingsFeatureCommand creates the 'settings feature' subcommand
func newSettingsFeatureCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:       "feature <name> <on|off>",
		Short:     "Toggle a feature (" + strings.Join(domain.FeatureNames(), ", ") + ")",
		Args:      cobra.ExactArgs(2),
		ValidArgs: domain.FeatureNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			enabled, err := helpers.ParseToggle(args[1])
			if err != nil {
				return err
			}
			if err := container.SettingsStore.SetFeature(args[0], enabled); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", args[0], formatEnabledStatus(enabled))
			return nil
		},
	}
}

// newSettingsTimeoutCommand creates the 'settings timeout' subcommand
func newSettingsTimeoutCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "timeout <seconds>",
		Short: "Set the per-request HTTP timeout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := parsePositive(args[0])
			if err != nil {
				return err
			}
			if err := container.SettingsStore.SetAPITimeout(seconds); err != nil {
				return fmt.Errorf("failed to set timeout: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "API timeout set to %ds\n", seconds)
			return nil
		},
	}
}

// newSettingsRetriesCommand creates the 'settings retries' subcommand
func newSettingsRetriesCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "retries <count>",
		Short: "Set the inference attempt budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			retries, err := parsePositive(args[0])
			if err != nil {
				return err
			}
			if err := container.SettingsStore.SetMaxRetries(retries); err != nil {
				return fmt.Errorf("failed to set retries: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Max retries set to %d\n", retries)
			return nil
		},
	}
}

func showSettings(out io.Writer, container *app.Container) error {
	settings, err := container.SettingsStore.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	fmt.Fprintf(out, "Settings file: %s\n", container.SettingsStore.Path())
	fmt.Fprintf(out, "Token: %s\n", helpers.MaskToken(settings.Token))
	if container.TokenOverride != "" {
		fmt.Fprintf(out, "Token override: %s from %s\n", helpers.MaskToken(container.TokenOverride), app.TokenEnv)
	}
	fmt.Fprintf(out, "Default model: %s\n", settings.ResolveModel(""))
	fmt.Fprintf(out, "API timeout: %s\n", settings.Timeout())
	fmt.Fprintf(out, "Max retries: %d\n", settings.Retries())
	fmt.Fprintln(out, "Features:")
	for _, name := range domain.FeatureNames() {
		fmt.Fprintf(out, "  %s: %s\n", name, formatEnabledStatus(settings.FeatureEnabled(name)))
	}
	return nil
}

func parsePositive(value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("expected a positive integer, got %q", value)
	}
	return n, nil
}

func formatEnabledStatus(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
