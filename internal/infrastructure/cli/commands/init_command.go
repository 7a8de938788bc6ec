package commands

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tinlera/tinlera-go/internal/app"
	"github.com/tinlera/tinlera-go/internal/domain"
	"github.com/tinlera/tinlera-go/internal/infrastructure/cli/helpers"
)

// NewInitCommand creates the init command. The config file is written on
// first load; init walks through the per-user settings.
func NewInitCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Set up the API token, default model and features",
		Long: `Interactive first-run setup.

The token is stored encrypted next to the settings file; the encryption key
lives in a .key file readable only by you. HF_TOKEN, when set, takes
precedence over the stored token without being saved.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInitWizard(cmd, container)
		},
	}

	return cmd
}

// runInitWizard runs the settings initialization wizard
func runInitWizard(cmd *cobra.Command, container *app.Container) error {
	out := cmd.OutOrStdout()
	reader := bufio.NewReader(cmd.InOrStdin())

	settings, err := container.SettingsStore.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	fmt.Fprintf(out, "Config file: %s\n", container.ConfigLoader.Path())
	fmt.Fprintf(out, "Settings file: %s\n\n", container.SettingsStore.Path())

	tokenPrompt := "Hugging Face API token"
	if settings.HasToken() {
		tokenPrompt += " (leave empty to keep " + helpers.MaskToken(settings.Token) + ")"
	}
	if token := helpers.PromptForString(out, reader, tokenPrompt, ""); token != "" {
		settings.Token = token
	}

	model := helpers.PromptForString(out, reader, "Default model", settings.ResolveModel(""))
	if err := settings.SetDefaultModel(model); err != nil {
		return err
	}

	for _, name := range domain.FeatureNames() {
		enabled := helpers.PromptForYesNo(out, reader, "Enable "+name+"?", settings.FeatureEnabled(name))
		if err := settings.SetFeature(name, enabled); err != nil {
			return err
		}
	}

	if err := container.SettingsStore.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	displayCompletionInstructions(out, settings)
	return nil
}

// displayCompletionInstructions displays instructions after successful initialization
func displayCompletionInstructions(out io.Writer, settings domain.Settings) {
	fmt.Fprintln(out, "\nSettings saved.")
	if !settings.HasToken() {
		fmt.Fprintln(out, "No token configured yet. Create one at https://huggingface.co/settings/tokens and run:")
		fmt.Fprintln(out, "  tinlera settings token set <token>")
	}
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "  tinlera doctor")
	fmt.Fprintln(out, "  tinlera ask \"what is retrieval augmented generation?\" --web")
}
