package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tinlera/tinlera-go/internal/app"
	"github.com/tinlera/tinlera-go/internal/domain"
	"github.com/tinlera/tinlera-go/internal/infrastructure/cli/helpers"
)

// NewModelsCommand creates the models command with all subcommands
func NewModelsCommand(container *app.Container) *cobra.Command {
	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "Discover and select Hugging Face models",
	}

	modelsCmd.AddCommand(
		newModelsPopularCommand(),
		newModelsSearchCommand(container),
		newModelsInfoCommand(container),
		newModelsUseCommand(container),
	)

	return modelsCmd
}

// newModelsPopularCommand creates the 'models popular' subcommand
func newModelsPopularCommand() *cobra.Command {
	var multimodal bool

	cmd := &cobra.Command{
		Use:   "popular",
		Short: "List suggested models",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if multimodal {
				printModelNames(out, "Multimodal models:", domain.MultimodalModels)
				printModelNames(out, "Vision models:", domain.VisionModels)
				return nil
			}
			printModelNames(out, "Text generation models:", domain.PopularModels)
			return nil
		},
	}

	cmd.Flags().BoolVar(&multimodal, "multimodal", false, "List image-capable models instead")
	return cmd
}

// newModelsSearchCommand creates the 'models search' subcommand
func newModelsSearchCommand(container *app.Container) *cobra.Command {
	var task string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the model hub (requires a token)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := container.LoadSettings()
			if err != nil {
				return fmt.Errorf("failed to load settings: %w", err)
			}
			if !settings.HasToken() {
				return domain.ErrMissingCredential
			}
			models, err := container.ModelHub(settings).SearchModels(cmd.Context(), args[0], task)
			if err != nil {
				return fmt.Errorf("model search failed: %w", err)
			}
			if len(models) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), MsgNoModelsFound)
				return nil
			}
			helpers.RenderModels(cmd.OutOrStdout(), models)
			return nil
		},
	}

	cmd.Flags().StringVar(&task, "task", "", "Pipeline tag filter (e.g. text-generation, image-to-text)")
	return cmd
}

// newModelsInfoCommand creates the 'models info' subcommand
func newModelsInfoCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "info <model-id>",
		Short: "Show hub metadata for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := container.LoadSettings()
			if err != nil {
				return fmt.Errorf("failed to load settings: %w", err)
			}
			info, err := container.ModelHub(settings).GetModelInfo(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("model lookup failed: %w", err)
			}
			if info == nil {
				return fmt.Errorf("no metadata available for %s (check the id and your token)", args[0])
			}
			helpers.RenderModelInfo(cmd.OutOrStdout(), *info)
			return nil
		},
	}
}

// newModelsUseCommand creates the 'models use' subcommand
func newModelsUseCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "use <model-id>",
		Short: "Set the default model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.SettingsStore.SetDefaultModel(args[0]); err != nil {
				return fmt.Errorf("failed to set default model: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Default model set to %s\n", args[0])
			return nil
		},
	}
}

func printModelNames(out io.Writer, title string, names []string) {
	fmt.Fprintln(out, title)
	for _, name := range names {
		fmt.Fprintf(out, "  %s\n", name)
	}
}
