// Package cli wires the cobra command tree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/tinlera/tinlera-go/internal/app"
	"github.com/tinlera/tinlera-go/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// skipContainer marks commands that run without loading config or settings.
const skipContainer = "tinlera/skip-container"

// NewRootCmd wires the cobra root command. The container is built once flags
// are parsed, so --config and --verbose apply to every subcommand.
func NewRootCmd(opts Options) *cobra.Command {
	container := &app.Container{}
	var configPath string

	askCmd := commands.NewAskCommand(container)

	root := &cobra.Command{
		Use:   "tinlera [prompt]",
		Short: "tinlera - research assistant on Hugging Face inference",
		Long: `tinlera answers research questions with hosted Hugging Face models.

Attach documents and images, fold in web search results, keep a searchable
history and export answers to text, Markdown or Word.`,
		Args: cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipContainer] != "" {
				return nil
			}
			built, err := app.BuildContainer(cmd.Context(), app.Options{
				Verbose:    opts.Verbose,
				ConfigPath: configPath,
			})
			if err != nil {
				return err
			}
			*container = *built
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return container.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			askCmd.SetContext(cmd.Context())
			return askCmd.RunE(askCmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", opts.Verbose, "Enable debug logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $TINLERA_CONFIG or ~/.tinlera/config.yaml)")

	versionCmd := commands.NewVersionCommand()
	versionCmd.Annotations = map[string]string{skipContainer: "true"}

	root.AddCommand(
		askCmd,
		commands.NewChatCommand(container),
		commands.NewHistoryCommand(container),
		commands.NewExportCommand(container),
		commands.NewModelsCommand(container),
		commands.NewSettingsCommand(container),
		commands.NewConfigCommand(container),
		commands.NewCacheCommand(container),
		commands.NewInitCommand(container),
		commands.NewDoctorCommand(container),
		versionCmd,
	)
	return root
}
