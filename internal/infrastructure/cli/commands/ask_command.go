package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tinlera/tinlera-go/internal/app"
	"github.com/tinlera/tinlera-go/internal/domain"
	"github.com/tinlera/tinlera-go/internal/infrastructure/cli/helpers"
)

type askOptions struct {
	model        string
	files        []string
	web          bool
	noWeb        bool
	noHistory    bool
	exportFormat string
	copy         bool
	timeout      time.Duration
	maxNewTokens int
	temperature  float64
	topP         float64
}

// NewAskCommand creates the ask command, the main research entry point.
func NewAskCommand(container *app.Container) *cobra.Command {
	var opts askOptions

	cmd := &cobra.Command{
		Use:   "ask [prompt]",
		Short: "Ask a research question, optionally with files and web search",
		Example: `  tinlera ask "summarize the attached paper" --file paper.pdf
  tinlera ask "what changed in Go 1.23?" --web
  cat notes.md | tinlera ask --export markdown`,
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, err := readPrompt(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			params := generationParams(cmd, opts)
			return runAsk(cmd, container, opts, prompt, params)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.model, "model", "m", "", "Model id (default from settings)")
	flags.StringArrayVarP(&opts.files, "file", "f", nil, "Attach a file (repeatable): txt, md, pdf, html, png, jpg, gif, bmp, webp")
	flags.BoolVarP(&opts.web, "web", "w", false, "Force web search for this question")
	flags.BoolVar(&opts.noWeb, "no-web", false, "Skip web search for this question")
	flags.BoolVar(&opts.noHistory, "no-history", false, "Do not record this exchange")
	flags.StringVarP(&opts.exportFormat, "export", "e", "", "Export the answer (txt|markdown|docx|pdf)")
	flags.BoolVarP(&opts.copy, "copy", "c", false, "Copy the answer to the clipboard")
	flags.DurationVar(&opts.timeout, "timeout", DefaultRequestTimeout, "Overall deadline including retries")
	flags.IntVar(&opts.maxNewTokens, "max-new-tokens", domain.DefaultMaxNewTokens, "Maximum tokens to generate")
	flags.Float64Var(&opts.temperature, "temperature", domain.DefaultTemperature, "Sampling temperature")
	flags.Float64Var(&opts.topP, "top-p", domain.DefaultTopP, "Nucleus sampling probability")
	cmd.MarkFlagsMutuallyExclusive("web", "no-web")

	return cmd
}

func runAsk(cmd *cobra.Command, container *app.Container, opts askOptions, prompt string, params *domain.GenerationParams) error {
	settings, err := container.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	var exportFormat domain.ExportFormat
	if opts.exportFormat != "" {
		if !settings.FeatureEnabled(domain.FeatureExport) {
			return fmt.Errorf(ErrFeatureDisabled, domain.FeatureExport, domain.FeatureExport)
		}
		if exportFormat, err = domain.ParseExportFormat(opts.exportFormat); err != nil {
			return err
		}
	}

	web := settings.FeatureEnabled(domain.FeatureWebSearch)
	if opts.web {
		web = true
	}
	if opts.noWeb {
		web = false
	}

	req := domain.ResearchRequest{
		Model:         opts.model,
		Prompt:        prompt,
		Files:         opts.files,
		WebSearch:     web,
		RecordHistory: !opts.noHistory,
		Params:        params,
	}

	ctx := cmd.Context()
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	spinner := helpers.NewSpinner(cmd.ErrOrStderr(), "Researching...")
	spinner.Start()
	outcome := <-container.ResearchService.Dispatch(ctx, req)
	spinner.Stop()

	helpers.PrintWarnings(cmd.ErrOrStderr(), outcome.Response.Warnings)
	if outcome.Err != nil {
		return outcome.Err
	}
	resp := outcome.Response
	out := cmd.OutOrStdout()
	helpers.RenderResearch(out, resp)

	if opts.copy {
		if err := helpers.NewClipboard().Copy(resp.Response); err != nil {
			helpers.PrintWarnings(cmd.ErrOrStderr(), []string{"copy to clipboard failed: " + err.Error()})
		} else {
			fmt.Fprintln(out, "Copied to clipboard.")
		}
	}

	if exportFormat != "" {
		path, err := container.Exporter.ExportEntry(entryForExport(container, resp), exportFormat, "")
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		fmt.Fprintf(out, "Exported to %s\n", path)
	}
	return nil
}

// entryForExport prefers the stored history entry so exported IDs match.
func entryForExport(container *app.Container, resp domain.ResearchResponse) domain.HistoryEntry {
	if resp.HistoryID != "" && container.HistoryStore != nil {
		if entry, ok, err := container.HistoryStore.Get(resp.HistoryID); err == nil && ok {
			return entry
		}
	}
	files := make([]string, 0, len(resp.Files))
	for _, file := range resp.Files {
		files = append(files, file.Path)
	}
	return domain.NewHistoryEntry{
		Model:            resp.Model,
		Prompt:           resp.Prompt,
		Response:         resp.Response,
		Files:            files,
		WebSearchResults: resp.WebSearchResults,
	}.Materialize(time.Now(), 0)
}

// readPrompt joins args, or reads stdin when no args are given and stdin is piped.
func readPrompt(in io.Reader, args []string) (string, error) {
	prompt := strings.TrimSpace(strings.Join(args, " "))
	if prompt != "" {
		return prompt, nil
	}
	if f, ok := in.(*os.File); ok && helpers.IsTerminal(f) {
		return "", fmt.Errorf(ErrPromptRequired)
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	prompt = strings.TrimSpace(string(data))
	if prompt == "" {
		return "", fmt.Errorf(ErrPromptRequired)
	}
	return prompt, nil
}

// generationParams includes only the sampling flags the user set.
func generationParams(cmd *cobra.Command, opts askOptions) *domain.GenerationParams {
	params := &domain.GenerationParams{}
	flags := cmd.Flags()
	if flags.Changed("max-new-tokens") {
		params.MaxNewTokens = &opts.maxNewTokens
	}
	if flags.Changed("temperature") {
		params.Temperature = &opts.temperature
	}
	if flags.Changed("top-p") {
		params.TopP = &opts.topP
	}
	if params.IsZero() {
		return nil
	}
	return params
}
