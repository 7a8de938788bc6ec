package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tinlera/tinlera-go/internal/app"
	"github.com/tinlera/tinlera-go/internal/domain"
	"github.com/tinlera/tinlera-go/internal/infrastructure/cli/helpers"
)

// NewChatCommand sends explicit role messages without files, search or history.
func NewChatCommand(container *app.Container) *cobra.Command {
	var (
		model     string
		system    string
		assistant []string
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Send a chat-style message with an optional system prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := readPrompt(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			messages := buildChatMessages(system, assistant, message)

			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			spinner := helpers.NewSpinner(cmd.ErrOrStderr(), "Thinking...")
			spinner.Start()
			reply, err := container.ResearchService.Chat(ctx, model, messages, nil)
			spinner.Stop()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(reply))
			return nil
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "", "Model id (default from settings)")
	cmd.Flags().StringVarP(&system, "system", "s", "", "System instruction")
	cmd.Flags().StringArrayVar(&assistant, "assistant", nil, "Prior assistant turn to include (repeatable)")
	cmd.Flags().DurationVar(&timeout, "timeout", DefaultRequestTimeout, "Overall deadline including retries")
	return cmd
}

func buildChatMessages(system string, assistant []string, user string) []domain.ChatMessage {
	var messages []domain.ChatMessage
	if strings.TrimSpace(system) != "" {
		messages = append(messages, domain.ChatMessage{Role: domain.RoleSystem, Content: system})
	}
	for _, turn := range assistant {
		messages = append(messages, domain.ChatMessage{Role: domain.RoleAssistant, Content: turn})
	}
	return append(messages, domain.ChatMessage{Role: domain.RoleUser, Content: user})
}
