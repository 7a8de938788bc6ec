package inference

import (
	"strings"

	"github.com/tinlera/tinlera-go/internal/domain"
)

// FlattenMessages renders chat messages as a single prompt in input order,
// ending with an "Assistant:" cue. Unknown roles are rendered as user turns.
func FlattenMessages(messages []domain.ChatMessage) string {
	var b strings.Builder
	for _, msg := range messages {
		switch strings.ToLower(msg.Role) {
		case domain.RoleSystem:
			b.WriteString("System: ")
		case domain.RoleAssistant:
			b.WriteString("Assistant: ")
		default:
			b.WriteString("User: ")
		}
		b.WriteString(msg.Content)
		b.WriteString("\n\n")
	}
	b.WriteString("Assistant:")
	return b.String()
}
