package chatdown

import (
	"fmt"
	"strings"
)

// ValidateMessage checks that a message carries text appropriate for its role.
// Assistant messages may be empty: a stream aborted before the first delta
// still produces one.
func ValidateMessage(msg Message) error {
	switch m := msg.(type) {
	case UserMessage:
		if strings.TrimSpace(m.Text) == "" {
			return fmt.Errorf("%s message: %w", m.Role(), ErrEmptyMessage)
		}
		return nil
	case AssistantMessage:
		return nil
	default:
		return fmt.Errorf("unknown message type %T: %w", msg, ErrValidation)
	}
}
