package bubbletea

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var _ MessageBlock = (*ErrorBlock)(nil)

// ErrorBlock reports the failure that ended a turn, directly under whatever
// part of the reply had streamed in.
type ErrorBlock struct {
	reason string
	style  lipgloss.Style
}

// NewErrorBlock creates an ErrorBlock.
func NewErrorBlock(err error, styles Styles) *ErrorBlock {
	reason := err.Error()
	if errors.Is(err, context.DeadlineExceeded) {
		reason = "request timed out"
	}
	return &ErrorBlock{reason: reason, style: styles.Error}
}

func (b *ErrorBlock) Update(tea.Msg) (MessageBlock, tea.Cmd) { return b, nil }

func (b *ErrorBlock) View(width int) string {
	return hanging(b.style.Render("Error: "), b.reason, b.style, width)
}
