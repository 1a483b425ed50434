package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var _ MessageBlock = (*UserMessageBlock)(nil)

const userPrompt = "> "

// UserMessageBlock shows a submitted prompt. Wrapped lines hang under the
// text, not under the "> " marker.
type UserMessageBlock struct {
	text   string
	marker string
}

// NewUserMessageBlock creates a UserMessageBlock.
func NewUserMessageBlock(text string, styles Styles) *UserMessageBlock {
	return &UserMessageBlock{text: text, marker: styles.UserMsg.Render(userPrompt)}
}

func (b *UserMessageBlock) Update(tea.Msg) (MessageBlock, tea.Cmd) { return b, nil }

func (b *UserMessageBlock) View(width int) string {
	return hanging(b.marker, b.text, lipgloss.NewStyle(), width)
}
