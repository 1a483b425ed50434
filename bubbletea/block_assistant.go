package bubbletea

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/chatdown"
	"github.com/fwojciec/chatdown/markdown"
)

var _ MessageBlock = (*AssistantTextBlock)(nil)

// AssistantTextBlock renders streamed reply text. Every View reparses the
// whole buffer, so a bold span or heading completed by a later delta restyles
// the text that came before it.
type AssistantTextBlock struct {
	content strings.Builder
	theme   chatdown.Theme
}

// NewAssistantTextBlock creates a new block for streaming assistant text.
func NewAssistantTextBlock(theme chatdown.Theme) *AssistantTextBlock {
	return &AssistantTextBlock{theme: theme}
}

// Append adds a text delta from the stream.
func (b *AssistantTextBlock) Append(text string) {
	b.content.WriteString(text)
}

// Text returns the raw text received so far.
func (b *AssistantTextBlock) Text() string {
	return b.content.String()
}

func (b *AssistantTextBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *AssistantTextBlock) View(width int) string {
	return markdown.Render(b.content.String(), width, b.theme)
}
