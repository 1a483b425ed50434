package bubbletea

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MessageBlock is a renderable element in the conversation.
// Unlike tea.Model, View takes a width parameter so the root model
// controls layout and blocks are testable in isolation.
type MessageBlock interface {
	Update(tea.Msg) (MessageBlock, tea.Cmd)
	View(width int) string
}

// blockSeparator returns the gap between two consecutive blocks. An error
// sticks to the reply it interrupted; everything else gets a blank line.
func blockSeparator(prev, curr MessageBlock) string {
	if _, ok := curr.(*ErrorBlock); ok {
		if _, ok := prev.(*AssistantTextBlock); ok {
			return "\n"
		}
	}
	return "\n\n"
}

// hanging renders prefix followed by body wrapped to the remaining width.
// Continuation lines are indented to line up with the body, and every line is
// padded to width.
func hanging(prefix, body string, style lipgloss.Style, width int) string {
	indent := lipgloss.Width(prefix)
	lines := strings.Split(style.Width(max(width-indent, 1)).Render(body), "\n")
	pad := strings.Repeat(" ", indent)
	for i := range lines {
		if i == 0 {
			lines[i] = prefix + lines[i]
		} else {
			lines[i] = pad + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
