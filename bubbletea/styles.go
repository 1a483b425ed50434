package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/chatdown"
)

// Styles maps a Theme to lipgloss styles for TUI chrome. Reply text is
// styled by the markdown package.
type Styles struct {
	UserMsg lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Accent  lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t chatdown.Theme) Styles {
	return Styles{
		UserMsg: lipgloss.NewStyle().Foreground(ansiColor(t.UserMsg)).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(ansiColor(t.Error)),
		Muted:   lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Accent:  lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
