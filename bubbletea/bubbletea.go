// Package bubbletea provides a Bubble Tea TUI for chatting with a provider
// and watching its reply render as it streams in.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/chatdown"
)

// AgentFunc runs one conversation turn. The onEvent callback is called for
// each streaming event. The function blocks until the turn completes or the
// context is cancelled.
type AgentFunc func(ctx context.Context, session *chatdown.Session, onEvent func(chatdown.Event)) error

// Config holds display settings that are not colors.
type Config struct {
	// Model is shown in the status line when set.
	Model string
	// Placeholder overrides the input placeholder.
	Placeholder string
	// Copy writes text to the system clipboard. Ctrl+Y copies the last reply
	// through it; nil disables the key.
	Copy func(text string) error
}

// Run creates and runs the Bubble Tea TUI program. It blocks until the program
// exits. When ctx is cancelled the program quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// StreamEventMsg wraps a streaming event for delivery to the Bubble Tea model.
type StreamEventMsg struct {
	Event chatdown.Event
}

// AgentDoneMsg signals that the turn has completed.
type AgentDoneMsg struct {
	Err error
}
