package bubbletea_test

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/chatdown"
	bt "github.com/fwojciec/chatdown/bubbletea"
	"github.com/stretchr/testify/require"
)

// initModel creates a model and sends a WindowSizeMsg to initialize the viewport.
func initModel(t *testing.T, run bt.AgentFunc) bt.Model {
	t.Helper()
	return initModelWithSize(t, run, 80, 24)
}

// initModelWithSize creates a model with a custom terminal size.
func initModelWithSize(t *testing.T, run bt.AgentFunc, width, height int) bt.Model {
	t.Helper()
	m := bt.New(run, &chatdown.Session{}, chatdown.DefaultTheme(), bt.Config{})
	return updateModel(t, m, tea.WindowSizeMsg{Width: width, Height: height})
}

// updateModel sends a message and returns the updated Model.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// nopAgent is a mock agent that does nothing.
func nopAgent(_ context.Context, _ *chatdown.Session, _ func(chatdown.Event)) error {
	return nil
}

// delta wraps a text delta in a StreamEventMsg.
func delta(s string) bt.StreamEventMsg {
	return bt.StreamEventMsg{Event: chatdown.EventTextDelta{Delta: s}}
}
