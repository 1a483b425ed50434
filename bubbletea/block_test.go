package bubbletea_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/fwojciec/chatdown"
	bt "github.com/fwojciec/chatdown/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserMessageBlock_View(t *testing.T) {
	t.Parallel()

	t.Run("renders prompt prefix and text", func(t *testing.T) {
		t.Parallel()
		styles := bt.NewStyles(chatdown.DefaultTheme())
		block := bt.NewUserMessageBlock("hello world", styles)
		view := ansi.Strip(block.View(80))
		assert.True(t, strings.HasPrefix(view, "> hello world"))
	})

	t.Run("pads each line to full width", func(t *testing.T) {
		t.Parallel()
		styles := bt.NewStyles(chatdown.DefaultTheme())
		block := bt.NewUserMessageBlock("test", styles)
		for _, line := range strings.Split(block.View(40), "\n") {
			assert.Equal(t, 40, lipgloss.Width(line))
		}
	})

	t.Run("wraps long text to width", func(t *testing.T) {
		t.Parallel()
		styles := bt.NewStyles(chatdown.DefaultTheme())
		longText := "short words that keep going and going beyond the viewport width easily"
		block := bt.NewUserMessageBlock(longText, styles)
		view := block.View(30)
		assert.Contains(t, view, "easily")
		lines := strings.Split(ansi.Strip(view), "\n")
		require.Greater(t, len(lines), 1)
		for _, line := range lines[1:] {
			assert.True(t, strings.HasPrefix(line, "  "), "continuation %q hangs under the text", line)
		}
	})
}

func TestAssistantTextBlock(t *testing.T) {
	t.Parallel()

	t.Run("accumulates deltas", func(t *testing.T) {
		t.Parallel()
		block := bt.NewAssistantTextBlock(chatdown.DefaultTheme())
		block.Append("Hel")
		block.Append("lo")
		assert.Equal(t, "Hello", block.Text())
		assert.Equal(t, "Hello", ansi.Strip(block.View(80)))
	})

	t.Run("bold closed by a later delta loses its markers", func(t *testing.T) {
		t.Parallel()
		block := bt.NewAssistantTextBlock(chatdown.DefaultTheme())
		block.Append("a **bo")
		assert.Equal(t, "a **bo", ansi.Strip(block.View(80)))
		block.Append("ld** word")
		assert.Equal(t, "a bold word", ansi.Strip(block.View(80)))
	})

	t.Run("heading completed across deltas with a break marker", func(t *testing.T) {
		t.Parallel()
		block := bt.NewAssistantTextBlock(chatdown.DefaultTheme())
		block.Append("**Sum")
		block.Append("mary:**")
		block.Append("\u2028- one")
		assert.Equal(t, "Summary\n• one", ansi.Strip(block.View(80)))
	})

	t.Run("re-renders at the requested width", func(t *testing.T) {
		t.Parallel()
		block := bt.NewAssistantTextBlock(chatdown.DefaultTheme())
		block.Append("short words that keep going and going beyond the width")
		narrow := block.View(20)
		wide := block.View(80)
		assert.Greater(t, strings.Count(narrow, "\n"), strings.Count(wide, "\n"))
		assert.Contains(t, ansi.Strip(narrow), "width")
	})

	t.Run("empty block renders nothing", func(t *testing.T) {
		t.Parallel()
		block := bt.NewAssistantTextBlock(chatdown.DefaultTheme())
		assert.Empty(t, block.View(80))
	})
}

func TestErrorBlock_View(t *testing.T) {
	t.Parallel()

	styles := bt.NewStyles(chatdown.DefaultTheme())
	block := bt.NewErrorBlock(errors.New("something broke"), styles)
	view := block.View(80)
	assert.Contains(t, view, "Error")
	assert.Contains(t, view, "something broke")

	t.Run("deadline is reported as a timeout", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("anthropic: %w", context.DeadlineExceeded)
		view := ansi.Strip(bt.NewErrorBlock(err, styles).View(80))
		assert.True(t, strings.HasPrefix(view, "Error: request timed out"))
	})

	t.Run("long errors hang under the label", func(t *testing.T) {
		t.Parallel()
		err := errors.New("upstream returned status 529 overloaded, retry the request later")
		lines := strings.Split(ansi.Strip(bt.NewErrorBlock(err, styles).View(30)), "\n")
		require.Greater(t, len(lines), 1)
		for _, line := range lines[1:] {
			assert.True(t, strings.HasPrefix(line, strings.Repeat(" ", len("Error: "))))
			assert.Equal(t, 30, lipgloss.Width(line))
		}
	})
}

func TestBlockSeparator(t *testing.T) {
	t.Parallel()

	styles := bt.NewStyles(chatdown.DefaultTheme())
	user := bt.NewUserMessageBlock("hi", styles)
	text := bt.NewAssistantTextBlock(chatdown.DefaultTheme())
	errBlock := bt.NewErrorBlock(assert.AnError, styles)

	tests := []struct {
		name       string
		prev, curr bt.MessageBlock
		want       string
	}{
		{"user then reply", user, text, "\n\n"},
		{"reply then user", text, user, "\n\n"},
		{"reply then error", text, errBlock, "\n"},
		{"user then error", user, errBlock, "\n\n"},
		{"error then user", errBlock, user, "\n\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, bt.BlockSeparator(tt.prev, tt.curr))
		})
	}
}

func TestNewStyles(t *testing.T) {
	t.Parallel()

	styles := bt.NewStyles(chatdown.DefaultTheme())

	assert.Equal(t, lipgloss.Color("4"), styles.UserMsg.GetForeground())
	assert.True(t, styles.UserMsg.GetBold())
	assert.Equal(t, lipgloss.Color("1"), styles.Error.GetForeground())
	assert.Equal(t, lipgloss.Color("8"), styles.Muted.GetForeground())
	assert.True(t, styles.Muted.GetFaint())
	assert.Equal(t, lipgloss.Color("5"), styles.Accent.GetForeground())
	assert.True(t, styles.Accent.GetBold())
}

func TestNewStylesNegativeIndexYieldsNoColor(t *testing.T) {
	t.Parallel()

	styles := bt.NewStyles(chatdown.Theme{UserMsg: -1})

	assert.Equal(t, lipgloss.NoColor{}, styles.UserMsg.GetForeground())
}
