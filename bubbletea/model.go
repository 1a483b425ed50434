package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/chatdown"
	"github.com/mattn/go-runewidth"
)

var _ tea.Model = Model{}

// Model is the Bubble Tea model for the chatdown TUI.
type Model struct {
	// Input is the text input component. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable output area. Exported for test access.
	Viewport viewport.Model

	run     AgentFunc
	session *chatdown.Session
	theme   chatdown.Theme
	styles  Styles
	cfg     Config

	blocks []MessageBlock
	// active receives the deltas of the running turn. It is created on the
	// first delta so a turn that fails before any text leaves no empty block.
	active *AssistantTextBlock

	running bool
	cancel  context.CancelFunc
	eventCh chan chatdown.Event
	doneCh  chan error
	err     error
	notice  string // one-off status message, cleared on submit
	ready   bool
}

// New creates a new TUI Model with the given agent function, session, theme
// and display settings.
func New(run AgentFunc, session *chatdown.Session, theme chatdown.Theme, cfg Config) Model {
	ti := textinput.New()
	ti.Placeholder = "Type a message..."
	if cfg.Placeholder != "" {
		ti.Placeholder = cfg.Placeholder
	}
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = 0

	return Model{
		Input:   ti,
		run:     run,
		session: session,
		theme:   theme,
		styles:  NewStyles(theme),
		cfg:     cfg,
	}
}

// Running returns whether a turn is currently running.
func (m Model) Running() bool { return m.running }

// Err returns the error of the last turn, if any.
func (m Model) Err() error { return m.err }

// SetRunning is a test helper that puts the model in a running state.
func SetRunning(m Model) (Model, tea.Cmd) {
	m.running = true
	return m, nil
}

// SetRunningWithCancel is a test helper that puts the model in a running state
// with a cancel function.
func SetRunningWithCancel(m Model, cancel func()) (Model, tea.Cmd) {
	m.running = true
	m.cancel = cancel
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.handleWindowSize(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case StreamEventMsg:
		m = m.processEvent(msg.Event)
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
		if m.eventCh != nil {
			return m, listenForEvent(m.eventCh, m.doneCh)
		}
		return m, nil

	case AgentDoneMsg:
		m.running = false
		m.cancel = nil
		m.eventCh = nil
		m.doneCh = nil
		m.active = nil
		if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
			m.err = msg.Err
			m.blocks = append(m.blocks, NewErrorBlock(msg.Err, m.styles))
			m.Viewport.SetContent(m.renderContent())
			m.Viewport.GotoBottom()
		}
		cmd := m.Input.Focus()
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	// Viewport always receives remaining messages for scrolling.
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)

	if !m.running {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder

	b.WriteString(m.Viewport.View())
	b.WriteString("\n")

	b.WriteString(m.statusLine())
	b.WriteString("\n")

	b.WriteString(m.Input.View())

	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	inputH := 1
	statusHeight := 1
	borderHeight := 2 // newlines between sections
	vpHeight := max(msg.Height-inputH-statusHeight-borderHeight, 1)

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m = m.renderSession()
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}
	// Reply text wraps to the viewport width, so a resize re-renders it.
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()

	m.Input.Width = msg.Width
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.running {
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}
		return m, tea.Quit

	case tea.KeyEnter:
		if m.running {
			return m, nil
		}
		text := strings.TrimSpace(m.Input.Value())
		if text == "" {
			return m, nil
		}
		return m.submitInput(text)

	case tea.KeyCtrlY:
		if !m.running {
			m.notice = m.copyLastReply()
		}
		return m, nil
	}

	// When idle, pass keys to both the input (for typing) and the viewport
	// (for scrolling). Only non-character keys reach the viewport so 'j' and
	// 'k' type text instead of scrolling.
	if !m.running {
		var cmd tea.Cmd
		var cmds []tea.Cmd

		if msg.Type != tea.KeyRunes {
			m.Viewport, cmd = m.Viewport.Update(msg)
			cmds = append(cmds, cmd)
		}

		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)

		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m Model) submitInput(text string) (tea.Model, tea.Cmd) {
	m.Input.SetValue("")
	m.err = nil
	m.notice = ""

	m.session.Messages = append(m.session.Messages, chatdown.UserMessage{
		Text:      text,
		Timestamp: time.Now(),
	})

	m.blocks = append(m.blocks, NewUserMessageBlock(text, m.styles))
	m.active = nil
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.eventCh = make(chan chatdown.Event, 256)
	m.doneCh = make(chan error, 1)
	m.running = true

	m.Input.Blur()

	return m, tea.Batch(
		startAgent(m.run, ctx, m.session, m.eventCh, m.doneCh),
		listenForEvent(m.eventCh, m.doneCh),
	)
}

// renderSession creates blocks from existing session messages.
func (m Model) renderSession() Model {
	for _, msg := range m.session.Messages {
		switch msg := msg.(type) {
		case chatdown.UserMessage:
			m.blocks = append(m.blocks, NewUserMessageBlock(msg.Text, m.styles))
		case chatdown.AssistantMessage:
			if msg.Text == "" {
				continue
			}
			block := NewAssistantTextBlock(m.theme)
			block.Append(msg.Text)
			m.blocks = append(m.blocks, block)
		}
	}
	return m
}

func (m Model) renderContent() string {
	if len(m.blocks) == 0 {
		return ""
	}
	var b strings.Builder
	for i, block := range m.blocks {
		if i > 0 {
			b.WriteString(blockSeparator(m.blocks[i-1], block))
		}
		b.WriteString(block.View(m.Viewport.Width))
	}
	return b.String()
}

// processEvent routes a streaming event to the reply block of the running turn.
func (m Model) processEvent(evt chatdown.Event) Model {
	switch e := evt.(type) {
	case chatdown.EventTextDelta:
		if m.active == nil {
			m.active = NewAssistantTextBlock(m.theme)
			m.blocks = append(m.blocks, m.active)
		}
		m.active.Append(e.Delta)
	}
	return m
}

func (m Model) statusLine() string {
	var status string
	switch {
	case m.notice != "":
		status = m.notice
	case m.err != nil:
		status = fmt.Sprintf("Error: %v", m.err)
	case m.running:
		status = "Generating..."
	default:
		parts := []string{"Enter to send, Ctrl+C to quit"}
		if m.cfg.Model != "" {
			parts = append(parts, m.cfg.Model)
		}
		if u := m.session.Usage(); u.InputTokens+u.OutputTokens > 0 {
			parts = append(parts, fmt.Sprintf("%d in / %d out", u.InputTokens, u.OutputTokens))
		}
		status = strings.Join(parts, " · ")
	}
	// Error text can span lines; the status line is exactly one row.
	status = strings.ReplaceAll(status, "\n", " ")
	if w := m.Viewport.Width; w > 0 {
		status = runewidth.Truncate(status, w, "…")
	}
	if m.err != nil && m.notice == "" {
		return m.styles.Error.Render(status)
	}
	return m.styles.Muted.Render(status)
}

// copyLastReply copies the raw text of the newest assistant message and
// returns the notice to show.
func (m Model) copyLastReply() string {
	if m.cfg.Copy == nil {
		return "Clipboard not available"
	}
	for i := len(m.session.Messages) - 1; i >= 0; i-- {
		reply, ok := m.session.Messages[i].(chatdown.AssistantMessage)
		if !ok || reply.Text == "" {
			continue
		}
		if err := m.cfg.Copy(reply.Text); err != nil {
			return fmt.Sprintf("Copy failed: %v", err)
		}
		return fmt.Sprintf("Copied reply to clipboard (%d bytes)", len(reply.Text))
	}
	return "Nothing to copy"
}

// startAgent runs the turn in a goroutine and signals completion.
func startAgent(run AgentFunc, ctx context.Context, session *chatdown.Session, eventCh chan<- chatdown.Event, doneCh chan<- error) tea.Cmd {
	return func() tea.Msg {
		err := run(ctx, session, func(e chatdown.Event) {
			select {
			case eventCh <- e:
			case <-ctx.Done():
			}
		})
		close(eventCh)
		doneCh <- err
		return nil
	}
}

// listenForEvent waits for the next event from the channel.
// When the channel closes, it reads the error from doneCh and returns AgentDoneMsg.
func listenForEvent(ch <-chan chatdown.Event, doneCh <-chan error) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			err := <-doneCh
			return AgentDoneMsg{Err: err}
		}
		return StreamEventMsg{Event: evt}
	}
}
