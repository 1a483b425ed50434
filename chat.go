package chatdown

import (
	"context"
	"io"
	"time"
)

// Chat runs conversation turns against a Provider.
type Chat struct {
	provider Provider
}

// NewChat creates a new Chat with the given provider.
func NewChat(provider Provider) *Chat {
	return &Chat{provider: provider}
}

// SendOption configures a single Send invocation.
type SendOption func(*sendConfig)

type sendConfig struct {
	onEvent     func(Event)
	model       string
	maxTokens   int
	temperature *float64
}

// WithEventHandler sets a callback that receives each streaming event during
// the turn. If nil or not set, events are silently discarded.
func WithEventHandler(h func(Event)) SendOption {
	return func(c *sendConfig) {
		c.onEvent = h
	}
}

// WithModel sets the model ID for the provider request.
// Empty string means the provider uses its default model.
func WithModel(model string) SendOption {
	return func(c *sendConfig) {
		c.model = model
	}
}

// WithMaxTokens caps the reply length. Zero means the provider default.
func WithMaxTokens(n int) SendOption {
	return func(c *sendConfig) {
		c.maxTokens = n
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) SendOption {
	return func(c *sendConfig) {
		c.temperature = &t
	}
}

// Send streams the assistant's reply to the session's messages and appends it
// to session.Messages. The last message in the session must be a
// UserMessage.
//
// When the stream fails midway, the partial reply is still appended before
// the stream error is returned, so the transcript shows what the user saw.
func (c *Chat) Send(ctx context.Context, session *Session, opts ...SendOption) error {
	var cfg sendConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	req := Request{
		Model:        cfg.model,
		SystemPrompt: session.SystemPrompt,
		Messages:     session.Messages,
		MaxTokens:    cfg.maxTokens,
		Temperature:  cfg.temperature,
	}
	if err := req.Validate(); err != nil {
		return err
	}

	stream, err := c.provider.Stream(ctx, req)
	if err != nil {
		return err
	}
	defer stream.Close()

	// Drain the stream, forwarding events to handler if set.
	var streamErr error
	for {
		evt, err := stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			streamErr = err
			break
		}
		if cfg.onEvent != nil {
			cfg.onEvent(evt)
		}
	}

	// Get the assembled message (partial or complete).
	msg, msgErr := stream.Message()
	if msgErr != nil {
		if streamErr != nil {
			return streamErr
		}
		return msgErr
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}

	session.Messages = append(session.Messages, msg)
	session.UpdatedAt = time.Now()

	return streamErr
}
