package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/chatdown"
)

// Interface compliance check.
var _ chatdown.Stream = (*stream)(nil)

// stream implements [chatdown.Stream] over an SSE response body.
type stream struct {
	body  io.ReadCloser
	sse   *sseReader
	ctx   context.Context
	state chatdown.StreamState
	msg   chatdown.AssistantMessage
	text  strings.Builder
	kinds map[int]string // content block type by index
	err   error          // terminal error, if any
}

func newStream(ctx context.Context, body io.ReadCloser) *stream {
	return &stream{
		body:  body,
		sse:   newSSEReader(body),
		ctx:   ctx,
		state: chatdown.StreamStateNew,
		kinds: make(map[int]string),
	}
}

// Next returns the next text delta. Returns io.EOF after message_stop.
func (s *stream) Next() (chatdown.Event, error) {
	switch s.state {
	case chatdown.StreamStateComplete:
		return nil, io.EOF
	case chatdown.StreamStateError:
		return nil, s.err
	case chatdown.StreamStateClosed:
		return nil, fmt.Errorf("anthropic: %w", chatdown.ErrStreamClosed)
	}

	for {
		evt, err := s.sse.next()
		if err != nil {
			s.terminate(err)
			return nil, s.err
		}
		s.state = chatdown.StreamStateStreaming

		delta, err := s.handle(evt)
		if err != nil {
			s.terminate(err)
			return nil, s.err
		}
		if s.state == chatdown.StreamStateComplete {
			return nil, io.EOF
		}
		if delta != "" {
			return chatdown.EventTextDelta{Delta: delta}, nil
		}
	}
}

// State returns the current stream state.
func (s *stream) State() chatdown.StreamState {
	return s.state
}

// Message returns the reply assembled so far.
func (s *stream) Message() (chatdown.AssistantMessage, error) {
	if s.state == chatdown.StreamStateNew {
		return chatdown.AssistantMessage{}, fmt.Errorf("anthropic: %w", chatdown.ErrStreamNotReady)
	}
	msg := s.msg
	msg.Text = s.text.String()
	return msg, nil
}

// Close closes the underlying HTTP response body.
func (s *stream) Close() error {
	if s.state != chatdown.StreamStateComplete && s.state != chatdown.StreamStateError {
		s.state = chatdown.StreamStateClosed
		s.msg.StopReason = chatdown.StopAborted
		s.msg.RawStopReason = "aborted"
	}
	return s.body.Close()
}

func (s *stream) terminate(err error) {
	s.state = chatdown.StreamStateError
	switch {
	case s.ctx.Err() != nil:
		s.err = fmt.Errorf("anthropic: %w", s.ctx.Err())
		s.msg.StopReason = chatdown.StopAborted
		s.msg.RawStopReason = "aborted"
		return
	case errors.Is(err, io.EOF):
		s.err = errors.New("anthropic: unexpected end of stream")
	default:
		s.err = err
	}
	s.msg.StopReason = chatdown.StopError
	s.msg.RawStopReason = "error"
}

// handle applies one SSE event and returns the text it adds, if any.
// Unknown event types are ignored.
func (s *stream) handle(evt sseEvent) (string, error) {
	switch evt.name {
	case "message_start":
		var v sseMessageStart
		if err := decode(evt, &v); err != nil {
			return "", err
		}
		s.msg.Usage.InputTokens = v.Message.Usage.InputTokens
	case "content_block_start":
		var v sseContentBlockStart
		if err := decode(evt, &v); err != nil {
			return "", err
		}
		s.kinds[v.Index] = v.ContentBlock.Type
		if v.ContentBlock.Type == "text" && v.ContentBlock.Text != "" {
			s.text.WriteString(v.ContentBlock.Text)
			return v.ContentBlock.Text, nil
		}
	case "content_block_delta":
		var v sseContentBlockDelta
		if err := decode(evt, &v); err != nil {
			return "", err
		}
		if _, ok := s.kinds[v.Index]; !ok {
			return "", fmt.Errorf("anthropic: delta for unknown block index %d", v.Index)
		}
		if v.Delta.Type == "text_delta" {
			s.text.WriteString(v.Delta.Text)
			return v.Delta.Text, nil
		}
	case "message_delta":
		var v sseMessageDelta
		if err := decode(evt, &v); err != nil {
			return "", err
		}
		s.msg.Usage.OutputTokens = v.Usage.OutputTokens
		if v.Usage.InputTokens != nil {
			s.msg.Usage.InputTokens = *v.Usage.InputTokens
		}
		if v.Delta.StopReason != nil {
			s.msg.RawStopReason = *v.Delta.StopReason
			s.msg.StopReason = mapStopReason(*v.Delta.StopReason)
		}
	case "message_stop":
		s.state = chatdown.StreamStateComplete
	case "error":
		var v apiError
		if err := decode(evt, &v); err != nil {
			return "", err
		}
		return "", fmt.Errorf("anthropic: %s: %s", v.Error.Type, v.Error.Message)
	}
	return "", nil
}

func decode(evt sseEvent, v any) error {
	if err := json.Unmarshal([]byte(evt.data), v); err != nil {
		return fmt.Errorf("anthropic: failed to parse %s: %w", evt.name, err)
	}
	return nil
}

func mapStopReason(raw string) chatdown.StopReason {
	switch raw {
	case "end_turn", "stop_sequence":
		return chatdown.StopEndTurn
	case "max_tokens":
		return chatdown.StopLength
	default:
		return chatdown.StopUnknown
	}
}
