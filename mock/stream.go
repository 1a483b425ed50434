package mock

import (
	"errors"
	"io"
	"strings"

	"github.com/fwojciec/chatdown"
)

// Interface compliance check.
var _ chatdown.Stream = (*Stream)(nil)

// Stream is a test double for chatdown.Stream.
// Set the function fields for the methods you need. NextFn and MessageFn
// panic when nil to catch missing setup. CloseFn and StateFn are nil-safe
// (no-op and zero value) because callers commonly defer stream.Close().
type Stream struct {
	NextFn    func() (chatdown.Event, error)
	StateFn   func() chatdown.StreamState
	MessageFn func() (chatdown.AssistantMessage, error)
	CloseFn   func() error
}

// Next delegates to NextFn.
func (s *Stream) Next() (chatdown.Event, error) {
	return s.NextFn()
}

// State delegates to StateFn. Returns StreamStateNew when StateFn is nil.
func (s *Stream) State() chatdown.StreamState {
	if s.StateFn == nil {
		return chatdown.StreamStateNew
	}
	return s.StateFn()
}

// Message delegates to MessageFn.
func (s *Stream) Message() (chatdown.AssistantMessage, error) {
	return s.MessageFn()
}

// Close delegates to CloseFn. Returns nil when CloseFn is not set.
func (s *Stream) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}

// TextStream returns a Stream that emits one EventTextDelta per delta and
// then io.EOF. If err is non-nil it is returned instead of io.EOF and the
// assembled message gets StopError.
//
// The stream tracks state and assembles its message like a real provider
// stream, which makes it usable for end-to-end tests of Chat and the TUI.
func TextStream(err error, deltas ...string) *Stream {
	var (
		i     int
		text  strings.Builder
		state = chatdown.StreamStateNew
	)
	s := &Stream{}
	s.NextFn = func() (chatdown.Event, error) {
		switch state {
		case chatdown.StreamStateComplete:
			return nil, io.EOF
		case chatdown.StreamStateError:
			return nil, errors.New("mock: stream failed")
		case chatdown.StreamStateClosed:
			return nil, chatdown.ErrStreamClosed
		}
		if i < len(deltas) {
			d := deltas[i]
			i++
			state = chatdown.StreamStateStreaming
			text.WriteString(d)
			return chatdown.EventTextDelta{Delta: d}, nil
		}
		if err != nil {
			state = chatdown.StreamStateError
			return nil, err
		}
		state = chatdown.StreamStateComplete
		return nil, io.EOF
	}
	s.StateFn = func() chatdown.StreamState { return state }
	s.MessageFn = func() (chatdown.AssistantMessage, error) {
		msg := chatdown.AssistantMessage{Text: text.String()}
		switch state {
		case chatdown.StreamStateNew:
			return chatdown.AssistantMessage{}, chatdown.ErrStreamNotReady
		case chatdown.StreamStateComplete:
			msg.StopReason = chatdown.StopEndTurn
		case chatdown.StreamStateError:
			msg.StopReason = chatdown.StopError
		case chatdown.StreamStateClosed:
			msg.StopReason = chatdown.StopAborted
		}
		return msg, nil
	}
	s.CloseFn = func() error {
		if state == chatdown.StreamStateNew || state == chatdown.StreamStateStreaming {
			state = chatdown.StreamStateClosed
		}
		return nil
	}
	return s
}
