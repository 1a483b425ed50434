package gemini

import (
	"context"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/fwojciec/chatdown"
	"google.golang.org/genai"
)

// Interface compliance check.
var _ chatdown.Stream = (*stream)(nil)

// stream implements [chatdown.Stream] over the SDK's streaming iterator.
// A chunk may carry several text parts; they are queued and handed out one
// per Next call.
type stream struct {
	ctx     context.Context
	pull    func() (*genai.GenerateContentResponse, error, bool)
	stop    func()
	state   chatdown.StreamState
	msg     chatdown.AssistantMessage
	text    strings.Builder
	pending []string
	err     error
}

func newStream(ctx context.Context, seq iter.Seq2[*genai.GenerateContentResponse, error]) *stream {
	next, stop := iter.Pull2(seq)
	return &stream{
		ctx:   ctx,
		pull:  next,
		stop:  stop,
		state: chatdown.StreamStateNew,
	}
}

// Next returns the next text delta. Returns io.EOF once the iterator is
// exhausted.
func (s *stream) Next() (chatdown.Event, error) {
	switch s.state {
	case chatdown.StreamStateComplete:
		return nil, io.EOF
	case chatdown.StreamStateError:
		return nil, s.err
	case chatdown.StreamStateClosed:
		return nil, fmt.Errorf("gemini: %w", chatdown.ErrStreamClosed)
	}

	for len(s.pending) == 0 {
		if err := s.ctx.Err(); err != nil {
			s.fail(err)
			return nil, s.err
		}
		resp, err, ok := s.pull()
		if !ok {
			s.finish()
			return nil, io.EOF
		}
		if err != nil {
			s.fail(err)
			return nil, s.err
		}
		s.state = chatdown.StreamStateStreaming
		s.apply(resp)
	}

	delta := s.pending[0]
	s.pending = s.pending[1:]
	s.text.WriteString(delta)
	return chatdown.EventTextDelta{Delta: delta}, nil
}

// State returns the current stream state.
func (s *stream) State() chatdown.StreamState {
	return s.state
}

// Message returns the reply assembled so far.
func (s *stream) Message() (chatdown.AssistantMessage, error) {
	if s.state == chatdown.StreamStateNew {
		return chatdown.AssistantMessage{}, fmt.Errorf("gemini: %w", chatdown.ErrStreamNotReady)
	}
	msg := s.msg
	msg.Text = s.text.String()
	return msg, nil
}

// Close stops the underlying iterator.
func (s *stream) Close() error {
	if s.state != chatdown.StreamStateComplete && s.state != chatdown.StreamStateError {
		s.state = chatdown.StreamStateClosed
		s.msg.StopReason = chatdown.StopAborted
		s.msg.RawStopReason = "aborted"
	}
	s.stop()
	return nil
}

// apply queues the chunk's text parts and records usage and finish reason.
// Thought parts are skipped.
func (s *stream) apply(resp *genai.GenerateContentResponse) {
	if resp == nil {
		return
	}
	if u := resp.UsageMetadata; u != nil {
		s.msg.Usage = chatdown.Usage{
			InputTokens:  max(0, int(u.PromptTokenCount)),
			OutputTokens: max(0, int(u.CandidatesTokenCount)),
		}
	}
	if len(resp.Candidates) == 0 {
		return
	}
	c := resp.Candidates[0]
	if c.FinishReason != "" {
		s.msg.RawStopReason = string(c.FinishReason)
		s.msg.StopReason = mapFinishReason(c.FinishReason)
	}
	if c.Content == nil {
		return
	}
	for _, p := range c.Content.Parts {
		if p == nil || p.Thought || p.Text == "" {
			continue
		}
		s.pending = append(s.pending, p.Text)
	}
}

// finish marks normal completion. A stream that never reported a finish
// reason ended its turn.
func (s *stream) finish() {
	s.state = chatdown.StreamStateComplete
	if s.msg.StopReason == "" {
		s.msg.StopReason = chatdown.StopEndTurn
		s.msg.RawStopReason = "end_turn"
	}
}

func (s *stream) fail(err error) {
	s.state = chatdown.StreamStateError
	s.err = fmt.Errorf("gemini: %w", err)
	if s.ctx.Err() != nil {
		s.msg.StopReason = chatdown.StopAborted
		s.msg.RawStopReason = "aborted"
		return
	}
	s.msg.StopReason = chatdown.StopError
	s.msg.RawStopReason = "error"
}

func mapFinishReason(r genai.FinishReason) chatdown.StopReason {
	switch r {
	case genai.FinishReasonStop:
		return chatdown.StopEndTurn
	case genai.FinishReasonMaxTokens:
		return chatdown.StopLength
	default:
		return chatdown.StopUnknown
	}
}
