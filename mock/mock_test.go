package mock_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/fwojciec/chatdown"
	"github.com/fwojciec/chatdown/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_Stream(t *testing.T) {
	t.Parallel()
	t.Run("delegates to StreamFn", func(t *testing.T) {
		t.Parallel()
		var s mock.Stream
		p := mock.Provider{
			StreamFn: func(ctx context.Context, req chatdown.Request) (chatdown.Stream, error) {
				return &s, nil
			},
		}
		got, err := p.Stream(context.Background(), chatdown.Request{})
		require.NoError(t, err)
		assert.Equal(t, &s, got)
	})

	t.Run("returns error", func(t *testing.T) {
		t.Parallel()
		wantErr := errors.New("api error")
		p := mock.Provider{
			StreamFn: func(ctx context.Context, req chatdown.Request) (chatdown.Stream, error) {
				return nil, wantErr
			},
		}
		_, err := p.Stream(context.Background(), chatdown.Request{})
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("panics when StreamFn not set", func(t *testing.T) {
		t.Parallel()
		p := mock.Provider{}
		assert.Panics(t, func() {
			_, _ = p.Stream(context.Background(), chatdown.Request{})
		})
	})
}

func TestStream_Next(t *testing.T) {
	t.Parallel()
	t.Run("delegates to NextFn", func(t *testing.T) {
		t.Parallel()
		want := chatdown.EventTextDelta{Delta: "hello"}
		s := mock.Stream{
			NextFn: func() (chatdown.Event, error) {
				return want, nil
			},
		}
		got, err := s.Next()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("panics when NextFn not set", func(t *testing.T) {
		t.Parallel()
		s := mock.Stream{}
		assert.Panics(t, func() {
			_, _ = s.Next()
		})
	})
}

func TestStream_State(t *testing.T) {
	t.Parallel()
	t.Run("delegates to StateFn", func(t *testing.T) {
		t.Parallel()
		s := mock.Stream{
			StateFn: func() chatdown.StreamState {
				return chatdown.StreamStateComplete
			},
		}
		assert.Equal(t, chatdown.StreamStateComplete, s.State())
	})

	t.Run("zero value when StateFn not set", func(t *testing.T) {
		t.Parallel()
		s := mock.Stream{}
		assert.Equal(t, chatdown.StreamStateNew, s.State())
	})
}

func TestStream_Close(t *testing.T) {
	t.Parallel()
	t.Run("delegates to CloseFn", func(t *testing.T) {
		t.Parallel()
		wantErr := errors.New("close error")
		s := mock.Stream{
			CloseFn: func() error {
				return wantErr
			},
		}
		assert.ErrorIs(t, s.Close(), wantErr)
	})

	t.Run("no-op when CloseFn not set", func(t *testing.T) {
		t.Parallel()
		s := mock.Stream{}
		assert.NoError(t, s.Close())
	})
}

func TestTextStream(t *testing.T) {
	t.Parallel()

	t.Run("emits deltas then EOF", func(t *testing.T) {
		t.Parallel()
		s := mock.TextStream(nil, "**Hi", "**\n- a")
		_, err := s.Message()
		assert.ErrorIs(t, err, chatdown.ErrStreamNotReady)

		var got []chatdown.Event
		for {
			evt, err := s.Next()
			if err == io.EOF {
				break
			}
			require.NoError(t, err)
			got = append(got, evt)
		}
		assert.Equal(t, []chatdown.Event{
			chatdown.EventTextDelta{Delta: "**Hi"},
			chatdown.EventTextDelta{Delta: "**\n- a"},
		}, got)
		assert.Equal(t, chatdown.StreamStateComplete, s.State())

		msg, err := s.Message()
		require.NoError(t, err)
		assert.Equal(t, "**Hi**\n- a", msg.Text)
		assert.Equal(t, chatdown.StopEndTurn, msg.StopReason)
	})

	t.Run("ends with error", func(t *testing.T) {
		t.Parallel()
		wantErr := errors.New("connection reset")
		s := mock.TextStream(wantErr, "partial")
		_, err := s.Next()
		require.NoError(t, err)
		_, err = s.Next()
		assert.ErrorIs(t, err, wantErr)
		assert.Equal(t, chatdown.StreamStateError, s.State())

		msg, err := s.Message()
		require.NoError(t, err)
		assert.Equal(t, "partial", msg.Text)
		assert.Equal(t, chatdown.StopError, msg.StopReason)
	})

	t.Run("close mid-stream aborts", func(t *testing.T) {
		t.Parallel()
		s := mock.TextStream(nil, "a", "b")
		_, err := s.Next()
		require.NoError(t, err)
		require.NoError(t, s.Close())
		assert.Equal(t, chatdown.StreamStateClosed, s.State())
		_, err = s.Next()
		assert.ErrorIs(t, err, chatdown.ErrStreamClosed)

		msg, err := s.Message()
		require.NoError(t, err)
		assert.Equal(t, "a", msg.Text)
		assert.Equal(t, chatdown.StopAborted, msg.StopReason)
	})
}
