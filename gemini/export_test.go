package gemini

import (
	"context"
	"iter"

	"github.com/fwojciec/chatdown"
	"google.golang.org/genai"
)

// NewStreamFromIter exposes the stream constructor for tests.
func NewStreamFromIter(ctx context.Context, seq iter.Seq2[*genai.GenerateContentResponse, error]) chatdown.Stream {
	return newStream(ctx, seq)
}
