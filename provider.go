package chatdown

import "context"

// Provider is a strategy pattern interface for chatbot backends.
type Provider interface {
	Stream(ctx context.Context, req Request) (Stream, error)
}
