package chatdown

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a request, message or config failed validation.
	ErrValidation = errors.New("validation error")

	// ErrEmptyMessage indicates a user message with no visible text.
	ErrEmptyMessage = errors.New("empty message")

	// ErrStreamNotReady indicates Message() was called before Next().
	ErrStreamNotReady = errors.New("stream not ready: call Next() first")

	// ErrStreamClosed indicates an operation on a closed stream.
	ErrStreamClosed = errors.New("stream closed")
)
