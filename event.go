package chatdown

// Event is a sealed interface representing a streaming event.
// Transport/protocol errors come from Next()'s error return, not from events.
// The unexported marker method prevents external implementations.
type Event interface {
	event()
}

// EventTextDelta carries the next chunk of assistant text. Chunks may split
// words, markers or break sequences; consumers accumulate them and reparse
// the whole buffer.
type EventTextDelta struct {
	Delta string
}

func (EventTextDelta) event() {}

// Interface compliance check.
var _ Event = EventTextDelta{}
