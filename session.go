package chatdown

import "time"

// Session represents a conversation session.
type Session struct {
	ID           string
	Messages     []Message
	SystemPrompt string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Usage returns the total token usage of all assistant replies.
func (s Session) Usage() Usage {
	var total Usage
	for _, msg := range s.Messages {
		if m, ok := msg.(AssistantMessage); ok {
			total = total.Add(m.Usage)
		}
	}
	return total
}
