package chatdown

import "time"

// Message is a sealed interface representing a conversation message.
// The unexported marker method prevents external implementations.
// Role() returns the message's role without requiring a type switch.
type Message interface {
	isMessage()
	Role() Role
}

// UserMessage is text typed by the user.
type UserMessage struct {
	Text      string
	Timestamp time.Time
}

func (UserMessage) isMessage() {}

// Role returns RoleUser.
func (UserMessage) Role() Role { return RoleUser }

// AssistantMessage is the assembled reply of the chatbot. Text is the raw
// markdown-subset source; render it with Parse.
type AssistantMessage struct {
	Text          string
	StopReason    StopReason
	RawStopReason string
	Usage         Usage
	Timestamp     time.Time
}

func (AssistantMessage) isMessage() {}

// Role returns RoleAssistant.
func (AssistantMessage) Role() Role { return RoleAssistant }

// Interface compliance checks.
var (
	_ Message = UserMessage{}
	_ Message = AssistantMessage{}
)
