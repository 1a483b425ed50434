// Package json persists sessions and serializes parsed replies as JSON.
package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/chatdown"
)

// envelope is the v1 wire format for a persisted session.
type envelope struct {
	Version      int          `json:"version"`
	ID           string       `json:"id"`
	SystemPrompt string       `json:"system_prompt"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	Messages     []messageDTO `json:"messages"`
}

// messageDTO is the JSON representation of a Message with a type
// discriminator. Assistant-only fields are omitted for user messages.
type messageDTO struct {
	Type          string    `json:"type"`
	Text          string    `json:"text"`
	Timestamp     time.Time `json:"timestamp"`
	StopReason    string    `json:"stop_reason,omitempty"`
	RawStopReason string    `json:"raw_stop_reason,omitempty"`
	Usage         *usageDTO `json:"usage,omitempty"`
}

type usageDTO struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// MarshalSession serializes a Session to JSON in v1 envelope format.
func MarshalSession(s chatdown.Session) ([]byte, error) {
	env := envelope{
		Version:      1,
		ID:           s.ID,
		SystemPrompt: s.SystemPrompt,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
		Messages:     make([]messageDTO, len(s.Messages)),
	}
	for i, msg := range s.Messages {
		dto, err := marshalMessage(msg)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		env.Messages[i] = dto
	}
	return json.MarshalIndent(env, "", "  ")
}

// UnmarshalSession deserializes a Session from JSON in v1 envelope format.
func UnmarshalSession(data []byte) (chatdown.Session, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return chatdown.Session{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != 1 {
		return chatdown.Session{}, fmt.Errorf("unsupported envelope version: %d", env.Version)
	}
	msgs := make([]chatdown.Message, len(env.Messages))
	for i, dto := range env.Messages {
		msg, err := unmarshalMessage(dto)
		if err != nil {
			return chatdown.Session{}, fmt.Errorf("message %d: %w", i, err)
		}
		msgs[i] = msg
	}
	return chatdown.Session{
		ID:           env.ID,
		SystemPrompt: env.SystemPrompt,
		CreatedAt:    env.CreatedAt,
		UpdatedAt:    env.UpdatedAt,
		Messages:     msgs,
	}, nil
}

// Save writes a Session to a JSON file, creating parent directories as needed.
// The file is written to a temporary path and renamed into place.
func Save(path string, s chatdown.Session) error {
	data, err := MarshalSession(s)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Load reads a Session from a JSON file.
func Load(path string) (chatdown.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return chatdown.Session{}, fmt.Errorf("read file: %w", err)
	}
	return UnmarshalSession(data)
}

func marshalMessage(msg chatdown.Message) (messageDTO, error) {
	switch m := msg.(type) {
	case chatdown.UserMessage:
		return messageDTO{Type: "user", Text: m.Text, Timestamp: m.Timestamp}, nil
	case chatdown.AssistantMessage:
		return messageDTO{
			Type:          "assistant",
			Text:          m.Text,
			Timestamp:     m.Timestamp,
			StopReason:    string(m.StopReason),
			RawStopReason: m.RawStopReason,
			Usage:         &usageDTO{InputTokens: m.Usage.InputTokens, OutputTokens: m.Usage.OutputTokens},
		}, nil
	default:
		return messageDTO{}, fmt.Errorf("unknown message type: %T", msg)
	}
}

func unmarshalMessage(dto messageDTO) (chatdown.Message, error) {
	switch dto.Type {
	case "user":
		return chatdown.UserMessage{Text: dto.Text, Timestamp: dto.Timestamp}, nil
	case "assistant":
		var usage chatdown.Usage
		if dto.Usage != nil {
			usage = chatdown.Usage{InputTokens: dto.Usage.InputTokens, OutputTokens: dto.Usage.OutputTokens}
		}
		return chatdown.AssistantMessage{
			Text:          dto.Text,
			StopReason:    chatdown.StopReason(dto.StopReason),
			RawStopReason: dto.RawStopReason,
			Usage:         usage,
			Timestamp:     dto.Timestamp,
		}, nil
	default:
		return nil, fmt.Errorf("unknown message type: %q", dto.Type)
	}
}
