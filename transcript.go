package chatdown

import (
	"strings"
	"time"
)

// TranscriptEntry is one message of a session prepared for export.
type TranscriptEntry struct {
	Role      Role
	Timestamp time.Time
	Blocks    []Block
}

// Transcript parses every message of a session into blocks. Assistant text
// goes through Parse. User text is not markdown: each non-blank line becomes
// a Paragraph verbatim.
func Transcript(s Session) []TranscriptEntry {
	entries := make([]TranscriptEntry, 0, len(s.Messages))
	for _, msg := range s.Messages {
		switch m := msg.(type) {
		case UserMessage:
			entries = append(entries, TranscriptEntry{
				Role:      RoleUser,
				Timestamp: m.Timestamp,
				Blocks:    plainParagraphs(m.Text),
			})
		case AssistantMessage:
			entries = append(entries, TranscriptEntry{
				Role:      RoleAssistant,
				Timestamp: m.Timestamp,
				Blocks:    Parse(m.Text),
			})
		}
	}
	return entries
}

func plainParagraphs(text string) []Block {
	var blocks []Block
	for _, line := range strings.Split(Normalize(text), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			blocks = append(blocks, Paragraph{Text: line})
		}
	}
	return blocks
}
