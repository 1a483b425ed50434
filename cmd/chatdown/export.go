package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/chatdown"
	"github.com/fwojciec/chatdown/goldmark"
	chatjson "github.com/fwojciec/chatdown/json"
)

// exportSession writes the transcript of the session file at path to w as
// "html" or "md".
func exportSession(w io.Writer, path, format string) error {
	if format != "html" && format != "md" {
		return fmt.Errorf("unknown export format %q: must be \"html\" or \"md\"", format)
	}
	s, err := chatjson.Load(path)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	entries := chatdown.Transcript(s)

	if format == "md" {
		_, err := io.WriteString(w, goldmark.TranscriptMarkdown(entries))
		return err
	}
	data, err := goldmark.TranscriptHTML("chatdown session "+s.ID, entries)
	if err != nil {
		return fmt.Errorf("export html: %w", err)
	}
	_, err = w.Write(data)
	return err
}
