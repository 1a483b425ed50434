package anthropic

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// sseEvent is one dispatched server-sent event.
type sseEvent struct {
	name string
	data string
}

// sseReader assembles server-sent events from a line stream. Comment lines
// and unknown fields are skipped.
type sseReader struct {
	scanner *bufio.Scanner
}

func newSSEReader(r io.Reader) *sseReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	return &sseReader{scanner: sc}
}

// next returns the next event with a data payload. It returns io.EOF when
// the input ends between events.
func (r *sseReader) next() (sseEvent, error) {
	var (
		evt  sseEvent
		data []string
	)
	for r.scanner.Scan() {
		line := r.scanner.Text()
		if line == "" {
			if len(data) > 0 {
				evt.data = strings.Join(data, "\n")
				return evt, nil
			}
			evt = sseEvent{}
			continue
		}
		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		switch field {
		case "event":
			evt.name = value
		case "data":
			data = append(data, value)
		}
	}
	if err := r.scanner.Err(); err != nil {
		return sseEvent{}, fmt.Errorf("anthropic: %w", err)
	}
	if len(data) > 0 {
		evt.data = strings.Join(data, "\n")
		return evt, nil
	}
	return sseEvent{}, io.EOF
}
