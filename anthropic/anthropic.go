// Package anthropic implements [chatdown.Provider] for the Anthropic Messages
// API.
//
// Replies are streamed over SSE and surfaced as text deltas through the
// pull-based [chatdown.Stream] interface. Thinking and tool blocks are not
// requested and are ignored if the API sends them.
package anthropic

const (
	defaultBaseURL   = "https://api.anthropic.com"
	defaultModel     = "claude-sonnet-4-20250514"
	defaultMaxTokens = 8192
	apiVersion       = "2023-06-01"
	messagesPath     = "/v1/messages"
)

// apiRequest is the JSON body sent to the Messages API.
type apiRequest struct {
	Model       string       `json:"model"`
	MaxTokens   int          `json:"max_tokens"`
	Stream      bool         `json:"stream"`
	System      string       `json:"system,omitempty"`
	Messages    []apiMessage `json:"messages"`
	Temperature *float64     `json:"temperature,omitempty"`
}

type apiMessage struct {
	Role    string    `json:"role"`
	Content []apiText `json:"content"`
}

type apiText struct {
	Type string `json:"type"` // always "text"
	Text string `json:"text"`
}

// SSE payloads. Only the fields the stream reads are declared.

type sseMessageStart struct {
	Message struct {
		Usage struct {
			InputTokens int `json:"input_tokens"`
		} `json:"usage"`
	} `json:"message"`
}

type sseContentBlockStart struct {
	Index        int `json:"index"`
	ContentBlock struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content_block"`
}

type sseContentBlockDelta struct {
	Index int `json:"index"`
	Delta struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"delta"`
}

type sseMessageDelta struct {
	Delta struct {
		StopReason *string `json:"stop_reason"`
	} `json:"delta"`
	Usage struct {
		OutputTokens int  `json:"output_tokens"`
		InputTokens  *int `json:"input_tokens,omitempty"`
	} `json:"usage"`
}

// apiError is the body of an "error" SSE event and of non-200 responses.
type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}
