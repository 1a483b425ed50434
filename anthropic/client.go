package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/fwojciec/chatdown"
)

// Interface compliance check.
var _ chatdown.Provider = (*Client)(nil)

// Client implements [chatdown.Provider] for the Anthropic Messages API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL sets the API base URL. Useful for testing with httptest.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a new Anthropic [Client] with the given API key and options.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Stream sends a streaming request to the Messages API and returns a
// [chatdown.Stream] of text deltas.
func (c *Client) Stream(ctx context.Context, req chatdown.Request) (chatdown.Stream, error) {
	body, err := json.Marshal(buildRequest(req))
	if err != nil {
		return nil, fmt.Errorf("anthropic: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+messagesPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("anthropic: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", c.apiKey)
	httpReq.Header.Set("Anthropic-Version", apiVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("anthropic: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, parseHTTPError(resp)
	}

	return newStream(ctx, resp.Body), nil
}

func buildRequest(req chatdown.Request) apiRequest {
	model := req.Model
	if model == "" {
		model = defaultModel
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}
	return apiRequest{
		Model:       model,
		MaxTokens:   maxTokens,
		Stream:      true,
		System:      req.SystemPrompt,
		Messages:    convertMessages(req.Messages),
		Temperature: req.Temperature,
	}
}

// convertMessages maps the history to API messages. Assistant replies that
// were aborted before any text arrived are skipped: the API rejects empty
// text blocks.
func convertMessages(msgs []chatdown.Message) []apiMessage {
	result := make([]apiMessage, 0, len(msgs))
	for _, msg := range msgs {
		switch m := msg.(type) {
		case chatdown.UserMessage:
			result = append(result, textMessage("user", m.Text))
		case chatdown.AssistantMessage:
			if m.Text == "" {
				continue
			}
			result = append(result, textMessage("assistant", m.Text))
		}
	}
	return result
}

func textMessage(role, text string) apiMessage {
	return apiMessage{Role: role, Content: []apiText{{Type: "text", Text: text}}}
}

func parseHTTPError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("anthropic: HTTP %d (failed to read body: %w)", resp.StatusCode, err)
	}
	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Error.Type == "" {
		return fmt.Errorf("anthropic: HTTP %d: %s", resp.StatusCode, string(body))
	}
	return fmt.Errorf("anthropic: HTTP %d: %s: %s", resp.StatusCode, apiErr.Error.Type, apiErr.Error.Message)
}
