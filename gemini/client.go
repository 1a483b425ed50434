package gemini

import (
	"context"
	"fmt"

	"github.com/fwojciec/chatdown"
	"google.golang.org/genai"
)

// Interface compliance check.
var _ chatdown.Provider = (*Client)(nil)

// Client implements [chatdown.Provider] for the Google Gemini API.
type Client struct {
	client *genai.Client
	model  string
}

// Option configures a [Client].
type Option func(*Client)

// WithModel sets the default model ID used when a request names none.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// New creates a new Gemini [Client] with the given API key and options.
func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	c := &Client{
		client: gc,
		model:  defaultModel,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Stream starts a streaming generation and returns a [chatdown.Stream] of
// text deltas.
func (c *Client) Stream(ctx context.Context, req chatdown.Request) (chatdown.Stream, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}
	seq := c.client.Models.GenerateContentStream(ctx, model, ConvertMessages(req.Messages), BuildConfig(req))
	return newStream(ctx, seq), nil
}

// BuildConfig maps the request's generation parameters to a genai config.
func BuildConfig(req chatdown.Request) *genai.GenerateContentConfig {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}

	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxTokens),
	}
	if req.SystemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemPrompt}},
		}
	}
	if req.Temperature != nil {
		temp := float32(*req.Temperature)
		config.Temperature = &temp
	}
	return config
}

// ConvertMessages converts chatdown messages to genai contents. Assistant
// replies with no text are skipped.
func ConvertMessages(msgs []chatdown.Message) []*genai.Content {
	var result []*genai.Content
	for _, msg := range msgs {
		switch m := msg.(type) {
		case chatdown.UserMessage:
			result = append(result, textContent("user", m.Text))
		case chatdown.AssistantMessage:
			if m.Text == "" {
				continue
			}
			result = append(result, textContent("model", m.Text))
		}
	}
	return result
}

func textContent(role, text string) *genai.Content {
	return &genai.Content{Role: role, Parts: []*genai.Part{{Text: text}}}
}
