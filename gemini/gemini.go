// Package gemini implements [chatdown.Provider] for the Google Gemini API.
//
// It wraps the google.golang.org/genai SDK. Streaming uses the SDK's
// iter.Seq2 iterator, pulled one chunk at a time behind the
// [chatdown.Stream] interface.
package gemini

const (
	defaultModel     = "gemini-2.5-flash"
	defaultMaxTokens = 65536
)
