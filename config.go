package chatdown

import "fmt"

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// Config holds user settings. Zero values mean "use the default": an empty
// Provider is auto-detected from the available API keys.
type Config struct {
	Provider     string       `toml:"provider"`
	Model        string       `toml:"model"`
	SystemPrompt string       `toml:"system_prompt"`
	MaxTokens    int          `toml:"max_tokens"`
	Temperature  *float64     `toml:"temperature"`
	SessionDir   string       `toml:"session_dir"`
	Theme        Theme        `toml:"theme"`
	Server       ServerConfig `toml:"server"`
}

// ServerConfig configures the HTTP render service.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		SystemPrompt: "You are a helpful assistant.",
		Theme:        DefaultTheme(),
		Server:       ServerConfig{Addr: ":8080"},
	}
}

// Validate checks the config for values no component can use.
func (c Config) Validate() error {
	switch c.Provider {
	case "", ProviderAnthropic, ProviderGemini:
	default:
		return fmt.Errorf("unknown provider %q: must be %q or %q: %w", c.Provider, ProviderAnthropic, ProviderGemini, ErrValidation)
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must be non-negative, got %d: %w", c.MaxTokens, ErrValidation)
	}
	if c.Temperature != nil && (*c.Temperature < 0 || *c.Temperature > 2) {
		return fmt.Errorf("temperature must be in [0, 2], got %g: %w", *c.Temperature, ErrValidation)
	}
	return c.Theme.Validate()
}
