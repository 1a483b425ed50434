package main

import (
	"context"
	"fmt"

	"github.com/fwojciec/chatdown"
	"github.com/fwojciec/chatdown/anthropic"
	"github.com/fwojciec/chatdown/gemini"
)

// apiKeys holds the -api-key flag and the provider env vars.
type apiKeys struct {
	flag      string
	anthropic string
	gemini    string
}

// resolveProvider selects and constructs the provider and returns it with its
// name. All env var values are passed in; env is only read in run().
func resolveProvider(ctx context.Context, name string, keys apiKeys) (chatdown.Provider, string, error) {
	// Auto-detect from env vars if not configured.
	if name == "" {
		hasAnthropic := keys.anthropic != ""
		hasGemini := keys.gemini != ""
		switch {
		case hasAnthropic && hasGemini:
			return nil, "", fmt.Errorf("multiple API keys found (ANTHROPIC_API_KEY, GEMINI_API_KEY): use -provider flag to select")
		case hasAnthropic:
			name = chatdown.ProviderAnthropic
		case hasGemini:
			name = chatdown.ProviderGemini
		default:
			return nil, "", fmt.Errorf("no API key found: set ANTHROPIC_API_KEY or GEMINI_API_KEY (or use -provider and -api-key flags)")
		}
	}

	// Explicit flag overrides env var.
	key := keys.flag
	switch name {
	case chatdown.ProviderAnthropic:
		if key == "" {
			key = keys.anthropic
		}
		if key == "" {
			return nil, "", fmt.Errorf("ANTHROPIC_API_KEY not set (use -api-key flag or environment variable)")
		}
		return anthropic.New(key), name, nil
	case chatdown.ProviderGemini:
		if key == "" {
			key = keys.gemini
		}
		if key == "" {
			return nil, "", fmt.Errorf("GEMINI_API_KEY not set (use -api-key flag or environment variable)")
		}
		client, err := gemini.New(ctx, key)
		if err != nil {
			return nil, "", fmt.Errorf("gemini: %w", err)
		}
		return client, name, nil
	default:
		return nil, "", fmt.Errorf("unknown provider %q: must be %q or %q", name, chatdown.ProviderAnthropic, chatdown.ProviderGemini)
	}
}
