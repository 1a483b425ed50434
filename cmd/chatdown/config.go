package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/chatdown"
	"github.com/fwojciec/chatdown/toml"
)

// loadConfig loads the config file. Without an explicit path the default
// location is used and may be absent; an explicit path must exist.
func loadConfig(path string) (chatdown.Config, error) {
	if path == "" {
		p, err := toml.DefaultPath()
		if err != nil {
			return chatdown.DefaultConfig(), nil
		}
		return toml.Load(p)
	}
	if _, err := os.Stat(path); err != nil {
		return chatdown.Config{}, fmt.Errorf("config: %w", err)
	}
	return toml.Load(path)
}

// applyEnv overrides config values from CHATDOWN_* environment variables.
func applyEnv(cfg chatdown.Config, getenv func(string) string) chatdown.Config {
	if v := getenv("CHATDOWN_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := getenv("CHATDOWN_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := getenv("CHATDOWN_SESSION_DIR"); v != "" {
		cfg.SessionDir = v
	}
	return cfg
}

// applyFlags overrides config values from the command line.
func applyFlags(cfg chatdown.Config, opts options) (chatdown.Config, error) {
	if opts.provider != "" {
		cfg.Provider = opts.provider
	}
	if opts.model != "" {
		cfg.Model = opts.model
	}
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}
	if opts.promptPath != "" {
		data, err := os.ReadFile(opts.promptPath)
		if err != nil {
			return chatdown.Config{}, fmt.Errorf("read system prompt: %w", err)
		}
		cfg.SystemPrompt = strings.TrimSpace(string(data))
	}
	return cfg, nil
}
