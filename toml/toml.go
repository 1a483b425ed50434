// Package toml loads chatdown configuration from TOML files.
package toml

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fwojciec/chatdown"
)

// DefaultPath returns the config file location used when none is given:
// ~/.chatdown/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, ".chatdown", "config.toml"), nil
}

// Load reads the config at path on top of chatdown.DefaultConfig. A missing
// file yields the defaults. Keys the config does not know are rejected with
// chatdown.ErrValidation so typos do not go unnoticed, and so are values
// Config.Validate refuses.
func Load(path string) (chatdown.Config, error) {
	cfg := chatdown.DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return chatdown.DefaultConfig(), nil
	}
	if err != nil {
		return chatdown.Config{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return chatdown.Config{}, fmt.Errorf("%s: unknown keys %s: %w", path, strings.Join(keys, ", "), chatdown.ErrValidation)
	}
	if err := cfg.Validate(); err != nil {
		return chatdown.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
