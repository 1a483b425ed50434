package chatdown

import "fmt"

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme. A negative index means no color.
type Theme struct {
	UserMsg int `toml:"user_msg"` // User message prefix
	Error   int `toml:"error"`    // Error messages
	Muted   int `toml:"muted"`    // Status bar, placeholders
	Accent  int `toml:"accent"`   // Headings
	Bullet  int `toml:"bullet"`   // Bullet glyphs
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		UserMsg: 4,
		Error:   1,
		Muted:   8,
		Accent:  5,
		Bullet:  6,
	}
}

// Validate checks that every color index is in [-1, 255].
func (t Theme) Validate() error {
	colors := []struct {
		name  string
		index int
	}{
		{"user_msg", t.UserMsg},
		{"error", t.Error},
		{"muted", t.Muted},
		{"accent", t.Accent},
		{"bullet", t.Bullet},
	}
	for _, c := range colors {
		if c.index < -1 || c.index > 255 {
			return fmt.Errorf("theme.%s must be in [-1, 255], got %d: %w", c.name, c.index, ErrValidation)
		}
	}
	return nil
}
