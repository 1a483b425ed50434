package main

import (
	"context"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/chatdown"
	"github.com/fwojciec/chatdown/fsnotify"
	"github.com/fwojciec/chatdown/markdown"
)

// clearScreen moves the cursor home and erases the display.
const clearScreen = "\x1b[H\x1b[2J"

// renderOptions controls terminal output of the offline modes.
type renderOptions struct {
	width int
	color bool
	theme chatdown.Theme
}

func (o renderOptions) render(source string) string {
	if o.color {
		return markdown.Render(source, o.width, o.theme)
	}
	return markdown.Plain(source, o.width)
}

// renderFiles renders every file matching pattern to w. With more than one
// match each file gets a "==> path <==" header.
func renderFiles(w io.Writer, pattern string, o renderOptions) error {
	base, pat := doublestar.SplitPattern(filepath.ToSlash(pattern))
	if !doublestar.ValidatePattern(pat) {
		return fmt.Errorf("invalid glob pattern: %s", pattern)
	}

	var matches []string
	err := doublestar.GlobWalk(os.DirFS(base), pat, func(path string, d iofs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		matches = append(matches, filepath.Join(base, filepath.FromSlash(path)))
		return nil
	})
	if err != nil {
		return fmt.Errorf("match %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no files match %s", pattern)
	}
	sort.Strings(matches)

	for i, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if len(matches) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "==> %s <==\n", path)
		}
		fmt.Fprintln(w, o.render(string(data)))
	}
	return nil
}

// watchFile re-renders path to w after every change until ctx is done. On a
// terminal each version replaces the previous one.
func watchFile(ctx context.Context, w io.Writer, path string, watcher *fsnotify.Watcher, o renderOptions) error {
	return watcher.Watch(ctx, path, func(content string) {
		if o.color {
			io.WriteString(w, clearScreen)
		}
		fmt.Fprintln(w, o.render(content))
	})
}
