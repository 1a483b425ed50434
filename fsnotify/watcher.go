// Package fsnotify follows a file that is rewritten in full on every update,
// such as a reply being streamed to disk, and hands each new version to a
// callback.
package fsnotify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher delivers the contents of a watched file after every change.
type Watcher struct {
	log *slog.Logger
}

// NewWatcher creates a Watcher that logs to log.
func NewWatcher(log *slog.Logger) *Watcher {
	return &Watcher{log: log}
}

// Watch calls onChange with the full contents of path once at start and again
// after every write or create event, until ctx is done. A version identical to
// the last one delivered is skipped.
//
// The parent directory is watched rather than the file itself, so editors
// that save by renaming a temp file over path keep being followed. Watch
// returns nil when ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context, path string, onChange func(content string)) error {
	path = filepath.Clean(path)
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()
	if err := fw.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	last := string(content)
	onChange(last)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename) {
				w.log.Info("watched file removed, waiting for it to return", "path", path)
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			data, err := os.ReadFile(path)
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			if err != nil {
				w.log.Warn("read watched file", "path", path, "error", err)
				continue
			}
			if string(data) == last {
				continue
			}
			last = string(data)
			onChange(last)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", "path", path, "error", err)
		}
	}
}
