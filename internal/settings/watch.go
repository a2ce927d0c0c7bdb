package settings

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DebounceDelay coalesces bursts of file events into one reload.
const DebounceDelay = 100 * time.Millisecond

const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

// Watcher reloads a settings file when it changes on disk.
type Watcher struct {
	path     string
	fsw      *fsnotify.Watcher
	logger   *slog.Logger
	debounce time.Duration
}

// NewWatcher starts watching the directory holding path. The directory is
// watched rather than the file so atomic replacements are seen.
func NewWatcher(path string) (*Watcher, error) {
	path = filepath.Clean(path)
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create settings directory %s: %w", dir, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	return &Watcher{
		path:     path,
		fsw:      fsw,
		logger:   slog.Default().With("settings", path),
		debounce: DebounceDelay,
	}, nil
}

// Run delivers freshly loaded settings to onChange after each burst of
// changes until ctx is done. It closes the watcher on return.
func (w *Watcher) Run(ctx context.Context, onChange func(Settings)) error {
	defer w.fsw.Close()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path || ev.Op&relevantOps == 0 {
				continue
			}
			w.logger.Debug("Settings file event", "op", ev.Op.String())
			timer.Reset(w.debounce)
			pending = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Settings watcher error", "error", err)

		case <-pending:
			pending = nil
			s, err := Load(w.path)
			if err != nil {
				w.logger.Warn("Failed to reload settings, using defaults", "error", err)
			}
			onChange(s)
		}
	}
}

