package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 100 * time.Millisecond

// FileWatcher reports writes to a fixed set of files. Parent directories are
// watched because bundlers replace files by rename.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]struct{}
	onChange func(ctx context.Context, path string)
	logger   *slog.Logger
	debounce time.Duration
}

func New(paths []string, onChange func(ctx context.Context, path string), logger *slog.Logger) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	files := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = watcher.Close()
			return nil, err
		}
		files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	return &FileWatcher{
		watcher:  watcher,
		files:    files,
		onChange: onChange,
		logger:   logger,
		debounce: defaultDebounce,
	}, nil
}

// Run delivers debounced changes until ctx is done. It closes the watcher
// on return.
func (w *FileWatcher) Run(ctx context.Context) {
	defer func() { _ = w.watcher.Close() }()

	pending := map[string]struct{}{}
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isWatchEvent(event.Op) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if _, tracked := w.files[abs]; !tracked {
				continue
			}
			pending[abs] = struct{}{}
			timer.Reset(w.debounce)

		case <-timer.C:
			for path := range pending {
				w.logger.Debug("artifact changed", "path", path)
				w.onChange(ctx, path)
			}
			pending = map[string]struct{}{}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", "error", err)
		}
	}
}

func isWatchEvent(op fsnotify.Op) bool {
	return op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0
}
