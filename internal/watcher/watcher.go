// Package watcher monitors one content file and triggers recompilation on
// change, collapsing rapid event bursts into a single trigger.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a single content file.
//
// The parent directory is watched rather than the file itself: editors
// commonly replace files via rename, which drops a direct file watch.
type Watcher struct {
	filePath string
	debounce time.Duration

	// onChange runs serially; a burst during a slow run coalesces into one
	// follow-up trigger.
	onChange func(path string) error
	onError  func(err error)

	mu      sync.Mutex
	pending time.Time
}

// Config holds watcher options.
type Config struct {
	// FilePath is the content file to watch.
	FilePath string
	// Debounce is the quiet period before a change triggers. Default 300ms.
	Debounce time.Duration
	// OnChange runs after the debounce window closes.
	OnChange func(path string) error
	// OnError receives watch and trigger errors. Optional.
	OnError func(err error)
}

// New validates the configuration and builds a watcher.
func New(cfg Config) (*Watcher, error) {
	if cfg.FilePath == "" {
		return nil, fmt.Errorf("file path is required")
	}
	if cfg.OnChange == nil {
		return nil, fmt.Errorf("change callback is required")
	}

	debounce := cfg.Debounce
	if debounce == 0 {
		debounce = 300 * time.Millisecond
	}

	abs, err := filepath.Abs(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("resolving watch path: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("watch target %s: %w", abs, err)
	}

	return &Watcher{
		filePath: abs,
		debounce: debounce,
		onChange: cfg.OnChange,
		onError:  cfg.OnError,
	}, nil
}

// Start blocks watching until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer fsWatcher.Close()

	if err := fsWatcher.Add(filepath.Dir(w.filePath)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(w.filePath), err)
	}

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.reportError(err)

		case <-ticker.C:
			w.firePending()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.filePath {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}
	w.mu.Lock()
	w.pending = time.Now()
	w.mu.Unlock()
}

// firePending triggers the callback once the debounce window has passed.
func (w *Watcher) firePending() {
	w.mu.Lock()
	if w.pending.IsZero() || time.Since(w.pending) < w.debounce {
		w.mu.Unlock()
		return
	}
	w.pending = time.Time{}
	w.mu.Unlock()

	if err := w.onChange(w.filePath); err != nil {
		w.reportError(err)
	}
}

func (w *Watcher) reportError(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}
