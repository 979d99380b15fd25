// Package watch triggers rechecks when schema files change on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce coalesces editor save bursts into a single rerun.
const debounce = 100 * time.Millisecond

// Config configures a Watcher.
type Config struct {
	// Root is the directory watched recursively. Defaults to ".".
	Root string

	// Pattern is the schema file name whose changes trigger the callback.
	Pattern string

	// Exclude lists directory names that are not watched.
	Exclude []string

	// OnChange runs after a matching file changed, debounced.
	OnChange func()

	// Logger receives watch diagnostics. Defaults to a discard logger.
	Logger *slog.Logger
}

// Watcher invokes a callback when schema files change under a root.
type Watcher struct {
	root     string
	pattern  string
	exclude  map[string]bool
	onChange func()
	logger   *slog.Logger
}

// New creates a Watcher from cfg.
func New(cfg Config) *Watcher {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	root := cfg.Root
	if root == "" {
		root = "."
	}

	exclude := make(map[string]bool, len(cfg.Exclude))
	for _, name := range cfg.Exclude {
		exclude[name] = true
	}

	return &Watcher{
		root:     root,
		pattern:  cfg.Pattern,
		exclude:  exclude,
		onChange: cfg.OnChange,
		logger:   logger,
	}
}

// Run watches the root until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := w.watchDir(watcher, w.root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.root, err)
	}

	w.watchLoop(ctx, watcher)
	return nil
}

// watchDir recursively adds a directory tree to the watcher.
func (w *Watcher) watchDir(watcher *fsnotify.Watcher, dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			// Skip excluded and hidden directories
			name := info.Name()
			if path != dir && (w.exclude[name] || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
}

// watchLoop handles file system events.
func (w *Watcher) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	// Debounce timer
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			// Only handle write/create events
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			// New directories join the watch so schema files created
			// inside them trigger reruns too.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					name := filepath.Base(event.Name)
					if !w.exclude[name] && !strings.HasPrefix(name, ".") {
						if err := w.watchDir(watcher, event.Name); err != nil {
							w.logger.Debug("failed to watch new directory", "dir", event.Name, "error", err)
						}
					}
					continue
				}
			}

			if filepath.Base(event.Name) != w.pattern {
				continue
			}

			// Debounce reruns
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			changed := event.Name
			debounceTimer = time.AfterFunc(debounce, func() {
				w.logger.Debug("change detected", "file", changed)
				w.onChange()
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}
