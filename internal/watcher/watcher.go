// Package watcher monitors a project tree and refreshes the index when
// content changes on disk.
//
// Relationship resolution is project-wide: one edited entity file can
// change edges anywhere in the graph. The watcher therefore coalesces
// bursts of filesystem events into a single debounced rescan instead of
// reindexing files one at a time.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Refresh summarizes one completed rescan.
type Refresh struct {
	Items       int
	Edges       int
	Unfulfilled int
	Elapsed     time.Duration
}

// RefreshFunc performs a full rescan and index update. The watcher never
// touches the project directly; commands supply the project plumbing.
type RefreshFunc func(ctx context.Context) (Refresh, error)

// Config holds configuration options for the Watcher.
type Config struct {
	ProjectPath   string
	Refresh       RefreshFunc
	DebounceDelay time.Duration // Default: 250ms
	Debug         bool
	OnRefresh     func(result Refresh, err error) // Optional callback
}

// Watcher monitors a project directory and triggers debounced rescans.
type Watcher struct {
	projectPath   string
	refresh       RefreshFunc
	debounceDelay time.Duration
	debug         bool
	onRefresh     func(Refresh, error)

	fsWatcher *fsnotify.Watcher

	mu      sync.Mutex
	dirtyAt time.Time
	dirty   bool
}

// New creates a new Watcher with the given configuration.
func New(cfg Config) (*Watcher, error) {
	if cfg.ProjectPath == "" {
		return nil, fmt.Errorf("project path is required")
	}
	if cfg.Refresh == nil {
		return nil, fmt.Errorf("refresh function is required")
	}

	debounce := cfg.DebounceDelay
	if debounce == 0 {
		debounce = 250 * time.Millisecond
	}

	return &Watcher{
		projectPath:   cfg.ProjectPath,
		refresh:       cfg.Refresh,
		debounceDelay: debounce,
		debug:         cfg.Debug,
		onRefresh:     cfg.OnRefresh,
	}, nil
}

// Start begins watching the project for file changes. It blocks until the
// context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	var err error
	w.fsWatcher, err = fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer w.fsWatcher.Close()

	if err := w.addWatchRecursive(w.projectPath); err != nil {
		return fmt.Errorf("failed to watch project: %w", err)
	}

	w.logDebug("Watching project: %s", w.projectPath)

	go w.processDebounced(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.logDebug("Watcher error: %v", err)
		}
	}
}

// handleEvent processes a single filesystem event.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	if w.shouldIgnore(path) {
		return
	}

	// New directories need their own watch before events inside them
	// can be seen.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			w.addWatchRecursive(path)
		}
	}

	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	w.logDebug("Event: %s %s", event.Op, path)
	w.markDirty()
}

// markDirty records that the tree changed; the debounce loop picks it up.
func (w *Watcher) markDirty() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dirty = true
	w.dirtyAt = time.Now()
}

// processDebounced runs a rescan once events have settled for the
// debounce delay.
func (w *Watcher) processDebounced(ctx context.Context) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !w.takeIfSettled() {
				continue
			}
			result, err := w.refresh(ctx)
			if w.onRefresh != nil {
				w.onRefresh(result, err)
			}
			if err != nil {
				w.logDebug("Refresh failed: %v", err)
			} else {
				w.logDebug("Refreshed: %d items, %d edges in %s",
					result.Items, result.Edges, result.Elapsed)
			}
		}
	}
}

// takeIfSettled clears the dirty flag when the last event is old enough.
func (w *Watcher) takeIfSettled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.dirty || time.Since(w.dirtyAt) < w.debounceDelay {
		return false
	}
	w.dirty = false
	return true
}

// addWatchRecursive adds a directory and all subdirectories to the watcher.
func (w *Watcher) addWatchRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip unreadable entries
		}
		if info.IsDir() {
			if w.shouldIgnoreDir(path) {
				return filepath.SkipDir
			}
			if err := w.fsWatcher.Add(path); err != nil {
				w.logDebug("Failed to watch %s: %v", path, err)
			}
		}
		return nil
	})
}

// shouldIgnore returns true if the path should not trigger a rescan.
// Index writes live under .packsmith and must not feed back into the
// watcher.
func (w *Watcher) shouldIgnore(path string) bool {
	rel, err := filepath.Rel(w.projectPath, path)
	if err != nil {
		return false
	}
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		if ignoredDirName(part) {
			return true
		}
	}
	return false
}

// shouldIgnoreDir returns true if the directory should not be watched.
func (w *Watcher) shouldIgnoreDir(path string) bool {
	return ignoredDirName(filepath.Base(path))
}

func ignoredDirName(name string) bool {
	return name == ".packsmith" || name == ".git" || name == "node_modules"
}

// logDebug logs a debug message if debug mode is enabled.
func (w *Watcher) logDebug(format string, args ...interface{}) {
	if w.debug {
		fmt.Fprintf(os.Stderr, "[packsmith-watcher] "+format+"\n", args...)
	}
}
