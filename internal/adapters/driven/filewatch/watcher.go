// Package filewatch provides the FileWatcher adapter using fsnotify.
package filewatch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/briefing/internal/core/ports/driven"
	"github.com/custodia-labs/briefing/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.FileWatcher = (*Watcher)(nil)

// DefaultSettle is how long a file must be quiet before a change is reported.
const DefaultSettle = 250 * time.Millisecond

// Watcher reports changes to a single file.
// The parent directory is watched so files replaced by rename are still seen.
type Watcher struct {
	settle time.Duration
}

// New creates a watcher with the given settle delay (0 uses DefaultSettle).
func New(settle time.Duration) *Watcher {
	if settle <= 0 {
		settle = DefaultSettle
	}
	return &Watcher{settle: settle}
}

// Watch emits once per burst of writes to path until ctx is done.
func (w *Watcher) Watch(ctx context.Context, path string) (<-chan struct{}, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	out := make(chan struct{}, 1)
	go w.run(ctx, fw, abs, out)
	return out, nil
}

func (w *Watcher) run(ctx context.Context, fw *fsnotify.Watcher, path string, out chan<- struct{}) {
	defer close(out)
	defer fw.Close()

	var settle <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if handleFsEvent(event, path) {
				settle = time.After(w.settle)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("file watcher error: %v", err)
		case <-settle:
			settle = nil
			logger.Debug("filewatch: %s changed", path)
			select {
			case out <- struct{}{}:
			default:
			}
		}
	}
}

// handleFsEvent reports whether event changes the content of path.
func handleFsEvent(event fsnotify.Event, path string) bool {
	if filepath.Clean(event.Name) != path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
