// Package watch re-runs an action every time a file changes on disk
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DefaultDebounce is how long to wait for writes to settle before running the action
const DefaultDebounce = 100 * time.Millisecond

// Options contains options for File
type Options struct {
	// Debounce delays the action until no new events arrive for this long. Defaults to DefaultDebounce.
	Debounce time.Duration
	// Logger receives watch errors and action failures. Defaults to a no-op logger.
	Logger *zap.Logger
}

// File runs 'do' right away, then again each time the file at osPath is written, created, or moved into place.
// Returns once the watcher is running. The returned channel is closed after ctx is canceled and the watcher stops.
//
// Errors returned by 'do' are logged, and watching continues.
func File(ctx context.Context, osPath string, options Options, do func() error) (<-chan struct{}, error) {
	if options.Debounce <= 0 {
		options.Debounce = DefaultDebounce
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	osPath, err := filepath.Abs(osPath)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the parent directory: editors often save by renaming a new file over the old one
	if err := watcher.Add(filepath.Dir(osPath)); err != nil {
		watcher.Close()
		return nil, errors.Wrap(err, "failed to watch directory")
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer watcher.Close()
		timer := time.NewTimer(0) // fire right away
		defer timer.Stop()

		for {
			select {
			case <-timer.C:
				options.Logger.Debug("Running watch action", zap.String("path", osPath))
				if err := do(); err != nil {
					options.Logger.Error("Watch action failed", zap.String("path", osPath), zap.Error(err))
				}
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if isChange(event, osPath) {
					timer.Reset(options.Debounce)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				options.Logger.Warn("File watcher error", zap.String("path", osPath), zap.Error(err))
			}
		}
	}()
	return done, nil
}

func isChange(event fsnotify.Event, osPath string) bool {
	if filepath.Clean(event.Name) != osPath {
		return false
	}
	return event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Rename)
}
