package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// watchDelay coalesces the bursts of events editors produce on save.
const watchDelay = 500 * time.Millisecond

// watcher calls a reload function when a single file changes.
type watcher struct {
	logger zerolog.Logger
	delay  time.Duration

	mu      sync.Mutex // serializes reloads
	stopped bool
}

// Watch blocks until ctx is done, calling reload after path is written or
// re-created. The parent directory is watched so that editors which save
// by renaming a temp file over path are seen. No reload runs after Watch
// returns; one already in progress is waited for.
func (w *watcher) Watch(ctx context.Context, path string, reload func() error) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	w.logger.Info().Str("path", abs).Msg("watching for changes")

	w.mu.Lock()
	w.stopped = false
	w.mu.Unlock()

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
		w.mu.Lock()
		w.stopped = true
		w.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("document changed")

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.delay, func() {
				w.mu.Lock()
				defer w.mu.Unlock()
				if w.stopped {
					return
				}
				if err := reload(); err != nil {
					w.logger.Error().Err(err).Msg("reload failed")
					return
				}
				w.logger.Info().Msg("reloaded")
			})

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error().Err(err).Msg("watcher error")
		}
	}
}
