package cli

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	// watchDebounce is how long a manifest must be quiet before a rebuild.
	watchDebounce = 200 * time.Millisecond
	watchTick     = 50 * time.Millisecond
)

// watchManifests calls rebuild each time one of paths changes and the change
// has settled. It blocks until ctx is done.
//
// Directories are watched instead of files because editors commonly replace
// a file by rename, which drops a watch on the file itself.
func watchManifests(ctx context.Context, paths []string, rebuild func()) error {
	logger := loggerFromContext(ctx)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	tracked := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		tracked[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return err
		}
	}
	logger.Infof("Watching %s for changes", pluralize(len(tracked), "manifest"))

	ticker := time.NewTicker(watchTick)
	defer ticker.Stop()

	var last time.Time // time of the latest unprocessed event
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil || !tracked[abs] {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("manifest changed", "path", ev.Name, "op", ev.Op.String())
			last = time.Now()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)
		case <-ticker.C:
			if !last.IsZero() && time.Since(last) >= watchDebounce {
				last = time.Time{}
				rebuild()
			}
		}
	}
}
