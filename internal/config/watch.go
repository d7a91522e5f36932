package config

import (
	"directorcore/internal/debug"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads path into store whenever the file changes on disk,
// applying the new config's logging settings to logger, matching the
// pack's fsnotify-driven hot-reload ethos (devkit's authoring hot-reload
// in the teacher repo). Watcher errors are logged and watching goes on;
// it blocks until the done channel closes or the watcher's channels close,
// and returns an error only if the watcher cannot be set up. Callers should run it in its own goroutine.
func Watch(path string, store *Store, logger *debug.Logger, done <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}

	for {
		select {
		case <-done:
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := Load(path)
			if err != nil {
				if logger != nil {
					logger.LogSystem(debug.LogLevelWarning, "config reload failed", map[string]interface{}{"error": err.Error()})
				}
				continue
			}
			store.set(cfg)
			if logger != nil {
				cfg.ApplyLogging(logger)
				logger.LogSystem(debug.LogLevelInfo, "config reloaded", nil)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if logger != nil {
				logger.LogSystem(debug.LogLevelError, "config watch error", map[string]interface{}{"error": err.Error()})
			}
		}
	}
}
