package config

import (
	"os"
	"path/filepath"

	"EchoFM/logger"

	"github.com/fsnotify/fsnotify"
)

// Watch monitors the .env file and invokes onChange with a freshly loaded
// Config whenever it is rewritten. Editors often replace the file instead of
// writing in place, so Create events count as changes too.
// The returned stop function closes the watcher.
func Watch(envPath string, onChange func(*Config)) (func(), error) {
	if envPath == "" {
		envPath = ".env"
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory, not the file: rename-and-replace would otherwise
	// silently detach the watch.
	dir := filepath.Dir(envPath)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	target := filepath.Clean(envPath)

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if _, err := os.Stat(target); err != nil {
					continue
				}
				logger.Info("config file changed, reloading", logger.String("path", target))
				onChange(Load())
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher error", logger.ErrorField(err))
			}
		}
	}()

	return func() { watcher.Close() }, nil
}
