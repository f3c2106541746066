package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"threadview/internal/logging"
)

// Watcher observes the styles file and fires a callback when it is rewritten.
// The callback runs on the watcher goroutine; callers must marshal any cache
// invalidation back onto the layout thread themselves (e.g. via a bubbletea
// message).
type Watcher struct {
	path string
	stop chan struct{}
	log  *logging.Logger
}

// WatchStyles starts watching the style file at path. onChange fires after
// every write, create or rename of the file.
func WatchStyles(path string, log *logging.Logger, onChange func()) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory, not the file: editors replace config files by
	// rename, which drops a direct file watch.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	w := &Watcher{path: path, stop: make(chan struct{}), log: log}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-w.stop:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				w.log.Debug().Str("path", path).Msg("style file changed")
				onChange()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				w.log.Warn().Err(err).Msg("style watcher error")
			}
		}
	}()

	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() {
	close(w.stop)
}
