// Package watcher notifies when the file backing the open document is
// changed by another program.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"texteditor/internal/logger"
)

const changeOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

// Watcher watches the directory of a single file, since editors and
// tools often replace files by renaming over them.
type Watcher struct {
	fs       *fsnotify.Watcher
	onChange func(path string)
	logger   logger.Logger

	mu     sync.Mutex
	path   string
	dir    string
	closed bool
	done   chan struct{}
}

// New starts a watcher. onChange is called from the watcher goroutine.
func New(onChange func(path string), log logger.Logger) (*Watcher, error) {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	w := &Watcher{
		fs:       fsw,
		onChange: onChange,
		logger:   log,
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Watch replaces the watched file with path
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	if w.dir != dir {
		if w.dir != "" {
			w.fs.Remove(w.dir)
		}
		if err := w.fs.Add(dir); err != nil {
			w.dir = ""
			w.path = ""
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		w.dir = dir
	}
	w.path = abs

	w.logger.Debug("Watcher", "watching file", map[string]interface{}{"path": abs})
	return nil
}

// Clear stops watching without closing the watcher
func (w *Watcher) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.dir != "" && !w.closed {
		w.fs.Remove(w.dir)
	}
	w.dir = ""
	w.path = ""
}

// Shutdown closes the watcher and waits for its goroutine to exit
func (w *Watcher) Shutdown() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	w.mu.Unlock()

	w.fs.Close()
	<-w.done
}

func (w *Watcher) run() {
	defer close(w.done)

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !event.Has(changeOps) {
				continue
			}
			if path := w.matches(event.Name); path != "" {
				w.onChange(path)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher", err, nil)
		}
	}
}

func (w *Watcher) matches(name string) string {
	abs, err := filepath.Abs(name)
	if err != nil {
		return ""
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if abs == w.path {
		return w.path
	}
	return ""
}
