// Package watch reports when task sound files disappear or come back.
package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/chime/internal/core/ports/driven"
	"github.com/custodia-labs/chime/internal/logger"
)

// Ensure FileWatcher implements the interface.
var _ driven.FileWatcher = (*FileWatcher)(nil)

// FileWatcher watches the parent directories of registered files.
// Watching directories rather than files keeps working when a file is
// deleted and recreated, which drops a direct file watch on most
// platforms.
type FileWatcher struct {
	w *fsnotify.Watcher

	mu     sync.Mutex
	files  map[string]bool // path -> exists
	dirs   map[string]int  // dir -> watched files in it
	closed bool
}

// NewFileWatcher creates a watcher. Call Close when done.
func NewFileWatcher() (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &FileWatcher{
		w:     w,
		files: make(map[string]bool),
		dirs:  make(map[string]int),
	}, nil
}

// Add starts watching path. Watching the same path twice is a no-op.
func (fw *FileWatcher) Add(path string) error {
	path = filepath.Clean(path)

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.closed {
		return errors.New("watcher closed")
	}
	if _, ok := fw.files[path]; ok {
		return nil
	}

	dir := filepath.Dir(path)
	if fw.dirs[dir] == 0 {
		if err := fw.w.Add(dir); err != nil {
			return err
		}
	}
	fw.dirs[dir]++
	fw.files[path] = exists(path)
	return nil
}

// Remove stops watching path.
func (fw *FileWatcher) Remove(path string) error {
	path = filepath.Clean(path)

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if _, ok := fw.files[path]; !ok {
		return nil
	}
	delete(fw.files, path)

	dir := filepath.Dir(path)
	fw.dirs[dir]--
	if fw.dirs[dir] > 0 {
		return nil
	}
	delete(fw.dirs, dir)
	if fw.closed {
		return nil
	}
	return fw.w.Remove(dir)
}

// Run delivers events to handle until ctx is cancelled or Close is called.
// handle is called from this goroutine only, once per state change.
func (fw *FileWatcher) Run(ctx context.Context, handle func(driven.FileEvent)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.w.Events:
			if !ok {
				return nil
			}
			if change, changed := fw.observe(ev); changed {
				handle(change)
			}
		case err, ok := <-fw.w.Errors:
			if !ok {
				return nil
			}
			logger.L().Warn().Err(err).Msg("file watcher error")
		}
	}
}

// observe re-checks a watched file after any event on it and reports
// whether its existence changed.
func (fw *FileWatcher) observe(ev fsnotify.Event) (driven.FileEvent, bool) {
	path := filepath.Clean(ev.Name)

	fw.mu.Lock()
	defer fw.mu.Unlock()

	was, watched := fw.files[path]
	if !watched {
		return driven.FileEvent{}, false
	}
	now := exists(path)
	if now == was {
		return driven.FileEvent{}, false
	}
	fw.files[path] = now

	logger.L().Debug().Str("path", path).Str("op", ev.Op.String()).Bool("exists", now).Msg("watched file changed")

	change := driven.FileVanished
	if now {
		change = driven.FileAppeared
	}
	return driven.FileEvent{Path: path, Change: change}, true
}

// Close releases the underlying watcher and ends Run.
func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.closed {
		return nil
	}
	fw.closed = true
	return fw.w.Close()
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
