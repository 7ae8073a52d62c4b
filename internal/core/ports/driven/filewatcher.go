package driven

import "context"

// FileChange is the kind of change observed on a watched file.
type FileChange int

const (
	// FileAppeared means the file exists again.
	FileAppeared FileChange = iota
	// FileVanished means the file was removed or renamed away.
	FileVanished
)

// FileEvent reports a change to a watched path.
type FileEvent struct {
	Path   string
	Change FileChange
}

// FileWatcher reports when watched files disappear or come back.
type FileWatcher interface {
	// Add starts watching path. Watching the same path twice is a no-op.
	Add(path string) error

	// Remove stops watching path.
	Remove(path string) error

	// Run delivers events to handle until ctx is cancelled or Close is called.
	Run(ctx context.Context, handle func(FileEvent)) error

	// Close releases the underlying watcher.
	Close() error
}
