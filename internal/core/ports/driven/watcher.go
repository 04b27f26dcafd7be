package driven

import "context"

// FileOperation identifies what happened to a watched file.
type FileOperation string

const (
	FileCreated  FileOperation = "created"
	FileModified FileOperation = "modified"
	FileDeleted  FileOperation = "deleted"
)

// FileEvent is a change to a file in a watched directory.
type FileEvent struct {
	Path      string
	Operation FileOperation
}

// FileWatcher monitors a directory for document changes. Used by watch
// mode to ingest files as they appear.
type FileWatcher interface {
	// Watch starts monitoring the directory and emits events until the
	// context is cancelled. The returned channel is closed on stop.
	Watch(ctx context.Context, dir string) (<-chan FileEvent, error)

	// Stop stops the watcher and releases resources.
	Stop() error
}
