package ports

import "context"

type WriteKind string

const (
	WriteCreate WriteKind = "create"
	WriteUpdate WriteKind = "update"
	WriteDelete WriteKind = "delete"
)

// Write is one user-submitted change to a collection.
type Write[T any] struct {
	Kind WriteKind
	ID   string
	Row  T
}

// WriteResult reports the outcome of a submitted write. On OK the caller is
// expected to reload the collection; on failure nothing cached has changed.
type WriteResult[T any] struct {
	OK  bool
	Row T
	Err error
}

// CollectionService is the read/write protocol for one collection.
type CollectionService[T any] interface {
	Name() string
	List(ctx context.Context, q Query) ([]T, error)
	Submit(ctx context.Context, w Write[T]) WriteResult[T]
	Reload(ctx context.Context) ([]T, error)
}
