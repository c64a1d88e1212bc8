package storage

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrNotExist is returned by Get when nothing is stored under the path.
	ErrNotExist = errors.New("stored object not found")
	// ErrInvalidPath is returned for paths that escape the storage root.
	ErrInvalidPath = errors.New("invalid storage path")
)

// Storage stores room type photos and their thumbnails.
type Storage interface {
	// Save writes content under the relative path, replacing any previous object.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the object stored under path. The caller closes the reader.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the object. Deleting a missing object is not an error.
	Delete(ctx context.Context, path string) error
}
