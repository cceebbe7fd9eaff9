package storage

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotFound is returned when a key does not exist in the store.
var ErrObjectNotFound = errors.New("object not found")

// ObjectStore persists raw recording payloads under opaque keys.
type ObjectStore interface {
	// Upload stores the contents of r under key, replacing any existing object.
	Upload(ctx context.Context, key string, r io.Reader, contentType string) error

	// Download returns the object stored under key.
	Download(ctx context.Context, key string) ([]byte, error)

	// Delete removes the object stored under key. Deleting a missing
	// object is not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether an object is stored under key.
	Exists(ctx context.Context, key string) (bool, error)
}
