package s3

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

// Store holds content submitted for moderation by reference.
type Store interface {
	// Upload stores data under key, replacing any previous object.
	Upload(ctx context.Context, key string, data []byte) error

	// Download returns the object stored under key, or ErrNotFound.
	Download(ctx context.Context, key string) ([]byte, error)
}
