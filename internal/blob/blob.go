// Package blob abstracts the key-value blob store the knowledge base is
// persisted to: a single serialized array under one fixed key, over an
// in-memory map, a local bbolt file, or Redis.
package blob

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("blob: key not found")

// Store is a minimal string-keyed blob store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
