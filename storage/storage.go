// Package storage defines the durable key-value primitive the session store
// persists through, with file-backed and Redis-backed implementations.
//
// The contract is deliberately small: string keys, opaque byte values, no
// transactions. Callers that need multi-key consistency must tolerate partial
// writes; the session store does.
package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when the key has never been written or
	// has been removed.
	ErrNotFound = errors.New("storage: key not found")

	// ErrUnavailable wraps backend transport failures (disk, network). It is
	// distinct from ErrNotFound so callers can tell absence from outage.
	ErrUnavailable = errors.New("storage: backend unavailable")
)

// Store is the durable local key-value contract. Implementations must be
// safe for concurrent use. Values are opaque bytes; encoding belongs to the
// caller.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
