// Package db defines the key-value store contract used for embedding
// caching and budget persistence. The vector data itself lives in the
// chromem-backed collection store, not here.
package db

import (
	"context"
	"time"
)

// Store is the key-value facade. Consumers depend on the narrow
// sub-interfaces (ISP); the facade exists for wiring in main.
type Store interface {
	Pinger
	KVStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides simple key-value operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	IncrBy(ctx context.Context, key string, val int64) error
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
}
