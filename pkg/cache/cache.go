// Package cache stores rendered diagram artifacts.
//
// Keys are content-addressed: a [Keyer] hashes the path, the per-set flags,
// the drawing preset and the output format, so a changed input always lands
// on a new key and no entry ever has to be invalidated.
//
// Three backends share the [Cache] interface:
//
//   - [NullCache] never stores anything (caching disabled).
//   - [FileCache] keeps entries under a local directory, for the CLI.
//   - [RedisCache] shares entries between server replicas.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry. A miss is reported through
// the bool result, not as an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// DefaultTTL is how long rendered artifacts are kept.
const DefaultTTL = 7 * 24 * time.Hour
