// Package cache stores formatted layouts and replay results between runs.
//
// Formatting is cheap compared to a network round trip but not free for
// large trees, and scripted replays can be long. The CLI keeps results in a
// [FileCache] under the user cache directory; the HTTP service can share one
// [RedisCache] between instances. [NullCache] disables caching.
//
// Keys are derived by a [Keyer] from a content hash of the input plus every
// option that influences the output, so a hit is always safe to reuse.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values.
const (
	// TTLFormat applies to formatted snapshots. Formatting is deterministic,
	// so the TTL only bounds disk usage.
	TTLFormat = 7 * 24 * time.Hour

	// TTLReplay applies to the results of replaying a script.
	TTLReplay = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
// Get reports a miss with ok == false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
