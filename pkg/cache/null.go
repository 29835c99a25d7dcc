package cache

import (
	"context"
	"time"
)

// NullCache disables caching. Every format and replay misses, so the
// pipeline recomputes the snapshot each time and drops the encoded result
// instead of storing it. The "none" backend and --no-cache both use it.
type NullCache struct{}

// NewNullCache returns the disabled cache.
func NewNullCache() Cache {
	return NullCache{}
}

// Get reports a miss for every key.
func (NullCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards the snapshot.
func (NullCache) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

func (NullCache) Delete(context.Context, string) error { return nil }

func (NullCache) Close() error { return nil }

var _ Cache = NullCache{}
