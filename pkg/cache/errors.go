package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNetwork wraps failures to reach the redis backend: dial errors,
	// timeouts and dropped connections. Only these are retried.
	ErrNetwork = errors.New("cache backend unreachable")

	// ErrCorrupt means a stored snapshot no longer decodes. Callers treat
	// it as a miss and recompute.
	ErrCorrupt = errors.New("corrupt cache entry")
)

// RetryableError marks a backend failure worth another attempt.
type RetryableError struct{ Err error }

// Retryable marks err for retry. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err, or anything it wraps, was marked with
// [Retryable].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// backoff bounds how long a cache lookup may stall a format or replay.
type backoff struct {
	attempts int
	first    time.Duration // doubled after every failed attempt
}

// redisBackoff keeps the worst case near 300ms, after which the pipeline
// gives up on the cache and computes the layout itself.
var redisBackoff = backoff{attempts: 3, first: 100 * time.Millisecond}

// RetryWithBackoff runs fn until it succeeds, returns an error not marked
// [Retryable], or the attempts run out. The last error is returned.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return redisBackoff.run(ctx, fn)
}

func (b backoff) run(ctx context.Context, fn func() error) error {
	delay := b.first
	var err error
	for i := range b.attempts {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if i == b.attempts-1 {
			break
		}
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
	}
	return err
}
