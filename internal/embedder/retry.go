package embedder

import (
	"context"
	"time"
)

// Retry policy for provider API calls.
const (
	MaxRetries     = 3
	initialBackoff = 100 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// retry runs call up to MaxRetries times, doubling the wait between
// attempts from base up to maxBackoff. A cancelled context stops
// retrying immediately and reports the context error.
func retry[T any](ctx context.Context, base time.Duration, call func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	delay := base
	for attempt := 0; attempt < MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
			if delay > maxBackoff {
				delay = maxBackoff
			}
		}

		result, err := call()
		if err == nil {
			return result, nil
		}
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		lastErr = err
	}

	return zero, lastErr
}
