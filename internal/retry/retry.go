package retry

import (
	"context"
	"net/http"
	"time"

	ai "github.com/Mostlime12195/Libre-Assistant-sub000"
)

// IsRetryable reports whether an error is worth another attempt. Only
// transport failures qualify, and only when the status suggests a transient
// condition. Cancellation is never retryable.
func IsRetryable(err error) bool {
	if err == nil || ai.IsCanceled(err) {
		return false
	}
	if !ai.IsTransport(err) {
		return false
	}
	switch status := ai.StatusCodeOf(err); {
	case status == 0:
		// Connection-level failure with no response.
		return true
	case status == http.StatusTooManyRequests:
		return true
	case status >= 500:
		return true
	default:
		return false
	}
}

// Do runs fn up to cfg.MaxAttempts times, sleeping between attempts.
// Context cancellation interrupts the backoff wait.
func Do[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !IsRetryable(err) {
			return zero, err
		}
		if attempt < cfg.MaxAttempts-1 {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(cfg.Delay(attempt)):
			}
		}
	}
	return zero, lastErr
}

// DoStream retries stream establishment. Once fn returns a channel the
// stream is live and no further attempts happen.
func DoStream[T any](ctx context.Context, cfg Config, fn func() (<-chan T, error)) (<-chan T, error) {
	var lastErr error

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		ch, err := fn()
		if err == nil {
			return ch, nil
		}
		lastErr = err

		if !IsRetryable(err) {
			return nil, err
		}
		if attempt < cfg.MaxAttempts-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(cfg.Delay(attempt)):
			}
		}
	}
	return nil, lastErr
}
