// Package retry implements exponential backoff for transient transport
// failures. Streaming calls use it only for connection establishment; a
// stream that dies mid-flight is never replayed.
package retry

import (
	"math"
	"math/rand"
	"time"
)

// Config holds backoff parameters.
type Config struct {
	// MaxAttempts is the total number of attempts including the first.
	MaxAttempts int

	// InitialDelay is the base delay before the first retry.
	InitialDelay time.Duration

	// MaxDelay caps the delay between attempts.
	MaxDelay time.Duration

	// Multiplier grows the delay between consecutive attempts.
	Multiplier float64

	// Jitter scales each delay by (1 + random(-Jitter, +Jitter)).
	Jitter float64
}

// DefaultConfig returns a conservative backoff: 3 attempts, 500ms initial
// delay doubling up to 10s, 10% jitter.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  3,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     10 * time.Second,
		Multiplier:   2.0,
		Jitter:       0.1,
	}
}

// Disabled returns a single-attempt configuration.
func Disabled() Config {
	return Config{MaxAttempts: 1}
}

// Delay returns the backoff delay for a zero-indexed attempt.
func (c Config) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}

	delay := float64(c.InitialDelay) * math.Pow(c.Multiplier, float64(attempt))
	if delay > float64(c.MaxDelay) {
		delay = float64(c.MaxDelay)
	}
	if c.Jitter > 0 {
		delay *= 1.0 + (rand.Float64()*2-1)*c.Jitter
	}
	return time.Duration(delay)
}
