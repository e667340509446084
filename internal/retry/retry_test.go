package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/Mostlime12195/Libre-Assistant-sub000"
)

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestDoSucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	result, err := Do(context.Background(), fastConfig(3), func() (string, error) {
		calls++
		if calls < 3 {
			return "", ai.NewTransportError("connection reset", 0, nil)
		}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, calls)
}

func TestDoStopsOnNonRetryable(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), fastConfig(5), func() (string, error) {
		calls++
		return "", ai.NewProtocolError("invalid_request_error", "bad payload")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.True(t, ai.IsProtocol(err))
}

func TestDoExhaustsAttempts(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), fastConfig(3), func() (int, error) {
		calls++
		return 0, ai.NewTransportError("upstream unavailable", 503, nil)
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 503, ai.StatusCodeOf(err))
}

func TestDoRespectsContextDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := Config{MaxAttempts: 3, InitialDelay: time.Hour, MaxDelay: time.Hour, Multiplier: 1}

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := Do(ctx, cfg, func() (int, error) {
		return 0, ai.NewTransportError("flaky", 500, nil)
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDoStreamDisabledSingleAttempt(t *testing.T) {
	calls := 0
	_, err := DoStream(context.Background(), Disabled(), func() (<-chan int, error) {
		calls++
		return nil, ai.NewTransportError("down", 502, nil)
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ai.NewTransportError("reset", 0, nil)))
	assert.True(t, IsRetryable(ai.NewTransportError("rate limited", 429, nil)))
	assert.True(t, IsRetryable(ai.NewTransportError("bad gateway", 502, nil)))
	assert.False(t, IsRetryable(ai.NewTransportError("unauthorized", 401, nil)))
	assert.False(t, IsRetryable(ai.NewProtocolError("server_error", "boom")))
	assert.False(t, IsRetryable(ai.NewCanceledError(context.Canceled)))
	assert.False(t, IsRetryable(errors.New("plain")))
	assert.False(t, IsRetryable(nil))
}

func TestDelayGrowsAndCaps(t *testing.T) {
	cfg := Config{InitialDelay: time.Second, MaxDelay: 4 * time.Second, Multiplier: 2}
	assert.Equal(t, time.Second, cfg.Delay(0))
	assert.Equal(t, 2*time.Second, cfg.Delay(1))
	assert.Equal(t, 4*time.Second, cfg.Delay(2))
	assert.Equal(t, 4*time.Second, cfg.Delay(5))
}
