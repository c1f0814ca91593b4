package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakerPassesThrough(t *testing.T) {
	b := New(DefaultConfig("test-pass"))

	result, err := b.ExecuteWithContext(context.Background(), func() (interface{}, error) {
		return true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, true, result)
	assert.Equal(t, "test-pass", b.Name())
	assert.Equal(t, uint32(1), b.Counts().TotalSuccesses)
}

func TestBreakerOpensAfterFailures(t *testing.T) {
	var transitions []gobreaker.State

	cfg := DefaultConfig("test-open")
	cfg.Timeout = time.Minute
	cfg.OnStateChange = func(_ string, _, to gobreaker.State) {
		transitions = append(transitions, to)
	}
	b := New(cfg)

	boom := errors.New("db down")
	for range 3 {
		_, err := b.ExecuteWithContext(context.Background(), func() (interface{}, error) {
			return nil, boom
		})
		require.ErrorIs(t, err, boom)
	}

	assert.True(t, b.IsOpen())
	assert.Equal(t, []gobreaker.State{gobreaker.StateOpen}, transitions)

	called := false
	_, err := b.ExecuteWithContext(context.Background(), func() (interface{}, error) {
		called = true
		return nil, nil
	})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.False(t, called)
}

func TestBreakerHonoursCancelledContext(t *testing.T) {
	b := New(DefaultConfig("test-ctx"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	_, err := b.ExecuteWithContext(ctx, func() (interface{}, error) {
		called = true
		return nil, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
	assert.Equal(t, gobreaker.StateClosed, b.State())
}
