package infra

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func newTestBreaker(clock *time.Time) *Breaker {
	b := NewBreaker(BreakerConfig{FailureThreshold: 2, SuccessThreshold: 1, OpenTimeout: time.Minute})
	b.now = func() time.Time { return *clock }
	return b
}

func TestBreaker_TripsAfterThreshold(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	b := newTestBreaker(&now)

	assert.ErrorIs(t, b.Execute(func() error { return errBoom }), errBoom)
	assert.Equal(t, BreakerClosed, b.State())
	assert.ErrorIs(t, b.Execute(func() error { return errBoom }), errBoom)
	assert.Equal(t, BreakerOpen, b.State())

	called := false
	err := b.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestBreaker_HalfOpenRecovers(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	b := newTestBreaker(&now)
	_ = b.Execute(func() error { return errBoom })
	_ = b.Execute(func() error { return errBoom })
	require.Equal(t, BreakerOpen, b.State())

	now = now.Add(time.Minute)
	assert.Equal(t, BreakerHalfOpen, b.State())
	require.NoError(t, b.Execute(func() error { return nil }))
	assert.Equal(t, BreakerClosed, b.State())
}

func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	b := newTestBreaker(&now)
	_ = b.Execute(func() error { return errBoom })
	_ = b.Execute(func() error { return errBoom })

	now = now.Add(2 * time.Minute)
	assert.ErrorIs(t, b.Execute(func() error { return errBoom }), errBoom)
	assert.Equal(t, BreakerOpen, b.State())
}

func TestBreaker_SuccessResetsFailureCount(t *testing.T) {
	now := time.Now()
	b := newTestBreaker(&now)
	_ = b.Execute(func() error { return errBoom })
	_ = b.Execute(func() error { return nil })
	_ = b.Execute(func() error { return errBoom })
	assert.Equal(t, BreakerClosed, b.State())
}

func TestBreaker_ContextErrorsDoNotTrip(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	b := newTestBreaker(&now)

	for i := 0; i < 5; i++ {
		assert.ErrorIs(t, b.Execute(func() error { return context.Canceled }), context.Canceled)
		assert.ErrorIs(t, b.Execute(func() error {
			return fmt.Errorf("redis get: %w", context.DeadlineExceeded)
		}), context.DeadlineExceeded)
	}
	assert.Equal(t, BreakerClosed, b.State())

	// a real failure still counts from zero
	_ = b.Execute(func() error { return errBoom })
	assert.Equal(t, BreakerClosed, b.State())
}

func TestCache_CancelledRequestsKeepBreakerClosed(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer rdb.Close()
	c := NewCache(rdb, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var v map[string]string
	for i := 0; i < 5; i++ {
		err := c.Get(ctx, "product:code:SP10", &v)
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, BreakerClosed, c.BreakerState())
}

func TestBreakerState_String(t *testing.T) {
	assert.Equal(t, "closed", BreakerClosed.String())
	assert.Equal(t, "open", BreakerOpen.String())
	assert.Equal(t, "half-open", BreakerHalfOpen.String())
}

func TestCache_NilClientIsAlwaysAMiss(t *testing.T) {
	c := NewCache(nil, time.Minute)
	var v map[string]string
	assert.ErrorIs(t, c.Get(context.Background(), "k", &v), ErrCacheMiss)
	assert.NoError(t, c.Set(context.Background(), "k", map[string]string{"a": "b"}))
	assert.NoError(t, c.Delete(context.Background(), "k"))
	assert.Equal(t, BreakerClosed, c.BreakerState())
}
