package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, cfg *Config) *RateLimiter {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRateLimiter(client, cfg)
}

func TestIsAllowedWithinLimit(t *testing.T) {
	ctx := context.Background()
	limiter := newTestLimiter(t, &Config{
		Enabled:             true,
		WindowDuration:      time.Minute,
		ReservationRequests: 3,
	})

	for i := 0; i < 3; i++ {
		result, err := limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypeReservation)
		require.NoError(t, err)
		assert.True(t, result.Allowed, "request %d should be allowed", i+1)
	}

	result, err := limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypeReservation)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, 3, result.Limit)
}

func TestLimitsArePerIP(t *testing.T) {
	ctx := context.Background()
	limiter := newTestLimiter(t, &Config{
		Enabled:             true,
		WindowDuration:      time.Minute,
		ReservationRequests: 1,
	})

	first, err := limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypeReservation)
	require.NoError(t, err)
	assert.True(t, first.Allowed)

	blocked, err := limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypeReservation)
	require.NoError(t, err)
	assert.False(t, blocked.Allowed)

	other, err := limiter.IsAllowed(ctx, "10.0.0.2", RateLimitTypeReservation)
	require.NoError(t, err)
	assert.True(t, other.Allowed)
}

func TestDisabledLimiterAllowsEverything(t *testing.T) {
	ctx := context.Background()
	limiter := newTestLimiter(t, &Config{
		Enabled:         false,
		WindowDuration:  time.Minute,
		DefaultRequests: 1,
	})

	for i := 0; i < 10; i++ {
		result, err := limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypeDefault)
		require.NoError(t, err)
		assert.True(t, result.Allowed)
	}
}

func TestGetRateLimitType(t *testing.T) {
	assert.Equal(t, RateLimitTypeHealth, getRateLimitType("/health", "GET"))
	assert.Equal(t, RateLimitTypeReservation, getRateLimitType("/api/v1/holds", "POST"))
	assert.Equal(t, RateLimitTypeReservation, getRateLimitType("/api/v1/bookings", "POST"))
	assert.Equal(t, RateLimitTypePublic, getRateLimitType("/api/v1/bookings/:bookingId", "GET"))
	assert.Equal(t, RateLimitTypePublic, getRateLimitType("/api/v1/events/:eventId/availability", "GET"))
	assert.Equal(t, RateLimitTypeDefault, getRateLimitType("/something-else", "GET"))
}
