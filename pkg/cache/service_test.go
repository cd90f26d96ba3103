package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestCache(t *testing.T) (Service, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewService(client), mr
}

func TestCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCache(t)

	in := payload{Name: "yoga", Count: 3}
	require.NoError(t, svc.Set(ctx, "k1", in, time.Minute))

	var out payload
	require.NoError(t, svc.Get(ctx, "k1", &out))
	assert.Equal(t, in, out)

	assert.True(t, svc.Exists(ctx, "k1"))
}

func TestCacheMiss(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCache(t)

	var out payload
	err := svc.Get(ctx, "absent", &out)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCacheExpiry(t *testing.T) {
	ctx := context.Background()
	svc, mr := newTestCache(t)

	require.NoError(t, svc.Set(ctx, "k1", payload{Name: "x"}, 30*time.Second))
	mr.FastForward(time.Minute)

	var out payload
	assert.ErrorIs(t, svc.Get(ctx, "k1", &out), ErrCacheMiss)
}

func TestCacheDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCache(t)

	require.NoError(t, svc.Set(ctx, "a:1", payload{}, time.Minute))
	require.NoError(t, svc.Set(ctx, "a:2", payload{}, time.Minute))
	require.NoError(t, svc.Set(ctx, "b:1", payload{}, time.Minute))

	require.NoError(t, svc.Delete(ctx, "a:1"))
	assert.False(t, svc.Exists(ctx, "a:1"))

	require.NoError(t, svc.DeletePattern(ctx, "a:*"))
	assert.False(t, svc.Exists(ctx, "a:2"))
	assert.True(t, svc.Exists(ctx, "b:1"))
}
