package distlock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestRedisLockMutualExclusion(t *testing.T) {
	client := setupRedis(t)
	ctx := context.Background()

	a := New(client, nil, "report:abc", time.Minute)
	b := New(client, nil, "report:abc", time.Minute)

	ok, err := a.TryAcquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = b.TryAcquire(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "second holder must not acquire the same key")

	require.NoError(t, a.Release(ctx))

	ok, err = b.TryAcquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok, "lock must be free after release")
}

func TestRedisLockDifferentKeysIndependent(t *testing.T) {
	client := setupRedis(t)
	ctx := context.Background()

	a := New(client, nil, "report:one", time.Minute)
	b := New(client, nil, "report:two", time.Minute)

	ok, err := a.TryAcquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = b.TryAcquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLockReleaseOnlyIfOwned(t *testing.T) {
	client := setupRedis(t)
	ctx := context.Background()

	a := New(client, nil, "report:abc", time.Minute)
	b := New(client, nil, "report:abc", time.Minute)

	ok, err := a.TryAcquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	// b never held the lock; releasing must not free a's lock.
	require.NoError(t, b.Release(ctx))

	ok, err = b.TryAcquire(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "a still owns the lock")
}

func TestNewFallsBackToAdvisoryLock(t *testing.T) {
	l := New(nil, nil, "report:abc", time.Minute)
	_, isAdvisory := l.(*advisoryLock)
	assert.True(t, isAdvisory)
}
