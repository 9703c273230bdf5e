package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStorage(t *testing.T) (*Storage, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	t.Cleanup(mr.Close)

	storage := &Storage{
		client: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
	}
	t.Cleanup(func() { _ = storage.Close() })

	return storage, mr
}

func TestRedisStorage_GetMissingKey(t *testing.T) {
	storage, _ := setupTestStorage(t)

	stamps, err := storage.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, stamps)
}

func TestRedisStorage_SetGetRoundTrip(t *testing.T) {
	storage, _ := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, storage.Set(ctx, "203.0.113.5", []int64{100, 200, 300}, time.Minute))

	stamps, err := storage.Get(ctx, "203.0.113.5")
	require.NoError(t, err)
	assert.Equal(t, []int64{100, 200, 300}, stamps)
}

func TestRedisStorage_RecordsExpire(t *testing.T) {
	storage, mr := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, storage.Set(ctx, "idle", []int64{1}, time.Minute))

	mr.FastForward(61 * time.Second)

	stamps, err := storage.Get(ctx, "idle")
	require.NoError(t, err)
	assert.Nil(t, stamps, "expected record to expire with its ttl")
}

func TestRedisStorage_Delete(t *testing.T) {
	storage, _ := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, storage.Set(ctx, "client", []int64{1}, time.Minute))
	require.NoError(t, storage.Delete(ctx, "client"))

	stamps, err := storage.Get(ctx, "client")
	require.NoError(t, err)
	assert.Nil(t, stamps)
}

func TestRedisStorage_CorruptRecord(t *testing.T) {
	storage, mr := setupTestStorage(t)

	require.NoError(t, mr.Set("ratelimit:window:bad", "not-json"))

	_, err := storage.Get(context.Background(), "bad")
	assert.Error(t, err)
}

func TestRedisStorage_RequiresAddress(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}
