package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage_GetMissingKey(t *testing.T) {
	store := New(10)

	stamps, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, stamps)
}

func TestMemoryStorage_SetGetRoundTrip(t *testing.T) {
	store := New(10)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "client", []int64{100, 200, 300}, time.Minute))

	stamps, err := store.Get(ctx, "client")
	require.NoError(t, err)
	assert.Equal(t, []int64{100, 200, 300}, stamps)

	// Mutating the returned slice must not affect the stored record.
	stamps[0] = 999
	again, err := store.Get(ctx, "client")
	require.NoError(t, err)
	assert.Equal(t, int64(100), again[0])
}

func TestMemoryStorage_ExpiresIdleRecords(t *testing.T) {
	store := New(10)
	ctx := context.Background()

	current := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	require.NoError(t, store.Set(ctx, "idle", []int64{1}, time.Minute))

	current = current.Add(61 * time.Second)
	stamps, err := store.Get(ctx, "idle")
	require.NoError(t, err)
	assert.Nil(t, stamps, "expected record to expire after its ttl")
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStorage_EvictsLeastRecentlyUsed(t *testing.T) {
	store := New(2)
	ctx := context.Background()

	current := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	require.NoError(t, store.Set(ctx, "a", []int64{1}, time.Hour))
	current = current.Add(time.Second)
	require.NoError(t, store.Set(ctx, "b", []int64{2}, time.Hour))

	// Touch "a" so "b" becomes the eviction candidate.
	current = current.Add(time.Second)
	_, err := store.Get(ctx, "a")
	require.NoError(t, err)

	current = current.Add(time.Second)
	require.NoError(t, store.Set(ctx, "c", []int64{3}, time.Hour))

	assert.Equal(t, 2, store.Len())

	stamps, err := store.Get(ctx, "b")
	require.NoError(t, err)
	assert.Nil(t, stamps, "expected least-recently-used key to be evicted")

	stamps, err = store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, stamps)
}

func TestMemoryStorage_EvictionPrefersExpiredRecords(t *testing.T) {
	store := New(2)
	ctx := context.Background()

	current := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	require.NoError(t, store.Set(ctx, "short", []int64{1}, time.Second))
	current = current.Add(time.Millisecond)
	require.NoError(t, store.Set(ctx, "long", []int64{2}, time.Hour))

	current = current.Add(2 * time.Second)
	require.NoError(t, store.Set(ctx, "new", []int64{3}, time.Hour))

	stamps, err := store.Get(ctx, "long")
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, stamps, "live record should survive when an expired one can be dropped")
}

func TestMemoryStorage_Delete(t *testing.T) {
	store := New(10)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "client", []int64{1}, time.Minute))
	require.NoError(t, store.Delete(ctx, "client"))

	stamps, err := store.Get(ctx, "client")
	require.NoError(t, err)
	assert.Nil(t, stamps)
}
