package preferences

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisStore(t *testing.T, prefix string) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	store := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), prefix)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestRedisStore(t *testing.T) {
	store, mr := setupRedisStore(t, "teamboard:")
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))

	_, ok, err := store.Get(ctx, "member:default")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "member:default", "kim"))
	require.NoError(t, store.Set(ctx, "member:cli", "lee"))
	require.NoError(t, store.Set(ctx, "member:default", "park"))

	v, ok, err := store.Get(ctx, "member:default")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "park", v)

	assert.Equal(t, "lee", mr.HGet("teamboard:preferences", "member:cli"))
	assert.Equal(t, []string{"teamboard:preferences"}, mr.Keys())
}

func TestRedisStoreSharesHashAcrossClients(t *testing.T) {
	first, mr := setupRedisStore(t, "board:")
	ctx := context.Background()
	require.NoError(t, first.Set(ctx, "member:laptop", "kim"))

	second := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "board:")
	defer second.Close()
	v, ok, err := second.Get(ctx, "member:laptop")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "kim", v)

	other := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "other:")
	defer other.Close()
	_, ok, err = other.Get(ctx, "member:laptop")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStoreUnavailable(t *testing.T) {
	store, mr := setupRedisStore(t, "teamboard:")
	mr.Close()

	err := store.Set(context.Background(), "member:default", "kim")
	assert.ErrorContains(t, err, "set preference member:default")
}
