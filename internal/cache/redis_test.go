package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shinyshoes/internal/repos"
)

func setupTestRedis(t *testing.T, ttl time.Duration) (*RedisCartStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCartStore(client, ttl), mr
}

func TestLoad_Miss(t *testing.T) {
	store, _ := setupTestRedis(t, 0)

	_, err := store.Load(context.Background(), "shiny_cart:abc")
	assert.ErrorIs(t, err, repos.ErrCartNotFound)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	store, mr := setupTestRedis(t, 0)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "shiny_cart:abc", []byte(`[{"id":"3","quantity":2}]`)))

	raw, err := mr.Get("cart:shiny_cart:abc")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"3","quantity":2}]`, raw)
	assert.Zero(t, mr.TTL("cart:shiny_cart:abc"))

	got, err := store.Load(ctx, "shiny_cart:abc")
	require.NoError(t, err)
	assert.Equal(t, raw, string(got))
}

func TestSave_AppliesTTL(t *testing.T) {
	store, mr := setupTestRedis(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "k", []byte(`[]`)))
	assert.Equal(t, time.Hour, mr.TTL("cart:k"))

	mr.FastForward(2 * time.Hour)
	_, err := store.Load(ctx, "k")
	assert.ErrorIs(t, err, repos.ErrCartNotFound)
}

func TestLoad_ServerDown(t *testing.T) {
	store, mr := setupTestRedis(t, 0)
	mr.Close()

	_, err := store.Load(context.Background(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, repos.ErrCartNotFound)
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := Connect(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	defer client.Close()

	_, err = Connect(context.Background(), "::not a url")
	assert.Error(t, err)
}
