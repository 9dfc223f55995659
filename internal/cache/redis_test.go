package cache

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis() (*RedisCache, redismock.ClientMock) {
	client, mock := redismock.NewClientMock()
	return NewRedisWithClient(client), mock
}

func TestRedisGet(t *testing.T) {
	ctx := context.Background()
	c, mock := setupRedis()

	t.Run("hit", func(t *testing.T) {
		mock.ExpectGet("bionutrex:sliders:active").SetVal(`[{"id":1}]`)
		val, ok, err := c.Get(ctx, "sliders:active")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.JSONEq(t, `[{"id":1}]`, string(val))
	})

	t.Run("miss", func(t *testing.T) {
		mock.ExpectGet("bionutrex:sliders:active").RedisNil()
		val, ok, err := c.Get(ctx, "sliders:active")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, val)
	})

	t.Run("error", func(t *testing.T) {
		mock.ExpectGet("bionutrex:sliders:active").SetErr(redis.ErrClosed)
		_, ok, err := c.Get(ctx, "sliders:active")
		assert.ErrorIs(t, err, redis.ErrClosed)
		assert.False(t, ok)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisSetAndDelete(t *testing.T) {
	ctx := context.Background()
	c, mock := setupRedis()

	mock.ExpectSet("bionutrex:blog-posts:published", []byte("[]"), time.Minute).SetVal("OK")
	require.NoError(t, c.Set(ctx, "blog-posts:published", []byte("[]"), time.Minute))

	mock.ExpectDel("bionutrex:home-sections:active", "bionutrex:sliders:active").SetVal(2)
	require.NoError(t, c.Delete(ctx, "home-sections:active", "sliders:active"))

	require.NoError(t, c.Delete(ctx))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNoopCacheAlwaysMisses(t *testing.T) {
	ctx := context.Background()
	c := NewNoop()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, c.Delete(ctx, "k"))
}
