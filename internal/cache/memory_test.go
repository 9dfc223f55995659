package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Minute)

	_, ok, err := c.Get(ctx, "sliders:active")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "sliders:active", []byte(`[]`), time.Minute))
	require.NoError(t, c.Set(ctx, "blog-posts:published", []byte(`[{"id":1}]`), time.Minute))

	val, ok, err := c.Get(ctx, "sliders:active")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, string(val))

	require.NoError(t, c.Delete(ctx, "sliders:active", "missing"))
	_, ok, _ = c.Get(ctx, "sliders:active")
	assert.False(t, ok)
	_, ok, _ = c.Get(ctx, "blog-posts:published")
	assert.True(t, ok)
}

func TestMemoryCacheExpires(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Minute)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 20*time.Millisecond))
	time.Sleep(40 * time.Millisecond)

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
