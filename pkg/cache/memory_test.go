package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryCacheGetSetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	var out sample
	found, err := c.Get(ctx, "missing", &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "k", sample{Name: "Catan", Count: 4}, time.Minute))
	found, err = c.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, sample{Name: "Catan", Count: 4}, out)

	require.NoError(t, c.Delete(ctx, "k"))
	found, err = c.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", "v", time.Second))
	ok, _ := c.Exists(ctx, "k")
	assert.True(t, ok)

	now = now.Add(2 * time.Second)
	ok, _ = c.Exists(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryCacheIncrement(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	n, err := c.Increment(ctx, "attempts")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = c.Increment(ctx, "attempts")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, c.Expire(ctx, "attempts", time.Minute))
	n, err = c.Increment(ctx, "attempts")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
