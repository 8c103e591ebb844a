package provider

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardgame-tracker/pkg/cache"
)

func TestCachedProviderServesRepeatQueriesFromCache(t *testing.T) {
	inner := &fakeProvider{id: "bgg", available: true, games: externals("bgg", "13")}
	p := NewCachedProvider(inner, cache.NewMemoryCache(), time.Minute)

	first, err := p.Search(context.Background(), "Catan")
	require.NoError(t, err)
	second, err := p.Search(context.Background(), " catan ")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.searchCalls)
	assert.Equal(t, "bgg", p.ID())
}

func TestCachedProviderDoesNotCacheEmptyResults(t *testing.T) {
	inner := &fakeProvider{id: "bgg", available: true}
	p := NewCachedProvider(inner, cache.NewMemoryCache(), time.Minute)

	_, err := p.Search(context.Background(), "nothing")
	require.NoError(t, err)
	_, err = p.Search(context.Background(), "nothing")
	require.NoError(t, err)

	assert.Equal(t, 2, inner.searchCalls)
}

func TestNewCachedProviderDisabledWithZeroTTL(t *testing.T) {
	inner := &fakeProvider{id: "bgg"}
	assert.Same(t, Provider(inner), NewCachedProvider(inner, cache.NewMemoryCache(), 0))
}
