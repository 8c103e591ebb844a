package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"boardgame-tracker/internal/domains/game"
	"boardgame-tracker/pkg/cache"
)

// cachedProvider memoizes non-empty search results of the wrapped provider.
type cachedProvider struct {
	inner Provider
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedProvider wraps p with a result cache. A non-positive ttl
// returns p unchanged.
func NewCachedProvider(p Provider, c cache.Cache, ttl time.Duration) Provider {
	if ttl <= 0 || c == nil {
		return p
	}
	return &cachedProvider{inner: p, cache: c, ttl: ttl}
}

func (p *cachedProvider) ID() string { return p.inner.ID() }

func (p *cachedProvider) IsAvailable(ctx context.Context) bool {
	return p.inner.IsAvailable(ctx)
}

func (p *cachedProvider) Search(ctx context.Context, query string) ([]game.ExternalGame, error) {
	key := searchCacheKey(p.inner.ID(), query)

	var cached []game.ExternalGame
	found, err := p.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Debug().Err(err).Str("key", key).Msg("[PROVIDERS] Cache read failed")
	}
	if err == nil && found && len(cached) > 0 {
		return cached, nil
	}

	games, err := p.inner.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	// Empty results are not cached; upstream may have been degraded.
	if len(games) > 0 {
		if err := p.cache.Set(ctx, key, games, p.ttl); err != nil {
			log.Debug().Err(err).Str("key", key).Msg("[PROVIDERS] Cache write failed")
		}
	}
	return games, nil
}

func searchCacheKey(providerID, query string) string {
	return fmt.Sprintf("provider:%s:search:%s", providerID, strings.ToLower(strings.TrimSpace(query)))
}
