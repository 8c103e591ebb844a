package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"boardgame-tracker/internal/domains/game"
)

// Registry holds the enabled providers in configured order.
type Registry struct {
	providers []Provider
}

var _ game.ProviderRegistry = (*Registry)(nil)

// NewRegistry keeps the providers named in enabled, in that order.
// Unknown ids are logged and skipped; duplicates are ignored.
func NewRegistry(enabled []string, known ...Provider) *Registry {
	byID := make(map[string]Provider, len(known))
	for _, p := range known {
		byID[strings.ToLower(p.ID())] = p
	}

	r := &Registry{}
	seen := make(map[string]bool, len(enabled))
	for _, raw := range enabled {
		id := strings.ToLower(strings.TrimSpace(raw))
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true

		p, ok := byID[id]
		if !ok {
			log.Warn().Str("provider", id).Msg("[PROVIDERS] Unknown provider in GAME_PROVIDERS_ENABLED, skipping")
			continue
		}
		r.providers = append(r.providers, p)
	}

	return r
}

// Enabled returns the ids of the active providers in order.
func (r *Registry) Enabled() []string {
	ids := make([]string, 0, len(r.providers))
	for _, p := range r.providers {
		ids = append(ids, p.ID())
	}
	return ids
}

// IsAnyExternalAvailable stops at the first available provider.
func (r *Registry) IsAnyExternalAvailable(ctx context.Context) bool {
	for _, p := range r.providers {
		if r.isAvailable(ctx, p) {
			return true
		}
	}
	return false
}

// SearchAll queries providers in order and returns the first non-empty
// result. Provider errors and panics are logged and the next provider is
// tried. The only error returned is the context's.
func (r *Registry) SearchAll(ctx context.Context, query string) (game.ExternalSearchResult, error) {
	q := strings.TrimSpace(query)
	if q == "" || len(r.providers) == 0 {
		return game.ExternalSearchResult{Games: []game.ExternalGame{}, Available: false}, nil
	}

	anyAvailable := false
	for _, p := range r.providers {
		if err := ctx.Err(); err != nil {
			return game.ExternalSearchResult{Games: []game.ExternalGame{}, Available: anyAvailable}, err
		}

		if !r.isAvailable(ctx, p) {
			continue
		}
		anyAvailable = true

		games, err := r.search(ctx, p, q)
		if err != nil {
			log.Warn().Err(err).Str("provider", p.ID()).Str("query", q).Msg("[PROVIDERS] Provider search failed, trying next")
			continue
		}
		if len(games) > 0 {
			log.Debug().Str("provider", p.ID()).Int("count", len(games)).Msg("[PROVIDERS] Provider returned results")
			return game.ExternalSearchResult{Games: games, Available: true}, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return game.ExternalSearchResult{Games: []game.ExternalGame{}, Available: anyAvailable}, err
	}
	return game.ExternalSearchResult{Games: []game.ExternalGame{}, Available: anyAvailable}, nil
}

func (r *Registry) isAvailable(ctx context.Context, p Provider) (ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Str("provider", p.ID()).Msg("[PROVIDERS] IsAvailable panicked")
			ok = false
		}
	}()
	return p.IsAvailable(ctx)
}

func (r *Registry) search(ctx context.Context, p Provider, q string) (games []game.ExternalGame, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			games = nil
			err = fmt.Errorf("provider %s panicked: %v", p.ID(), rec)
		}
	}()
	return p.Search(ctx, q)
}
