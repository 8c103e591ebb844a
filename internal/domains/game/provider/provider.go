package provider

import (
	"context"

	"boardgame-tracker/internal/domains/game"
)

// Provider adapts one external game catalog.
type Provider interface {
	// ID is the lower-case id used in GAME_PROVIDERS_ENABLED.
	ID() string

	// IsAvailable reports whether the provider is configured. It must be
	// cheap and must not perform network I/O.
	IsAvailable(ctx context.Context) bool

	// Search returns normalized candidates for query. Upstream failures
	// should degrade to an empty result rather than an error.
	Search(ctx context.Context, query string) ([]game.ExternalGame, error)
}
