package game

import (
	"context"

	"github.com/google/uuid"
)

// Service is the catalog facade used by handlers and other domains.
type Service interface {
	// Search never fails: local and provider errors degrade to an empty result.
	Search(ctx context.Context, query string) SearchResult
	FindOne(ctx context.Context, id uuid.UUID) (*Game, error)
	CreateGame(ctx context.Context, req CreateGameRequest) (*Game, error)
}

// UpsertService reconciles provider records with stored games.
type UpsertService interface {
	UpsertMany(ctx context.Context, externals []ExternalGame) ([]*Game, error)
}

// ProviderRegistry is the subset of the provider registry the catalog needs.
type ProviderRegistry interface {
	IsAnyExternalAvailable(ctx context.Context) bool
	SearchAll(ctx context.Context, query string) (ExternalSearchResult, error)
}
