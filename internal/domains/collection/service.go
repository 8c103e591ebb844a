package collection

import (
	"context"

	"github.com/google/uuid"

	"boardgame-tracker/internal/domains/game"
)

// Service manages owned and wishlist games. Every mutation requires the
// game to exist (game.ErrGameNotFound otherwise).
type Service interface {
	AddOwned(ctx context.Context, userID, gameID uuid.UUID) (*game.Game, error)
	RemoveOwned(ctx context.Context, userID, gameID uuid.UUID) error
	ListOwned(ctx context.Context, userID uuid.UUID) ([]*game.Game, error)

	AddWishlist(ctx context.Context, userID, gameID uuid.UUID) (*game.Game, error)
	RemoveWishlist(ctx context.Context, userID, gameID uuid.UUID) error
	ListWishlist(ctx context.Context, userID uuid.UUID) ([]*game.Game, error)
}

// GameLookup is satisfied by game.Service.
type GameLookup interface {
	FindOne(ctx context.Context, id uuid.UUID) (*game.Game, error)
}
