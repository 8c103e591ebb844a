package collection

import (
	"context"

	"github.com/google/uuid"

	"boardgame-tracker/internal/domains/game"
)

// Repository stores (user, game) links per list. Unknown lists yield ErrUnknownList.
type Repository interface {
	// Add is idempotent.
	Add(ctx context.Context, list List, userID, gameID uuid.UUID) error
	Remove(ctx context.Context, list List, userID, gameID uuid.UUID) error
	// Games returns the linked games, most recently added first.
	Games(ctx context.Context, list List, userID uuid.UUID) ([]*game.Game, error)
}
