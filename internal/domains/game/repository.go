package game

import (
	"context"

	"github.com/google/uuid"
)

// SearchLimit caps local catalog name matches.
const SearchLimit = 20

// Repository is the games store.
type Repository interface {
	// FindByID returns ErrGameNotFound when no row matches.
	FindByID(ctx context.Context, id uuid.UUID) (*Game, error)

	// FindByNaturalKey returns ErrGameNotFound when no row matches.
	FindByNaturalKey(ctx context.Context, apiRef, externalID string) (*Game, error)

	// SearchByName matches name case-insensitively as a substring,
	// ordered by name ascending.
	SearchByName(ctx context.Context, query string, limit int) ([]*Game, error)

	// Create inserts g. A concurrent row with the same natural key is
	// updated instead, and the stored row is returned.
	Create(ctx context.Context, g *Game) (*Game, error)

	Update(ctx context.Context, g *Game) error
}
