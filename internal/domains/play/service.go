package play

import (
	"context"

	"github.com/google/uuid"

	"boardgame-tracker/internal/domains/game"
)

type Service interface {
	CreatePlayLog(ctx context.Context, userID uuid.UUID, req CreatePlayLogRequest) (*PlayLog, error)
	ListPlays(ctx context.Context, userID uuid.UUID) ([]*PlayLog, error)
	DeletePlayLog(ctx context.Context, userID, id uuid.UUID) error
}

// GameLookup is satisfied by game.Service.
type GameLookup interface {
	FindOne(ctx context.Context, id uuid.UUID) (*game.Game, error)
}
