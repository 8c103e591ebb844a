package play

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, log *PlayLog) error
	// ListByUser returns the newest plays first, each with its game.
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*PlayLog, error)
	// Delete removes the log only when userID owns it; ErrPlayLogNotFound otherwise.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
