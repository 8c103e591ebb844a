package search

import (
	"context"

	"github.com/google/uuid"

	"boardgame-tracker/internal/domains/game"
)

type Service interface {
	// Search runs the catalog and user searches concurrently. Only a user
	// store failure is returned; the catalog half never fails.
	Search(ctx context.Context, query string, viewerID *uuid.UUID) (*Result, error)
	SearchUsers(ctx context.Context, query string, viewerID *uuid.UUID) ([]UserResult, error)
}

// Catalog is satisfied by game.Service.
type Catalog interface {
	Search(ctx context.Context, query string) game.SearchResult
}
