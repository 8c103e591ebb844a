package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"boardgame-tracker/internal/domains/game"
)

type upsertService struct {
	repo game.Repository
	now  func() time.Time
}

// NewUpsertService returns the natural-key reconciler.
func NewUpsertService(repo game.Repository) game.UpsertService {
	return &upsertService{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// UpsertMany persists externals one by one, in order. The first failure
// stops the batch; rows written before it stay committed.
func (s *upsertService) UpsertMany(ctx context.Context, externals []game.ExternalGame) ([]*game.Game, error) {
	games := make([]*game.Game, 0, len(externals))

	for _, ext := range externals {
		g, err := s.upsertOne(ctx, ext)
		if err != nil {
			return nil, fmt.Errorf("upsert %s/%s: %w", ext.APIRef, ext.ExternalID, err)
		}
		games = append(games, g)
	}

	return games, nil
}

func (s *upsertService) upsertOne(ctx context.Context, ext game.ExternalGame) (*game.Game, error) {
	now := s.now()

	existing, err := s.repo.FindByNaturalKey(ctx, ext.APIRef, ext.ExternalID)
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		// Create tolerates a concurrent insert of the same key.
		return s.repo.Create(ctx, game.NewGame(ext, now))
	case err != nil:
		return nil, err
	}

	existing.ApplyExternal(ext, now)
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}
