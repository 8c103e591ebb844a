package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"boardgame-tracker/internal/domains/collection"
	"boardgame-tracker/internal/domains/game"
)

type collectionService struct {
	repo  collection.Repository
	games collection.GameLookup
}

func NewCollectionService(repo collection.Repository, games collection.GameLookup) collection.Service {
	return &collectionService{repo: repo, games: games}
}

func (s *collectionService) AddOwned(ctx context.Context, userID, gameID uuid.UUID) (*game.Game, error) {
	return s.add(ctx, collection.ListOwned, userID, gameID)
}

func (s *collectionService) RemoveOwned(ctx context.Context, userID, gameID uuid.UUID) error {
	return s.remove(ctx, collection.ListOwned, userID, gameID)
}

func (s *collectionService) ListOwned(ctx context.Context, userID uuid.UUID) ([]*game.Game, error) {
	return s.repo.Games(ctx, collection.ListOwned, userID)
}

func (s *collectionService) AddWishlist(ctx context.Context, userID, gameID uuid.UUID) (*game.Game, error) {
	return s.add(ctx, collection.ListWishlist, userID, gameID)
}

func (s *collectionService) RemoveWishlist(ctx context.Context, userID, gameID uuid.UUID) error {
	return s.remove(ctx, collection.ListWishlist, userID, gameID)
}

func (s *collectionService) ListWishlist(ctx context.Context, userID uuid.UUID) ([]*game.Game, error) {
	return s.repo.Games(ctx, collection.ListWishlist, userID)
}

func (s *collectionService) add(ctx context.Context, list collection.List, userID, gameID uuid.UUID) (*game.Game, error) {
	g, err := s.games.FindOne(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Add(ctx, list, userID, gameID); err != nil {
		return nil, err
	}

	log.Info().
		Str("list", string(list)).
		Str("user_id", userID.String()).
		Str("game_id", gameID.String()).
		Msg("[COLLECTION] Game added")
	return g, nil
}

func (s *collectionService) remove(ctx context.Context, list collection.List, userID, gameID uuid.UUID) error {
	if _, err := s.games.FindOne(ctx, gameID); err != nil {
		return err
	}
	return s.repo.Remove(ctx, list, userID, gameID)
}
