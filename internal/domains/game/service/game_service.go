package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"boardgame-tracker/internal/domains/game"
)

type gameService struct {
	repo     game.Repository
	registry game.ProviderRegistry
	upsert   game.UpsertService
	now      func() time.Time
}

func NewGameService(repo game.Repository, registry game.ProviderRegistry, upsert game.UpsertService) game.Service {
	return &gameService{
		repo:     repo,
		registry: registry,
		upsert:   upsert,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ========================================
// CATALOG SEARCH
// ========================================

// Search answers from the local catalog when it has matches. Otherwise it
// asks the providers and persists what they return. Failures at any step
// yield an empty result.
func (s *gameService) Search(ctx context.Context, query string) game.SearchResult {
	q := strings.TrimSpace(query)
	if q == "" {
		return game.EmptySearchResult(false)
	}

	local, err := s.repo.SearchByName(ctx, q, game.SearchLimit)
	if err != nil {
		log.Error().Err(err).Str("query", q).Msg("[GAMES] Local search failed")
		return game.EmptySearchResult(false)
	}
	if len(local) > 0 {
		return game.SearchResult{
			Games:             local,
			ExternalAvailable: s.registry.IsAnyExternalAvailable(ctx),
		}
	}

	if !s.registry.IsAnyExternalAvailable(ctx) {
		return game.EmptySearchResult(false)
	}

	external, err := s.searchExternal(ctx, q)
	if err != nil {
		log.Warn().Err(err).Str("query", q).Msg("[GAMES] External search failed")
		return game.EmptySearchResult(false)
	}
	if len(external.Games) == 0 {
		return game.EmptySearchResult(external.Available)
	}

	games, err := s.upsert.UpsertMany(ctx, external.Games)
	if err != nil {
		log.Error().Err(err).Str("query", q).Int("count", len(external.Games)).Msg("[GAMES] Persisting external results failed")
		return game.EmptySearchResult(false)
	}

	log.Info().Str("query", q).Int("count", len(games)).Msg("[GAMES] Imported games from external provider")
	return game.SearchResult{Games: games, ExternalAvailable: true}
}

func (s *gameService) searchExternal(ctx context.Context, q string) (res game.ExternalSearchResult, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("external search panicked: %v", rec)
		}
	}()
	return s.registry.SearchAll(ctx, q)
}

// ========================================
// LOOKUP & CREATE
// ========================================

func (s *gameService) FindOne(ctx context.Context, id uuid.UUID) (*game.Game, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateGame adds a user-sourced game. It has no external key, so a random
// one is generated under api_ref "user".
func (s *gameService) CreateGame(ctx context.Context, req game.CreateGameRequest) (*game.Game, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", game.ErrInvalidGame, err)
	}

	ext := req.ToExternal(game.APIRefUser, uuid.NewString())
	saved, err := s.repo.Create(ctx, game.NewGame(ext, s.now()))
	if err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}

	log.Info().Str("game_id", saved.ID.String()).Str("name", saved.Name).Msg("[GAMES] Game created by user")
	return saved, nil
}
