package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"boardgame-tracker/internal/domains/play"
)

type playService struct {
	repo  play.Repository
	games play.GameLookup
	now   func() time.Time
}

func NewPlayService(repo play.Repository, games play.GameLookup) play.Service {
	return &playService{repo: repo, games: games, now: time.Now}
}

func (s *playService) CreatePlayLog(ctx context.Context, userID uuid.UUID, req play.CreatePlayLogRequest) (*play.PlayLog, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", play.ErrInvalidPlayLog, err)
	}

	gameID, err := uuid.Parse(req.GameID)
	if err != nil {
		return nil, fmt.Errorf("%w: game_id: %w", play.ErrInvalidPlayLog, err)
	}
	playedAt, err := play.ParsePlayedAt(req.PlayedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: played_at: %w", play.ErrInvalidPlayLog, err)
	}

	g, err := s.games.FindOne(ctx, gameID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	p := &play.PlayLog{
		ID:              uuid.New(),
		UserID:          userID,
		GameID:          gameID,
		PlayedAt:        playedAt,
		DurationMinutes: req.DurationMinutes,
		PlayersCount:    req.PlayersCount,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	p.Game = g

	log.Info().
		Str("user_id", userID.String()).
		Str("game_id", gameID.String()).
		Str("play_id", p.ID.String()).
		Msg("[PLAYS] Play logged")
	return p, nil
}

func (s *playService) ListPlays(ctx context.Context, userID uuid.UUID) ([]*play.PlayLog, error) {
	return s.repo.ListByUser(ctx, userID, play.ListLimit)
}

func (s *playService) DeletePlayLog(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	log.Info().Str("user_id", userID.String()).Str("play_id", id.String()).Msg("[PLAYS] Play log deleted")
	return nil
}
