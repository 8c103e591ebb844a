package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardgame-tracker/internal/domains/game"
	"boardgame-tracker/internal/domains/play"
)

type gameLookup map[uuid.UUID]*game.Game

func (l gameLookup) FindOne(ctx context.Context, id uuid.UUID) (*game.Game, error) {
	g, ok := l[id]
	if !ok {
		return nil, game.ErrGameNotFound
	}
	return g, nil
}

type memoryRepo struct {
	games gameLookup
	logs  []*play.PlayLog
}

func (r *memoryRepo) Create(ctx context.Context, p *play.PlayLog) error {
	c := *p
	r.logs = append(r.logs, &c)
	return nil
}

func (r *memoryRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*play.PlayLog, error) {
	out := make([]*play.PlayLog, 0)
	for _, p := range r.logs {
		if p.UserID == userID {
			c := *p
			c.Game = r.games[p.GameID]
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayedAt.After(out[j].PlayedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	for i, p := range r.logs {
		if p.ID == id && p.UserID == userID {
			r.logs = append(r.logs[:i], r.logs[i+1:]...)
			return nil
		}
	}
	return play.ErrPlayLogNotFound
}

func intPtr(v int) *int { return &v }

func setup() (play.Service, *memoryRepo, *game.Game) {
	catan := &game.Game{ID: uuid.New(), ExternalGame: game.ExternalGame{Name: "Catan"}}
	lookup := gameLookup{catan.ID: catan}
	repo := &memoryRepo{games: lookup}
	return NewPlayService(repo, lookup), repo, catan
}

func TestCreatePlayLog(t *testing.T) {
	svc, repo, catan := setup()
	userID := uuid.New()

	p, err := svc.CreatePlayLog(context.Background(), userID, play.CreatePlayLogRequest{
		GameID:          catan.ID.String(),
		PlayedAt:        "2024-03-01T19:30:00+02:00",
		DurationMinutes: intPtr(90),
		PlayersCount:    intPtr(4),
	})
	require.NoError(t, err)

	assert.Equal(t, userID, p.UserID)
	assert.Equal(t, time.Date(2024, 3, 1, 17, 30, 0, 0, time.UTC), p.PlayedAt)
	assert.Equal(t, 90, *p.DurationMinutes)
	assert.Nil(t, p.Notes)
	require.NotNil(t, p.Game)
	assert.Equal(t, "Catan", p.Game.Name)
	assert.Len(t, repo.logs, 1)
}

func TestCreatePlayLogAcceptsPlainDate(t *testing.T) {
	svc, _, catan := setup()

	p, err := svc.CreatePlayLog(context.Background(), uuid.New(), play.CreatePlayLogRequest{
		GameID: catan.ID.String(), PlayedAt: "2024-03-01",
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), p.PlayedAt)
}

func TestCreatePlayLogValidation(t *testing.T) {
	svc, repo, catan := setup()

	_, err := svc.CreatePlayLog(context.Background(), uuid.New(), play.CreatePlayLogRequest{
		GameID:          catan.ID.String(),
		PlayedAt:        "yesterday",
		DurationMinutes: intPtr(0),
		PlayersCount:    intPtr(-2),
	})

	assert.ErrorIs(t, err, play.ErrInvalidPlayLog)
	var fieldErrs validation.Errors
	require.True(t, errors.As(err, &fieldErrs))
	assert.Contains(t, fieldErrs, "played_at")
	assert.Contains(t, fieldErrs, "duration_minutes")
	assert.Contains(t, fieldErrs, "players_count")
	assert.Empty(t, repo.logs)
}

func TestCreatePlayLogUnknownGame(t *testing.T) {
	svc, repo, _ := setup()

	_, err := svc.CreatePlayLog(context.Background(), uuid.New(), play.CreatePlayLogRequest{
		GameID: uuid.NewString(), PlayedAt: "2024-03-01",
	})
	assert.ErrorIs(t, err, game.ErrGameNotFound)
	assert.Empty(t, repo.logs)
}

func TestListPlaysNewestFirst(t *testing.T) {
	svc, _, catan := setup()
	ctx := context.Background()
	userID := uuid.New()

	for _, day := range []string{"2024-01-05", "2024-03-01", "2024-02-10"} {
		_, err := svc.CreatePlayLog(ctx, userID, play.CreatePlayLogRequest{GameID: catan.ID.String(), PlayedAt: day})
		require.NoError(t, err)
	}
	_, err := svc.CreatePlayLog(ctx, uuid.New(), play.CreatePlayLogRequest{GameID: catan.ID.String(), PlayedAt: "2024-04-01"})
	require.NoError(t, err)

	plays, err := svc.ListPlays(ctx, userID)
	require.NoError(t, err)
	require.Len(t, plays, 3)
	assert.Equal(t, 3, int(plays[0].PlayedAt.Month()))
	assert.Equal(t, 2, int(plays[1].PlayedAt.Month()))
	assert.Equal(t, 1, int(plays[2].PlayedAt.Month()))
	assert.NotNil(t, plays[0].Game)
}

func TestDeletePlayLogOnlyByOwner(t *testing.T) {
	svc, repo, catan := setup()
	ctx := context.Background()
	owner := uuid.New()

	p, err := svc.CreatePlayLog(ctx, owner, play.CreatePlayLogRequest{GameID: catan.ID.String(), PlayedAt: "2024-03-01"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeletePlayLog(ctx, uuid.New(), p.ID), play.ErrPlayLogNotFound)
	assert.Len(t, repo.logs, 1)

	require.NoError(t, svc.DeletePlayLog(ctx, owner, p.ID))
	assert.Empty(t, repo.logs)

	assert.ErrorIs(t, svc.DeletePlayLog(ctx, owner, p.ID), play.ErrPlayLogNotFound)
}
