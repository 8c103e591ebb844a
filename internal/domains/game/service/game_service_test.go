package service

import (
	"context"
	"errors"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardgame-tracker/internal/domains/game"
)

func seedLocal(t *testing.T, repo *memoryRepo, names ...string) {
	t.Helper()
	for i, name := range names {
		_, err := repo.Create(context.Background(), game.NewGame(game.ExternalGame{
			APIRef: "bgg", ExternalID: uuid.NewString(), Name: name,
		}, time.Now().Add(time.Duration(i)*time.Second)))
		require.NoError(t, err)
	}
	repo.createCalls = 0
}

func newSearchFixture() (*memoryRepo, *fakeRegistry, game.Service) {
	repo := newMemoryRepo()
	reg := &fakeRegistry{}
	return repo, reg, NewGameService(repo, reg, NewUpsertService(repo))
}

func TestSearchBlankQueryTouchesNothing(t *testing.T) {
	repo, reg, svc := newSearchFixture()
	reg.available = true

	for _, q := range []string{"", "   ", "\t\n"} {
		res := svc.Search(context.Background(), q)
		assert.NotNil(t, res.Games)
		assert.Empty(t, res.Games)
		assert.False(t, res.ExternalAvailable)
	}
	assert.Zero(t, repo.searchCalls)
	assert.Zero(t, reg.availCalls)
	assert.Zero(t, reg.searchCalls)
}

func TestSearchLocalHitNeverCallsProviders(t *testing.T) {
	repo, reg, svc := newSearchFixture()
	seedLocal(t, repo, "Catan", "Azul")
	reg.available = true

	res := svc.Search(context.Background(), "  CAT ")
	require.Len(t, res.Games, 1)
	assert.Equal(t, "Catan", res.Games[0].Name)
	assert.True(t, res.ExternalAvailable)
	assert.Zero(t, reg.searchCalls)

	reg.available = false
	res = svc.Search(context.Background(), "cat")
	require.Len(t, res.Games, 1)
	assert.False(t, res.ExternalAvailable)
}

func TestSearchLocalMissWithoutProviders(t *testing.T) {
	_, reg, svc := newSearchFixture()
	reg.available = false

	res := svc.Search(context.Background(), "catan")
	assert.Empty(t, res.Games)
	assert.False(t, res.ExternalAvailable)
	assert.Zero(t, reg.searchCalls)
}

func TestSearchLocalMissExternalEmpty(t *testing.T) {
	repo, reg, svc := newSearchFixture()
	seedLocal(t, repo, "Catan")
	reg.available = true
	reg.result = game.ExternalSearchResult{Games: []game.ExternalGame{}, Available: true}

	res := svc.Search(context.Background(), "catan 2")
	assert.Empty(t, res.Games)
	assert.True(t, res.ExternalAvailable)
	assert.Equal(t, 1, reg.searchCalls)
}

func TestSearchLocalMissExternalHitPersists(t *testing.T) {
	repo, reg, svc := newSearchFixture()
	reg.available = true
	reg.result = game.ExternalSearchResult{
		Games:     []game.ExternalGame{bggGame("13", "Catan"), bggGame("926", "Catan: Seafarers")},
		Available: true,
	}

	res := svc.Search(context.Background(), "catan")
	require.Len(t, res.Games, 2)
	assert.True(t, res.ExternalAvailable)
	assert.Len(t, repo.byID, 2)

	// The second search is served locally.
	reg.searchCalls = 0
	again := svc.Search(context.Background(), "catan")
	require.Len(t, again.Games, 2)
	assert.Zero(t, reg.searchCalls)
	assert.ElementsMatch(t,
		[]uuid.UUID{res.Games[0].ID, res.Games[1].ID},
		[]uuid.UUID{again.Games[0].ID, again.Games[1].ID})
}

func TestSearchSoftFails(t *testing.T) {
	t.Run("local store error", func(t *testing.T) {
		repo, reg, svc := newSearchFixture()
		repo.searchErr = errDB
		reg.available = true

		res := svc.Search(context.Background(), "catan")
		assert.Empty(t, res.Games)
		assert.False(t, res.ExternalAvailable)
		assert.Zero(t, reg.searchCalls)
	})

	t.Run("registry error", func(t *testing.T) {
		_, reg, svc := newSearchFixture()
		reg.available = true
		reg.err = context.DeadlineExceeded

		res := svc.Search(context.Background(), "catan")
		assert.Empty(t, res.Games)
		assert.False(t, res.ExternalAvailable)
	})

	t.Run("registry panic", func(t *testing.T) {
		_, reg, svc := newSearchFixture()
		reg.available = true
		reg.panics = true

		res := svc.Search(context.Background(), "catan")
		assert.NotNil(t, res.Games)
		assert.Empty(t, res.Games)
		assert.False(t, res.ExternalAvailable)
	})

	t.Run("upsert error", func(t *testing.T) {
		repo, reg, svc := newSearchFixture()
		repo.createErr["13"] = errDB
		reg.available = true
		reg.result = game.ExternalSearchResult{Games: []game.ExternalGame{bggGame("13", "Catan")}, Available: true}

		res := svc.Search(context.Background(), "catan")
		assert.Empty(t, res.Games)
		assert.False(t, res.ExternalAvailable)
	})
}

func TestFindOne(t *testing.T) {
	repo, _, svc := newSearchFixture()
	seedLocal(t, repo, "Azul")

	var id uuid.UUID
	for k := range repo.byID {
		id = k
	}

	g, err := svc.FindOne(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Azul", g.Name)

	_, err = svc.FindOne(context.Background(), uuid.New())
	assert.ErrorIs(t, err, game.ErrGameNotFound)
}

func TestCreateGameUsesUserAPIRefAndRandomKey(t *testing.T) {
	repo, _, svc := newSearchFixture()
	players := 2

	a, err := svc.CreateGame(context.Background(), game.CreateGameRequest{Name: " Homebrew ", MinPlayers: &players})
	require.NoError(t, err)
	b, err := svc.CreateGame(context.Background(), game.CreateGameRequest{Name: "Homebrew"})
	require.NoError(t, err)

	assert.Equal(t, game.APIRefUser, a.APIRef)
	assert.Equal(t, "Homebrew", a.Name)
	_, parseErr := uuid.Parse(a.ExternalID)
	assert.NoError(t, parseErr)
	assert.NotEqual(t, a.ExternalID, b.ExternalID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, repo.byID, 2)
}

func TestCreateGameRejectsInvalidInput(t *testing.T) {
	repo, _, svc := newSearchFixture()
	zero := 0
	badURL := "not a url"

	_, err := svc.CreateGame(context.Background(), game.CreateGameRequest{Name: "  "})
	require.Error(t, err)
	assert.ErrorIs(t, err, game.ErrInvalidGame)

	_, err = svc.CreateGame(context.Background(), game.CreateGameRequest{Name: "X", MinPlayers: &zero, ImageURL: &badURL})
	require.Error(t, err)

	var fieldErrs validation.Errors
	require.True(t, errors.As(err, &fieldErrs))
	assert.Contains(t, fieldErrs, "min_players")
	assert.Contains(t, fieldErrs, "image_url")
	assert.Empty(t, repo.byID)
}
