package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardgame-tracker/internal/domains/collection"
	"boardgame-tracker/internal/domains/game"
)

type gameLookup map[uuid.UUID]*game.Game

func (l gameLookup) FindOne(ctx context.Context, id uuid.UUID) (*game.Game, error) {
	g, ok := l[id]
	if !ok {
		return nil, game.ErrGameNotFound
	}
	return g, nil
}

type link struct {
	list   collection.List
	userID uuid.UUID
	gameID uuid.UUID
}

// memoryRepo keeps links in insertion order.
type memoryRepo struct {
	games  gameLookup
	links  []link
	addErr error
}

func (r *memoryRepo) Add(ctx context.Context, list collection.List, userID, gameID uuid.UUID) error {
	if r.addErr != nil {
		return r.addErr
	}
	for _, l := range r.links {
		if l == (link{list, userID, gameID}) {
			return nil
		}
	}
	r.links = append(r.links, link{list, userID, gameID})
	return nil
}

func (r *memoryRepo) Remove(ctx context.Context, list collection.List, userID, gameID uuid.UUID) error {
	kept := r.links[:0]
	for _, l := range r.links {
		if l != (link{list, userID, gameID}) {
			kept = append(kept, l)
		}
	}
	r.links = kept
	return nil
}

func (r *memoryRepo) Games(ctx context.Context, list collection.List, userID uuid.UUID) ([]*game.Game, error) {
	out := make([]*game.Game, 0)
	for i := len(r.links) - 1; i >= 0; i-- {
		l := r.links[i]
		if l.list == list && l.userID == userID {
			out = append(out, r.games[l.gameID])
		}
	}
	return out, nil
}

func newGame(name string) *game.Game {
	return &game.Game{ID: uuid.New(), ExternalGame: game.ExternalGame{Name: name, APIRef: game.APIRefBGG, ExternalID: name}}
}

func setup(games ...*game.Game) (collection.Service, *memoryRepo) {
	lookup := gameLookup{}
	for _, g := range games {
		lookup[g.ID] = g
	}
	repo := &memoryRepo{games: lookup}
	return NewCollectionService(repo, lookup), repo
}

func TestAddOwnedIsIdempotentAndReturnsGame(t *testing.T) {
	catan := newGame("Catan")
	svc, repo := setup(catan)
	ctx := context.Background()
	userID := uuid.New()

	g, err := svc.AddOwned(ctx, userID, catan.ID)
	require.NoError(t, err)
	assert.Equal(t, catan.ID, g.ID)

	_, err = svc.AddOwned(ctx, userID, catan.ID)
	require.NoError(t, err)
	assert.Len(t, repo.links, 1)
}

func TestListsAreSeparateAndNewestFirst(t *testing.T) {
	catan, azul, brass := newGame("Catan"), newGame("Azul"), newGame("Brass")
	svc, _ := setup(catan, azul, brass)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.AddOwned(ctx, userID, catan.ID)
	require.NoError(t, err)
	_, err = svc.AddOwned(ctx, userID, azul.ID)
	require.NoError(t, err)
	_, err = svc.AddWishlist(ctx, userID, brass.ID)
	require.NoError(t, err)

	owned, err := svc.ListOwned(ctx, userID)
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Equal(t, "Azul", owned[0].Name)
	assert.Equal(t, "Catan", owned[1].Name)

	wishlist, err := svc.ListWishlist(ctx, userID)
	require.NoError(t, err)
	require.Len(t, wishlist, 1)
	assert.Equal(t, "Brass", wishlist[0].Name)

	other, err := svc.ListOwned(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestRemove(t *testing.T) {
	catan := newGame("Catan")
	svc, repo := setup(catan)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.AddWishlist(ctx, userID, catan.ID)
	require.NoError(t, err)
	require.NoError(t, svc.RemoveWishlist(ctx, userID, catan.ID))
	assert.Empty(t, repo.links)

	// removing an absent link is fine once the game exists
	assert.NoError(t, svc.RemoveOwned(ctx, userID, catan.ID))
}

func TestUnknownGame(t *testing.T) {
	svc, repo := setup()
	ctx := context.Background()

	_, err := svc.AddOwned(ctx, uuid.New(), uuid.New())
	assert.ErrorIs(t, err, game.ErrGameNotFound)
	_, err = svc.AddWishlist(ctx, uuid.New(), uuid.New())
	assert.ErrorIs(t, err, game.ErrGameNotFound)
	assert.ErrorIs(t, svc.RemoveOwned(ctx, uuid.New(), uuid.New()), game.ErrGameNotFound)
	assert.Empty(t, repo.links)
}

func TestAddPropagatesStoreError(t *testing.T) {
	catan := newGame("Catan")
	svc, repo := setup(catan)
	repo.addErr = errors.New("db down")

	_, err := svc.AddOwned(context.Background(), uuid.New(), catan.ID)
	assert.EqualError(t, err, "db down")
}
