package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"boardgame-tracker/internal/domains/game"
)

// memoryRepo is an in-memory game.Repository keyed like the games table.
type memoryRepo struct {
	mu    sync.Mutex
	byID  map[uuid.UUID]*game.Game
	order []uuid.UUID

	searchErr error
	createErr map[string]error // external id -> error

	searchCalls int
	createCalls int
	updateCalls int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byID: map[uuid.UUID]*game.Game{}, createErr: map[string]error{}}
}

func clone(g *game.Game) *game.Game {
	c := *g
	return &c
}

func (r *memoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*game.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.byID[id]
	if !ok {
		return nil, game.ErrGameNotFound
	}
	return clone(g), nil
}

func (r *memoryRepo) FindByNaturalKey(ctx context.Context, apiRef, externalID string) (*game.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.byID {
		if g.APIRef == apiRef && g.ExternalID == externalID {
			return clone(g), nil
		}
	}
	return nil, game.ErrGameNotFound
}

func (r *memoryRepo) SearchByName(ctx context.Context, q string, limit int) ([]*game.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.searchCalls++
	if r.searchErr != nil {
		return nil, r.searchErr
	}

	out := make([]*game.Game, 0)
	for _, g := range r.byID {
		if strings.Contains(strings.ToLower(g.Name), strings.ToLower(q)) {
			out = append(out, clone(g))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryRepo) Create(ctx context.Context, g *game.Game) (*game.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if err := r.createErr[g.ExternalID]; err != nil {
		return nil, err
	}
	for _, existing := range r.byID {
		if existing.APIRef == g.APIRef && existing.ExternalID == g.ExternalID {
			existing.ExternalGame = g.ExternalGame
			existing.UpdatedAt = g.UpdatedAt
			return clone(existing), nil
		}
	}
	r.byID[g.ID] = clone(g)
	r.order = append(r.order, g.ID)
	return clone(g), nil
}

func (r *memoryRepo) Update(ctx context.Context, g *game.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateCalls++
	if _, ok := r.byID[g.ID]; !ok {
		return game.ErrGameNotFound
	}
	r.byID[g.ID] = clone(g)
	return nil
}

// fakeRegistry is a scripted game.ProviderRegistry.
type fakeRegistry struct {
	available bool
	result    game.ExternalSearchResult
	err       error
	panics    bool

	availCalls  int
	searchCalls int
}

func (f *fakeRegistry) IsAnyExternalAvailable(ctx context.Context) bool {
	f.availCalls++
	return f.available
}

func (f *fakeRegistry) SearchAll(ctx context.Context, q string) (game.ExternalSearchResult, error) {
	f.searchCalls++
	if f.panics {
		panic("registry blew up")
	}
	return f.result, f.err
}

var errDB = errors.New("connection refused")
