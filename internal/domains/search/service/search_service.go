package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"boardgame-tracker/internal/domains/game"
	"boardgame-tracker/internal/domains/search"
	"boardgame-tracker/internal/domains/user"
)

type searchService struct {
	catalog search.Catalog
	users   user.Repository
	follows user.FollowRepository
}

func NewSearchService(catalog search.Catalog, users user.Repository, follows user.FollowRepository) search.Service {
	return &searchService{catalog: catalog, users: users, follows: follows}
}

func (s *searchService) Search(ctx context.Context, query string, viewerID *uuid.UUID) (*search.Result, error) {
	trimmed := strings.TrimSpace(query)
	result := &search.Result{
		Games: []*game.Game{},
		Users: []search.UserResult{},
	}
	if trimmed == "" {
		return result, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		games := s.catalog.Search(gctx, trimmed).Games
		if len(games) > search.GamesLimit {
			games = games[:search.GamesLimit]
		}
		if games != nil {
			result.Games = games
		}
		return nil
	})
	g.Go(func() error {
		users, err := s.SearchUsers(gctx, trimmed, viewerID)
		if err != nil {
			return err
		}
		result.Users = users
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("query", trimmed).
		Int("games", len(result.Games)).
		Int("users", len(result.Users)).
		Msg("[SEARCH] Global search")
	return result, nil
}

func (s *searchService) SearchUsers(ctx context.Context, query string, viewerID *uuid.UUID) ([]search.UserResult, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return []search.UserResult{}, nil
	}

	users, err := s.users.Search(ctx, trimmed, viewerID, user.SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	if len(users) == 0 {
		return []search.UserResult{}, nil
	}

	isFollowing := map[uuid.UUID]bool{}
	followsYou := map[uuid.UUID]bool{}
	if viewerID != nil {
		isFollowing, followsYou, err = s.relations(ctx, *viewerID, users)
		if err != nil {
			return nil, err
		}
	}

	results := make([]search.UserResult, 0, len(users))
	for _, u := range users {
		results = append(results, search.UserResult{
			ID:          u.ID,
			Username:    u.Username,
			DisplayName: u.DisplayName,
			AvatarURL:   u.AvatarURL,
			FollowsYou:  followsYou[u.ID],
			IsFollowing: isFollowing[u.ID],
		})
	}
	return results, nil
}

// relations loads both edge directions between the viewer and users in parallel.
func (s *searchService) relations(ctx context.Context, viewerID uuid.UUID, users []*user.User) (map[uuid.UUID]bool, map[uuid.UUID]bool, error) {
	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	var following, followers []uuid.UUID
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		following, err = s.follows.FollowingAmong(gctx, viewerID, ids)
		return err
	})
	g.Go(func() error {
		var err error
		followers, err = s.follows.FollowersAmong(gctx, viewerID, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("load follow flags: %w", err)
	}

	return toSet(following), toSet(followers), nil
}

func toSet(ids []uuid.UUID) map[uuid.UUID]bool {
	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
