package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"boardgame-tracker/internal/domains/user"
	"boardgame-tracker/pkg/cache"
)

type followService struct {
	users   user.Repository
	follows user.FollowRepository
	cache   cache.Cache
}

func NewFollowService(users user.Repository, follows user.FollowRepository, c cache.Cache) user.FollowService {
	return &followService{users: users, follows: follows, cache: c}
}

func (s *followService) Follow(ctx context.Context, followerID uuid.UUID, username string) error {
	target, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return err
	}
	return s.follow(ctx, followerID, target.ID)
}

func (s *followService) Unfollow(ctx context.Context, followerID uuid.UUID, username string) error {
	target, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return err
	}
	return s.unfollow(ctx, followerID, target.ID)
}

func (s *followService) FollowByID(ctx context.Context, followerID, targetID uuid.UUID) error {
	if _, err := s.users.FindByID(ctx, targetID); err != nil {
		return err
	}
	return s.follow(ctx, followerID, targetID)
}

func (s *followService) UnfollowByID(ctx context.Context, followerID, targetID uuid.UUID) error {
	if _, err := s.users.FindByID(ctx, targetID); err != nil {
		return err
	}
	return s.unfollow(ctx, followerID, targetID)
}

func (s *followService) follow(ctx context.Context, followerID, targetID uuid.UUID) error {
	if followerID == targetID {
		return user.ErrCannotFollowSelf
	}
	if err := s.follows.Follow(ctx, followerID, targetID); err != nil {
		return err
	}

	s.invalidateCounts(ctx, followerID, targetID)
	log.Info().
		Str("follower_id", followerID.String()).
		Str("following_id", targetID.String()).
		Msg("[FOLLOWS] Followed")
	return nil
}

func (s *followService) unfollow(ctx context.Context, followerID, targetID uuid.UUID) error {
	if followerID == targetID {
		return user.ErrCannotFollowSelf
	}
	if err := s.follows.Unfollow(ctx, followerID, targetID); err != nil {
		return err
	}

	s.invalidateCounts(ctx, followerID, targetID)
	log.Info().
		Str("follower_id", followerID.String()).
		Str("following_id", targetID.String()).
		Msg("[FOLLOWS] Unfollowed")
	return nil
}

func (s *followService) invalidateCounts(ctx context.Context, ids ...uuid.UUID) {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, FollowCountsKey(id))
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		log.Debug().Err(err).Msg("[FOLLOWS] Cache invalidation failed")
	}
}

func (s *followService) ListFollowing(ctx context.Context, userID uuid.UUID) (*user.UserList, error) {
	users, err := s.follows.ListFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &user.UserList{Users: user.ToBasicUsers(users)}, nil
}

func (s *followService) ListFollowers(ctx context.Context, userID uuid.UUID) (*user.UserList, error) {
	users, err := s.follows.ListFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &user.UserList{Users: user.ToBasicUsers(users)}, nil
}
