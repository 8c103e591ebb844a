package user

import (
	"context"

	"github.com/google/uuid"
)

// Service covers accounts and profiles.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)

	GetMe(ctx context.Context, userID uuid.UUID) (*User, error)
	GetPublicProfile(ctx context.Context, username string) (*PublicProfile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*User, error)
}

// FollowService manages the follow graph. Unknown targets yield
// ErrUserNotFound; following yourself yields ErrCannotFollowSelf.
type FollowService interface {
	Follow(ctx context.Context, followerID uuid.UUID, username string) error
	Unfollow(ctx context.Context, followerID uuid.UUID, username string) error
	FollowByID(ctx context.Context, followerID, targetID uuid.UUID) error
	UnfollowByID(ctx context.Context, followerID, targetID uuid.UUID) error

	ListFollowing(ctx context.Context, userID uuid.UUID) (*UserList, error)
	ListFollowers(ctx context.Context, userID uuid.UUID) (*UserList, error)
}
