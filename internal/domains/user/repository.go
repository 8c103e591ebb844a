package user

import (
	"context"

	"github.com/google/uuid"
)

// SearchLimit caps user search results.
const SearchLimit = 10

// Repository is the users store. Finders return ErrUserNotFound when no row matches.
type Repository interface {
	// Create maps unique violations to ErrEmailAlreadyExists / ErrUsernameAlreadyExists.
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// UpdateProfile writes display_name, bio, avatar_url and updated_at.
	UpdateProfile(ctx context.Context, u *User) error

	// Search matches username or display_name case-insensitively as a
	// substring, ordered by username. excludeID, when set, is left out.
	Search(ctx context.Context, query string, excludeID *uuid.UUID, limit int) ([]*User, error)
}

// FollowRepository stores follow edges.
type FollowRepository interface {
	// Follow is idempotent.
	Follow(ctx context.Context, followerID, followingID uuid.UUID) error
	Unfollow(ctx context.Context, followerID, followingID uuid.UUID) error

	CountFollowers(ctx context.Context, userID uuid.UUID) (int, error)
	CountFollowing(ctx context.Context, userID uuid.UUID) (int, error)

	// ListFollowing returns the users userID follows, newest edge first.
	ListFollowing(ctx context.Context, userID uuid.UUID) ([]*User, error)
	// ListFollowers returns the users following userID, newest edge first.
	ListFollowers(ctx context.Context, userID uuid.UUID) ([]*User, error)

	// FollowingAmong returns the members of candidates that followerID follows.
	FollowingAmong(ctx context.Context, followerID uuid.UUID, candidates []uuid.UUID) ([]uuid.UUID, error)
	// FollowersAmong returns the members of candidates that follow userID.
	FollowersAmong(ctx context.Context, userID uuid.UUID, candidates []uuid.UUID) ([]uuid.UUID, error)
}
