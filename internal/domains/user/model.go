package user

import (
	"time"

	"github.com/google/uuid"
)

// User is an account. PasswordHash never leaves the service layer.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	TrustedUser  bool      `json:"trusted_user"`
	DisplayName  *string   `json:"display_name"`
	Bio          *string   `json:"bio"`
	AvatarURL    *string   `json:"avatar_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserFollow is a directed edge: FollowerID follows FollowingID.
type UserFollow struct {
	ID          uuid.UUID `json:"id"`
	FollowerID  uuid.UUID `json:"follower_id"`
	FollowingID uuid.UUID `json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// FollowCounts is cached per user under "follow_counts:<id>".
type FollowCounts struct {
	Followers int `json:"followers"`
	Following int `json:"following"`
}
