package search

import (
	"github.com/google/uuid"

	"boardgame-tracker/internal/domains/game"
)

// GamesLimit caps the games half of a global search.
const GamesLimit = 10

// UserResult is a user seen from the viewer's side of the follow graph.
// Both flags are false for anonymous viewers.
type UserResult struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName *string   `json:"display_name"`
	AvatarURL   *string   `json:"avatar_url"`
	FollowsYou  bool      `json:"follows_you"`
	IsFollowing bool      `json:"is_following"`
}

type Result struct {
	Games []*game.Game `json:"games"`
	Users []UserResult `json:"users"`
}
