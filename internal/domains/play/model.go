package play

import (
	"time"

	"github.com/google/uuid"

	"boardgame-tracker/internal/domains/game"
)

// ListLimit caps GET /me/plays.
const ListLimit = 50

// PlayLog records one session of a game. Game is populated on reads.
type PlayLog struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	GameID          uuid.UUID  `json:"game_id"`
	PlayedAt        time.Time  `json:"played_at"`
	DurationMinutes *int       `json:"duration_minutes"`
	PlayersCount    *int       `json:"players_count"`
	Notes           *string    `json:"notes"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	Game            *game.Game `json:"game"`
}

type ListResponse struct {
	Plays []*PlayLog `json:"plays"`
}
