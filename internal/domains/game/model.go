package game

import (
	"time"

	"github.com/google/uuid"
)

// Provider tags stored in games.api_ref.
const (
	APIRefBGG  = "bgg"
	APIRefUser = "user"
)

// ExternalGame is a provider-normalized catalog record. It is never persisted
// as-is; (APIRef, ExternalID) identifies it.
//
// A nil Categories or Mechanics means the source did not provide the field,
// which is distinct from an empty list.
type ExternalGame struct {
	ExternalID       string   `db:"external_id" json:"external_id"`
	APIRef           string   `db:"api_ref" json:"api_ref"`
	Name             string   `db:"name" json:"name"`
	ImageURL         *string  `db:"image_url" json:"image_url"`
	Year             *int     `db:"year" json:"year"`
	MinPlayers       *int     `db:"min_players" json:"min_players"`
	MaxPlayers       *int     `db:"max_players" json:"max_players"`
	PlayTime         *int     `db:"play_time" json:"play_time"`
	ComplexityWeight *float64 `db:"complexity_weight" json:"complexity_weight"`
	Categories       []string `db:"categories" json:"categories"`
	Mechanics        []string `db:"mechanics" json:"mechanics"`
	Description      *string  `db:"description" json:"description"`
}

// Game is a persisted catalog entry. ID is the only stable foreign key target.
type Game struct {
	ID uuid.UUID `db:"id" json:"id"`
	ExternalGame
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// NewGame builds an unsaved Game with a fresh id.
func NewGame(ext ExternalGame, now time.Time) *Game {
	return &Game{
		ID:           uuid.New(),
		ExternalGame: ext,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// ApplyExternal overwrites every descriptive field with ext, keeping ID and
// CreatedAt.
func (g *Game) ApplyExternal(ext ExternalGame, now time.Time) {
	g.ExternalGame = ext
	g.UpdatedAt = now
}

// SearchResult is the catalog search outcome. Games is never nil.
type SearchResult struct {
	Games             []*Game `json:"games"`
	ExternalAvailable bool    `json:"external_available"`
}

// EmptySearchResult returns a result with no games.
func EmptySearchResult(available bool) SearchResult {
	return SearchResult{Games: []*Game{}, ExternalAvailable: available}
}

// ExternalSearchResult is what the provider registry hands back.
// Available reports whether any provider could be queried.
type ExternalSearchResult struct {
	Games     []ExternalGame
	Available bool
}
