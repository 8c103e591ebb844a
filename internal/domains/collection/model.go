package collection

import (
	"errors"

	"github.com/google/uuid"

	"boardgame-tracker/internal/domains/game"
)

// List names one of a user's game lists.
type List string

const (
	ListOwned    List = "owned"
	ListWishlist List = "wishlist"
)

var ErrUnknownList = errors.New("unknown game list")

func (l List) Valid() bool {
	return l == ListOwned || l == ListWishlist
}

// ListResponse is the body of GET /me/owned and GET /me/wishlist.
type ListResponse struct {
	Games []*game.Game `json:"games"`
}

// RemovedResponse acknowledges a removal.
type RemovedResponse struct {
	List   List      `json:"list"`
	GameID uuid.UUID `json:"game_id"`
}
