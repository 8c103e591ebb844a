package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"boardgame-tracker/internal/domains/collection"
	"boardgame-tracker/internal/domains/game"
	"boardgame-tracker/internal/shared/middleware"
	"boardgame-tracker/internal/shared/response"
	"boardgame-tracker/internal/shared/utils"
)

var collectionErrorMap = map[error]response.ErrorMapping{
	game.ErrGameNotFound:      {Status: http.StatusNotFound, Code: "GAME_NOT_FOUND", Message: "The specified game does not exist"},
	collection.ErrUnknownList: {Status: http.StatusNotFound, Code: "NOT_FOUND", Message: "Not found"},
}

type CollectionHandler struct {
	service collection.Service
}

func NewCollectionHandler(service collection.Service) *CollectionHandler {
	return &CollectionHandler{service: service}
}

// ========================================
// OWNED - /me/owned
// ========================================

func (h *CollectionHandler) ListOwned(c *gin.Context) {
	h.list(c, h.service.ListOwned)
}

func (h *CollectionHandler) AddOwned(c *gin.Context) {
	h.add(c, h.service.AddOwned)
}

func (h *CollectionHandler) RemoveOwned(c *gin.Context) {
	h.remove(c, collection.ListOwned, h.service.RemoveOwned)
}

// ========================================
// WISHLIST - /me/wishlist
// ========================================

func (h *CollectionHandler) ListWishlist(c *gin.Context) {
	h.list(c, h.service.ListWishlist)
}

func (h *CollectionHandler) AddWishlist(c *gin.Context) {
	h.add(c, h.service.AddWishlist)
}

func (h *CollectionHandler) RemoveWishlist(c *gin.Context) {
	h.remove(c, collection.ListWishlist, h.service.RemoveWishlist)
}

// ========================================
// shared plumbing
// ========================================

func (h *CollectionHandler) list(c *gin.Context, fn func(context.Context, uuid.UUID) ([]*game.Game, error)) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	games, err := fn(c.Request.Context(), userID)
	if response.HandleDomainError(c, err, collectionErrorMap) {
		return
	}

	response.Success(c, http.StatusOK, collection.ListResponse{Games: games})
}

func (h *CollectionHandler) add(c *gin.Context, fn func(context.Context, uuid.UUID, uuid.UUID) (*game.Game, error)) {
	userID, gameID, ok := identify(c)
	if !ok {
		return
	}

	g, err := fn(c.Request.Context(), userID, gameID)
	if response.HandleDomainError(c, err, collectionErrorMap) {
		return
	}

	response.Success(c, http.StatusOK, g)
}

func (h *CollectionHandler) remove(c *gin.Context, list collection.List, fn func(context.Context, uuid.UUID, uuid.UUID) error) {
	userID, gameID, ok := identify(c)
	if !ok {
		return
	}

	err := fn(c.Request.Context(), userID, gameID)
	if response.HandleDomainError(c, err, collectionErrorMap) {
		return
	}

	response.Success(c, http.StatusOK, collection.RemovedResponse{List: list, GameID: gameID})
}

// identify reads the caller and the :gameId segment, writing the error
// response itself when either is missing.
func identify(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return uuid.Nil, uuid.Nil, false
	}

	gameID := utils.ParseUUID(c.Param("gameId"))
	if gameID == uuid.Nil {
		response.BadRequest(c, "Invalid game id")
		return uuid.Nil, uuid.Nil, false
	}
	return userID, gameID, true
}
