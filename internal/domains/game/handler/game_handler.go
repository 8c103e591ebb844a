package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"boardgame-tracker/internal/domains/game"
	"boardgame-tracker/internal/shared/response"
	"boardgame-tracker/internal/shared/utils"
)

var gameErrorMap = map[error]response.ErrorMapping{
	game.ErrGameNotFound: {Status: http.StatusNotFound, Code: "GAME_NOT_FOUND", Message: "The specified game does not exist"},
	game.ErrInvalidGame:  {Status: http.StatusBadRequest, Code: "INVALID_GAME", Message: "Invalid game data"},
}

// HandleGameError writes the HTTP response for a game domain error.
func HandleGameError(c *gin.Context, err error) bool {
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		response.ValidationFailed(c, fieldErrs)
		return true
	}
	return response.HandleDomainError(c, err, gameErrorMap)
}

type GameHandler struct {
	service game.Service
}

func NewGameHandler(service game.Service) *GameHandler {
	return &GameHandler{service: service}
}

// Search - GET /games/search?q=
// Always 200; failures surface as an empty list.
func (h *GameHandler) Search(c *gin.Context) {
	result := h.service.Search(c.Request.Context(), c.Query("q"))
	response.Success(c, http.StatusOK, result)
}

// GetGame - GET /games/:id
func (h *GameHandler) GetGame(c *gin.Context) {
	id := utils.ParseUUID(c.Param("id"))
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid game id")
		return
	}

	g, err := h.service.FindOne(c.Request.Context(), id)
	if HandleGameError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, g)
}

// CreateGame - POST /games (trusted users)
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req game.CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	g, err := h.service.CreateGame(c.Request.Context(), req)
	if HandleGameError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, g)
}
