package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"boardgame-tracker/internal/domains/game"
	"boardgame-tracker/internal/domains/play"
	"boardgame-tracker/internal/shared/middleware"
	"boardgame-tracker/internal/shared/response"
	"boardgame-tracker/internal/shared/utils"
)

var playErrorMap = map[error]response.ErrorMapping{
	play.ErrPlayLogNotFound: {Status: http.StatusNotFound, Code: "PLAY_LOG_NOT_FOUND", Message: "Play log not found"},
	play.ErrInvalidPlayLog:  {Status: http.StatusBadRequest, Code: "INVALID_PLAY_LOG", Message: "Invalid play log"},
	game.ErrGameNotFound:    {Status: http.StatusNotFound, Code: "GAME_NOT_FOUND", Message: "The specified game does not exist"},
}

func HandlePlayError(c *gin.Context, err error) bool {
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		response.ValidationFailed(c, fieldErrs)
		return true
	}
	return response.HandleDomainError(c, err, playErrorMap)
}

type PlayHandler struct {
	service play.Service
}

func NewPlayHandler(service play.Service) *PlayHandler {
	return &PlayHandler{service: service}
}

// ListPlays - GET /me/plays
func (h *PlayHandler) ListPlays(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	plays, err := h.service.ListPlays(c.Request.Context(), userID)
	if HandlePlayError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, play.ListResponse{Plays: plays})
}

// CreatePlay - POST /me/plays
func (h *PlayHandler) CreatePlay(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req play.CreatePlayLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	p, err := h.service.CreatePlayLog(c.Request.Context(), userID, req)
	if HandlePlayError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, p)
}

// DeletePlay - DELETE /me/plays/:id
func (h *PlayHandler) DeletePlay(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	id := utils.ParseUUID(c.Param("id"))
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid play log id")
		return
	}

	if HandlePlayError(c, h.service.DeletePlayLog(c.Request.Context(), userID, id)) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Play log deleted successfully"})
}
