package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"boardgame-tracker/internal/domains/search"
	"boardgame-tracker/internal/shared/middleware"
	"boardgame-tracker/internal/shared/response"
)

type SearchHandler struct {
	service search.Service
}

func NewSearchHandler(service search.Service) *SearchHandler {
	return &SearchHandler{service: service}
}

// Search - GET /search?q= (optional auth)
// Signed-in viewers are excluded from the user results and get follow flags.
func (h *SearchHandler) Search(c *gin.Context) {
	result, err := h.service.Search(c.Request.Context(), c.Query("q"), middleware.GetViewerID(c))
	if err != nil {
		log.Error().Err(err).Str("query", c.Query("q")).Msg("[SEARCH] Global search failed")
		response.InternalServerError(c, "Search failed")
		return
	}

	response.Success(c, http.StatusOK, result)
}
