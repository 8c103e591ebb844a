package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"boardgame-tracker/internal/shared/response"
)

// Recovery turns a handler panic into a 500 envelope.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().
					Str("request_id", c.GetString(ContextRequestID)).
					Str("method", c.Request.Method).
					Str("route", c.FullPath()).
					Interface("panic", rec).
					Stack().
					Msg("[HTTP] Handler panicked")

				if !c.Writer.Written() {
					response.InternalServerError(c, "Internal server error")
				}
				c.Abort()
			}
		}()

		c.Next()
	}
}
