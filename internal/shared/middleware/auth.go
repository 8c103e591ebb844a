package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"boardgame-tracker/internal/shared/response"
	"boardgame-tracker/pkg/jwt"
)

// Context keys set by the auth middlewares.
const (
	ContextUserID      = "user_id"
	ContextUsername    = "username"
	ContextTrustedUser = "trusted_user"
)

// AuthMiddleware requires a valid Bearer access token.
func AuthMiddleware(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Unauthorized(c, "Missing or malformed authorization header")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(token)
		if err != nil {
			log.Debug().Err(err).Msg("[AUTH] Token rejected")
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			response.Unauthorized(c, "Invalid user ID in token")
			c.Abort()
			return
		}

		setIdentity(c, userID, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware sets the identity when a valid token is present
// and lets anonymous requests through untouched.
func OptionalAuthMiddleware(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if ok {
			if claims, err := jwtManager.ValidateAccessToken(token); err == nil {
				if userID, err := uuid.Parse(claims.UserID); err == nil {
					setIdentity(c, userID, claims)
				}
			}
		}
		c.Next()
	}
}

// TrustedUserMiddleware must run after AuthMiddleware. Untrusted callers
// get a 404 so the route stays hidden from them.
func TrustedUserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ContextTrustedUser) {
			response.NotFound(c, "Not found")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID returns the authenticated user's id.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// GetViewerID is GetUserID for optional-auth routes: nil when anonymous.
func GetViewerID(c *gin.Context) *uuid.UUID {
	id, ok := GetUserID(c)
	if !ok {
		return nil
	}
	return &id
}

func setIdentity(c *gin.Context, userID uuid.UUID, claims *jwt.Claims) {
	c.Set(ContextUserID, userID)
	c.Set(ContextUsername, claims.Username)
	c.Set(ContextTrustedUser, claims.TrustedUser)
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
