package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"boardgame-tracker/internal/shared/middleware"
	"boardgame-tracker/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.App.CORSOrigins),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c, c.Config.App.Version))

		setupAuthRoutes(v1, c)
		setupGameRoutes(v1, c)
		setupSearchRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupMeRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
	}
}

// ========================================
// GAME ROUTES
// ========================================
func setupGameRoutes(v1 *gin.RouterGroup, c *container.Container) {
	games := v1.Group("/games")
	{
		games.GET("/search", c.GameHandler.Search)
		games.GET("/:id", c.GameHandler.GetGame)
		games.POST("",
			middleware.AuthMiddleware(c.JWTManager),
			middleware.TrustedUserMiddleware(),
			c.GameHandler.CreateGame,
		)
	}
}

// ========================================
// SEARCH ROUTES
// ========================================
func setupSearchRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/search", middleware.OptionalAuthMiddleware(c.JWTManager), c.SearchHandler.Search)
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	{
		users.GET("/:id", c.UserHandler.GetPublicProfile)

		authed := users.Group("")
		authed.Use(middleware.AuthMiddleware(c.JWTManager))
		authed.POST("/:id/follow", c.UserHandler.FollowUser)
		authed.DELETE("/:id/follow", c.UserHandler.UnfollowUser)
	}
}

// ========================================
// ME ROUTES (authenticated)
// ========================================
func setupMeRoutes(v1 *gin.RouterGroup, c *container.Container) {
	me := v1.Group("/me")
	me.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		me.GET("", c.UserHandler.GetMe)
		me.PATCH("", c.UserHandler.UpdateMe)

		me.GET("/owned", c.CollectionHandler.ListOwned)
		me.POST("/owned/:gameId", c.CollectionHandler.AddOwned)
		me.DELETE("/owned/:gameId", c.CollectionHandler.RemoveOwned)

		me.GET("/wishlist", c.CollectionHandler.ListWishlist)
		me.POST("/wishlist/:gameId", c.CollectionHandler.AddWishlist)
		me.DELETE("/wishlist/:gameId", c.CollectionHandler.RemoveWishlist)

		me.GET("/plays", c.PlayHandler.ListPlays)
		me.POST("/plays", c.PlayHandler.CreatePlay)
		me.DELETE("/plays/:id", c.PlayHandler.DeletePlay)

		me.GET("/following", c.UserHandler.ListFollowing)
		me.GET("/followers", c.UserHandler.ListFollowers)
		me.POST("/following/:username", c.UserHandler.Follow)
		me.DELETE("/following/:username", c.UserHandler.Unfollow)
	}
}

// ========================================
// HEALTH
// ========================================

type healthChecker interface {
	HealthCheck(ctx context.Context) (map[string]string, bool)
}

func healthCheckHandler(checker healthChecker, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		services, healthy := checker.HealthCheck(ctx)

		status, code := "ok", http.StatusOK
		if !healthy {
			status, code = "degraded", http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   version,
			"services":  services,
		})
	}
}
