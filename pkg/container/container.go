package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"boardgame-tracker/internal/config"
	infraCache "boardgame-tracker/internal/infrastructure/cache"
	"boardgame-tracker/internal/infrastructure/database"
	"boardgame-tracker/pkg/cache"
	"boardgame-tracker/pkg/jwt"

	"boardgame-tracker/internal/domains/collection"
	collectionHandler "boardgame-tracker/internal/domains/collection/handler"
	collectionRepo "boardgame-tracker/internal/domains/collection/repository"
	collectionService "boardgame-tracker/internal/domains/collection/service"
	"boardgame-tracker/internal/domains/game"
	gameHandler "boardgame-tracker/internal/domains/game/handler"
	"boardgame-tracker/internal/domains/game/provider"
	"boardgame-tracker/internal/domains/game/provider/bgg"
	gameRepo "boardgame-tracker/internal/domains/game/repository"
	gameService "boardgame-tracker/internal/domains/game/service"
	"boardgame-tracker/internal/domains/play"
	playHandler "boardgame-tracker/internal/domains/play/handler"
	playRepo "boardgame-tracker/internal/domains/play/repository"
	playService "boardgame-tracker/internal/domains/play/service"
	"boardgame-tracker/internal/domains/search"
	searchHandler "boardgame-tracker/internal/domains/search/handler"
	searchService "boardgame-tracker/internal/domains/search/service"
	"boardgame-tracker/internal/domains/user"
	userHandler "boardgame-tracker/internal/domains/user/handler"
	userRepo "boardgame-tracker/internal/domains/user/repository"
	userService "boardgame-tracker/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds the application's dependency graph. Fields are filled in
// layer order: infrastructure, repositories, services, handlers.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	Redis      *infraCache.RedisCache // nil when running on the in-memory cache
	JWTManager *jwt.Manager
	Providers  *provider.Registry

	// Repositories
	GameRepo       game.Repository
	UserRepo       user.Repository
	FollowRepo     user.FollowRepository
	CollectionRepo collection.Repository
	PlayRepo       play.Repository

	// Services
	UpsertService     game.UpsertService
	GameService       game.Service
	UserService       user.Service
	FollowService     user.FollowService
	CollectionService collection.Service
	PlayService       play.Service
	SearchService     search.Service

	// Handlers
	GameHandler       *gameHandler.GameHandler
	UserHandler       *userHandler.UserHandler
	CollectionHandler *collectionHandler.CollectionHandler
	PlayHandler       *playHandler.PlayHandler
	SearchHandler     *searchHandler.SearchHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer loads config, connects the infrastructure and builds every
// layer. A database failure is fatal; a Redis failure falls back to the
// in-process cache.
func NewContainer() (*Container, error) {
	log.Info().Msg("[CONTAINER] Initializing...")

	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("env", cfg.App.Environment).Msg("[CONTAINER] Config loaded")

	if err := c.initDatabase(); err != nil {
		return nil, err
	}
	c.initCache()

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, c.tokenTTL())
	c.initProviders()

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Strs("providers", c.Providers.Enabled()).Msg("[CONTAINER] Initialized successfully")
	return c, nil
}

// ========================================
// INFRASTRUCTURE
// ========================================

func (c *Container) initDatabase() error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	if c.Config.Database.Migrate {
		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}
	return nil
}

func (c *Container) initCache() {
	redisCache := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisCache.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("[CONTAINER] Redis unavailable, using in-memory cache")
		_ = redisCache.Close()
		c.Cache = cache.NewMemoryCache()
		return
	}

	c.Redis = redisCache
	c.Cache = redisCache
}

func (c *Container) tokenTTL() time.Duration {
	return time.Duration(c.Config.JWT.AccessTokenExpiry) * time.Hour
}

// initProviders builds every known provider and lets the registry keep
// the enabled ones, in configured order.
func (c *Container) initProviders() {
	p := c.Config.Providers

	bggClient := bgg.NewClient(&bgg.Config{
		BaseURL:     p.BGG.BaseURL,
		BearerToken: p.BGG.BearerToken,
		Timeout:     p.BGG.Timeout,
		MinInterval: p.BGG.MinInterval,
	})

	c.Providers = provider.NewRegistry(p.Enabled,
		provider.NewCachedProvider(bggClient, c.Cache, p.CacheTTL),
	)
}

// ========================================
// LAYERS
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.GameRepo = gameRepo.NewPostgresRepository(pool, c.Cache, c.Config.Cache.GameTTL)
	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.FollowRepo = userRepo.NewFollowRepository(pool)
	c.CollectionRepo = collectionRepo.NewPostgresRepository(pool)
	c.PlayRepo = playRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.UpsertService = gameService.NewUpsertService(c.GameRepo)
	c.GameService = gameService.NewGameService(c.GameRepo, c.Providers, c.UpsertService)

	c.UserService = userService.NewUserService(
		c.UserRepo,
		c.FollowRepo,
		c.Cache,
		c.JWTManager,
		c.tokenTTL(),
		c.Config.Auth,
		c.Config.Cache.ProfileTTL,
	)
	c.FollowService = userService.NewFollowService(c.UserRepo, c.FollowRepo, c.Cache)

	// Cross-domain: collections and plays resolve games through the catalog.
	c.CollectionService = collectionService.NewCollectionService(c.CollectionRepo, c.GameService)
	c.PlayService = playService.NewPlayService(c.PlayRepo, c.GameService)
	c.SearchService = searchService.NewSearchService(c.GameService, c.UserRepo, c.FollowRepo)
}

func (c *Container) initHandlers() {
	c.GameHandler = gameHandler.NewGameHandler(c.GameService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService, c.FollowService)
	c.CollectionHandler = collectionHandler.NewCollectionHandler(c.CollectionService)
	c.PlayHandler = playHandler.NewPlayHandler(c.PlayService)
	c.SearchHandler = searchHandler.NewSearchHandler(c.SearchService)
}

// ========================================
// HEALTH & CLEANUP
// ========================================

// HealthCheck reports "ok" or the error text per dependency. The database
// is required; the cache only degrades the service.
func (c *Container) HealthCheck(ctx context.Context) (map[string]string, bool) {
	status := map[string]string{"database": "ok", "cache": "ok"}
	healthy := true

	if err := c.DB.HealthCheck(ctx); err != nil {
		status["database"] = err.Error()
		healthy = false
	}
	if c.Redis == nil {
		status["cache"] = "memory"
	} else if err := c.Redis.HealthCheck(ctx); err != nil {
		status["cache"] = err.Error()
	}
	return status, healthy
}

// Cleanup releases connections. Called once on shutdown.
func (c *Container) Cleanup() {
	log.Info().Msg("[CONTAINER] Cleaning up resources...")

	if c.DB != nil {
		_ = c.DB.Close()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("[CONTAINER] Failed to close Redis")
		}
	}

	log.Info().Msg("[CONTAINER] Cleanup completed")
}
