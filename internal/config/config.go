package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the whole application configuration, populated from environment variables.
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Auth      AuthConfig
	Providers ProvidersConfig
	Cache     CacheConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
	CORSOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
	Migrate  bool
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry int // hours
}

// AuthConfig controls failed login tracking.
type AuthConfig struct {
	MaxFailedLogins int
	AttemptWindow   time.Duration
	LockoutDuration time.Duration
}

// =====================================================
// EXTERNAL GAME PROVIDERS
// =====================================================

type ProvidersConfig struct {
	// Enabled is the ordered list of provider ids the registry may query.
	Enabled  []string
	BGG      BGGConfig
	CacheTTL time.Duration // 0 disables provider result caching
}

type BGGConfig struct {
	BaseURL     string
	BearerToken string
	Timeout     time.Duration
	// MinInterval spaces outgoing requests; BGG throttles bursts.
	MinInterval time.Duration
}

type CacheConfig struct {
	GameTTL    time.Duration
	ProfileTTL time.Duration
}

const (
	defaultJWTSecret  = "your-secret-key-change-in-production"
	DefaultBGGBaseURL = "https://boardgamegeek.com/xmlapi2"
)

// Load reads config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Boardgame Tracker API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			CORSOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		},
		Database: loadDatabaseSection(),
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", defaultJWTSecret),
			AccessTokenExpiry: getEnvInt("JWT_ACCESS_EXPIRY", 24*7),
		},
		Auth: AuthConfig{
			MaxFailedLogins: getEnvInt("AUTH_MAX_FAILED_LOGINS", 5),
			AttemptWindow:   getEnvDuration("AUTH_ATTEMPT_WINDOW", 15*time.Minute),
			LockoutDuration: getEnvDuration("AUTH_LOCKOUT_DURATION", 30*time.Minute),
		},
		Providers: ProvidersConfig{
			Enabled: ParseProviderList(getEnv("GAME_PROVIDERS_ENABLED", "")),
			BGG: BGGConfig{
				BaseURL:     getEnv("BGG_BASE_URL", DefaultBGGBaseURL),
				BearerToken: getEnv("BGG_BEARER_TOKEN", ""),
				Timeout:     getEnvDuration("BGG_TIMEOUT", 10*time.Second),
				MinInterval: getEnvDuration("BGG_MIN_INTERVAL", 500*time.Millisecond),
			},
			CacheTTL: getEnvDuration("PROVIDER_CACHE_TTL", 10*time.Minute),
		},
		Cache: CacheConfig{
			GameTTL:    getEnvDuration("GAME_CACHE_TTL", 15*time.Minute),
			ProfileTTL: getEnvDuration("PROFILE_CACHE_TTL", time.Minute),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the settings that must not fall back to defaults.
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}
	if c.Providers.BGG.Timeout <= 0 {
		return fmt.Errorf("BGG_TIMEOUT must be positive")
	}
	if c.Auth.MaxFailedLogins < 1 {
		return fmt.Errorf("AUTH_MAX_FAILED_LOGINS must be at least 1")
	}
	return nil
}

// ParseProviderList splits a comma separated provider list, trimming and
// lower-casing each id and dropping blanks. Order is preserved.
func ParseProviderList(raw string) []string {
	ids := splitList(raw)
	for i, id := range ids {
		ids[i] = strings.ToLower(id)
	}
	return ids
}

func splitList(raw string) []string {
	items := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
