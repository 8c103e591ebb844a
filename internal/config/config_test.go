package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProviderList(t *testing.T) {
	assert.Equal(t, []string{"bgg", "user"}, ParseProviderList(" BGG , ,user,"))
	assert.Empty(t, ParseProviderList(""))
	assert.Empty(t, ParseProviderList(" , "))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("GAME_PROVIDERS_ENABLED", "")
	t.Setenv("BGG_BASE_URL", "")
	t.Setenv("BGG_TIMEOUT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.Providers.Enabled)
	assert.Equal(t, DefaultBGGBaseURL, cfg.Providers.BGG.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Providers.BGG.Timeout)
	assert.Equal(t, "8080", cfg.App.Port)
}

func TestLoadProviderSettings(t *testing.T) {
	t.Setenv("GAME_PROVIDERS_ENABLED", "bgg")
	t.Setenv("BGG_BASE_URL", "http://bgg.local/xmlapi2")
	t.Setenv("BGG_TIMEOUT", "3s")
	t.Setenv("PROVIDER_CACHE_TTL", "0s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"bgg"}, cfg.Providers.Enabled)
	assert.Equal(t, "http://bgg.local/xmlapi2", cfg.Providers.BGG.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Providers.BGG.Timeout)
	assert.Zero(t, cfg.Providers.CacheTTL)
}

func TestValidateProductionRequiresSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_PASSWORD", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	t.Setenv("JWT_SECRET", "s3cret")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PASSWORD")

	t.Setenv("DB_PASSWORD", "pw")
	_, err = Load()
	assert.NoError(t, err)
}

func TestLoadAuthAndCORSSettings(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://tracker.example.com , ")
	t.Setenv("AUTH_MAX_FAILED_LOGINS", "3")
	t.Setenv("AUTH_LOCKOUT_DURATION", "5m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://tracker.example.com"}, cfg.App.CORSOrigins)
	assert.Equal(t, 3, cfg.Auth.MaxFailedLogins)
	assert.Equal(t, 5*time.Minute, cfg.Auth.LockoutDuration)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AttemptWindow)
}

func TestValidateRejectsZeroFailedLogins(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("AUTH_MAX_FAILED_LOGINS", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_MAX_FAILED_LOGINS")
}

func TestLoadDatabaseConfig(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_MAX_CONNS", "10")
	t.Setenv("DB_MIN_CONNS", "2")
	t.Setenv("DB_RETRY_DELAY", "250ms")

	cfg, err := LoadDatabaseConfig()
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Host)
	assert.EqualValues(t, 10, cfg.MaxConns)
	assert.EqualValues(t, 2, cfg.MinConns)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryDelay)

	t.Setenv("DB_MIN_CONNS", "20")
	_, err = LoadDatabaseConfig()
	assert.ErrorContains(t, err, "DB_MIN_CONNS")
}
