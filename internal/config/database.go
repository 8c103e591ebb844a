package config

import (
	"fmt"
	"time"

	"boardgame-tracker/internal/infrastructure/database"
)

func loadDatabaseSection() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvInt("DB_PORT", 5432),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Database: getEnv("DB_NAME", "boardgames"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
		MaxConns: getEnvInt("DB_MAX_CONNS", 25),
		MinConns: getEnvInt("DB_MIN_CONNS", 5),
		Migrate:  getEnvBool("DB_MIGRATE", true),
	}
}

// LoadDatabaseConfig builds the pgx pool settings from the DB_* variables.
// Connection fields match Config.Database; the pool tuning knobs are only
// read here.
func LoadDatabaseConfig() (*database.DBConfig, error) {
	section := loadDatabaseSection()

	if section.MaxConns < 1 {
		return nil, fmt.Errorf("DB_MAX_CONNS must be at least 1")
	}
	if section.MinConns < 0 || section.MinConns > section.MaxConns {
		return nil, fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS (%d)", section.MaxConns)
	}

	return &database.DBConfig{
		Host:              section.Host,
		Port:              section.Port,
		Username:          section.User,
		Password:          section.Password,
		DBName:            section.Database,
		SSLMode:           section.SSLMode,
		MaxConns:          int32(section.MaxConns),
		MinConns:          int32(section.MinConns),
		MaxConnLifetime:   getEnvDuration("DB_MAX_CONN_LIFETIME", 5*time.Minute),
		MaxConnIdleTime:   getEnvDuration("DB_MAX_CONN_IDLE_TIME", time.Minute),
		HealthCheckPeriod: getEnvDuration("DB_HEALTH_CHECK_PERIOD", time.Minute),
		MaxRetries:        getEnvInt("DB_MAX_RETRIES", 5),
		RetryDelay:        getEnvDuration("DB_RETRY_DELAY", time.Second),
		ConnectTimeout:    getEnvDuration("DB_CONNECT_TIMEOUT", 10*time.Second),
	}, nil
}
