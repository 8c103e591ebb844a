package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"boardgame-tracker/internal/domains/game"
	"boardgame-tracker/internal/shared/utils"
	"boardgame-tracker/pkg/cache"
)

var columnNames = []string{
	"id", "name", "external_id", "api_ref", "image_url", "year",
	"min_players", "max_players", "play_time", "complexity_weight",
	"categories", "mechanics", "description", "created_at", "updated_at",
}

var gameColumns = Columns("")

// Columns is the select list ScanGame expects, qualified with alias when
// the query joins other tables.
func Columns(alias string) string {
	if alias == "" {
		return strings.Join(columnNames, ", ")
	}
	qualified := make([]string, len(columnNames))
	for i, name := range columnNames {
		qualified[i] = alias + "." + name
	}
	return strings.Join(qualified, ", ")
}

type postgresRepository struct {
	pool     *pgxpool.Pool
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewPostgresRepository returns the pgx-backed game store. Lookups by id are
// cached for cacheTTL; a non-positive TTL disables caching.
func NewPostgresRepository(pool *pgxpool.Pool, c cache.Cache, cacheTTL time.Duration) game.Repository {
	return &postgresRepository{
		pool:     pool,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

func cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("game:%s", id.String())
}

// ScanGame reads one row selected with Columns.
func ScanGame(row pgx.Row) (*game.Game, error) {
	var g game.Game
	err := row.Scan(
		&g.ID,
		&g.Name,
		&g.ExternalID,
		&g.APIRef,
		&g.ImageURL,
		&g.Year,
		&g.MinPlayers,
		&g.MaxPlayers,
		&g.PlayTime,
		&g.ComplexityWeight,
		&g.Categories,
		&g.Mechanics,
		&g.Description,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// ========================================
// READS
// ========================================

// FindByID uses cache-aside with key "game:<id>".
func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*game.Game, error) {
	key := cacheKey(id)

	if r.cacheTTL > 0 {
		var cached game.Game
		found, err := r.cache.Get(ctx, key, &cached)
		if err == nil && found {
			return &cached, nil
		}
	}

	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1`
	g, err := ScanGame(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, game.ErrGameNotFound
		}
		return nil, fmt.Errorf("find game by id: %w", err)
	}

	if r.cacheTTL > 0 {
		if err := r.cache.Set(ctx, key, g, r.cacheTTL); err != nil {
			log.Debug().Err(err).Str("key", key).Msg("[GAMES] Cache write failed")
		}
	}
	return g, nil
}

func (r *postgresRepository) FindByNaturalKey(ctx context.Context, apiRef, externalID string) (*game.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE api_ref = $1 AND external_id = $2`

	g, err := ScanGame(r.pool.QueryRow(ctx, query, apiRef, externalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, game.ErrGameNotFound
		}
		return nil, fmt.Errorf("find game by natural key: %w", err)
	}
	return g, nil
}

func (r *postgresRepository) SearchByName(ctx context.Context, q string, limit int) ([]*game.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE name ILIKE $1
		ORDER BY name ASC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, utils.ILikePattern(q), limit)
	if err != nil {
		return nil, fmt.Errorf("search games: %w", err)
	}
	defer rows.Close()

	games := make([]*game.Game, 0)
	for rows.Next() {
		g, err := ScanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate games: %w", err)
	}

	return games, nil
}

// ========================================
// WRITES
// ========================================

// Create inserts g. If a row with the same (api_ref, external_id) was
// inserted concurrently, that row is refreshed instead and returned with
// its original id.
func (r *postgresRepository) Create(ctx context.Context, g *game.Game) (*game.Game, error) {
	query := `
		INSERT INTO games (
			id, name, external_id, api_ref, image_url, year,
			min_players, max_players, play_time, complexity_weight,
			categories, mechanics, description, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		)
		ON CONFLICT ON CONSTRAINT uq_games_api_ref_external_id DO UPDATE SET
			name              = EXCLUDED.name,
			image_url         = EXCLUDED.image_url,
			year              = EXCLUDED.year,
			min_players       = EXCLUDED.min_players,
			max_players       = EXCLUDED.max_players,
			play_time         = EXCLUDED.play_time,
			complexity_weight = EXCLUDED.complexity_weight,
			categories        = EXCLUDED.categories,
			mechanics         = EXCLUDED.mechanics,
			description       = EXCLUDED.description,
			updated_at        = EXCLUDED.updated_at
		RETURNING ` + gameColumns

	saved, err := ScanGame(r.pool.QueryRow(ctx, query,
		g.ID,
		g.Name,
		g.ExternalID,
		g.APIRef,
		g.ImageURL,
		g.Year,
		g.MinPlayers,
		g.MaxPlayers,
		g.PlayTime,
		g.ComplexityWeight,
		g.Categories,
		g.Mechanics,
		g.Description,
		g.CreatedAt,
		g.UpdatedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("insert game: %w", err)
	}

	if saved.ID != g.ID {
		log.Debug().
			Str("api_ref", g.APIRef).
			Str("external_id", g.ExternalID).
			Msg("[GAMES] Concurrent insert resolved to existing row")
		r.invalidate(ctx, saved.ID)
	}
	return saved, nil
}

// Update overwrites the descriptive fields of an existing row.
func (r *postgresRepository) Update(ctx context.Context, g *game.Game) error {
	query := `
		UPDATE games SET
			name              = $2,
			image_url         = $3,
			year              = $4,
			min_players       = $5,
			max_players       = $6,
			play_time         = $7,
			complexity_weight = $8,
			categories        = $9,
			mechanics         = $10,
			description       = $11,
			updated_at        = $12
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		g.ID,
		g.Name,
		g.ImageURL,
		g.Year,
		g.MinPlayers,
		g.MaxPlayers,
		g.PlayTime,
		g.ComplexityWeight,
		g.Categories,
		g.Mechanics,
		g.Description,
		g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update game: %w", err)
	}
	if result.RowsAffected() == 0 {
		return game.ErrGameNotFound
	}

	r.invalidate(ctx, g.ID)
	return nil
}

func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if r.cacheTTL <= 0 {
		return
	}
	if err := r.cache.Delete(ctx, cacheKey(id)); err != nil {
		log.Debug().Err(err).Str("game_id", id.String()).Msg("[GAMES] Cache invalidation failed")
	}
}
