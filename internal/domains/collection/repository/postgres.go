package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"boardgame-tracker/internal/domains/collection"
	"boardgame-tracker/internal/domains/game"
	gamerepo "boardgame-tracker/internal/domains/game/repository"
)

// listTable maps each list to its link table and unique constraint.
var listTable = map[collection.List]struct {
	table      string
	constraint string
}{
	collection.ListOwned:    {table: "user_owned_games", constraint: "uq_user_owned_games_user_game"},
	collection.ListWishlist: {table: "user_wishlist_games", constraint: "uq_user_wishlist_games_user_game"},
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) collection.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Add(ctx context.Context, list collection.List, userID, gameID uuid.UUID) error {
	t, ok := listTable[list]
	if !ok {
		return collection.ErrUnknownList
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, game_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT ON CONSTRAINT %s DO NOTHING
	`, t.table, t.constraint)

	if _, err := r.pool.Exec(ctx, query, uuid.New(), userID, gameID, time.Now().UTC()); err != nil {
		return fmt.Errorf("insert %s link: %w", list, err)
	}
	return nil
}

func (r *postgresRepository) Remove(ctx context.Context, list collection.List, userID, gameID uuid.UUID) error {
	t, ok := listTable[list]
	if !ok {
		return collection.ErrUnknownList
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1 AND game_id = $2`, t.table)
	if _, err := r.pool.Exec(ctx, query, userID, gameID); err != nil {
		return fmt.Errorf("delete %s link: %w", list, err)
	}
	return nil
}

func (r *postgresRepository) Games(ctx context.Context, list collection.List, userID uuid.UUID) ([]*game.Game, error) {
	t, ok := listTable[list]
	if !ok {
		return nil, collection.ErrUnknownList
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s l
		JOIN games g ON g.id = l.game_id
		WHERE l.user_id = $1
		ORDER BY l.created_at DESC
	`, gamerepo.Columns("g"), t.table)

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list %s games: %w", list, err)
	}
	defer rows.Close()

	games := make([]*game.Game, 0)
	for rows.Next() {
		g, err := gamerepo.ScanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s games: %w", list, err)
	}
	return games, nil
}
