package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	gamerepo "boardgame-tracker/internal/domains/game/repository"
	"boardgame-tracker/internal/domains/play"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) play.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, p *play.PlayLog) error {
	query := `
		INSERT INTO play_logs (
			id, user_id, game_id, played_at, duration_minutes,
			players_count, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID,
		p.UserID,
		p.GameID,
		p.PlayedAt,
		p.DurationMinutes,
		p.PlayersCount,
		p.Notes,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert play log: %w", err)
	}
	return nil
}

func (r *postgresRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*play.PlayLog, error) {
	query := `
		SELECT
			p.id, p.user_id, p.game_id, p.played_at, p.duration_minutes,
			p.players_count, p.notes, p.created_at, p.updated_at,
			` + gamerepo.Columns("g") + `
		FROM play_logs p
		JOIN games g ON g.id = p.game_id
		WHERE p.user_id = $1
		ORDER BY p.played_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list play logs: %w", err)
	}
	defer rows.Close()

	logs := make([]*play.PlayLog, 0)
	for rows.Next() {
		p, err := scanPlayWithGame(rows)
		if err != nil {
			return nil, fmt.Errorf("scan play log: %w", err)
		}
		logs = append(logs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate play logs: %w", err)
	}
	return logs, nil
}

// scanPlayWithGame splits one joined row between the play log and its game.
func scanPlayWithGame(rows pgx.Rows) (*play.PlayLog, error) {
	var p play.PlayLog
	g, err := gamerepo.ScanGame(prefixRow{
		rows: rows,
		prefix: []interface{}{
			&p.ID, &p.UserID, &p.GameID, &p.PlayedAt, &p.DurationMinutes,
			&p.PlayersCount, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
		},
	})
	if err != nil {
		return nil, err
	}
	p.Game = g
	return &p, nil
}

// prefixRow prepends fixed destinations to a Scan call.
type prefixRow struct {
	rows   pgx.Rows
	prefix []interface{}
}

func (r prefixRow) Scan(dest ...interface{}) error {
	return r.rows.Scan(append(r.prefix, dest...)...)
}

func (r *postgresRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM play_logs WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete play log: %w", err)
	}
	if result.RowsAffected() == 0 {
		return play.ErrPlayLogNotFound
	}
	return nil
}
