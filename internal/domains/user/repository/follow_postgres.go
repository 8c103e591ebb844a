package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"boardgame-tracker/internal/domains/user"
)

type followRepository struct {
	pool *pgxpool.Pool
}

func NewFollowRepository(pool *pgxpool.Pool) user.FollowRepository {
	return &followRepository{pool: pool}
}

func (r *followRepository) Follow(ctx context.Context, followerID, followingID uuid.UUID) error {
	query := `
		INSERT INTO user_follows (id, follower_id, following_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT ON CONSTRAINT uq_user_follows_follower_following DO NOTHING
	`

	if _, err := r.pool.Exec(ctx, query, uuid.New(), followerID, followingID, time.Now().UTC()); err != nil {
		return fmt.Errorf("insert follow: %w", err)
	}
	return nil
}

func (r *followRepository) Unfollow(ctx context.Context, followerID, followingID uuid.UUID) error {
	query := `DELETE FROM user_follows WHERE follower_id = $1 AND following_id = $2`

	if _, err := r.pool.Exec(ctx, query, followerID, followingID); err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	return nil
}

func (r *followRepository) CountFollowers(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM user_follows WHERE following_id = $1`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count followers: %w", err)
	}
	return n, nil
}

func (r *followRepository) CountFollowing(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM user_follows WHERE follower_id = $1`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count following: %w", err)
	}
	return n, nil
}

func (r *followRepository) ListFollowing(ctx context.Context, userID uuid.UUID) ([]*user.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM user_follows f
		JOIN users u ON u.id = f.following_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list following: %w", err)
	}
	return collectUsers(rows)
}

func (r *followRepository) ListFollowers(ctx context.Context, userID uuid.UUID) ([]*user.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM user_follows f
		JOIN users u ON u.id = f.follower_id
		WHERE f.following_id = $1
		ORDER BY f.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list followers: %w", err)
	}
	return collectUsers(rows)
}

func (r *followRepository) FollowingAmong(ctx context.Context, followerID uuid.UUID, candidates []uuid.UUID) ([]uuid.UUID, error) {
	return r.edgeIDs(ctx,
		`SELECT following_id FROM user_follows WHERE follower_id = $1 AND following_id = ANY($2)`,
		followerID, candidates,
	)
}

func (r *followRepository) FollowersAmong(ctx context.Context, userID uuid.UUID, candidates []uuid.UUID) ([]uuid.UUID, error) {
	return r.edgeIDs(ctx,
		`SELECT follower_id FROM user_follows WHERE following_id = $1 AND follower_id = ANY($2)`,
		userID, candidates,
	)
}

func (r *followRepository) edgeIDs(ctx context.Context, query string, anchor uuid.UUID, candidates []uuid.UUID) ([]uuid.UUID, error) {
	if len(candidates) == 0 {
		return []uuid.UUID{}, nil
	}

	rows, err := r.pool.Query(ctx, query, anchor, candidates)
	if err != nil {
		return nil, fmt.Errorf("query follow edges: %w", err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0, len(candidates))
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan follow edge: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate follow edges: %w", err)
	}
	return ids, nil
}
