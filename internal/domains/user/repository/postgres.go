package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"boardgame-tracker/internal/domains/user"
	"boardgame-tracker/internal/infrastructure/database"
	"boardgame-tracker/internal/shared/utils"
)

const userColumns = `
	u.id, u.email, u.username, u.password_hash, u.trusted_user,
	u.display_name, u.bio, u.avatar_url, u.created_at, u.updated_at
`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) user.Repository {
	return &postgresRepository{pool: pool}
}

func scanUser(row pgx.Row) (*user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.PasswordHash,
		&u.TrustedUser,
		&u.DisplayName,
		&u.Bio,
		&u.AvatarURL,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func collectUsers(rows pgx.Rows) ([]*user.User, error) {
	defer rows.Close()

	users := make([]*user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

// ========================================
// CREATE
// ========================================

func (r *postgresRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (
			id, email, username, password_hash, trusted_user,
			display_name, bio, avatar_url, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		u.ID,
		u.Email,
		u.Username,
		u.PasswordHash,
		u.TrustedUser,
		u.DisplayName,
		u.Bio,
		u.AvatarURL,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		switch {
		case database.IsUniqueViolation(err, "uq_users_email"):
			return user.ErrEmailAlreadyExists
		case database.IsUniqueViolation(err, "uq_users_username"):
			return user.ErrUsernameAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// ========================================
// READ
// ========================================

func (r *postgresRepository) findOne(ctx context.Context, where string, arg interface{}) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE ` + where

	u, err := scanUser(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.findOne(ctx, "u.id = $1", id)
}

func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findOne(ctx, "u.email = $1", email)
}

func (r *postgresRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.findOne(ctx, "u.username = $1", username)
}

func (r *postgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check username exists: %w", err)
	}
	return exists, nil
}

// Search passes excludeID as a nullable parameter so one statement serves
// both anonymous and signed-in viewers.
func (r *postgresRepository) Search(ctx context.Context, q string, excludeID *uuid.UUID, limit int) ([]*user.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		WHERE (u.username ILIKE $1 OR u.display_name ILIKE $1)
		  AND ($2::uuid IS NULL OR u.id <> $2)
		ORDER BY u.username ASC
		LIMIT $3
	`

	rows, err := r.pool.Query(ctx, query, utils.ILikePattern(q), excludeID, limit)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return collectUsers(rows)
}

// ========================================
// UPDATE
// ========================================

func (r *postgresRepository) UpdateProfile(ctx context.Context, u *user.User) error {
	query := `
		UPDATE users SET
			display_name = $2,
			bio          = $3,
			avatar_url   = $4,
			updated_at   = $5
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, u.ID, u.DisplayName, u.Bio, u.AvatarURL, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
