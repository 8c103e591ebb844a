package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardgame-tracker/internal/config"
	"boardgame-tracker/internal/domains/collection"
	"boardgame-tracker/internal/domains/game"
	gamerepo "boardgame-tracker/internal/domains/game/repository"
	"boardgame-tracker/internal/domains/user"
	userrepo "boardgame-tracker/internal/domains/user/repository"
	"boardgame-tracker/internal/infrastructure/database"
	"boardgame-tracker/pkg/cache"
)

func TestPostgresCollectionLinks(t *testing.T) {
	if os.Getenv("RUN_PG_INTEGRATION") != "true" {
		t.Skip("set RUN_PG_INTEGRATION=true to run against a live PostgreSQL")
	}

	cfg, err := config.LoadDatabaseConfig()
	require.NoError(t, err)
	db := database.NewPostgresDB(cfg)
	ctx := context.Background()
	require.NoError(t, db.Connect(ctx))
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate(ctx))

	now := time.Now().UTC()
	suffix := uuid.NewString()[:8]
	u := &user.User{
		ID: uuid.New(), Email: "coll" + suffix + "@example.com", Username: "coll" + suffix,
		PasswordHash: "hash", CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, userrepo.NewPostgresRepository(db.Pool).Create(ctx, u))

	games := gamerepo.NewPostgresRepository(db.Pool, cache.NewMemoryCache(), 0)
	first, err := games.Create(ctx, game.NewGame(game.ExternalGame{APIRef: "test", ExternalID: uuid.NewString(), Name: "First"}, now))
	require.NoError(t, err)
	second, err := games.Create(ctx, game.NewGame(game.ExternalGame{APIRef: "test", ExternalID: uuid.NewString(), Name: "Second"}, now))
	require.NoError(t, err)

	repo := NewPostgresRepository(db.Pool)
	require.NoError(t, repo.Add(ctx, collection.ListOwned, u.ID, first.ID))
	require.NoError(t, repo.Add(ctx, collection.ListOwned, u.ID, first.ID))
	require.NoError(t, repo.Add(ctx, collection.ListOwned, u.ID, second.ID))

	owned, err := repo.Games(ctx, collection.ListOwned, u.ID)
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Equal(t, second.ID, owned[0].ID)

	wishlist, err := repo.Games(ctx, collection.ListWishlist, u.ID)
	require.NoError(t, err)
	assert.Empty(t, wishlist)

	require.NoError(t, repo.Remove(ctx, collection.ListOwned, u.ID, first.ID))
	owned, err = repo.Games(ctx, collection.ListOwned, u.ID)
	require.NoError(t, err)
	assert.Len(t, owned, 1)

	assert.ErrorIs(t, repo.Add(ctx, collection.List("basement"), u.ID, first.ID), collection.ErrUnknownList)
}
