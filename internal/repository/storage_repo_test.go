package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridecircle/ridecircle_client/internal/testutil"
)

func TestStorageRepository_Upsert(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewStorageRepository(db)
	ctx := context.Background()

	t.Run("insert new key", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, "authToken", "tok-1"))

		entry, err := repo.Get(ctx, "authToken")
		require.NoError(t, err)
		assert.Equal(t, "tok-1", entry.Value)
		assert.False(t, entry.UpdatedAt.IsZero())
	})

	t.Run("overwrite existing key", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, "authToken", "tok-2"))

		entry, err := repo.Get(ctx, "authToken")
		require.NoError(t, err)
		assert.Equal(t, "tok-2", entry.Value)

		entries, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}

func TestStorageRepository_Get(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewStorageRepository(db)

	_, err := repo.Get(context.Background(), "missing")
	assert.True(t, IsNotFound(err))
}

func TestStorageRepository_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewStorageRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, "authToken", "tok"))
	require.NoError(t, repo.Upsert(ctx, "userRoles", `["ROLE_USER"]`))
	require.NoError(t, repo.Upsert(ctx, "other", "keep"))

	require.NoError(t, repo.Delete(ctx, "authToken", "userRoles"))
	require.NoError(t, repo.Delete(ctx))

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "other", entries[0].Key)
}

func TestStorageRepository_CanceledContext(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewStorageRepository(db)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, repo.Upsert(ctx, "authToken", "tok"))
}
