package session

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridecircle/ridecircle_client/internal/repository"
	"github.com/ridecircle/ridecircle_client/internal/testutil"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisStore(rdb, "test:"), mr
}

func backends(t *testing.T) map[string]Store {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	rs, _ := newRedisStore(t)

	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   NewFileStore(filepath.Join(t.TempDir(), "session.json")),
		"db":     NewDBStore(repository.NewStorageRepository(db)),
		"redis":  rs,
	}
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := store.Get(ctx, "authToken")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, store.Set(ctx, "authToken", "tok-1"))
			v, ok, err := store.Get(ctx, "authToken")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "tok-1", v)

			require.NoError(t, store.Set(ctx, "authToken", "tok-2"))
			v, _, _ = store.Get(ctx, "authToken")
			assert.Equal(t, "tok-2", v)

			require.NoError(t, store.Set(ctx, "userRoles", `["ROLE_USER"]`))
			require.NoError(t, store.Delete(ctx, "authToken", "userRoles", "never-set"))

			_, ok, err = store.Get(ctx, "authToken")
			require.NoError(t, err)
			assert.False(t, ok)
			_, ok, err = store.Get(ctx, "userRoles")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, store.Delete(ctx))
		})
	}
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	require.NoError(t, NewFileStore(path).Set(ctx, "authToken", "durable"))

	v, ok, err := NewFileStore(path).Get(ctx, "authToken")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "durable", v)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_EmptyAndCorruptFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	_, ok, err := NewFileStore(empty).Get(ctx, "authToken")
	require.NoError(t, err)
	assert.False(t, ok)

	corrupt := filepath.Join(dir, "corrupt.json")
	require.NoError(t, os.WriteFile(corrupt, []byte("{not json"), 0o600))
	_, _, err = NewFileStore(corrupt).Get(ctx, "authToken")
	assert.Error(t, err)
}

func TestFileStore_ConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = store.Set(ctx, string(rune('a'+i)), "v")
		}(i)
	}
	wg.Wait()

	for i := 0; i < 10; i++ {
		_, ok, err := store.Get(ctx, string(rune('a'+i)))
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestRedisStore_UsesPrefix(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)

	require.NoError(t, store.Set(ctx, "authToken", "tok"))

	got, err := mr.Get("test:authToken")
	require.NoError(t, err)
	assert.Equal(t, "tok", got)
	assert.False(t, mr.Exists("authToken"))
}

// 需要 TEST_DATABASE_DSN，未设置时跳过
func TestDBStore_MySQL(t *testing.T) {
	db := testutil.SetupTestDBWithMySQL(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })
	testutil.TruncateTables(t, db)
	t.Cleanup(func() { testutil.TruncateTables(t, db) })

	ctx := context.Background()
	store := NewDBStore(repository.NewStorageRepository(db))

	require.NoError(t, store.Set(ctx, KeyAuthToken, "mysql-token"))
	require.NoError(t, store.Set(ctx, KeyAuthToken, "mysql-token-2"))

	v, ok, err := store.Get(ctx, KeyAuthToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "mysql-token-2", v)
}
