package database

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ridecircle/ridecircle_client/config"
	"github.com/ridecircle/ridecircle_client/internal/model"
)

func TestNewDB_SQLite(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "nested", "session.db")

	db, err := NewDB(&config.SessionConfig{Backend: config.BackendSQLite, DSN: dsn})
	require.NoError(t, err)
	defer Close(db)

	assert.True(t, db.Migrator().HasTable(&model.StorageEntry{}))
}

func TestNewDB_SQLiteDefaultsNextToSessionFile(t *testing.T) {
	dir := t.TempDir()

	db, err := NewDB(&config.SessionConfig{
		Backend:  config.BackendSQLite,
		FilePath: filepath.Join(dir, "session.json"),
	})
	require.NoError(t, err)
	defer Close(db)

	assert.FileExists(t, filepath.Join(dir, "session.db"))
}

func TestNewDB_MigrateFailure(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "session.db")

	// 同名视图占位，建表必然失败
	raw, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, raw.Exec("CREATE VIEW storage_entries AS SELECT 1 AS entry_key").Error)
	require.NoError(t, Close(raw))

	db, err := NewDB(&config.SessionConfig{Backend: config.BackendSQLite, DSN: dsn})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrate storage entries")
	assert.Nil(t, db)
}

func TestNewDB_Errors(t *testing.T) {
	_, err := NewDB(&config.SessionConfig{Backend: config.BackendFile})
	assert.ErrorIs(t, err, ErrUnsupportedBackend)

	_, err = NewDB(&config.SessionConfig{Backend: config.BackendMySQL})
	assert.Error(t, err)
}

func TestNewRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	rdb, err := NewRedis(&config.RedisConfig{Host: mr.Host(), Port: port, PoolSize: 2})
	require.NoError(t, err)
	defer rdb.Close()

	assert.NoError(t, rdb.Set(context.Background(), "k", "v", 0).Err())
	assert.True(t, mr.Exists("k"))
}

func TestNewRedis_Unreachable(t *testing.T) {
	_, err := NewRedis(&config.RedisConfig{Host: "127.0.0.1", Port: 1})
	assert.Error(t, err)
}

func TestClose_Nil(t *testing.T) {
	assert.NoError(t, Close(nil))
}
