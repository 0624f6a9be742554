package session

import (
	"fmt"
	"io"

	"github.com/ridecircle/ridecircle_client/config"
	"github.com/ridecircle/ridecircle_client/internal/database"
	"github.com/ridecircle/ridecircle_client/internal/repository"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

var nopCloser = closerFunc(func() error { return nil })

// Open 按配置选择会话后端，返回的 Closer 释放底层连接
func Open(cfg *config.Config) (Store, io.Closer, error) {
	switch cfg.Session.Backend {
	case config.BackendMemory:
		return NewMemoryStore(), nopCloser, nil
	case config.BackendFile, "":
		return NewFileStore(cfg.Session.FilePath), nopCloser, nil
	case config.BackendSQLite, config.BackendMySQL:
		db, err := database.NewDB(&cfg.Session)
		if err != nil {
			return nil, nil, fmt.Errorf("open %s session store: %w", cfg.Session.Backend, err)
		}
		closer := closerFunc(func() error { return database.Close(db) })
		return NewDBStore(repository.NewStorageRepository(db)), closer, nil
	case config.BackendRedis:
		rdb, err := database.NewRedis(&cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("open redis session store: %w", err)
		}
		return NewRedisStore(rdb, cfg.Session.KeyPrefix), rdb, nil
	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}
