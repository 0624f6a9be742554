package session

import (
	"context"

	"github.com/ridecircle/ridecircle_client/internal/repository"
)

// DBStore 基于 storage_entries 表，sqlite 和 mysql 共用
type DBStore struct {
	repo *repository.StorageRepository
}

func NewDBStore(repo *repository.StorageRepository) *DBStore {
	return &DBStore{repo: repo}
}

func (s *DBStore) Get(ctx context.Context, key string) (string, bool, error) {
	entry, err := s.repo.Get(ctx, key)
	if repository.IsNotFound(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

func (s *DBStore) Set(ctx context.Context, key, value string) error {
	return s.repo.Upsert(ctx, key, value)
}

func (s *DBStore) Delete(ctx context.Context, keys ...string) error {
	return s.repo.Delete(ctx, keys...)
}
