package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ridecircle/ridecircle_client/internal/model"
)

type StorageRepository struct {
	db *gorm.DB
}

func NewStorageRepository(db *gorm.DB) *StorageRepository {
	return &StorageRepository{db: db}
}

// Get 返回 gorm.ErrRecordNotFound 表示键不存在
func (r *StorageRepository) Get(ctx context.Context, key string) (*model.StorageEntry, error) {
	var entry model.StorageEntry
	err := r.db.WithContext(ctx).Where("entry_key = ?", key).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Upsert 写入或覆盖
func (r *StorageRepository) Upsert(ctx context.Context, key, value string) error {
	entry := model.StorageEntry{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (r *StorageRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("entry_key IN ?", keys).Delete(&model.StorageEntry{}).Error
}

func (r *StorageRepository) List(ctx context.Context) ([]model.StorageEntry, error) {
	var entries []model.StorageEntry
	err := r.db.WithContext(ctx).Order("entry_key ASC").Find(&entries).Error
	return entries, err
}

// IsNotFound 判断是否为记录不存在
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
