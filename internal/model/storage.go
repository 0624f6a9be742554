package model

import (
	"time"
)

// StorageEntry SQL 会话存储中的一条键值记录
type StorageEntry struct {
	Key       string    `gorm:"column:entry_key;primaryKey;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (StorageEntry) TableName() string {
	return "storage_entries"
}
