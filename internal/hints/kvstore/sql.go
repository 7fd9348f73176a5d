package kvstore

import (
	"context"
	"errors"
	"time"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	cerrors "github.com/park285/action-reaction-hints/internal/common/errors"
)

const deleteBatchSize = 500

// KVItem: 키-값 행
type KVItem struct {
	Key       string    `gorm:"column:item_key;primaryKey;size:512"`
	Value     string    `gorm:"column:item_value;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

func (KVItem) TableName() string { return "hint_kv_items" }

// SQLStore: gorm 기반 키-값 저장소 (PostgreSQL, SQLite)
type SQLStore struct {
	db *gorm.DB
}

// NewSQLStore: SQLStore 를 생성한다. AutoMigrate 는 호출자가 먼저 수행한다.
func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

// AutoMigrate: hint_kv_items 테이블을 생성/갱신한다.
func (s *SQLStore) AutoMigrate(ctx context.Context) error {
	if s == nil || s.db == nil {
		return errors.New("db is nil")
	}
	if err := s.db.WithContext(ctx).AutoMigrate(&KVItem{}); err != nil {
		return cerrors.DatabaseError{Operation: "kv_migrate", Err: err}
	}
	return nil
}

func (s *SQLStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	var item KVItem
	err := s.db.WithContext(ctx).Where("item_key = ?", key).Take(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, cerrors.DatabaseError{Operation: "kv_get", Err: err}
	}
	return item.Value, true, nil
}

// SetItem: UPSERT 로 값을 전체 교체한다.
func (s *SQLStore) SetItem(ctx context.Context, key, value string) error {
	item := KVItem{Key: key, Value: value, UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"item_value", "updated_at"}),
	}).Create(&item).Error
	if err != nil {
		return cerrors.DatabaseError{Operation: "kv_set", Err: err}
	}
	return nil
}

func (s *SQLStore) RemoveItem(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("item_key = ?", key).Delete(&KVItem{}).Error; err != nil {
		return cerrors.DatabaseError{Operation: "kv_remove", Err: err}
	}
	return nil
}

func (s *SQLStore) GetAllKeys(ctx context.Context) ([]string, error) {
	var keys []string
	if err := s.db.WithContext(ctx).Model(&KVItem{}).Order("item_key").Pluck("item_key", &keys).Error; err != nil {
		return nil, cerrors.DatabaseError{Operation: "kv_keys", Err: err}
	}
	return keys, nil
}

func (s *SQLStore) MultiRemove(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, batch := range lo.Chunk(keys, deleteBatchSize) {
			if err := tx.Where("item_key IN ?", batch).Delete(&KVItem{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return cerrors.DatabaseError{Operation: "kv_multi_remove", Err: err}
	}
	return nil
}
