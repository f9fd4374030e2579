package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/bartek5186/woo2katana/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore – opcje w tabeli kv
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(gdb *gorm.DB) *GormStore {
	return &GormStore{db: gdb}
}

func (s *GormStore) Get(ctx context.Context, key string) (string, bool, error) {
	var row db.KV
	err := s.db.WithContext(ctx).Where("k = ?", key).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("kv get %q: %w", key, err)
	}
	return row.V, true, nil
}

// Set – upsert pojedynczej opcji
func (s *GormStore) Set(ctx context.Context, key, value string) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "k"}},
		DoUpdates: clause.AssignmentColumns([]string{"v"}),
	}).Create(&db.KV{K: key, V: value}).Error
	if err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("k = ?", key).Delete(&db.KV{}).Error
}

// All – wszystkie zapisane opcje
func (s *GormStore) All(ctx context.Context) (map[string]string, error) {
	var rows []db.KV
	if err := s.db.WithContext(ctx).Order("k").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("kv list: %w", err)
	}
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[r.K] = r.V
	}
	return out, nil
}
