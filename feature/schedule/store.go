package schedule

import (
	"context"
	"fmt"

	"rinksync/feature/schedule/models"

	"gorm.io/gorm"
)

// Store persists run records. Optional for the daemon: a nil *Store is
// valid and makes every method a no-op, so deployments without a
// database just lose history, not functionality.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store and migrates its schema.
func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&models.RunRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate run history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Record inserts one run record.
func (s *Store) Record(ctx context.Context, rec *models.RunRecord) error {
	if s == nil {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// Recent returns the newest records, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]models.RunRecord, error) {
	if s == nil {
		return []models.RunRecord{}, nil
	}
	if limit <= 0 {
		limit = 50
	}

	var records []models.RunRecord
	err := s.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load run history: %w", err)
	}
	return records, nil
}

// Last returns the most recent record, or nil when none exist.
func (s *Store) Last(ctx context.Context) (*models.RunRecord, error) {
	if s == nil {
		return nil, nil
	}

	var rec models.RunRecord
	err := s.db.WithContext(ctx).Order("id DESC").First(&rec).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load last run: %w", err)
	}
	return &rec, nil
}
