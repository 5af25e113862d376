package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stockflow/backend/internal/domain/stock"
	"gorm.io/gorm"
)

// GormIssueRepository implements IssueRepository using GORM
type GormIssueRepository struct {
	db *gorm.DB
}

// NewGormIssueRepository creates a new GormIssueRepository
func NewGormIssueRepository(db *gorm.DB) *GormIssueRepository {
	return &GormIssueRepository{db: db}
}

// FindByID finds an issue record with its project allocations
func (r *GormIssueRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.IssueRecord, error) {
	var record stock.IssueRecord
	if err := r.db.WithContext(ctx).
		Preload("Allocations").
		First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindAll returns all issue records, newest issue date first
func (r *GormIssueRepository) FindAll(ctx context.Context) ([]stock.IssueRecord, error) {
	var records []stock.IssueRecord
	if err := r.db.WithContext(ctx).
		Preload("Allocations").
		Order("date_issued DESC, created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindByPartNumber returns the issue records for one part number
func (r *GormIssueRepository) FindByPartNumber(ctx context.Context, partNumber string) ([]stock.IssueRecord, error) {
	var records []stock.IssueRecord
	if err := r.db.WithContext(ctx).
		Preload("Allocations").
		Where("part_number = ?", partNumber).
		Order("date_issued DESC, created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Save persists an issue record with its allocations
func (r *GormIssueRepository) Save(ctx context.Context, record *stock.IssueRecord) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(record).Error
}
