package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/procurement"
	"github.com/stockflow/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormPurchaseEntryRepository implements PurchaseEntryRepository using GORM
type GormPurchaseEntryRepository struct {
	db *gorm.DB
}

// NewGormPurchaseEntryRepository creates a new GormPurchaseEntryRepository
func NewGormPurchaseEntryRepository(db *gorm.DB) *GormPurchaseEntryRepository {
	return &GormPurchaseEntryRepository{db: db}
}

// FindByID finds a purchase entry with its line items
func (r *GormPurchaseEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.PurchaseEntry, error) {
	var entry procurement.PurchaseEntry
	if err := r.db.WithContext(ctx).
		Preload("LineItems").
		First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindByPONumber finds a purchase entry by its PO number
func (r *GormPurchaseEntryRepository) FindByPONumber(ctx context.Context, poNumber string) (*procurement.PurchaseEntry, error) {
	var entry procurement.PurchaseEntry
	if err := r.db.WithContext(ctx).
		Preload("LineItems").
		Where("po_number = ?", poNumber).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindAll returns all purchase entries, newest purchase date first
func (r *GormPurchaseEntryRepository) FindAll(ctx context.Context) ([]procurement.PurchaseEntry, error) {
	var entries []procurement.PurchaseEntry
	if err := r.db.WithContext(ctx).
		Preload("LineItems").
		Order("purchase_date DESC, created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByPartNumber returns entries containing the part number
func (r *GormPurchaseEntryRepository) FindByPartNumber(ctx context.Context, partNumber string) ([]procurement.PurchaseEntry, error) {
	var entries []procurement.PurchaseEntry
	sub := r.db.Model(&procurement.PurchaseLineItem{}).
		Select("purchase_entry_id").
		Where("part_number = ?", partNumber)
	if err := r.db.WithContext(ctx).
		Preload("LineItems").
		Where("id IN (?)", sub).
		Order("purchase_date ASC, created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Save creates or updates a purchase entry with its line items.
// On update, line items no longer present are removed.
func (r *GormPurchaseEntryRepository) Save(ctx context.Context, entry *procurement.PurchaseEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("purchase_entry_id = ?", entry.ID).
			Delete(&procurement.PurchaseLineItem{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(entry).Error
	})
}

// MarkIssuedByPONumbers flags the entries behind the PO numbers as issued
func (r *GormPurchaseEntryRepository) MarkIssuedByPONumbers(ctx context.Context, poNumbers []string) error {
	if len(poNumbers) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&procurement.PurchaseEntry{}).
		Where("po_number IN ?", poNumbers).
		Update("issued", true).Error
}

// Delete removes a purchase entry and its line items
func (r *GormPurchaseEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("purchase_entry_id = ?", id).
			Delete(&procurement.PurchaseLineItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&procurement.PurchaseEntry{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}
