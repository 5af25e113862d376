package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stockflow/backend/internal/domain/stock"
	"gorm.io/gorm"
)

// GormStockLotRepository implements StockLotRepository using GORM
type GormStockLotRepository struct {
	db *gorm.DB
}

// NewGormStockLotRepository creates a new GormStockLotRepository
func NewGormStockLotRepository(db *gorm.DB) *GormStockLotRepository {
	return &GormStockLotRepository{db: db}
}

// FindByID finds a stock lot by its ID
func (r *GormStockLotRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.StockLot, error) {
	var lot stock.StockLot
	if err := r.db.WithContext(ctx).First(&lot, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &lot, nil
}

// FindByPartNumber returns the lots holding the part, oldest entry date first
func (r *GormStockLotRepository) FindByPartNumber(ctx context.Context, partNumber string) ([]stock.StockLot, error) {
	var lots []stock.StockLot
	if err := r.db.WithContext(ctx).
		Where("part_number = ?", partNumber).
		Order("entry_date ASC, created_at ASC").
		Find(&lots).Error; err != nil {
		return nil, err
	}
	return lots, nil
}

// FindAll returns all lots, oldest entry date first
func (r *GormStockLotRepository) FindAll(ctx context.Context) ([]stock.StockLot, error) {
	var lots []stock.StockLot
	if err := r.db.WithContext(ctx).
		Order("entry_date ASC, created_at ASC").
		Find(&lots).Error; err != nil {
		return nil, err
	}
	return lots, nil
}

// FindBySource returns the lots created from the given source
func (r *GormStockLotRepository) FindBySource(ctx context.Context, source stock.LotSource) ([]stock.StockLot, error) {
	var lots []stock.StockLot
	if err := r.db.WithContext(ctx).
		Where("source = ?", source).
		Order("entry_date ASC, created_at ASC").
		Find(&lots).Error; err != nil {
		return nil, err
	}
	return lots, nil
}

// Save creates or updates a stock lot
func (r *GormStockLotRepository) Save(ctx context.Context, lot *stock.StockLot) error {
	return r.db.WithContext(ctx).Save(lot).Error
}

// Delete removes a stock lot
func (r *GormStockLotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&stock.StockLot{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByPONumber removes the lots created from a purchase entry
func (r *GormStockLotRepository) DeleteByPONumber(ctx context.Context, poNumber string) error {
	return r.db.WithContext(ctx).
		Where("po_number = ?", poNumber).
		Delete(&stock.StockLot{}).Error
}

// ReplaceForPart atomically replaces the lots of one part number with the
// surviving set after an allocation
func (r *GormStockLotRepository) ReplaceForPart(ctx context.Context, partNumber string, lots []stock.StockLot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("part_number = ?", partNumber).
			Delete(&stock.StockLot{}).Error; err != nil {
			return err
		}
		if len(lots) == 0 {
			return nil
		}
		return tx.Create(&lots).Error
	})
}
