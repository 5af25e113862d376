package stock

import (
	"context"

	"github.com/google/uuid"
)

// StockLotRepository defines the interface for stock lot persistence
type StockLotRepository interface {
	// FindByID finds a stock lot by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockLot, error)

	// FindByPartNumber returns the lots holding the part, oldest entry date first
	FindByPartNumber(ctx context.Context, partNumber string) ([]StockLot, error)

	// FindAll returns all lots, oldest entry date first
	FindAll(ctx context.Context) ([]StockLot, error)

	// FindBySource returns the lots created from the given source
	FindBySource(ctx context.Context, source LotSource) ([]StockLot, error)

	// Save creates or updates a stock lot
	Save(ctx context.Context, lot *StockLot) error

	// Delete removes a stock lot
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByPONumber removes the lots created from a purchase entry
	DeleteByPONumber(ctx context.Context, poNumber string) error

	// ReplaceForPart atomically replaces the lots of one part number with the
	// surviving set after an allocation
	ReplaceForPart(ctx context.Context, partNumber string, lots []StockLot) error
}

// IssueRepository defines the interface for issue record persistence
type IssueRepository interface {
	// FindByID finds an issue record with its project allocations
	FindByID(ctx context.Context, id uuid.UUID) (*IssueRecord, error)

	// FindAll returns all issue records, newest issue date first
	FindAll(ctx context.Context) ([]IssueRecord, error)

	// FindByPartNumber returns the issue records for one part number
	FindByPartNumber(ctx context.Context, partNumber string) ([]IssueRecord, error)

	// Save persists an issue record with its allocations
	Save(ctx context.Context, record *IssueRecord) error
}
