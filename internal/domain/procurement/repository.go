package procurement

import (
	"context"

	"github.com/google/uuid"
)

// PurchaseEntryRepository defines the interface for purchase entry persistence
type PurchaseEntryRepository interface {
	// FindByID finds a purchase entry with its line items
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseEntry, error)

	// FindByPONumber finds a purchase entry by its PO number
	FindByPONumber(ctx context.Context, poNumber string) (*PurchaseEntry, error)

	// FindAll returns all purchase entries, newest purchase date first
	FindAll(ctx context.Context) ([]PurchaseEntry, error)

	// FindByPartNumber returns entries containing the part number
	FindByPartNumber(ctx context.Context, partNumber string) ([]PurchaseEntry, error)

	// Save creates or updates a purchase entry with its line items
	Save(ctx context.Context, entry *PurchaseEntry) error

	// MarkIssuedByPONumbers flags the entries behind the PO numbers as issued
	MarkIssuedByPONumbers(ctx context.Context, poNumbers []string) error

	// Delete removes a purchase entry and its line items
	Delete(ctx context.Context, id uuid.UUID) error
}
