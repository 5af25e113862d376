package procurement

import (
	"context"
	"errors"

	"github.com/google/uuid"
	appstock "github.com/stockflow/backend/internal/application/stock"
	"github.com/stockflow/backend/internal/domain/procurement"
	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stockflow/backend/internal/domain/stock"
	"go.uber.org/zap"
)

// PurchaseEntryService handles goods received notes. Creating an entry also
// creates one stock lot per line item so the FIFO allocator can draw on it.
type PurchaseEntryService struct {
	scope     appstock.TransactionScope
	entryRepo procurement.PurchaseEntryRepository
	logger    *zap.Logger
}

// NewPurchaseEntryService creates a new PurchaseEntryService
func NewPurchaseEntryService(
	scope appstock.TransactionScope,
	entryRepo procurement.PurchaseEntryRepository,
	logger *zap.Logger,
) *PurchaseEntryService {
	return &PurchaseEntryService{
		scope:     scope,
		entryRepo: entryRepo,
		logger:    logger,
	}
}

// List returns all purchase entries, newest purchase date first
func (s *PurchaseEntryService) List(ctx context.Context) ([]PurchaseEntryResponse, error) {
	entries, err := s.entryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]PurchaseEntryResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, toPurchaseEntryResponse(&entries[i]))
	}
	return responses, nil
}

// GetByID fetches one purchase entry
func (s *PurchaseEntryService) GetByID(ctx context.Context, id uuid.UUID) (*PurchaseEntryResponse, error) {
	entry, err := s.entryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toPurchaseEntryResponse(entry)
	return &resp, nil
}

// GetByPartNumber returns the entries containing the part number
func (s *PurchaseEntryService) GetByPartNumber(ctx context.Context, partNumber string) ([]PurchaseEntryResponse, error) {
	entries, err := s.entryRepo.FindByPartNumber(ctx, partNumber)
	if err != nil {
		return nil, err
	}
	responses := make([]PurchaseEntryResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, toPurchaseEntryResponse(&entries[i]))
	}
	return responses, nil
}

// Create validates and persists a purchase entry and seeds its stock lots
// in one transaction. The PO number must be unique.
func (s *PurchaseEntryService) Create(ctx context.Context, req CreatePurchaseEntryRequest) (*PurchaseEntryResponse, error) {
	entry := procurement.NewPurchaseEntry(req.PONumber, req.Vendor, req.PurchaseDate, toDomainLineItems(req.LineItems))
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	err := s.scope.Execute(ctx, func(repos appstock.TransactionalRepositories) error {
		_, err := repos.PurchaseEntryRepo().FindByPONumber(ctx, entry.PONumber)
		if err == nil {
			return shared.NewDomainError("ALREADY_EXISTS", "A purchase entry with this PO number already exists")
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}

		if err := repos.PurchaseEntryRepo().Save(ctx, entry); err != nil {
			return err
		}
		return s.createLots(ctx, repos, entry)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Purchase entry created",
		zap.String("po_number", entry.PONumber),
		zap.Int("line_items", len(entry.LineItems)),
	)

	resp := toPurchaseEntryResponse(entry)
	return &resp, nil
}

// Update replaces a not-yet-issued entry and rebuilds its stock lots
func (s *PurchaseEntryService) Update(ctx context.Context, id uuid.UUID, req UpdatePurchaseEntryRequest) (*PurchaseEntryResponse, error) {
	var updated *procurement.PurchaseEntry
	err := s.scope.Execute(ctx, func(repos appstock.TransactionalRepositories) error {
		entry, err := repos.PurchaseEntryRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !entry.CanModify() {
			return shared.NewDomainError("INVALID_STATE", "Stock from this entry has been issued; it can no longer be modified")
		}

		replacement := procurement.NewPurchaseEntry(entry.PONumber, req.Vendor, req.PurchaseDate, toDomainLineItems(req.LineItems))
		replacement.BaseEntity = entry.BaseEntity
		if err := replacement.Validate(); err != nil {
			return err
		}
		for i := range replacement.LineItems {
			replacement.LineItems[i].PurchaseEntryID = replacement.ID
		}

		if err := repos.PurchaseEntryRepo().Save(ctx, replacement); err != nil {
			return err
		}
		if err := repos.LotRepo().DeleteByPONumber(ctx, entry.PONumber); err != nil {
			return err
		}
		if err := s.createLots(ctx, repos, replacement); err != nil {
			return err
		}
		updated = replacement
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Purchase entry updated", zap.String("po_number", updated.PONumber))

	resp := toPurchaseEntryResponse(updated)
	return &resp, nil
}

// Delete removes a not-yet-issued entry and its stock lots
func (s *PurchaseEntryService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos appstock.TransactionalRepositories) error {
		entry, err := repos.PurchaseEntryRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !entry.CanModify() {
			return shared.NewDomainError("INVALID_STATE", "Stock from this entry has been issued; it can no longer be deleted")
		}
		if err := repos.LotRepo().DeleteByPONumber(ctx, entry.PONumber); err != nil {
			return err
		}
		return repos.PurchaseEntryRepo().Delete(ctx, id)
	})
}

// createLots seeds one stock lot per line item of the entry
func (s *PurchaseEntryService) createLots(ctx context.Context, repos appstock.TransactionalRepositories, entry *procurement.PurchaseEntry) error {
	for i := range entry.LineItems {
		item := &entry.LineItems[i]
		lot := stock.NewStockLot(item.PartNumber, item.MakeCompany, item.Unit,
			item.UnitPrice, item.Quantity, entry.PurchaseDate, entry.PONumber, stock.LotSourcePurchase)
		if err := repos.LotRepo().Save(ctx, lot); err != nil {
			return err
		}
	}
	return nil
}
