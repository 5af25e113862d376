package stock

import (
	"context"

	"github.com/stockflow/backend/internal/domain/procurement"
	"github.com/stockflow/backend/internal/domain/stock"
)

// LedgerService builds the unified inventory ledger on demand
type LedgerService struct {
	purchaseRepo procurement.PurchaseEntryRepository
	issueRepo    stock.IssueRepository
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(purchaseRepo procurement.PurchaseEntryRepository, issueRepo stock.IssueRepository) *LedgerService {
	return &LedgerService{
		purchaseRepo: purchaseRepo,
		issueRepo:    issueRepo,
	}
}

// GetInventoryLedger loads both snapshots, builds the ledger and applies the
// optional field filter. The filter never changes the running balances; they
// are always computed over the full timeline first.
func (s *LedgerService) GetInventoryLedger(ctx context.Context, filter LedgerFilter) ([]LedgerEntryResponse, error) {
	purchases, err := s.purchaseRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	issues, err := s.issueRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	entries := stock.BuildLedger(purchases, issues)
	entries = stock.FilterLedger(entries, stock.LedgerField(filter.FilterField), filter.Search)

	responses := make([]LedgerEntryResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, toLedgerEntryResponse(&entries[i]))
	}
	return responses, nil
}
