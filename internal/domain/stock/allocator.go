package stock

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LotConsumption records how much one lot contributed to an issuance
type LotConsumption struct {
	LotID         uuid.UUID
	PONumber      string
	EntryDate     time.Time
	Quantity      int64
	UnitPrice     decimal.Decimal
	FullyConsumed bool
}

// AllocationResult is the outcome of a successful allocation.
// RemainingLots is the full lot snapshot with deductions applied and
// fully-consumed lots removed; the caller owns persisting it.
type AllocationResult struct {
	RemainingLots []StockLot
	Issue         *IssueRecord
	Consumptions  []LotConsumption
	TotalCost     decimal.Decimal
}

// Allocate validates an allocation request against a lot snapshot and, when
// valid, consumes stock oldest-entry-date-first. The input slice is never
// mutated; the result carries fresh copies. Validation failures are checked
// in a fixed order and reported before any deduction happens:
//
//  1. part number present and total positive (INVALID_REQUEST)
//  2. enough stock across matching lots (INSUFFICIENT_STOCK)
//  3. project split sums to the total (ALLOCATION_MISMATCH)
//  4. every split row complete (INCOMPLETE_ALLOCATION_ROW)
//
// The issue record keeps the requested project split untouched; the allocator
// only decides which physical lots satisfy the total. Its PO number is taken
// from the oldest consumed lot; Consumptions carries the full provenance when
// the issuance spans several purchase orders.
func Allocate(req AllocationRequest, lots []StockLot, issuedAt time.Time) (*AllocationResult, error) {
	if err := req.validateBasic(); err != nil {
		return nil, err
	}
	available := TotalAvailable(lots, req.PartNumber)
	if available < req.TotalUnits {
		return nil, NewInsufficientStockError(available, req.TotalUnits)
	}
	if err := req.validateSplit(); err != nil {
		return nil, err
	}

	// Work on copies so a failed or abandoned allocation leaves the snapshot intact.
	working := make([]StockLot, len(lots))
	copy(working, lots)

	matching := make([]*StockLot, 0, len(working))
	for i := range working {
		if working[i].PartNumber == req.PartNumber && working[i].HasStock() {
			matching = append(matching, &working[i])
		}
	}
	sortLotPtrsFIFO(matching)

	remaining := req.TotalUnits
	consumptions := make([]LotConsumption, 0, len(matching))
	totalCost := decimal.Zero
	for _, lot := range matching {
		if remaining == 0 {
			break
		}
		deducted := lot.Deduct(remaining)
		if deducted == 0 {
			continue
		}
		remaining -= deducted
		totalCost = totalCost.Add(lot.UnitPrice.Mul(decimal.NewFromInt(deducted)))
		consumptions = append(consumptions, LotConsumption{
			LotID:         lot.ID,
			PONumber:      lot.PONumber,
			EntryDate:     lot.EntryDate,
			Quantity:      deducted,
			UnitPrice:     lot.UnitPrice,
			FullyConsumed: !lot.HasStock(),
		})
	}

	// Guaranteed unreachable when the availability check passed; a non-zero
	// remainder here is a programming error, not a user error.
	if remaining != 0 {
		return nil, newInvariantViolationError(remaining)
	}

	surviving := make([]StockLot, 0, len(working))
	for i := range working {
		if working[i].HasStock() {
			surviving = append(surviving, working[i])
		}
	}

	poNumber := ""
	if len(consumptions) > 0 {
		poNumber = consumptions[0].PONumber
	}

	return &AllocationResult{
		RemainingLots: surviving,
		Issue:         NewIssueRecord(req.PartNumber, req.TotalUnits, issuedAt, poNumber, req.Projects),
		Consumptions:  consumptions,
		TotalCost:     totalCost,
	}, nil
}

// sortLotPtrsFIFO orders lot pointers oldest entry date first, creation time
// as the deterministic tie-break
func sortLotPtrsFIFO(lots []*StockLot) {
	sort.SliceStable(lots, func(i, j int) bool {
		if !lots[i].EntryDate.Equal(lots[j].EntryDate) {
			return lots[i].EntryDate.Before(lots[j].EntryDate)
		}
		return lots[i].CreatedAt.Before(lots[j].CreatedAt)
	})
}
