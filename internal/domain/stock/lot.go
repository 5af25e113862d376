package stock

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stockflow/backend/internal/domain/shared"
)

// LotSource identifies how a stock lot entered the system
type LotSource string

const (
	// LotSourcePurchase marks lots created from a purchase entry (GRN)
	LotSourcePurchase LotSource = "PURCHASE"
	// LotSourceOpening marks lots seeded as opening stock
	LotSourceOpening LotSource = "OPENING"
)

// IsValid checks if the lot source is valid
func (s LotSource) IsValid() bool {
	switch s {
	case LotSourcePurchase, LotSourceOpening:
		return true
	}
	return false
}

// StockLot represents a discrete batch of stock received at one time.
// Quantity is the remaining (not the originally received) amount.
type StockLot struct {
	shared.BaseEntity
	PartNumber  string
	MakeCompany string
	Unit        string
	UnitPrice   decimal.Decimal
	Quantity    int64
	EntryDate   time.Time
	PONumber    string
	Source      LotSource
}

// NewStockLot creates a new stock lot
func NewStockLot(partNumber, makeCompany, unit string, unitPrice decimal.Decimal, quantity int64, entryDate time.Time, poNumber string, source LotSource) *StockLot {
	return &StockLot{
		BaseEntity:  shared.NewBaseEntity(),
		PartNumber:  partNumber,
		MakeCompany: makeCompany,
		Unit:        unit,
		UnitPrice:   unitPrice,
		Quantity:    quantity,
		EntryDate:   entryDate,
		PONumber:    poNumber,
		Source:      source,
	}
}

// Validate checks the lot's invariants
func (l *StockLot) Validate() error {
	if strings.TrimSpace(l.PartNumber) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Part number is required")
	}
	if l.Quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Lot quantity must be positive")
	}
	if l.UnitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Unit price cannot be negative")
	}
	if !l.Source.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Unknown lot source")
	}
	return nil
}

// HasStock returns true if the lot still holds available quantity
func (l *StockLot) HasStock() bool {
	return l.Quantity > 0
}

// Deduct reduces the lot quantity.
// Returns the actual quantity deducted, capped at the remaining amount.
func (l *StockLot) Deduct(quantity int64) int64 {
	if quantity <= 0 {
		return 0
	}
	deducted := quantity
	if deducted > l.Quantity {
		deducted = l.Quantity
	}
	l.Quantity -= deducted
	l.UpdatedAt = time.Now()
	return deducted
}

// Value returns the remaining value of the lot (quantity * unit price)
func (l *StockLot) Value() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}

// AvailableStock is a read-only quote of stock on hand for one part number
type AvailableStock struct {
	PartNumber string
	Quantity   int64
	Value      decimal.Decimal
	Unit       string
}

// QuoteAvailable computes the available quantity, value and unit label for
// a part number over a lot snapshot. The value is the exact sum over the
// matching lots rather than an oldest-price approximation.
func QuoteAvailable(lots []StockLot, partNumber string) AvailableStock {
	quote := AvailableStock{PartNumber: partNumber, Value: decimal.Zero}
	oldest := -1
	for i := range lots {
		if lots[i].PartNumber != partNumber || !lots[i].HasStock() {
			continue
		}
		quote.Quantity += lots[i].Quantity
		quote.Value = quote.Value.Add(lots[i].Value())
		if oldest < 0 || lots[i].EntryDate.Before(lots[oldest].EntryDate) {
			oldest = i
		}
	}
	if oldest >= 0 {
		quote.Unit = lots[oldest].Unit
	}
	return quote
}

// TotalAvailable sums the remaining quantity of the lots matching the part number
func TotalAvailable(lots []StockLot, partNumber string) int64 {
	var total int64
	for i := range lots {
		if lots[i].PartNumber == partNumber {
			total += lots[i].Quantity
		}
	}
	return total
}
