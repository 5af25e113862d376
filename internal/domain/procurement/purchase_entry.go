package procurement

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockflow/backend/internal/domain/shared"
)

// PurchaseLineItem is one received stock keeping unit on a purchase entry
type PurchaseLineItem struct {
	shared.BaseEntity
	PurchaseEntryID uuid.UUID
	PartNumber      string
	MakeCompany     string
	Description     string
	Unit            string
	UnitPrice       decimal.Decimal
	Quantity        int64
}

// Validate checks the line item invariants
func (li *PurchaseLineItem) Validate() error {
	if strings.TrimSpace(li.PartNumber) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Line item part number is required")
	}
	if li.Quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Line item quantity must be positive")
	}
	if li.UnitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Line item unit price cannot be negative")
	}
	return nil
}

// PurchaseEntry is a goods received note (GRN): one purchase order delivery
// received into stock with its line items. Entries become immutable once any
// of their stock has been issued.
type PurchaseEntry struct {
	shared.BaseEntity
	PONumber     string
	Vendor       string
	PurchaseDate time.Time
	Issued       bool
	LineItems    []PurchaseLineItem
}

// NewPurchaseEntry creates a purchase entry with its line items
func NewPurchaseEntry(poNumber, vendor string, purchaseDate time.Time, items []PurchaseLineItem) *PurchaseEntry {
	entry := &PurchaseEntry{
		BaseEntity:   shared.NewBaseEntity(),
		PONumber:     poNumber,
		Vendor:       vendor,
		PurchaseDate: purchaseDate,
		LineItems:    make([]PurchaseLineItem, 0, len(items)),
	}
	for _, item := range items {
		item.BaseEntity = shared.NewBaseEntity()
		item.PurchaseEntryID = entry.ID
		entry.LineItems = append(entry.LineItems, item)
	}
	return entry
}

// Validate checks the entry and all of its line items
func (e *PurchaseEntry) Validate() error {
	if strings.TrimSpace(e.PONumber) == "" {
		return shared.NewDomainError("INVALID_INPUT", "PO number is required")
	}
	if e.PurchaseDate.IsZero() {
		return shared.NewDomainError("INVALID_INPUT", "Purchase date is required")
	}
	if len(e.LineItems) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "A purchase entry needs at least one line item")
	}
	for i := range e.LineItems {
		if err := e.LineItems[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// MarkIssued flags the entry as drawn against, blocking update and delete
func (e *PurchaseEntry) MarkIssued() {
	if e.Issued {
		return
	}
	e.Issued = true
	e.UpdatedAt = time.Now()
}

// CanModify returns true while no stock from this entry has been issued
func (e *PurchaseEntry) CanModify() bool {
	return !e.Issued
}

// TotalValue returns the received value of the entry
func (e *PurchaseEntry) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for i := range e.LineItems {
		total = total.Add(e.LineItems[i].UnitPrice.Mul(decimal.NewFromInt(e.LineItems[i].Quantity)))
	}
	return total
}

// ContainsPart reports whether any line item carries the part number
func (e *PurchaseEntry) ContainsPart(partNumber string) bool {
	for i := range e.LineItems {
		if e.LineItems[i].PartNumber == partNumber {
			return true
		}
	}
	return false
}
