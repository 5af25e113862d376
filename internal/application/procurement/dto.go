package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockflow/backend/internal/domain/procurement"
)

// LineItemRequest is one received line of a purchase entry
type LineItemRequest struct {
	PartNumber  string          `json:"part_number" binding:"required"`
	MakeCompany string          `json:"make_company"`
	Description string          `json:"description"`
	Unit        string          `json:"unit" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int64           `json:"quantity" binding:"required,gt=0"`
}

// CreatePurchaseEntryRequest creates a goods received note
type CreatePurchaseEntryRequest struct {
	PONumber     string            `json:"po_number" binding:"required"`
	Vendor       string            `json:"vendor"`
	PurchaseDate time.Time         `json:"purchase_date" binding:"required"`
	LineItems    []LineItemRequest `json:"line_items" binding:"required,min=1,dive"`
}

// UpdatePurchaseEntryRequest replaces a not-yet-issued entry
type UpdatePurchaseEntryRequest struct {
	Vendor       string            `json:"vendor"`
	PurchaseDate time.Time         `json:"purchase_date" binding:"required"`
	LineItems    []LineItemRequest `json:"line_items" binding:"required,min=1,dive"`
}

// LineItemResponse is one line item in API responses
type LineItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	PartNumber  string          `json:"part_number"`
	MakeCompany string          `json:"make_company"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int64           `json:"quantity"`
}

// PurchaseEntryResponse is a purchase entry in API responses
type PurchaseEntryResponse struct {
	ID           uuid.UUID          `json:"id"`
	PONumber     string             `json:"po_number"`
	Vendor       string             `json:"vendor"`
	PurchaseDate time.Time          `json:"purchase_date"`
	Issued       bool               `json:"issued"`
	TotalValue   decimal.Decimal    `json:"total_value"`
	LineItems    []LineItemResponse `json:"line_items"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

func toPurchaseEntryResponse(entry *procurement.PurchaseEntry) PurchaseEntryResponse {
	resp := PurchaseEntryResponse{
		ID:           entry.ID,
		PONumber:     entry.PONumber,
		Vendor:       entry.Vendor,
		PurchaseDate: entry.PurchaseDate,
		Issued:       entry.Issued,
		TotalValue:   entry.TotalValue(),
		LineItems:    make([]LineItemResponse, 0, len(entry.LineItems)),
		CreatedAt:    entry.CreatedAt,
		UpdatedAt:    entry.UpdatedAt,
	}
	for i := range entry.LineItems {
		item := &entry.LineItems[i]
		resp.LineItems = append(resp.LineItems, LineItemResponse{
			ID:          item.ID,
			PartNumber:  item.PartNumber,
			MakeCompany: item.MakeCompany,
			Description: item.Description,
			Unit:        item.Unit,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		})
	}
	return resp
}

func toDomainLineItems(items []LineItemRequest) []procurement.PurchaseLineItem {
	domainItems := make([]procurement.PurchaseLineItem, 0, len(items))
	for _, item := range items {
		domainItems = append(domainItems, procurement.PurchaseLineItem{
			PartNumber:  item.PartNumber,
			MakeCompany: item.MakeCompany,
			Description: item.Description,
			Unit:        item.Unit,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		})
	}
	return domainItems
}
