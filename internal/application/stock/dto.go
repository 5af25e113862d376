package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockflow/backend/internal/domain/stock"
)

// LedgerEntryResponse is one row of the inventory ledger in API responses
type LedgerEntryResponse struct {
	PartNumber      string          `json:"part_number"`
	MakeCompany     string          `json:"make_company"`
	PurchaseDate    *time.Time      `json:"purchase_date,omitempty"`
	IssueDate       *time.Time      `json:"issue_date,omitempty"`
	PONumber        string          `json:"po_number"`
	Unit            string          `json:"unit"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Quantity        int64           `json:"quantity"`
	TransactionType string          `json:"transaction_type"`
	ProjectName     string          `json:"project_name,omitempty"`
	RunningStock    int64           `json:"running_stock"`
}

// LedgerFilter carries the optional inventory ledger filter query params
type LedgerFilter struct {
	FilterField string `form:"filter_field" binding:"omitempty,oneof=partNumber poNumber makeCompany"`
	Search      string `form:"search"`
}

// AvailableStockResponse is the availability quote for one part number
type AvailableStockResponse struct {
	PartNumber string          `json:"part_number"`
	Quantity   int64           `json:"quantity"`
	Value      decimal.Decimal `json:"value"`
	Unit       string          `json:"unit"`
}

// ProjectSplitRequest is one requested (project, quantity) row of an issuance
type ProjectSplitRequest struct {
	ProjectName string `json:"project_name" binding:"required"`
	Quantity    int64  `json:"quantity" binding:"required,gt=0"`
}

// CreateIssueRequest is a request to issue stock split across projects.
// QuotedAvailable optionally carries the availability the client saw when it
// built the request; it turns a commit-time shortfall into a STALE_QUOTE.
type CreateIssueRequest struct {
	PartNumber      string                `json:"part_number" binding:"required"`
	TotalUnits      int64                 `json:"total_units" binding:"required,gt=0"`
	DateIssued      time.Time             `json:"date_issued" binding:"required"`
	Projects        []ProjectSplitRequest `json:"projects" binding:"required,min=1,dive"`
	QuotedAvailable *int64                `json:"quoted_available,omitempty"`
}

// ProjectAllocationResponse is one project's share in API responses
type ProjectAllocationResponse struct {
	ProjectName string `json:"project_name"`
	Quantity    int64  `json:"quantity"`
}

// LotConsumptionResponse details how much one lot contributed to an issuance
type LotConsumptionResponse struct {
	LotID         uuid.UUID       `json:"lot_id"`
	PONumber      string          `json:"po_number"`
	EntryDate     time.Time       `json:"entry_date"`
	Quantity      int64           `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	FullyConsumed bool            `json:"fully_consumed"`
}

// IssueRecordResponse is a completed issuance in API responses
type IssueRecordResponse struct {
	ID           uuid.UUID                   `json:"id"`
	PartNumber   string                      `json:"part_number"`
	Quantity     int64                       `json:"quantity"`
	DateIssued   time.Time                   `json:"date_issued"`
	PONumber     string                      `json:"po_number"`
	Allocations  []ProjectAllocationResponse `json:"allocations"`
	Consumptions []LotConsumptionResponse    `json:"consumptions,omitempty"`
	TotalCost    *decimal.Decimal            `json:"total_cost,omitempty"`
	CreatedAt    time.Time                   `json:"created_at"`
}

// CreateOpeningStockRequest seeds one opening stock lot
type CreateOpeningStockRequest struct {
	PartNumber  string          `json:"part_number" binding:"required"`
	MakeCompany string          `json:"make_company"`
	Unit        string          `json:"unit" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int64           `json:"quantity" binding:"required,gt=0"`
	EntryDate   time.Time       `json:"entry_date" binding:"required"`
	Reference   string          `json:"reference"`
}

// StockLotResponse is one stock lot in API responses
type StockLotResponse struct {
	ID          uuid.UUID       `json:"id"`
	PartNumber  string          `json:"part_number"`
	MakeCompany string          `json:"make_company"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int64           `json:"quantity"`
	EntryDate   time.Time       `json:"entry_date"`
	PONumber    string          `json:"po_number"`
	Source      string          `json:"source"`
	CreatedAt   time.Time       `json:"created_at"`
}

func toIssueRecordResponse(record *stock.IssueRecord) IssueRecordResponse {
	resp := IssueRecordResponse{
		ID:          record.ID,
		PartNumber:  record.PartNumber,
		Quantity:    record.Quantity,
		DateIssued:  record.DateIssued,
		PONumber:    record.PONumber,
		Allocations: make([]ProjectAllocationResponse, 0, len(record.Allocations)),
		CreatedAt:   record.CreatedAt,
	}
	for _, alloc := range record.Allocations {
		resp.Allocations = append(resp.Allocations, ProjectAllocationResponse{
			ProjectName: alloc.ProjectName,
			Quantity:    alloc.Quantity,
		})
	}
	return resp
}

func toStockLotResponse(lot *stock.StockLot) StockLotResponse {
	return StockLotResponse{
		ID:          lot.ID,
		PartNumber:  lot.PartNumber,
		MakeCompany: lot.MakeCompany,
		Unit:        lot.Unit,
		UnitPrice:   lot.UnitPrice,
		Quantity:    lot.Quantity,
		EntryDate:   lot.EntryDate,
		PONumber:    lot.PONumber,
		Source:      string(lot.Source),
		CreatedAt:   lot.CreatedAt,
	}
}

func toLedgerEntryResponse(entry *stock.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		PartNumber:      entry.PartNumber,
		MakeCompany:     entry.MakeCompany,
		PurchaseDate:    entry.PurchaseDate,
		IssueDate:       entry.IssueDate,
		PONumber:        entry.PONumber,
		Unit:            entry.Unit,
		UnitPrice:       entry.UnitPrice,
		Quantity:        entry.Quantity,
		TransactionType: string(entry.TransactionType),
		ProjectName:     entry.ProjectName,
		RunningStock:    entry.RunningStock,
	}
}
