package stock

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestLot(partNumber string, quantity int64, unitPrice float64, entryDate string, poNumber string) StockLot {
	date, err := time.Parse("2006-01-02", entryDate)
	if err != nil {
		panic(err)
	}
	lot := *NewStockLot(partNumber, "Schneider Electric", "Pieces",
		decimal.NewFromFloat(unitPrice), quantity, date, poNumber, LotSourcePurchase)
	return lot
}

func totalQuantity(lots []StockLot) int64 {
	var total int64
	for i := range lots {
		total += lots[i].Quantity
	}
	return total
}

func errorCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	return domainErr.Code
}

func TestAllocateValidation(t *testing.T) {
	issuedAt := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	lots := []StockLot{
		createTestLot("EL-SW-001", 10, 78.5, "2024-01-10", "PO-001"),
	}

	t.Run("rejects empty part number", func(t *testing.T) {
		req := AllocationRequest{PartNumber: "", TotalUnits: 5}
		_, err := Allocate(req, lots, issuedAt)
		assert.Equal(t, CodeInvalidRequest, errorCode(t, err))
	})

	t.Run("rejects non-positive total", func(t *testing.T) {
		req := AllocationRequest{PartNumber: "EL-SW-001", TotalUnits: 0}
		_, err := Allocate(req, lots, issuedAt)
		assert.Equal(t, CodeInvalidRequest, errorCode(t, err))
	})

	t.Run("rejects insufficient stock and reports availability", func(t *testing.T) {
		req := AllocationRequest{
			PartNumber: "EL-SW-001",
			TotalUnits: 15,
			Projects:   []ProjectSplit{{ProjectName: "P1", Quantity: 15}},
		}
		_, err := Allocate(req, lots, issuedAt)
		assert.Equal(t, CodeInsufficientStock, errorCode(t, err))
		assert.Contains(t, err.Error(), "10 units available")
		assert.Contains(t, err.Error(), "15 requested")
	})

	t.Run("insufficient stock wins over bad split", func(t *testing.T) {
		// Availability is checked before the per-project split.
		req := AllocationRequest{
			PartNumber: "EL-SW-001",
			TotalUnits: 15,
			Projects:   []ProjectSplit{{ProjectName: "", Quantity: 3}},
		}
		_, err := Allocate(req, lots, issuedAt)
		assert.Equal(t, CodeInsufficientStock, errorCode(t, err))
	})

	t.Run("rejects split that does not sum to total", func(t *testing.T) {
		req := AllocationRequest{
			PartNumber: "EL-SW-001",
			TotalUnits: 10,
			Projects: []ProjectSplit{
				{ProjectName: "P1", Quantity: 4},
				{ProjectName: "P2", Quantity: 5},
			},
		}
		_, err := Allocate(req, lots, issuedAt)
		assert.Equal(t, CodeAllocationMismatch, errorCode(t, err))
	})

	t.Run("rejects over-allocation as well as under-allocation", func(t *testing.T) {
		req := AllocationRequest{
			PartNumber: "EL-SW-001",
			TotalUnits: 6,
			Projects: []ProjectSplit{
				{ProjectName: "P1", Quantity: 4},
				{ProjectName: "P2", Quantity: 5},
			},
		}
		_, err := Allocate(req, lots, issuedAt)
		assert.Equal(t, CodeAllocationMismatch, errorCode(t, err))
	})

	t.Run("rejects row without project name", func(t *testing.T) {
		req := AllocationRequest{
			PartNumber: "EL-SW-001",
			TotalUnits: 5,
			Projects: []ProjectSplit{
				{ProjectName: "P1", Quantity: 3},
				{ProjectName: "  ", Quantity: 2},
			},
		}
		_, err := Allocate(req, lots, issuedAt)
		assert.Equal(t, CodeIncompleteAllocationRow, errorCode(t, err))
	})

	t.Run("rejects row with non-positive quantity", func(t *testing.T) {
		req := AllocationRequest{
			PartNumber: "EL-SW-001",
			TotalUnits: 3,
			Projects: []ProjectSplit{
				{ProjectName: "P1", Quantity: 3},
				{ProjectName: "P2", Quantity: 0},
			},
		}
		_, err := Allocate(req, lots, issuedAt)
		assert.Equal(t, CodeIncompleteAllocationRow, errorCode(t, err))
	})

	t.Run("validation failures never mutate the snapshot", func(t *testing.T) {
		req := AllocationRequest{
			PartNumber: "EL-SW-001",
			TotalUnits: 15,
			Projects:   []ProjectSplit{{ProjectName: "P1", Quantity: 15}},
		}
		_, err := Allocate(req, lots, issuedAt)
		require.Error(t, err)
		assert.Equal(t, int64(10), lots[0].Quantity)
	})
}

func TestAllocateFIFO(t *testing.T) {
	issuedAt := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("spans lots oldest first", func(t *testing.T) {
		lots := []StockLot{
			createTestLot("EL-SW-001", 10, 78.5, "2024-01-01", "PO-001"),
			createTestLot("EL-SW-001", 10, 80.0, "2024-02-01", "PO-002"),
		}
		req := AllocationRequest{
			PartNumber: "EL-SW-001",
			TotalUnits: 15,
			Projects:   []ProjectSplit{{ProjectName: "P1", Quantity: 15}},
		}

		result, err := Allocate(req, lots, issuedAt)
		require.NoError(t, err)

		// Oldest lot drained and dropped, newer lot reduced to 5.
		require.Len(t, result.RemainingLots, 1)
		assert.Equal(t, "PO-002", result.RemainingLots[0].PONumber)
		assert.Equal(t, int64(5), result.RemainingLots[0].Quantity)

		require.Len(t, result.Consumptions, 2)
		assert.Equal(t, "PO-001", result.Consumptions[0].PONumber)
		assert.Equal(t, int64(10), result.Consumptions[0].Quantity)
		assert.True(t, result.Consumptions[0].FullyConsumed)
		assert.Equal(t, "PO-002", result.Consumptions[1].PONumber)
		assert.Equal(t, int64(5), result.Consumptions[1].Quantity)
		assert.False(t, result.Consumptions[1].FullyConsumed)
	})

	t.Run("never touches a newer lot while an older one has stock", func(t *testing.T) {
		lots := []StockLot{
			createTestLot("EL-SW-001", 20, 78.5, "2024-02-15", "PO-003"),
			createTestLot("EL-SW-001", 20, 78.5, "2024-01-10", "PO-001"),
		}
		req := AllocationRequest{
			PartNumber: "EL-SW-001",
			TotalUnits: 5,
			Projects:   []ProjectSplit{{ProjectName: "P1", Quantity: 5}},
		}

		result, err := Allocate(req, lots, issuedAt)
		require.NoError(t, err)
		require.Len(t, result.Consumptions, 1)
		assert.Equal(t, "PO-001", result.Consumptions[0].PONumber)

		for i := range result.RemainingLots {
			if result.RemainingLots[i].PONumber == "PO-003" {
				assert.Equal(t, int64(20), result.RemainingLots[i].Quantity)
			}
		}
	})

	t.Run("conserves total quantity", func(t *testing.T) {
		lots := []StockLot{
			createTestLot("EL-SW-001", 20, 78.5, "2024-01-10", "PO-001"),
			createTestLot("EL-SW-001", 10, 78.5, "2024-02-15", "PO-002"),
			createTestLot("EL-CB-002", 15, 65.75, "2024-01-14", "PO-004"),
		}
		before := totalQuantity(lots)

		req := AllocationRequest{
			PartNumber: "EL-SW-001",
			TotalUnits: 25,
			Projects: []ProjectSplit{
				{ProjectName: "Project A", Quantity: 20},
				{ProjectName: "Project B", Quantity: 5},
			},
		}
		result, err := Allocate(req, lots, issuedAt)
		require.NoError(t, err)
		assert.Equal(t, before-25, totalQuantity(result.RemainingLots))
	})

	t.Run("ignores lots of other part numbers", func(t *testing.T) {
		lots := []StockLot{
			createTestLot("EL-SW-001", 5, 78.5, "2024-01-10", "PO-001"),
			createTestLot("EL-CB-002", 100, 65.75, "2024-01-01", "PO-004"),
		}
		req := AllocationRequest{
			PartNumber: "EL-SW-001",
			TotalUnits: 6,
			Projects:   []ProjectSplit{{ProjectName: "P1", Quantity: 6}},
		}
		_, err := Allocate(req, lots, issuedAt)
		assert.Equal(t, CodeInsufficientStock, errorCode(t, err))
	})

	t.Run("breaks entry date ties by creation time", func(t *testing.T) {
		first := createTestLot("EL-SW-001", 4, 78.5, "2024-01-10", "PO-001")
		second := createTestLot("EL-SW-001", 4, 78.5, "2024-01-10", "PO-002")
		second.CreatedAt = first.CreatedAt.Add(time.Minute)

		req := AllocationRequest{
			PartNumber: "EL-SW-001",
			TotalUnits: 4,
			Projects:   []ProjectSplit{{ProjectName: "P1", Quantity: 4}},
		}
		result, err := Allocate(req, []StockLot{second, first}, issuedAt)
		require.NoError(t, err)
		require.Len(t, result.Consumptions, 1)
		assert.Equal(t, "PO-001", result.Consumptions[0].PONumber)
	})
}

func TestAllocateIssueRecord(t *testing.T) {
	issuedAt := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	lots := []StockLot{
		createTestLot("EL-SW-001", 10, 78.5, "2024-01-01", "PO-001"),
		createTestLot("EL-SW-001", 10, 80.0, "2024-02-01", "PO-002"),
	}
	req := AllocationRequest{
		PartNumber: "EL-SW-001",
		TotalUnits: 15,
		Projects: []ProjectSplit{
			{ProjectName: "Project A", Quantity: 10},
			{ProjectName: "Project B", Quantity: 5},
		},
	}

	result, err := Allocate(req, lots, issuedAt)
	require.NoError(t, err)
	issue := result.Issue
	require.NotNil(t, issue)

	t.Run("carries the request verbatim", func(t *testing.T) {
		assert.Equal(t, "EL-SW-001", issue.PartNumber)
		assert.Equal(t, int64(15), issue.Quantity)
		assert.Equal(t, issuedAt, issue.DateIssued)
		require.Len(t, issue.Allocations, 2)
		assert.Equal(t, "Project A", issue.Allocations[0].ProjectName)
		assert.Equal(t, int64(10), issue.Allocations[0].Quantity)
		assert.Equal(t, "Project B", issue.Allocations[1].ProjectName)
		assert.Equal(t, int64(5), issue.Allocations[1].Quantity)
	})

	t.Run("takes the PO number of the oldest consumed lot", func(t *testing.T) {
		assert.Equal(t, "PO-001", issue.PONumber)
	})

	t.Run("prices the issuance from the consumed lots", func(t *testing.T) {
		// 10 * 78.50 + 5 * 80.00
		assert.True(t, result.TotalCost.Equal(decimal.NewFromFloat(1185.0)),
			"got %s", result.TotalCost)
	})

	t.Run("leaves the input snapshot untouched", func(t *testing.T) {
		assert.Equal(t, int64(10), lots[0].Quantity)
		assert.Equal(t, int64(10), lots[1].Quantity)
	})
}

func TestQuoteAvailable(t *testing.T) {
	lots := []StockLot{
		createTestLot("EL-SW-001", 20, 78.5, "2024-01-10", "PO-001"),
		createTestLot("EL-SW-001", 10, 80.0, "2024-02-15", "PO-002"),
		createTestLot("EL-CB-002", 15, 65.75, "2024-01-14", "PO-004"),
	}

	t.Run("sums quantity and value for the part", func(t *testing.T) {
		quote := QuoteAvailable(lots, "EL-SW-001")
		assert.Equal(t, int64(30), quote.Quantity)
		assert.True(t, quote.Value.Equal(decimal.NewFromFloat(2370.0)), "got %s", quote.Value)
		assert.Equal(t, "Pieces", quote.Unit)
	})

	t.Run("is idempotent without intervening mutation", func(t *testing.T) {
		first := QuoteAvailable(lots, "EL-SW-001")
		second := QuoteAvailable(lots, "EL-SW-001")
		assert.Equal(t, first, second)
	})

	t.Run("unknown part quotes zero", func(t *testing.T) {
		quote := QuoteAvailable(lots, "NOPE")
		assert.Equal(t, int64(0), quote.Quantity)
		assert.True(t, quote.Value.IsZero())
		assert.Empty(t, quote.Unit)
	})
}
