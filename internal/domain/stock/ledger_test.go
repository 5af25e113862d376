package stock

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stockflow/backend/internal/domain/procurement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func createTestPurchase(poNumber, purchaseDate string, items ...procurement.PurchaseLineItem) procurement.PurchaseEntry {
	return *procurement.NewPurchaseEntry(poNumber, "ABB Ltd", mustDate(purchaseDate), items)
}

func lineItem(partNumber, makeCompany, unit string, unitPrice float64, quantity int64) procurement.PurchaseLineItem {
	return procurement.PurchaseLineItem{
		PartNumber:  partNumber,
		MakeCompany: makeCompany,
		Unit:        unit,
		UnitPrice:   decimal.NewFromFloat(unitPrice),
		Quantity:    quantity,
	}
}

func createTestIssue(partNumber string, quantity int64, dateIssued, poNumber string, split ...ProjectSplit) IssueRecord {
	return *NewIssueRecord(partNumber, quantity, mustDate(dateIssued), poNumber, split)
}

func TestBuildLedger(t *testing.T) {
	t.Run("purchase then issue yields running stock 20 then 15", func(t *testing.T) {
		purchases := []procurement.PurchaseEntry{
			createTestPurchase("PO-001", "2024-01-01",
				lineItem("A1", "Schneider Electric", "Pieces", 10, 20)),
		}
		issues := []IssueRecord{
			createTestIssue("A1", 5, "2024-01-05", "PO-001",
				ProjectSplit{ProjectName: "X", Quantity: 5}),
		}

		ledger := BuildLedger(purchases, issues)
		require.Len(t, ledger, 2)

		assert.Equal(t, TransactionPurchase, ledger[0].TransactionType)
		assert.Equal(t, int64(20), ledger[0].RunningStock)
		assert.Equal(t, TransactionIssue, ledger[1].TransactionType)
		assert.Equal(t, int64(15), ledger[1].RunningStock)
		assert.Equal(t, "X", ledger[1].ProjectName)
	})

	t.Run("orders rows by effective date across both streams", func(t *testing.T) {
		purchases := []procurement.PurchaseEntry{
			createTestPurchase("PO-002", "2024-02-01",
				lineItem("A1", "Schneider Electric", "Pieces", 10, 10)),
			createTestPurchase("PO-001", "2024-01-01",
				lineItem("A1", "Schneider Electric", "Pieces", 10, 20)),
		}
		issues := []IssueRecord{
			createTestIssue("A1", 5, "2024-01-15", "PO-001",
				ProjectSplit{ProjectName: "X", Quantity: 5}),
		}

		ledger := BuildLedger(purchases, issues)
		require.Len(t, ledger, 3)
		assert.Equal(t, "PO-001", ledger[0].PONumber)
		assert.Equal(t, TransactionIssue, ledger[1].TransactionType)
		assert.Equal(t, "PO-002", ledger[2].PONumber)
		assert.Equal(t, []int64{20, 15, 25}, []int64{
			ledger[0].RunningStock, ledger[1].RunningStock, ledger[2].RunningStock,
		})
	})

	t.Run("same-day purchase lands before same-day issue", func(t *testing.T) {
		purchases := []procurement.PurchaseEntry{
			createTestPurchase("PO-001", "2024-01-05",
				lineItem("A1", "Schneider Electric", "Pieces", 10, 20)),
		}
		issues := []IssueRecord{
			createTestIssue("A1", 5, "2024-01-05", "PO-001",
				ProjectSplit{ProjectName: "X", Quantity: 5}),
		}

		ledger := BuildLedger(purchases, issues)
		require.Len(t, ledger, 2)
		assert.Equal(t, TransactionPurchase, ledger[0].TransactionType)
		assert.Equal(t, int64(15), ledger[1].RunningStock)
	})

	t.Run("running stock is tracked per part number", func(t *testing.T) {
		purchases := []procurement.PurchaseEntry{
			createTestPurchase("PO-001", "2024-01-01",
				lineItem("A1", "Schneider Electric", "Pieces", 10, 20),
				lineItem("B2", "ABB Ltd", "Boxes", 5, 7)),
		}
		issues := []IssueRecord{
			createTestIssue("B2", 3, "2024-01-10", "PO-001",
				ProjectSplit{ProjectName: "X", Quantity: 3}),
		}

		ledger := BuildLedger(purchases, issues)
		require.Len(t, ledger, 3)
		assert.Equal(t, int64(20), ledger[0].RunningStock)
		assert.Equal(t, int64(7), ledger[1].RunningStock)
		// The B2 issue must not disturb A1's balance.
		assert.Equal(t, "B2", ledger[2].PartNumber)
		assert.Equal(t, int64(4), ledger[2].RunningStock)
	})

	t.Run("fans one issue out to a row per project", func(t *testing.T) {
		purchases := []procurement.PurchaseEntry{
			createTestPurchase("PO-001", "2024-01-01",
				lineItem("A1", "Schneider Electric", "Pieces", 10, 20)),
		}
		issues := []IssueRecord{
			createTestIssue("A1", 9, "2024-01-05", "PO-001",
				ProjectSplit{ProjectName: "X", Quantity: 4},
				ProjectSplit{ProjectName: "Y", Quantity: 5}),
		}

		ledger := BuildLedger(purchases, issues)
		require.Len(t, ledger, 3)
		assert.Equal(t, "X", ledger[1].ProjectName)
		assert.Equal(t, int64(16), ledger[1].RunningStock)
		assert.Equal(t, "Y", ledger[2].ProjectName)
		assert.Equal(t, int64(11), ledger[2].RunningStock)
	})

	t.Run("enriches issue rows from the most recent purchase line", func(t *testing.T) {
		purchases := []procurement.PurchaseEntry{
			createTestPurchase("PO-001", "2024-01-01",
				lineItem("A1", "Old Corp", "Pieces", 10, 20)),
			createTestPurchase("PO-002", "2024-02-01",
				lineItem("A1", "New Corp", "Boxes", 12, 10)),
		}
		issues := []IssueRecord{
			createTestIssue("A1", 5, "2024-03-01", "PO-001",
				ProjectSplit{ProjectName: "X", Quantity: 5}),
		}

		ledger := BuildLedger(purchases, issues)
		row := ledger[len(ledger)-1]
		require.Equal(t, TransactionIssue, row.TransactionType)
		assert.Equal(t, "New Corp", row.MakeCompany)
		assert.Equal(t, "Boxes", row.Unit)
		assert.True(t, row.UnitPrice.Equal(decimal.NewFromInt(12)))
	})

	t.Run("falls back to N/A when no purchase matches", func(t *testing.T) {
		issues := []IssueRecord{
			createTestIssue("GHOST", 2, "2024-01-05", "PO-009",
				ProjectSplit{ProjectName: "X", Quantity: 2}),
		}

		ledger := BuildLedger(nil, issues)
		require.Len(t, ledger, 1)
		assert.Equal(t, "N/A", ledger[0].MakeCompany)
		assert.Equal(t, "N/A", ledger[0].Unit)
		assert.True(t, ledger[0].UnitPrice.IsZero())
		assert.Equal(t, int64(-2), ledger[0].RunningStock)
	})

	t.Run("running stock matches purchase minus issue prefix sums", func(t *testing.T) {
		purchases := []procurement.PurchaseEntry{
			createTestPurchase("PO-001", "2024-01-01",
				lineItem("A1", "Schneider Electric", "Pieces", 10, 20)),
			createTestPurchase("PO-002", "2024-01-20",
				lineItem("A1", "Schneider Electric", "Pieces", 10, 10)),
		}
		issues := []IssueRecord{
			createTestIssue("A1", 5, "2024-01-10", "PO-001",
				ProjectSplit{ProjectName: "X", Quantity: 5}),
			createTestIssue("A1", 8, "2024-02-01", "PO-001",
				ProjectSplit{ProjectName: "Y", Quantity: 8}),
		}

		ledger := BuildLedger(purchases, issues)
		var balance int64
		for _, row := range ledger {
			if row.TransactionType == TransactionPurchase {
				balance += row.Quantity
			} else {
				balance -= row.Quantity
			}
			assert.Equal(t, balance, row.RunningStock)
		}
	})

	t.Run("empty inputs yield an empty ledger", func(t *testing.T) {
		assert.Empty(t, BuildLedger(nil, nil))
	})

	t.Run("repeated builds are deterministic", func(t *testing.T) {
		purchases := []procurement.PurchaseEntry{
			createTestPurchase("PO-001", "2024-01-01",
				lineItem("A1", "Schneider Electric", "Pieces", 10, 20)),
		}
		issues := []IssueRecord{
			createTestIssue("A1", 5, "2024-01-01", "PO-001",
				ProjectSplit{ProjectName: "X", Quantity: 5}),
		}
		assert.Equal(t, BuildLedger(purchases, issues), BuildLedger(purchases, issues))
	})
}

func TestFilterLedger(t *testing.T) {
	purchases := []procurement.PurchaseEntry{
		createTestPurchase("PO-001", "2024-01-01",
			lineItem("EL-SW-001", "Schneider Electric", "Pieces", 78.5, 20)),
		createTestPurchase("PO-002", "2024-01-14",
			lineItem("EL-CB-002", "ABB Ltd", "Pieces", 65.75, 15)),
	}
	issues := []IssueRecord{
		createTestIssue("EL-SW-001", 5, "2024-02-01", "PO-001",
			ProjectSplit{ProjectName: "Project A", Quantity: 5}),
	}
	ledger := BuildLedger(purchases, issues)

	t.Run("matches part number case-insensitively", func(t *testing.T) {
		filtered := FilterLedger(ledger, LedgerFieldPartNumber, "el-sw")
		require.Len(t, filtered, 2)
		for _, row := range filtered {
			assert.Equal(t, "EL-SW-001", row.PartNumber)
		}
	})

	t.Run("matches PO number", func(t *testing.T) {
		filtered := FilterLedger(ledger, LedgerFieldPONumber, "po-002")
		require.Len(t, filtered, 1)
		assert.Equal(t, "EL-CB-002", filtered[0].PartNumber)
	})

	t.Run("matches make company", func(t *testing.T) {
		filtered := FilterLedger(ledger, LedgerFieldMakeCompany, "abb")
		require.Len(t, filtered, 1)
	})

	t.Run("keeps running stock from the unfiltered timeline", func(t *testing.T) {
		filtered := FilterLedger(ledger, LedgerFieldPartNumber, "EL-SW-001")
		require.Len(t, filtered, 2)
		assert.Equal(t, int64(20), filtered[0].RunningStock)
		assert.Equal(t, int64(15), filtered[1].RunningStock)
	})

	t.Run("empty search returns everything", func(t *testing.T) {
		assert.Len(t, FilterLedger(ledger, LedgerFieldPartNumber, ""), len(ledger))
	})

	t.Run("unknown field returns everything", func(t *testing.T) {
		assert.Len(t, FilterLedger(ledger, LedgerField("color"), "x"), len(ledger))
	})
}
