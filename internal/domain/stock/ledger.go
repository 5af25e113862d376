package stock

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stockflow/backend/internal/domain/procurement"
)

// TransactionType discriminates ledger rows
type TransactionType string

const (
	// TransactionPurchase marks stock received into inventory
	TransactionPurchase TransactionType = "purchase"
	// TransactionIssue marks stock issued to a project
	TransactionIssue TransactionType = "issue"
)

// LedgerField selects which column a ledger filter matches against
type LedgerField string

const (
	LedgerFieldPartNumber  LedgerField = "partNumber"
	LedgerFieldPONumber    LedgerField = "poNumber"
	LedgerFieldMakeCompany LedgerField = "makeCompany"
)

// IsValid checks if the ledger field is filterable
func (f LedgerField) IsValid() bool {
	switch f {
	case LedgerFieldPartNumber, LedgerFieldPONumber, LedgerFieldMakeCompany:
		return true
	}
	return false
}

// LedgerEntry is one row of the unified stock ledger. Quantity is always
// unsigned; TransactionType supplies the sign when the running balance is
// accumulated. Entries are derived on demand and never persisted.
type LedgerEntry struct {
	PartNumber      string
	MakeCompany     string
	PurchaseDate    *time.Time
	IssueDate       *time.Time
	PONumber        string
	Unit            string
	UnitPrice       decimal.Decimal
	Quantity        int64
	TransactionType TransactionType
	ProjectName     string
	RunningStock    int64
}

// EffectiveDate is the date the row is ordered by: the purchase date for
// purchase rows, the issue date for issue rows
func (e *LedgerEntry) EffectiveDate() time.Time {
	if e.TransactionType == TransactionPurchase && e.PurchaseDate != nil {
		return *e.PurchaseDate
	}
	if e.IssueDate != nil {
		return *e.IssueDate
	}
	return time.Time{}
}

// BuildLedger merges purchase entries and issue records into one
// chronologically ordered ledger with a per-part running stock balance.
//
// Purchase entries fan out into one row per line item; issues fan out into
// one row per project allocation. Issue rows borrow MakeCompany, Unit and
// UnitPrice from the most recent purchase line for the same part number,
// falling back to "N/A" and zero when no purchase exists.
//
// Rows with equal effective dates keep purchases before issues, then input
// order; the sort is stable so repeated builds yield identical output.
// The running balance is seeded at zero per part number and is computed over
// the full timeline; FilterLedger never changes the balances.
func BuildLedger(purchases []procurement.PurchaseEntry, issues []IssueRecord) []LedgerEntry {
	entries := make([]LedgerEntry, 0, len(purchases)+len(issues))

	for pi := range purchases {
		entry := &purchases[pi]
		for li := range entry.LineItems {
			item := &entry.LineItems[li]
			purchaseDate := entry.PurchaseDate
			entries = append(entries, LedgerEntry{
				PartNumber:      item.PartNumber,
				MakeCompany:     item.MakeCompany,
				PurchaseDate:    &purchaseDate,
				PONumber:        entry.PONumber,
				Unit:            item.Unit,
				UnitPrice:       item.UnitPrice,
				Quantity:        item.Quantity,
				TransactionType: TransactionPurchase,
			})
		}
	}

	enrichment := latestPurchaseLines(purchases)
	for ii := range issues {
		issue := &issues[ii]
		issueDate := issue.DateIssued
		for ai := range issue.Allocations {
			alloc := &issue.Allocations[ai]
			row := LedgerEntry{
				PartNumber:      issue.PartNumber,
				MakeCompany:     "N/A",
				IssueDate:       &issueDate,
				PONumber:        issue.PONumber,
				Unit:            "N/A",
				UnitPrice:       decimal.Zero,
				Quantity:        alloc.Quantity,
				TransactionType: TransactionIssue,
				ProjectName:     alloc.ProjectName,
			}
			if src, ok := enrichment[issue.PartNumber]; ok {
				row.MakeCompany = src.MakeCompany
				row.Unit = src.Unit
				row.UnitPrice = src.UnitPrice
			}
			entries = append(entries, row)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := entries[i].EffectiveDate(), entries[j].EffectiveDate()
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		// Same-day receipts land before same-day issues.
		return entries[i].TransactionType == TransactionPurchase &&
			entries[j].TransactionType == TransactionIssue
	})

	balances := make(map[string]int64)
	for i := range entries {
		if entries[i].TransactionType == TransactionPurchase {
			balances[entries[i].PartNumber] += entries[i].Quantity
		} else {
			balances[entries[i].PartNumber] -= abs64(entries[i].Quantity)
		}
		entries[i].RunningStock = balances[entries[i].PartNumber]
	}

	return entries
}

// FilterLedger returns the rows whose selected field case-insensitively
// contains the search text. It operates on an already built ledger: running
// stock stays as computed over the full timeline. An empty search text or an
// unknown field returns the input unchanged.
func FilterLedger(entries []LedgerEntry, field LedgerField, searchText string) []LedgerEntry {
	if searchText == "" || !field.IsValid() {
		return entries
	}
	needle := strings.ToLower(searchText)
	filtered := make([]LedgerEntry, 0, len(entries))
	for i := range entries {
		var haystack string
		switch field {
		case LedgerFieldPartNumber:
			haystack = entries[i].PartNumber
		case LedgerFieldPONumber:
			haystack = entries[i].PONumber
		case LedgerFieldMakeCompany:
			haystack = entries[i].MakeCompany
		}
		if strings.Contains(strings.ToLower(haystack), needle) {
			filtered = append(filtered, entries[i])
		}
	}
	return filtered
}

// latestPurchaseLines indexes the most recent purchase line per part number,
// used to enrich issue rows. Later purchase dates win; equal dates fall back
// to input order so the choice is deterministic.
func latestPurchaseLines(purchases []procurement.PurchaseEntry) map[string]*procurement.PurchaseLineItem {
	latest := make(map[string]*procurement.PurchaseLineItem)
	dates := make(map[string]time.Time)
	for pi := range purchases {
		entry := &purchases[pi]
		for li := range entry.LineItems {
			item := &entry.LineItems[li]
			if prev, ok := dates[item.PartNumber]; ok && entry.PurchaseDate.Before(prev) {
				continue
			}
			latest[item.PartNumber] = item
			dates[item.PartNumber] = entry.PurchaseDate
		}
	}
	return latest
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
