package stock

import (
	"context"

	"github.com/stockflow/backend/internal/domain/procurement"
	"github.com/stockflow/backend/internal/domain/stock"
)

// TransactionScope provides transactional access to the stock repositories.
// A function executed within the scope sees repositories that share one
// database transaction, committed or rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories an issuance
// touches, all scoped to the current transaction
type TransactionalRepositories interface {
	// LotRepo returns the stock lot repository scoped to the current transaction
	LotRepo() stock.StockLotRepository
	// IssueRepo returns the issue record repository scoped to the current transaction
	IssueRepo() stock.IssueRepository
	// PurchaseEntryRepo returns the purchase entry repository scoped to the current transaction
	PurchaseEntryRepo() procurement.PurchaseEntryRepository
}

// NoOpTransactionScope runs functions without a real transaction.
// Useful for testing and for backends where every repository call is atomic.
type NoOpTransactionScope struct {
	lotRepo           stock.StockLotRepository
	issueRepo         stock.IssueRepository
	purchaseEntryRepo procurement.PurchaseEntryRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	lotRepo stock.StockLotRepository,
	issueRepo stock.IssueRepository,
	purchaseEntryRepo procurement.PurchaseEntryRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		lotRepo:           lotRepo,
		issueRepo:         issueRepo,
		purchaseEntryRepo: purchaseEntryRepo,
	}
}

// Execute runs the function without a transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// LotRepo returns the stock lot repository
func (s *NoOpTransactionScope) LotRepo() stock.StockLotRepository {
	return s.lotRepo
}

// IssueRepo returns the issue record repository
func (s *NoOpTransactionScope) IssueRepo() stock.IssueRepository {
	return s.issueRepo
}

// PurchaseEntryRepo returns the purchase entry repository
func (s *NoOpTransactionScope) PurchaseEntryRepo() procurement.PurchaseEntryRepository {
	return s.purchaseEntryRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
