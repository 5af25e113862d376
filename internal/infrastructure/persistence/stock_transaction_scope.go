package persistence

import (
	"context"

	appstock "github.com/stockflow/backend/internal/application/stock"
	"github.com/stockflow/backend/internal/domain/procurement"
	"github.com/stockflow/backend/internal/domain/stock"
	"gorm.io/gorm"
)

// GormStockTransactionScope implements the stock TransactionScope with a
// GORM transaction shared by all repositories it hands out
type GormStockTransactionScope struct {
	db *gorm.DB
}

// NewGormStockTransactionScope creates a transaction scope over the database
func NewGormStockTransactionScope(db *gorm.DB) *GormStockTransactionScope {
	return &GormStockTransactionScope{db: db}
}

// Execute runs fn inside a database transaction
func (s *GormStockTransactionScope) Execute(ctx context.Context, fn func(repos appstock.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) LotRepo() stock.StockLotRepository {
	return NewGormStockLotRepository(r.tx)
}

func (r *gormTransactionalRepositories) IssueRepo() stock.IssueRepository {
	return NewGormIssueRepository(r.tx)
}

func (r *gormTransactionalRepositories) PurchaseEntryRepo() procurement.PurchaseEntryRepository {
	return NewGormPurchaseEntryRepository(r.tx)
}

var _ appstock.TransactionScope = (*GormStockTransactionScope)(nil)
