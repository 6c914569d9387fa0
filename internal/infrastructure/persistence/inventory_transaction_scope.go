package persistence

import (
	"context"

	appinv "github.com/fatoora/backend/internal/application/inventory"
	"github.com/fatoora/backend/internal/domain/catalog"
	"github.com/fatoora/backend/internal/domain/inventory"
	"gorm.io/gorm"
)

// GormInventoryTransactionScope implements the inventory TransactionScope
// using GORM transactions. Completing a stock count writes the session, the
// adjustment movements and the product counters in one unit of work.
type GormInventoryTransactionScope struct {
	db *gorm.DB
}

// NewGormInventoryTransactionScope creates a new GormInventoryTransactionScope
func NewGormInventoryTransactionScope(db *gorm.DB) *GormInventoryTransactionScope {
	return &GormInventoryTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormInventoryTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormInventoryRepositories{tx: tx})
	})
}

// gormInventoryRepositories provides transaction-scoped repositories
type gormInventoryRepositories struct {
	tx *gorm.DB
}

// ProductRepo returns the product repository scoped to the current transaction
func (r *gormInventoryRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// MovementRepo returns the stock movement repository scoped to the current transaction
func (r *gormInventoryRepositories) MovementRepo() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

// StockCountRepo returns the stock count repository scoped to the current transaction
func (r *gormInventoryRepositories) StockCountRepo() inventory.StockCountRepository {
	return NewGormStockCountRepository(r.tx)
}

// Ensure GormInventoryTransactionScope implements TransactionScope
var _ appinv.TransactionScope = (*GormInventoryTransactionScope)(nil)

// Ensure gormInventoryRepositories implements TransactionalRepositories
var _ appinv.TransactionalRepositories = (*gormInventoryRepositories)(nil)
