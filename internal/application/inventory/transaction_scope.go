package inventory

import (
	"context"

	"github.com/fatoora/backend/internal/domain/catalog"
	"github.com/fatoora/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to inventory repositories.
// Completing a stock count writes the count session, the adjustment
// movements and the product counters in one unit of work.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories an inventory
// operation may touch within one transaction.
type TransactionalRepositories interface {
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() catalog.ProductRepository
	// MovementRepo returns the stock movement repository scoped to the current transaction
	MovementRepo() inventory.StockMovementRepository
	// StockCountRepo returns the stock count repository scoped to the current transaction
	StockCountRepo() inventory.StockCountRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing.
type NoOpTransactionScope struct {
	productRepo    catalog.ProductRepository
	movementRepo   inventory.StockMovementRepository
	stockCountRepo inventory.StockCountRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	productRepo catalog.ProductRepository,
	movementRepo inventory.StockMovementRepository,
	stockCountRepo inventory.StockCountRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		productRepo:    productRepo,
		movementRepo:   movementRepo,
		stockCountRepo: stockCountRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ProductRepo returns the product repository
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository { return s.productRepo }

// MovementRepo returns the stock movement repository
func (s *NoOpTransactionScope) MovementRepo() inventory.StockMovementRepository {
	return s.movementRepo
}

// StockCountRepo returns the stock count repository
func (s *NoOpTransactionScope) StockCountRepo() inventory.StockCountRepository {
	return s.stockCountRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
