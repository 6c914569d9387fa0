package inventory

import (
	"context"

	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StockMovementRepository defines the interface for movement persistence.
// The ledger is append-only: there is no update or delete.
type StockMovementRepository interface {
	// Create appends a movement to the ledger
	Create(ctx context.Context, movement *StockMovement) error

	// FindByID finds a movement by its ID within a company
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*StockMovement, error)

	// FindByProduct finds movements for a product, newest first
	FindByProduct(ctx context.Context, companyID, productID uuid.UUID, filter shared.Filter) ([]StockMovement, error)

	// FindLatestByProduct finds the most recent movement for a product
	FindLatestByProduct(ctx context.Context, companyID, productID uuid.UUID) (*StockMovement, error)

	// FindByReference finds movements created for a source document
	FindByReference(ctx context.Context, companyID, referenceID uuid.UUID) ([]StockMovement, error)

	// FindAll finds movements for a company
	FindAll(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]StockMovement, error)
}

// StockCountRepository defines the interface for stock count persistence
type StockCountRepository interface {
	// FindByID finds a count session by its ID within a company
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*StockCount, error)

	// FindAll finds count sessions for a company
	FindAll(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]StockCount, error)

	// NextNumber generates the next sequential count number for a company
	NextNumber(ctx context.Context, companyID uuid.UUID) (string, error)

	// Save creates or updates a count session
	Save(ctx context.Context, count *StockCount) error

	// SaveWithLock updates a count session guarded by its optimistic version
	SaveWithLock(ctx context.Context, count *StockCount) error

	// Delete deletes a draft count session within a company
	Delete(ctx context.Context, companyID, id uuid.UUID) error
}
