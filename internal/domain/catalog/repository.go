package catalog

import (
	"context"

	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID within a company
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*Product, error)

	// FindByIDs finds multiple products by their IDs within a company
	FindByIDs(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) ([]Product, error)

	// FindByCode finds a product by its code within a company
	FindByCode(ctx context.Context, companyID uuid.UUID, code string) (*Product, error)

	// FindAll finds all products for a company
	FindAll(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Product, error)

	// FindStockManaged finds all stock-managed, non-service products for a company
	FindStockManaged(ctx context.Context, companyID uuid.UUID) ([]Product, error)

	// FindBelowMinimum finds stock-managed products below their minimum threshold
	FindBelowMinimum(ctx context.Context, companyID uuid.UUID) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, product *Product) error

	// Delete deletes a product within a company
	Delete(ctx context.Context, companyID, id uuid.UUID) error

	// Count counts products for a company
	Count(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by its ID within a company
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*Category, error)

	// FindAll finds all categories for a company
	FindAll(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Category, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// Delete deletes a category within a company
	Delete(ctx context.Context, companyID, id uuid.UUID) error
}
