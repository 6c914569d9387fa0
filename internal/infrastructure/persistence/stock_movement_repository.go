package persistence

import (
	"context"
	"errors"

	"github.com/fatoora/backend/internal/domain/inventory"
	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStockMovementRepository implements StockMovementRepository using GORM.
// The movement ledger is append-only, so the repository exposes no update or
// delete.
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Create appends a movement to the ledger
func (r *GormStockMovementRepository) Create(ctx context.Context, movement *inventory.StockMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// FindByID finds a movement by its ID within a company
func (r *GormStockMovementRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*inventory.StockMovement, error) {
	var movement inventory.StockMovement
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&movement).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &movement, nil
}

// FindByProduct finds movements for a product, newest first
func (r *GormStockMovementRepository) FindByProduct(ctx context.Context, companyID, productID uuid.UUID, filter shared.Filter) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	query := r.db.WithContext(ctx).
		Model(&inventory.StockMovement{}).
		Where("company_id = ? AND product_id = ?", companyID, productID).
		Order("created_at DESC")
	query = applyPagination(query, filter)

	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// FindLatestByProduct finds the most recent movement for a product
func (r *GormStockMovementRepository) FindLatestByProduct(ctx context.Context, companyID, productID uuid.UUID) (*inventory.StockMovement, error) {
	var movement inventory.StockMovement
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND product_id = ?", companyID, productID).
		Order("created_at DESC").
		First(&movement).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &movement, nil
}

// FindByReference finds movements created for a source document
func (r *GormStockMovementRepository) FindByReference(ctx context.Context, companyID, referenceID uuid.UUID) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND reference_id = ?", companyID, referenceID).
		Order("created_at ASC").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// FindAll finds movements for a company
func (r *GormStockMovementRepository) FindAll(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	query := r.db.WithContext(ctx).
		Model(&inventory.StockMovement{}).
		Where("company_id = ?", companyID)
	query = applyFilter(query, filter, StockMovementSortFields, "product_code", "product_name")

	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// Ensure GormStockMovementRepository implements StockMovementRepository
var _ inventory.StockMovementRepository = (*GormStockMovementRepository)(nil)
