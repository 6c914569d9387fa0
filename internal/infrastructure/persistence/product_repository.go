package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/fatoora/backend/internal/domain/catalog"
	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID within a company
func (r *GormProductRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByIDs finds multiple products by their IDs within a company
func (r *GormProductRepository) FindByIDs(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND id IN ?", companyID, ids).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindByCode finds a product by its code within a company. Codes are stored
// uppercase.
func (r *GormProductRepository) FindByCode(ctx context.Context, companyID uuid.UUID, code string) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND code = ?", companyID, strings.ToUpper(code)).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindAll finds all products for a company
func (r *GormProductRepository) FindAll(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("company_id = ?", companyID)
	query = applyFilter(query, filter, ProductSortFields, "code", "name")

	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindStockManaged finds all stock-managed, non-service products for a company
func (r *GormProductRepository) FindStockManaged(ctx context.Context, companyID uuid.UUID) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND manage_stock = ? AND is_service = ?", companyID, true, false).
		Order("code ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindBelowMinimum finds stock-managed products below their minimum threshold
func (r *GormProductRepository) FindBelowMinimum(ctx context.Context, companyID uuid.UUID) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND manage_stock = ? AND is_service = ? AND min_stock > 0 AND current_stock < min_stock",
			companyID, true, false).
		Order("code ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	result := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("id = ? AND version = ?", product.ID, product.Version-1).
		Select("*").
		Updates(product)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete deletes a product within a company
func (r *GormProductRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&catalog.Product{}, "company_id = ? AND id = ?", companyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts products for a company
func (r *GormProductRepository) Count(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("company_id = ?", companyID)
	query = applySearch(query, filter, "code", "name")

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
