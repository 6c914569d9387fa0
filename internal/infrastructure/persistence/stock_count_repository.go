package persistence

import (
	"context"
	"errors"

	"github.com/fatoora/backend/internal/domain/inventory"
	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStockCountRepository implements StockCountRepository using GORM
type GormStockCountRepository struct {
	db *gorm.DB
}

// NewGormStockCountRepository creates a new GormStockCountRepository
func NewGormStockCountRepository(db *gorm.DB) *GormStockCountRepository {
	return &GormStockCountRepository{db: db}
}

// FindByID finds a count session by its ID within a company
func (r *GormStockCountRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*inventory.StockCount, error) {
	var count inventory.StockCount
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&count).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &count, nil
}

// FindAll finds count sessions for a company
func (r *GormStockCountRepository) FindAll(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]inventory.StockCount, error) {
	var counts []inventory.StockCount
	query := r.db.WithContext(ctx).
		Model(&inventory.StockCount{}).
		Where("company_id = ?", companyID)
	query = applyFilter(query, filter, StockCountSortFields, "number")

	if err := query.Find(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

// NextNumber generates the next sequential count number for a company
func (r *GormStockCountRepository) NextNumber(ctx context.Context, companyID uuid.UUID) (string, error) {
	return nextDocumentNumber(ctx, r.db, companyID, docTypeStockCount, prefixStockCount)
}

// Save creates or updates a count session
func (r *GormStockCountRepository) Save(ctx context.Context, count *inventory.StockCount) error {
	return r.db.WithContext(ctx).Save(count).Error
}

// SaveWithLock updates a count session guarded by its optimistic version
func (r *GormStockCountRepository) SaveWithLock(ctx context.Context, count *inventory.StockCount) error {
	result := r.db.WithContext(ctx).
		Model(&inventory.StockCount{}).
		Where("id = ? AND version = ?", count.ID, count.Version-1).
		Select("*").
		Updates(count)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete deletes a draft count session within a company
func (r *GormStockCountRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&inventory.StockCount{}, "company_id = ? AND id = ?", companyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormStockCountRepository implements StockCountRepository
var _ inventory.StockCountRepository = (*GormStockCountRepository)(nil)
