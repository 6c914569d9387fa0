package persistence

import (
	"context"
	"errors"

	"github.com/fatoora/backend/internal/domain/partner"
	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormClientCategoryRepository implements ClientCategoryRepository using GORM
type GormClientCategoryRepository struct {
	db *gorm.DB
}

// NewGormClientCategoryRepository creates a new GormClientCategoryRepository
func NewGormClientCategoryRepository(db *gorm.DB) *GormClientCategoryRepository {
	return &GormClientCategoryRepository{db: db}
}

// FindByID finds a client category by its ID within a company
func (r *GormClientCategoryRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*partner.ClientCategory, error) {
	var category partner.ClientCategory
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindAll finds all client categories for a company
func (r *GormClientCategoryRepository) FindAll(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]partner.ClientCategory, error) {
	var categories []partner.ClientCategory
	query := r.db.WithContext(ctx).
		Model(&partner.ClientCategory{}).
		Where("company_id = ?", companyID)
	query = applyFilter(query, filter, CategorySortFields, "name")

	if err := query.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Save creates or updates a client category
func (r *GormClientCategoryRepository) Save(ctx context.Context, category *partner.ClientCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// Delete deletes a client category within a company
func (r *GormClientCategoryRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&partner.ClientCategory{}, "company_id = ? AND id = ?", companyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormClientCategoryRepository implements ClientCategoryRepository
var _ partner.ClientCategoryRepository = (*GormClientCategoryRepository)(nil)
