package persistence

import (
	"context"
	"errors"

	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/fatoora/backend/internal/domain/tax"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTaxRepository implements TaxRepository using GORM
type GormTaxRepository struct {
	db *gorm.DB
}

// NewGormTaxRepository creates a new GormTaxRepository
func NewGormTaxRepository(db *gorm.DB) *GormTaxRepository {
	return &GormTaxRepository{db: db}
}

// FindByID finds a tax by its ID within a company
func (r *GormTaxRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*tax.Tax, error) {
	var t tax.Tax
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindAll finds all taxes for a company
func (r *GormTaxRepository) FindAll(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]tax.Tax, error) {
	var taxes []tax.Tax
	query := r.db.WithContext(ctx).
		Model(&tax.Tax{}).
		Where("company_id = ?", companyID)
	query = applyFilter(query, filter, TaxSortFields, "name")

	if err := query.Find(&taxes).Error; err != nil {
		return nil, err
	}
	return taxes, nil
}

// FindDefault finds the company's default active tax
func (r *GormTaxRepository) FindDefault(ctx context.Context, companyID uuid.UUID) (*tax.Tax, error) {
	var t tax.Tax
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND is_default = ? AND active = ?", companyID, true, true).
		First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Save creates or updates a tax
func (r *GormTaxRepository) Save(ctx context.Context, t *tax.Tax) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// Delete deletes a tax within a company
func (r *GormTaxRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&tax.Tax{}, "company_id = ? AND id = ?", companyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormTaxRepository implements TaxRepository
var _ tax.TaxRepository = (*GormTaxRepository)(nil)
