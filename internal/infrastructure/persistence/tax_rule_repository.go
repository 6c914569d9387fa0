package persistence

import (
	"context"
	"errors"

	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/fatoora/backend/internal/domain/tax"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTaxRuleRepository implements TaxRuleRepository using GORM
type GormTaxRuleRepository struct {
	db *gorm.DB
}

// NewGormTaxRuleRepository creates a new GormTaxRuleRepository
func NewGormTaxRuleRepository(db *gorm.DB) *GormTaxRuleRepository {
	return &GormTaxRuleRepository{db: db}
}

// FindByID finds a tax rule by its ID within a company
func (r *GormTaxRuleRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*tax.TaxRule, error) {
	var rule tax.TaxRule
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&rule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rule, nil
}

// FindAll finds all tax rules for a company
func (r *GormTaxRuleRepository) FindAll(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]tax.TaxRule, error) {
	var rules []tax.TaxRule
	query := r.db.WithContext(ctx).
		Model(&tax.TaxRule{}).
		Where("company_id = ?", companyID)
	query = applyFilter(query, filter, TaxRuleSortFields, "name")

	if err := query.Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// FindActiveOrdered returns the company's active rules ordered by priority
// descending, then creation time ascending, then ID ascending
func (r *GormTaxRuleRepository) FindActiveOrdered(ctx context.Context, companyID uuid.UUID) ([]tax.TaxRule, error) {
	var rules []tax.TaxRule
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND active = ?", companyID, true).
		Order("priority DESC, created_at ASC, id ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// Save creates or updates a tax rule
func (r *GormTaxRuleRepository) Save(ctx context.Context, rule *tax.TaxRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

// Delete deletes a tax rule within a company
func (r *GormTaxRuleRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&tax.TaxRule{}, "company_id = ? AND id = ?", companyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormTaxRuleRepository implements TaxRuleRepository
var _ tax.TaxRuleRepository = (*GormTaxRuleRepository)(nil)
