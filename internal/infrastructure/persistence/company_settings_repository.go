package persistence

import (
	"context"
	"errors"

	"github.com/fatoora/backend/internal/domain/billing"
	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCompanySettingsRepository implements CompanySettingsRepository using GORM
type GormCompanySettingsRepository struct {
	db *gorm.DB
}

// NewGormCompanySettingsRepository creates a new GormCompanySettingsRepository
func NewGormCompanySettingsRepository(db *gorm.DB) *GormCompanySettingsRepository {
	return &GormCompanySettingsRepository{db: db}
}

// FindByCompany finds the settings for a company
func (r *GormCompanySettingsRepository) FindByCompany(ctx context.Context, companyID uuid.UUID) (*billing.CompanySettings, error) {
	var settings billing.CompanySettings
	if err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &settings, nil
}

// Save creates or updates the settings for a company
func (r *GormCompanySettingsRepository) Save(ctx context.Context, settings *billing.CompanySettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}

// Ensure GormCompanySettingsRepository implements CompanySettingsRepository
var _ billing.CompanySettingsRepository = (*GormCompanySettingsRepository)(nil)
