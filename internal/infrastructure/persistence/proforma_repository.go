package persistence

import (
	"context"
	"errors"

	"github.com/fatoora/backend/internal/domain/billing"
	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProformaRepository implements ProformaRepository using GORM
type GormProformaRepository struct {
	db *gorm.DB
}

// NewGormProformaRepository creates a new GormProformaRepository
func NewGormProformaRepository(db *gorm.DB) *GormProformaRepository {
	return &GormProformaRepository{db: db}
}

// FindByID finds a proforma by its ID within a company
func (r *GormProformaRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*billing.ProformaInvoice, error) {
	var proforma billing.ProformaInvoice
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&proforma).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &proforma, nil
}

// FindAll finds proformas for a company
func (r *GormProformaRepository) FindAll(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]billing.ProformaInvoice, error) {
	var proformas []billing.ProformaInvoice
	query := r.db.WithContext(ctx).
		Model(&billing.ProformaInvoice{}).
		Where("company_id = ?", companyID)
	query = applyFilter(query, filter, ProformaSortFields, "number", "client_name")

	if err := query.Find(&proformas).Error; err != nil {
		return nil, err
	}
	return proformas, nil
}

// NextNumber generates the next sequential proforma number for a company
func (r *GormProformaRepository) NextNumber(ctx context.Context, companyID uuid.UUID) (string, error) {
	return nextDocumentNumber(ctx, r.db, companyID, docTypeProforma, prefixProforma)
}

// Save creates or updates a proforma
func (r *GormProformaRepository) Save(ctx context.Context, proforma *billing.ProformaInvoice) error {
	return r.db.WithContext(ctx).Save(proforma).Error
}

// Delete deletes a draft proforma within a company
func (r *GormProformaRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&billing.ProformaInvoice{}, "company_id = ? AND id = ?", companyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormProformaRepository implements ProformaRepository
var _ billing.ProformaRepository = (*GormProformaRepository)(nil)
