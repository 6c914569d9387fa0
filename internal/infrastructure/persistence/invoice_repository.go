package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/fatoora/backend/internal/domain/billing"
	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice by its ID within a company
func (r *GormInvoiceRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*billing.Invoice, error) {
	var invoice billing.Invoice
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindByNumber finds an invoice by its number within a company
func (r *GormInvoiceRepository) FindByNumber(ctx context.Context, companyID uuid.UUID, number string) (*billing.Invoice, error) {
	var invoice billing.Invoice
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND number = ?", companyID, number).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindAll finds invoices for a company
func (r *GormInvoiceRepository) FindAll(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	var invoices []billing.Invoice
	query := r.db.WithContext(ctx).
		Model(&billing.Invoice{}).
		Where("company_id = ?", companyID)
	query = applyFilter(query, filter, InvoiceSortFields, "number", "client_name")

	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// FindByStatus finds invoices in a given status for a company
func (r *GormInvoiceRepository) FindByStatus(ctx context.Context, companyID uuid.UUID, status billing.InvoiceStatus, filter shared.Filter) ([]billing.Invoice, error) {
	var invoices []billing.Invoice
	query := r.db.WithContext(ctx).
		Model(&billing.Invoice{}).
		Where("company_id = ? AND status = ?", companyID, status)
	query = applyFilter(query, filter, InvoiceSortFields, "number", "client_name")

	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// FindByClient finds invoices for a client within a company
func (r *GormInvoiceRepository) FindByClient(ctx context.Context, companyID, clientID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	var invoices []billing.Invoice
	query := r.db.WithContext(ctx).
		Model(&billing.Invoice{}).
		Where("company_id = ? AND client_id = ?", companyID, clientID)
	query = applyFilter(query, filter, InvoiceSortFields, "number")

	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// FindDueBefore finds sent invoices whose due date has passed
func (r *GormInvoiceRepository) FindDueBefore(ctx context.Context, companyID uuid.UUID, cutoff time.Time) ([]billing.Invoice, error) {
	var invoices []billing.Invoice
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND status = ? AND due_date < ?", companyID, billing.InvoiceStatusSent, cutoff).
		Order("due_date ASC").
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// NextNumber generates the next sequential invoice number for a company
func (r *GormInvoiceRepository) NextNumber(ctx context.Context, companyID uuid.UUID) (string, error) {
	return nextDocumentNumber(ctx, r.db, companyID, docTypeInvoice, prefixInvoice)
}

// Save creates or updates an invoice
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

// SaveWithLock updates an invoice guarded by its optimistic version.
// Aggregate mutators increment the version, so the row must still hold the
// previous one.
func (r *GormInvoiceRepository) SaveWithLock(ctx context.Context, invoice *billing.Invoice) error {
	result := r.db.WithContext(ctx).
		Model(&billing.Invoice{}).
		Where("id = ? AND version = ?", invoice.ID, invoice.Version-1).
		Select("*").
		Updates(invoice)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete deletes a draft invoice within a company
func (r *GormInvoiceRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&billing.Invoice{}, "company_id = ? AND id = ?", companyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts invoices for a company
func (r *GormInvoiceRepository) Count(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&billing.Invoice{}).
		Where("company_id = ?", companyID)
	query = applySearch(query, filter, "number", "client_name")

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormInvoiceRepository implements InvoiceRepository
var _ billing.InvoiceRepository = (*GormInvoiceRepository)(nil)
