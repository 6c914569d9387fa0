package persistence

import (
	"context"
	"errors"

	"github.com/fatoora/backend/internal/domain/billing"
	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by its ID within a company
func (r *GormPaymentRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*billing.Payment, error) {
	var payment billing.Payment
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// FindByInvoice finds all payments recorded against an invoice, deleted
// ones included
func (r *GormPaymentRepository) FindByInvoice(ctx context.Context, companyID, invoiceID uuid.UUID) ([]billing.Payment, error) {
	var payments []billing.Payment
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND invoice_id = ?", companyID, invoiceID).
		Order("date ASC, created_at ASC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// FindActiveByInvoice finds the surviving payments for an invoice
func (r *GormPaymentRepository) FindActiveByInvoice(ctx context.Context, companyID, invoiceID uuid.UUID) ([]billing.Payment, error) {
	var payments []billing.Payment
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND invoice_id = ? AND status = ?", companyID, invoiceID, billing.PaymentStatusActive).
		Order("date ASC, created_at ASC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// Save creates or updates a payment
func (r *GormPaymentRepository) Save(ctx context.Context, payment *billing.Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

// Ensure GormPaymentRepository implements PaymentRepository
var _ billing.PaymentRepository = (*GormPaymentRepository)(nil)
