package persistence

import (
	"context"

	"github.com/fatoora/backend/internal/domain/billing"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCompanySource lists companies that currently have sent invoices,
// which is exactly the set the overdue sweep has to look at.
type GormCompanySource struct {
	db *gorm.DB
}

// NewGormCompanySource creates a new GormCompanySource
func NewGormCompanySource(db *gorm.DB) *GormCompanySource {
	return &GormCompanySource{db: db}
}

// CompaniesWithOpenInvoices returns the distinct company IDs with at least
// one invoice in sent status
func (s *GormCompanySource) CompaniesWithOpenInvoices(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.db.WithContext(ctx).
		Model(&billing.Invoice{}).
		Distinct("company_id").
		Where("status = ?", billing.InvoiceStatusSent).
		Pluck("company_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
