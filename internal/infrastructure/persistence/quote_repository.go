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

// GormQuoteRepository implements QuoteRepository using GORM
type GormQuoteRepository struct {
	db *gorm.DB
}

// NewGormQuoteRepository creates a new GormQuoteRepository
func NewGormQuoteRepository(db *gorm.DB) *GormQuoteRepository {
	return &GormQuoteRepository{db: db}
}

// FindByID finds a quote by its ID within a company
func (r *GormQuoteRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*billing.Quote, error) {
	var quote billing.Quote
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&quote).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &quote, nil
}

// FindAll finds quotes for a company
func (r *GormQuoteRepository) FindAll(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]billing.Quote, error) {
	var quotes []billing.Quote
	query := r.db.WithContext(ctx).
		Model(&billing.Quote{}).
		Where("company_id = ?", companyID)
	query = applyFilter(query, filter, QuoteSortFields, "number", "client_name")

	if err := query.Find(&quotes).Error; err != nil {
		return nil, err
	}
	return quotes, nil
}

// FindByStatus finds quotes in a given status for a company
func (r *GormQuoteRepository) FindByStatus(ctx context.Context, companyID uuid.UUID, status billing.QuoteStatus, filter shared.Filter) ([]billing.Quote, error) {
	var quotes []billing.Quote
	query := r.db.WithContext(ctx).
		Model(&billing.Quote{}).
		Where("company_id = ? AND status = ?", companyID, status)
	query = applyFilter(query, filter, QuoteSortFields, "number", "client_name")

	if err := query.Find(&quotes).Error; err != nil {
		return nil, err
	}
	return quotes, nil
}

// FindReminderDue finds awaiting quotes whose next reminder date has passed.
// Crosses company boundaries because the reminder sweep runs for the whole
// installation.
func (r *GormQuoteRepository) FindReminderDue(ctx context.Context, cutoff time.Time) ([]billing.Quote, error) {
	var quotes []billing.Quote
	if err := r.db.WithContext(ctx).
		Where("status = ? AND reminder_enabled = ? AND next_reminder_date IS NOT NULL AND next_reminder_date <= ?",
			billing.QuoteStatusAwaitingAcceptance, true, cutoff).
		Order("next_reminder_date ASC").
		Find(&quotes).Error; err != nil {
		return nil, err
	}
	return quotes, nil
}

// NextNumber generates the next sequential quote number for a company
func (r *GormQuoteRepository) NextNumber(ctx context.Context, companyID uuid.UUID) (string, error) {
	return nextDocumentNumber(ctx, r.db, companyID, docTypeQuote, prefixQuote)
}

// Save creates or updates a quote
func (r *GormQuoteRepository) Save(ctx context.Context, quote *billing.Quote) error {
	return r.db.WithContext(ctx).Save(quote).Error
}

// Delete deletes a draft quote within a company
func (r *GormQuoteRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&billing.Quote{}, "company_id = ? AND id = ?", companyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormQuoteRepository implements QuoteRepository
var _ billing.QuoteRepository = (*GormQuoteRepository)(nil)
