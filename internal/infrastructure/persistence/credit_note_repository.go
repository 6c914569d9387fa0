package persistence

import (
	"context"
	"errors"

	"github.com/fatoora/backend/internal/domain/billing"
	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCreditNoteRepository implements CreditNoteRepository using GORM
type GormCreditNoteRepository struct {
	db *gorm.DB
}

// NewGormCreditNoteRepository creates a new GormCreditNoteRepository
func NewGormCreditNoteRepository(db *gorm.DB) *GormCreditNoteRepository {
	return &GormCreditNoteRepository{db: db}
}

// FindByID finds a credit note by its ID within a company
func (r *GormCreditNoteRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*billing.CreditNote, error) {
	var note billing.CreditNote
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &note, nil
}

// FindAll finds credit notes for a company
func (r *GormCreditNoteRepository) FindAll(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]billing.CreditNote, error) {
	var notes []billing.CreditNote
	query := r.db.WithContext(ctx).
		Model(&billing.CreditNote{}).
		Where("company_id = ?", companyID)
	query = applyFilter(query, filter, CreditNoteSortFields, "number", "client_name")

	if err := query.Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// FindByInvoice finds credit notes issued against an invoice
func (r *GormCreditNoteRepository) FindByInvoice(ctx context.Context, companyID, invoiceID uuid.UUID) ([]billing.CreditNote, error) {
	var notes []billing.CreditNote
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND invoice_id = ?", companyID, invoiceID).
		Order("created_at ASC").
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// NextNumber generates the next sequential credit note number for a company
func (r *GormCreditNoteRepository) NextNumber(ctx context.Context, companyID uuid.UUID) (string, error) {
	return nextDocumentNumber(ctx, r.db, companyID, docTypeCreditNote, prefixCreditNote)
}

// Save creates or updates a credit note
func (r *GormCreditNoteRepository) Save(ctx context.Context, note *billing.CreditNote) error {
	return r.db.WithContext(ctx).Save(note).Error
}

// SaveWithLock updates a credit note guarded by its optimistic version
func (r *GormCreditNoteRepository) SaveWithLock(ctx context.Context, note *billing.CreditNote) error {
	result := r.db.WithContext(ctx).
		Model(&billing.CreditNote{}).
		Where("id = ? AND version = ?", note.ID, note.Version-1).
		Select("*").
		Updates(note)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete deletes a draft credit note within a company
func (r *GormCreditNoteRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&billing.CreditNote{}, "company_id = ? AND id = ?", companyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormCreditNoteRepository implements CreditNoteRepository
var _ billing.CreditNoteRepository = (*GormCreditNoteRepository)(nil)
