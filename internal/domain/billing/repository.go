package billing

import (
	"context"
	"time"

	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// FindByID finds an invoice by its ID within a company
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*Invoice, error)

	// FindByNumber finds an invoice by its number within a company
	FindByNumber(ctx context.Context, companyID uuid.UUID, number string) (*Invoice, error)

	// FindAll finds invoices for a company
	FindAll(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Invoice, error)

	// FindByStatus finds invoices in a given status for a company
	FindByStatus(ctx context.Context, companyID uuid.UUID, status InvoiceStatus, filter shared.Filter) ([]Invoice, error)

	// FindByClient finds invoices for a client within a company
	FindByClient(ctx context.Context, companyID, clientID uuid.UUID, filter shared.Filter) ([]Invoice, error)

	// FindDueBefore finds sent invoices whose due date has passed
	FindDueBefore(ctx context.Context, companyID uuid.UUID, cutoff time.Time) ([]Invoice, error)

	// NextNumber generates the next sequential invoice number for a company
	NextNumber(ctx context.Context, companyID uuid.UUID) (string, error)

	// Save creates or updates an invoice
	Save(ctx context.Context, invoice *Invoice) error

	// SaveWithLock updates an invoice guarded by its optimistic version
	SaveWithLock(ctx context.Context, invoice *Invoice) error

	// Delete deletes a draft invoice within a company
	Delete(ctx context.Context, companyID, id uuid.UUID) error

	// Count counts invoices for a company
	Count(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)
}

// QuoteRepository defines the interface for quote persistence
type QuoteRepository interface {
	// FindByID finds a quote by its ID within a company
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*Quote, error)

	// FindAll finds quotes for a company
	FindAll(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Quote, error)

	// FindByStatus finds quotes in a given status for a company
	FindByStatus(ctx context.Context, companyID uuid.UUID, status QuoteStatus, filter shared.Filter) ([]Quote, error)

	// FindReminderDue finds awaiting quotes whose next reminder date has passed
	FindReminderDue(ctx context.Context, cutoff time.Time) ([]Quote, error)

	// NextNumber generates the next sequential quote number for a company
	NextNumber(ctx context.Context, companyID uuid.UUID) (string, error)

	// Save creates or updates a quote
	Save(ctx context.Context, quote *Quote) error

	// Delete deletes a draft quote within a company
	Delete(ctx context.Context, companyID, id uuid.UUID) error
}

// ProformaRepository defines the interface for proforma invoice persistence
type ProformaRepository interface {
	// FindByID finds a proforma by its ID within a company
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*ProformaInvoice, error)

	// FindAll finds proformas for a company
	FindAll(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]ProformaInvoice, error)

	// NextNumber generates the next sequential proforma number for a company
	NextNumber(ctx context.Context, companyID uuid.UUID) (string, error)

	// Save creates or updates a proforma
	Save(ctx context.Context, proforma *ProformaInvoice) error

	// Delete deletes a draft proforma within a company
	Delete(ctx context.Context, companyID, id uuid.UUID) error
}

// CreditNoteRepository defines the interface for credit note persistence
type CreditNoteRepository interface {
	// FindByID finds a credit note by its ID within a company
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*CreditNote, error)

	// FindAll finds credit notes for a company
	FindAll(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]CreditNote, error)

	// FindByInvoice finds credit notes issued against an invoice
	FindByInvoice(ctx context.Context, companyID, invoiceID uuid.UUID) ([]CreditNote, error)

	// NextNumber generates the next sequential credit note number for a company
	NextNumber(ctx context.Context, companyID uuid.UUID) (string, error)

	// Save creates or updates a credit note
	Save(ctx context.Context, note *CreditNote) error

	// SaveWithLock updates a credit note guarded by its optimistic version
	SaveWithLock(ctx context.Context, note *CreditNote) error

	// Delete deletes a draft credit note within a company
	Delete(ctx context.Context, companyID, id uuid.UUID) error
}

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	// FindByID finds a payment by its ID within a company
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*Payment, error)

	// FindByInvoice finds all payments recorded against an invoice
	FindByInvoice(ctx context.Context, companyID, invoiceID uuid.UUID) ([]Payment, error)

	// FindActiveByInvoice finds the surviving (non-deleted) payments for an invoice
	FindActiveByInvoice(ctx context.Context, companyID, invoiceID uuid.UUID) ([]Payment, error)

	// Save creates or updates a payment
	Save(ctx context.Context, payment *Payment) error
}

// CompanySettingsRepository defines the interface for settings persistence
type CompanySettingsRepository interface {
	// FindByCompany finds the settings for a company
	FindByCompany(ctx context.Context, companyID uuid.UUID) (*CompanySettings, error)

	// Save creates or updates the settings for a company
	Save(ctx context.Context, settings *CompanySettings) error
}
