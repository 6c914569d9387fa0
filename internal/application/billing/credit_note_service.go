package billing

import (
	"context"

	"github.com/fatoora/backend/internal/domain/billing"
	"github.com/fatoora/backend/internal/domain/inventory"
	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CreditNoteService handles credit note operations. Applying credit touches
// the note and the target invoice together, so applications run inside a
// transaction scope with optimistic locks on both aggregates.
type CreditNoteService struct {
	creditNoteRepo billing.CreditNoteRepository
	invoiceRepo    billing.InvoiceRepository
	builder        *LineItemBuilder
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewCreditNoteService creates a new CreditNoteService
func NewCreditNoteService(creditNoteRepo billing.CreditNoteRepository, invoiceRepo billing.InvoiceRepository, builder *LineItemBuilder, txScope TransactionScope) *CreditNoteService {
	return &CreditNoteService{
		creditNoteRepo: creditNoteRepo,
		invoiceRepo:    invoiceRepo,
		builder:        builder,
		txScope:        txScope,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *CreditNoteService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a draft credit note against an existing invoice.
// The invoice must have left draft; crediting an unsent document is a data
// entry error, not a return.
func (s *CreditNoteService) Create(ctx context.Context, companyID uuid.UUID, req CreateCreditNoteRequest) (*CreditNoteResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, companyID, req.InvoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status == billing.InvoiceStatusDraft || invoice.Status == billing.InvoiceStatusCancelled {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot create a credit note against a draft or cancelled invoice")
	}

	items, _, err := s.builder.Build(ctx, companyID, invoice.ClientID, req.Items)
	if err != nil {
		return nil, err
	}

	number, err := s.creditNoteRepo.NextNumber(ctx, companyID)
	if err != nil {
		return nil, err
	}

	note, err := billing.NewCreditNote(companyID, number, invoice.ID, invoice.ClientID, invoice.ClientName,
		req.Reason, req.Date, items)
	if err != nil {
		return nil, err
	}

	if err := s.creditNoteRepo.Save(ctx, note); err != nil {
		return nil, err
	}

	publishEvents(ctx, s.eventPublisher, note)

	response := ToCreditNoteResponse(note)
	return &response, nil
}

// GetByID retrieves a credit note by ID
func (s *CreditNoteService) GetByID(ctx context.Context, companyID, noteID uuid.UUID) (*CreditNoteResponse, error) {
	note, err := s.creditNoteRepo.FindByID(ctx, companyID, noteID)
	if err != nil {
		return nil, err
	}
	response := ToCreditNoteResponse(note)
	return &response, nil
}

// List retrieves credit notes for a company
func (s *CreditNoteService) List(ctx context.Context, companyID uuid.UUID, req ListFilter) ([]CreditNoteResponse, error) {
	notes, err := s.creditNoteRepo.FindAll(ctx, companyID, toFilter(req))
	if err != nil {
		return nil, err
	}
	return ToCreditNoteResponses(notes), nil
}

// ListByInvoice retrieves the credit notes issued against an invoice
func (s *CreditNoteService) ListByInvoice(ctx context.Context, companyID, invoiceID uuid.UUID) ([]CreditNoteResponse, error) {
	notes, err := s.creditNoteRepo.FindByInvoice(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	return ToCreditNoteResponses(notes), nil
}

// Update replaces the line items of a draft credit note
func (s *CreditNoteService) Update(ctx context.Context, companyID, noteID uuid.UUID, req UpdateInvoiceRequest) (*CreditNoteResponse, error) {
	note, err := s.creditNoteRepo.FindByID(ctx, companyID, noteID)
	if err != nil {
		return nil, err
	}

	items, _, err := s.builder.Build(ctx, companyID, note.ClientID, req.Items)
	if err != nil {
		return nil, err
	}

	if err := note.UpdateItems(items); err != nil {
		return nil, err
	}

	if err := s.creditNoteRepo.Save(ctx, note); err != nil {
		return nil, err
	}

	response := ToCreditNoteResponse(note)
	return &response, nil
}

// Delete removes a draft credit note
func (s *CreditNoteService) Delete(ctx context.Context, companyID, noteID uuid.UUID) error {
	note, err := s.creditNoteRepo.FindByID(ctx, companyID, noteID)
	if err != nil {
		return err
	}
	if note.Status != billing.CreditNoteStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft credit notes can be deleted")
	}
	return s.creditNoteRepo.Delete(ctx, companyID, noteID)
}

// Issue issues the credit note, making its credit available for application.
// With restocking enabled, returned stock-managed items flow back through
// the ledger in the same transaction.
func (s *CreditNoteService) Issue(ctx context.Context, companyID, noteID uuid.UUID, req IssueCreditNoteRequest) (*CreditNoteResponse, error) {
	var note *billing.CreditNote

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		note, err = repos.CreditNoteRepo().FindByID(ctx, companyID, noteID)
		if err != nil {
			return err
		}

		if err := note.Issue(); err != nil {
			return err
		}

		if req.Restock {
			ledger := inventory.NewLedger(repos.ProductRepo(), repos.MovementRepo())
			requirements := stockRequirements(note.Items)
			if _, err := ledger.ReturnMovementsForCreditNote(ctx, companyID, note.ID, requirements, req.LocationID); err != nil {
				return err
			}
		}

		return repos.CreditNoteRepo().SaveWithLock(ctx, note)
	})
	if err != nil {
		return nil, err
	}

	publishEvents(ctx, s.eventPublisher, note)

	response := ToCreditNoteResponse(note)
	return &response, nil
}

// Apply applies part of the note's remaining credit, either against an
// invoice of the same client or as a cash refund. The note's counters and
// the target invoice's credit total change in one transaction.
func (s *CreditNoteService) Apply(ctx context.Context, companyID, noteID uuid.UUID, req ApplyCreditNoteRequest) (*CreditNoteResponse, error) {
	var note *billing.CreditNote

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		note, err = repos.CreditNoteRepo().FindByID(ctx, companyID, noteID)
		if err != nil {
			return err
		}

		var target *billing.Invoice
		if req.TargetInvoiceID != nil {
			target, err = repos.InvoiceRepo().FindByID(ctx, companyID, *req.TargetInvoiceID)
			if err != nil {
				return err
			}
			if target.ClientID != note.ClientID {
				return shared.NewDomainError("VALIDATION_ERROR", "Credit can only be applied to invoices of the same client")
			}
		}

		if _, err := note.Apply(req.Amount, req.TargetInvoiceID, req.RefundMethod); err != nil {
			return err
		}

		if target != nil {
			if err := target.ApplyCreditNote(note.ID, req.Amount); err != nil {
				return err
			}
			if err := repos.InvoiceRepo().SaveWithLock(ctx, target); err != nil {
				return err
			}
		}

		return repos.CreditNoteRepo().SaveWithLock(ctx, note)
	})
	if err != nil {
		return nil, err
	}

	publishEvents(ctx, s.eventPublisher, note)

	response := ToCreditNoteResponse(note)
	return &response, nil
}

// Cancel cancels a credit note with no applied credit
func (s *CreditNoteService) Cancel(ctx context.Context, companyID, noteID uuid.UUID) (*CreditNoteResponse, error) {
	note, err := s.creditNoteRepo.FindByID(ctx, companyID, noteID)
	if err != nil {
		return nil, err
	}

	if err := note.Cancel(); err != nil {
		return nil, err
	}
	if err := s.creditNoteRepo.SaveWithLock(ctx, note); err != nil {
		return nil, err
	}

	response := ToCreditNoteResponse(note)
	return &response, nil
}
