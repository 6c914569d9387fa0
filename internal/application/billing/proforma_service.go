package billing

import (
	"context"
	"time"

	"github.com/fatoora/backend/internal/domain/billing"
	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProformaService handles proforma invoice operations. Proformas never touch
// stock or payments; they only preview an invoice and can convert into one.
type ProformaService struct {
	proformaRepo   billing.ProformaRepository
	builder        *LineItemBuilder
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewProformaService creates a new ProformaService
func NewProformaService(proformaRepo billing.ProformaRepository, builder *LineItemBuilder, txScope TransactionScope) *ProformaService {
	return &ProformaService{
		proformaRepo: proformaRepo,
		builder:      builder,
		txScope:      txScope,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ProformaService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new draft proforma invoice
func (s *ProformaService) Create(ctx context.Context, companyID uuid.UUID, req CreateProformaRequest) (*ProformaResponse, error) {
	items, client, err := s.builder.Build(ctx, companyID, req.ClientID, req.Items)
	if err != nil {
		return nil, err
	}

	number, err := s.proformaRepo.NextNumber(ctx, companyID)
	if err != nil {
		return nil, err
	}

	proforma, err := billing.NewProformaInvoice(companyID, number, client.ID, client.Name, req.Date, req.ExpiryDate, items)
	if err != nil {
		return nil, err
	}
	proforma.Notes = req.Notes

	if err := s.proformaRepo.Save(ctx, proforma); err != nil {
		return nil, err
	}

	publishEvents(ctx, s.eventPublisher, proforma)

	response := ToProformaResponse(proforma)
	return &response, nil
}

// GetByID retrieves a proforma by ID
func (s *ProformaService) GetByID(ctx context.Context, companyID, proformaID uuid.UUID) (*ProformaResponse, error) {
	proforma, err := s.proformaRepo.FindByID(ctx, companyID, proformaID)
	if err != nil {
		return nil, err
	}
	response := ToProformaResponse(proforma)
	return &response, nil
}

// List retrieves proformas for a company
func (s *ProformaService) List(ctx context.Context, companyID uuid.UUID, req ListFilter) ([]ProformaResponse, error) {
	proformas, err := s.proformaRepo.FindAll(ctx, companyID, toFilter(req))
	if err != nil {
		return nil, err
	}
	return ToProformaResponses(proformas), nil
}

// Update replaces the line items of a draft proforma
func (s *ProformaService) Update(ctx context.Context, companyID, proformaID uuid.UUID, req UpdateInvoiceRequest) (*ProformaResponse, error) {
	proforma, err := s.proformaRepo.FindByID(ctx, companyID, proformaID)
	if err != nil {
		return nil, err
	}

	items, _, err := s.builder.Build(ctx, companyID, proforma.ClientID, req.Items)
	if err != nil {
		return nil, err
	}

	if err := proforma.UpdateItems(items); err != nil {
		return nil, err
	}
	proforma.Notes = req.Notes

	if err := s.proformaRepo.Save(ctx, proforma); err != nil {
		return nil, err
	}

	response := ToProformaResponse(proforma)
	return &response, nil
}

// Delete removes a draft proforma
func (s *ProformaService) Delete(ctx context.Context, companyID, proformaID uuid.UUID) error {
	proforma, err := s.proformaRepo.FindByID(ctx, companyID, proformaID)
	if err != nil {
		return err
	}
	if proforma.Status != billing.ProformaStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft proformas can be deleted")
	}
	return s.proformaRepo.Delete(ctx, companyID, proformaID)
}

// Send marks the proforma sent to the client
func (s *ProformaService) Send(ctx context.Context, companyID, proformaID uuid.UUID) (*ProformaResponse, error) {
	return s.transition(ctx, companyID, proformaID, func(p *billing.ProformaInvoice) error {
		return p.Send()
	})
}

// Expire marks a sent proforma expired once past its expiry date
func (s *ProformaService) Expire(ctx context.Context, companyID, proformaID uuid.UUID) (*ProformaResponse, error) {
	return s.transition(ctx, companyID, proformaID, func(p *billing.ProformaInvoice) error {
		return p.Expire(time.Now())
	})
}

// Cancel cancels a proforma
func (s *ProformaService) Cancel(ctx context.Context, companyID, proformaID uuid.UUID) (*ProformaResponse, error) {
	return s.transition(ctx, companyID, proformaID, func(p *billing.ProformaInvoice) error {
		return p.Cancel()
	})
}

// Convert turns a sent proforma into a draft invoice. No stock moves until
// the resulting invoice is sent.
func (s *ProformaService) Convert(ctx context.Context, companyID, proformaID uuid.UUID, dueDate time.Time) (*InvoiceResponse, error) {
	var invoice *billing.Invoice
	var proforma *billing.ProformaInvoice

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		proforma, err = repos.ProformaRepo().FindByID(ctx, companyID, proformaID)
		if err != nil {
			return err
		}

		number, err := repos.InvoiceRepo().NextNumber(ctx, companyID)
		if err != nil {
			return err
		}

		invoice, err = billing.NewInvoice(companyID, number, proforma.ClientID, proforma.ClientName,
			time.Now(), dueDate, proforma.Items)
		if err != nil {
			return err
		}
		invoice.Notes = proforma.Notes

		if err := proforma.Convert(invoice.ID); err != nil {
			return err
		}

		if err := repos.InvoiceRepo().Save(ctx, invoice); err != nil {
			return err
		}
		return repos.ProformaRepo().Save(ctx, proforma)
	})
	if err != nil {
		return nil, err
	}

	publishEvents(ctx, s.eventPublisher, proforma, invoice)

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

func (s *ProformaService) transition(ctx context.Context, companyID, proformaID uuid.UUID, fn func(*billing.ProformaInvoice) error) (*ProformaResponse, error) {
	proforma, err := s.proformaRepo.FindByID(ctx, companyID, proformaID)
	if err != nil {
		return nil, err
	}

	if err := fn(proforma); err != nil {
		return nil, err
	}
	if err := s.proformaRepo.Save(ctx, proforma); err != nil {
		return nil, err
	}

	publishEvents(ctx, s.eventPublisher, proforma)

	response := ToProformaResponse(proforma)
	return &response, nil
}
