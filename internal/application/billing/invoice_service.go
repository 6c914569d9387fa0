package billing

import (
	"context"
	"time"

	"github.com/fatoora/backend/internal/domain/billing"
	"github.com/fatoora/backend/internal/domain/inventory"
	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InvoiceService handles invoice business operations.
// Sending an invoice consumes stock through the ledger and runs inside a
// transaction scope so the status change, the movements and the stock
// counters commit or roll back together.
type InvoiceService struct {
	invoiceRepo    billing.InvoiceRepository
	builder        *LineItemBuilder
	txScope        TransactionScope
	policy         Policy
	settings       SettingsProvider
	eventPublisher shared.EventPublisher
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoiceRepo billing.InvoiceRepository, builder *LineItemBuilder, txScope TransactionScope, policy Policy) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		builder:     builder,
		txScope:     txScope,
		policy:      policy,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *InvoiceService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetSettingsProvider sets the source of per-company policy overrides
func (s *InvoiceService) SetSettingsProvider(settings SettingsProvider) {
	s.settings = settings
}

func (s *InvoiceService) effectivePolicy(ctx context.Context, companyID uuid.UUID) Policy {
	if s.settings != nil {
		return s.settings.EffectivePolicy(ctx, companyID)
	}
	return s.policy
}

// Create creates a new draft invoice
func (s *InvoiceService) Create(ctx context.Context, companyID uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	items, client, err := s.builder.Build(ctx, companyID, req.ClientID, req.Items)
	if err != nil {
		return nil, err
	}

	number, err := s.invoiceRepo.NextNumber(ctx, companyID)
	if err != nil {
		return nil, err
	}

	invoice, err := billing.NewInvoice(companyID, number, client.ID, client.Name, req.Date, req.DueDate, items)
	if err != nil {
		return nil, err
	}
	invoice.Notes = req.Notes

	if req.HasFiscalStamp {
		if err := invoice.SetFiscalStamp(true, s.effectivePolicy(ctx, companyID).FiscalStampAmount); err != nil {
			return nil, err
		}
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	publishEvents(ctx, s.eventPublisher, invoice)

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// GetByID retrieves an invoice by ID
func (s *InvoiceService) GetByID(ctx context.Context, companyID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// GetByNumber retrieves an invoice by its document number
func (s *InvoiceService) GetByNumber(ctx context.Context, companyID uuid.UUID, number string) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByNumber(ctx, companyID, number)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// List retrieves invoices with pagination
func (s *InvoiceService) List(ctx context.Context, companyID uuid.UUID, req ListFilter) (*shared.Paginated[InvoiceResponse], error) {
	filter := toFilter(req)

	var (
		invoices []billing.Invoice
		err      error
	)
	if req.Status != "" {
		status := billing.InvoiceStatus(req.Status)
		if !status.IsValid() {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid invoice status")
		}
		invoices, err = s.invoiceRepo.FindByStatus(ctx, companyID, status, filter)
	} else {
		invoices, err = s.invoiceRepo.FindAll(ctx, companyID, filter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.invoiceRepo.Count(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToInvoiceResponses(invoices), total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListByClient retrieves a client's invoices with pagination
func (s *InvoiceService) ListByClient(ctx context.Context, companyID, clientID uuid.UUID, req ListFilter) ([]InvoiceResponse, error) {
	invoices, err := s.invoiceRepo.FindByClient(ctx, companyID, clientID, toFilter(req))
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponses(invoices), nil
}

// Update replaces the line items of a draft invoice
func (s *InvoiceService) Update(ctx context.Context, companyID, invoiceID uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}

	items, _, err := s.builder.Build(ctx, companyID, invoice.ClientID, req.Items)
	if err != nil {
		return nil, err
	}

	if err := invoice.UpdateItems(items); err != nil {
		return nil, err
	}
	invoice.Notes = req.Notes

	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// Delete removes a draft invoice. Sent documents are cancelled, not deleted.
func (s *InvoiceService) Delete(ctx context.Context, companyID, invoiceID uuid.UUID) error {
	invoice, err := s.invoiceRepo.FindByID(ctx, companyID, invoiceID)
	if err != nil {
		return err
	}
	if !invoice.CanModify() {
		return shared.NewDomainError("INVALID_STATE", "Only draft invoices can be deleted")
	}
	return s.invoiceRepo.Delete(ctx, companyID, invoiceID)
}

// SetFiscalStamp toggles the fiscal stamp on a draft invoice
func (s *InvoiceService) SetFiscalStamp(ctx context.Context, companyID, invoiceID uuid.UUID, enabled bool) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := invoice.SetFiscalStamp(enabled, s.effectivePolicy(ctx, companyID).FiscalStampAmount); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// MarkAsDeposit turns a draft invoice into a deposit invoice for a main
// invoice and links it back on the main invoice.
func (s *InvoiceService) MarkAsDeposit(ctx context.Context, companyID, invoiceID uuid.UUID, req MarkDepositRequest) (*InvoiceResponse, error) {
	var invoice *billing.Invoice

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		invoice, err = repos.InvoiceRepo().FindByID(ctx, companyID, invoiceID)
		if err != nil {
			return err
		}

		main, err := repos.InvoiceRepo().FindByID(ctx, companyID, req.MainInvoiceID)
		if err != nil {
			return err
		}
		if main.ClientID != invoice.ClientID {
			return shared.NewDomainError("VALIDATION_ERROR", "Deposit and main invoice must belong to the same client")
		}

		if err := invoice.MarkAsDeposit(main.ID, req.Amount, req.Percentage); err != nil {
			return err
		}
		main.LinkDepositInvoice(invoice.ID)

		if err := repos.InvoiceRepo().SaveWithLock(ctx, invoice); err != nil {
			return err
		}
		return repos.InvoiceRepo().SaveWithLock(ctx, main)
	})
	if err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// Send transitions the invoice to sent and consumes stock for its
// stock-managed lines, all-or-nothing. A single line short on stock aborts
// the whole send and no movement is recorded.
func (s *InvoiceService) Send(ctx context.Context, companyID, invoiceID uuid.UUID, req SendInvoiceRequest) (*InvoiceResponse, error) {
	var invoice *billing.Invoice

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		invoice, err = repos.InvoiceRepo().FindByID(ctx, companyID, invoiceID)
		if err != nil {
			return err
		}

		if err := invoice.Send(); err != nil {
			return err
		}

		ledger := inventory.NewLedger(repos.ProductRepo(), repos.MovementRepo())
		requirements := stockRequirements(invoice.Items)
		if _, err := ledger.CreateMovementsForInvoice(ctx, companyID, invoice.ID, requirements, req.LocationID, req.SkipStockCheck); err != nil {
			return err
		}

		return repos.InvoiceRepo().SaveWithLock(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	publishEvents(ctx, s.eventPublisher, invoice)

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// MarkPaid settles the invoice in full without recording a payment row
func (s *InvoiceService) MarkPaid(ctx context.Context, companyID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := invoice.MarkPaid(); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}

	publishEvents(ctx, s.eventPublisher, invoice)

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// Cancel cancels a sent or overdue invoice. Stock consumed at send time is
// not restored; a credit note with restocking handles returns.
func (s *InvoiceService) Cancel(ctx context.Context, companyID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := invoice.Cancel(); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}

	publishEvents(ctx, s.eventPublisher, invoice)

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// SweepOverdue marks every sent invoice past its due date as overdue and
// returns how many were transitioned. Intended to run on a schedule.
func (s *InvoiceService) SweepOverdue(ctx context.Context, companyID uuid.UUID, now time.Time) (int, error) {
	invoices, err := s.invoiceRepo.FindDueBefore(ctx, companyID, now)
	if err != nil {
		return 0, err
	}

	swept := 0
	for i := range invoices {
		invoice := &invoices[i]
		if !invoice.IsOverdueAt(now) {
			continue
		}
		if err := invoice.MarkOverdue(now); err != nil {
			return swept, err
		}
		if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
			return swept, err
		}
		publishEvents(ctx, s.eventPublisher, invoice)
		swept++
	}

	return swept, nil
}

// stockRequirements maps document lines to positive stock demands
func stockRequirements(items billing.LineItems) []inventory.StockRequirement {
	requirements := make([]inventory.StockRequirement, 0, len(items))
	for _, item := range items {
		requirements = append(requirements, inventory.StockRequirement{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return requirements
}
