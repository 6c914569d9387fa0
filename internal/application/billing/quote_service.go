package billing

import (
	"context"
	"time"

	"github.com/fatoora/backend/internal/domain/billing"
	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// QuoteService handles quote business operations, including the internal
// validation loop, reminder scheduling and conversion to invoices.
type QuoteService struct {
	quoteRepo      billing.QuoteRepository
	builder        *LineItemBuilder
	txScope        TransactionScope
	policy         Policy
	settings       SettingsProvider
	eventPublisher shared.EventPublisher
}

// NewQuoteService creates a new QuoteService
func NewQuoteService(quoteRepo billing.QuoteRepository, builder *LineItemBuilder, txScope TransactionScope, policy Policy) *QuoteService {
	return &QuoteService{
		quoteRepo: quoteRepo,
		builder:   builder,
		txScope:   txScope,
		policy:    policy,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *QuoteService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetSettingsProvider sets the source of per-company policy overrides
func (s *QuoteService) SetSettingsProvider(settings SettingsProvider) {
	s.settings = settings
}

func (s *QuoteService) reminderCadence(ctx context.Context, companyID uuid.UUID) time.Duration {
	if s.settings != nil {
		return s.settings.EffectivePolicy(ctx, companyID).ReminderCadence
	}
	return s.policy.ReminderCadence
}

// Create creates a new draft quote
func (s *QuoteService) Create(ctx context.Context, companyID uuid.UUID, req CreateQuoteRequest) (*QuoteResponse, error) {
	items, client, err := s.builder.Build(ctx, companyID, req.ClientID, req.Items)
	if err != nil {
		return nil, err
	}

	number, err := s.quoteRepo.NextNumber(ctx, companyID)
	if err != nil {
		return nil, err
	}

	quote, err := billing.NewQuote(companyID, number, client.ID, client.Name, req.Date, req.ExpiryDate, items)
	if err != nil {
		return nil, err
	}
	quote.Notes = req.Notes

	if req.ReminderEnabled {
		if err := quote.EnableReminders(req.ReminderDays); err != nil {
			return nil, err
		}
	}

	if err := s.quoteRepo.Save(ctx, quote); err != nil {
		return nil, err
	}

	publishEvents(ctx, s.eventPublisher, quote)

	response := ToQuoteResponse(quote)
	return &response, nil
}

// GetByID retrieves a quote by ID
func (s *QuoteService) GetByID(ctx context.Context, companyID, quoteID uuid.UUID) (*QuoteResponse, error) {
	quote, err := s.quoteRepo.FindByID(ctx, companyID, quoteID)
	if err != nil {
		return nil, err
	}
	response := ToQuoteResponse(quote)
	return &response, nil
}

// List retrieves quotes, optionally filtered by status
func (s *QuoteService) List(ctx context.Context, companyID uuid.UUID, req ListFilter) ([]QuoteResponse, error) {
	filter := toFilter(req)

	var (
		quotes []billing.Quote
		err    error
	)
	if req.Status != "" {
		status := billing.QuoteStatus(req.Status)
		if !status.IsValid() {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid quote status")
		}
		quotes, err = s.quoteRepo.FindByStatus(ctx, companyID, status, filter)
	} else {
		quotes, err = s.quoteRepo.FindAll(ctx, companyID, filter)
	}
	if err != nil {
		return nil, err
	}

	return ToQuoteResponses(quotes), nil
}

// Update replaces the line items of an editable quote
func (s *QuoteService) Update(ctx context.Context, companyID, quoteID uuid.UUID, req UpdateQuoteRequest) (*QuoteResponse, error) {
	quote, err := s.quoteRepo.FindByID(ctx, companyID, quoteID)
	if err != nil {
		return nil, err
	}

	items, _, err := s.builder.Build(ctx, companyID, quote.ClientID, req.Items)
	if err != nil {
		return nil, err
	}

	if err := quote.UpdateItems(items); err != nil {
		return nil, err
	}
	quote.Notes = req.Notes

	if err := s.quoteRepo.Save(ctx, quote); err != nil {
		return nil, err
	}

	response := ToQuoteResponse(quote)
	return &response, nil
}

// Delete removes a draft quote
func (s *QuoteService) Delete(ctx context.Context, companyID, quoteID uuid.UUID) error {
	quote, err := s.quoteRepo.FindByID(ctx, companyID, quoteID)
	if err != nil {
		return err
	}
	if quote.Status != billing.QuoteStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft quotes can be deleted")
	}
	return s.quoteRepo.Delete(ctx, companyID, quoteID)
}

// SubmitForValidation sends the quote into the internal validation loop
func (s *QuoteService) SubmitForValidation(ctx context.Context, companyID, quoteID uuid.UUID) (*QuoteResponse, error) {
	return s.transition(ctx, companyID, quoteID, func(q *billing.Quote) error {
		return q.SubmitForValidation()
	})
}

// ApproveValidation approves the quote internally, returning it to draft
func (s *QuoteService) ApproveValidation(ctx context.Context, companyID, quoteID uuid.UUID, req ValidationDecisionRequest) (*QuoteResponse, error) {
	return s.transition(ctx, companyID, quoteID, func(q *billing.Quote) error {
		return q.ApproveValidation(req.Note)
	})
}

// RejectValidation rejects the quote internally, returning it to draft
func (s *QuoteService) RejectValidation(ctx context.Context, companyID, quoteID uuid.UUID, req ValidationDecisionRequest) (*QuoteResponse, error) {
	return s.transition(ctx, companyID, quoteID, func(q *billing.Quote) error {
		return q.RejectValidation(req.Note)
	})
}

// Send emails the quote to the client and schedules the first reminder
func (s *QuoteService) Send(ctx context.Context, companyID, quoteID uuid.UUID, req SendQuoteRequest) (*QuoteResponse, error) {
	return s.transition(ctx, companyID, quoteID, func(q *billing.Quote) error {
		return q.Send(req.Recipient)
	})
}

// Accept marks the quote accepted by the client
func (s *QuoteService) Accept(ctx context.Context, companyID, quoteID uuid.UUID) (*QuoteResponse, error) {
	return s.transition(ctx, companyID, quoteID, func(q *billing.Quote) error {
		return q.Accept()
	})
}

// Reject marks the quote rejected by the client
func (s *QuoteService) Reject(ctx context.Context, companyID, quoteID uuid.UUID) (*QuoteResponse, error) {
	return s.transition(ctx, companyID, quoteID, func(q *billing.Quote) error {
		return q.Reject()
	})
}

// Expire marks a quote expired once past its expiry date
func (s *QuoteService) Expire(ctx context.Context, companyID, quoteID uuid.UUID) (*QuoteResponse, error) {
	return s.transition(ctx, companyID, quoteID, func(q *billing.Quote) error {
		return q.Expire(time.Now())
	})
}

// Convert turns an accepted quote into a draft invoice. The new invoice and
// the quote's converted marker commit together.
func (s *QuoteService) Convert(ctx context.Context, companyID, quoteID uuid.UUID, dueDate time.Time) (*InvoiceResponse, error) {
	var invoice *billing.Invoice
	var quote *billing.Quote

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		quote, err = repos.QuoteRepo().FindByID(ctx, companyID, quoteID)
		if err != nil {
			return err
		}

		number, err := repos.InvoiceRepo().NextNumber(ctx, companyID)
		if err != nil {
			return err
		}

		invoice, err = billing.NewInvoice(companyID, number, quote.ClientID, quote.ClientName,
			time.Now(), dueDate, quote.Items)
		if err != nil {
			return err
		}
		invoice.Notes = quote.Notes

		if err := quote.Convert(invoice.ID); err != nil {
			return err
		}

		if err := repos.InvoiceRepo().Save(ctx, invoice); err != nil {
			return err
		}
		return repos.QuoteRepo().Save(ctx, quote)
	})
	if err != nil {
		return nil, err
	}

	publishEvents(ctx, s.eventPublisher, quote, invoice)

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// SweepReminders sends reminder emails for every awaiting quote whose next
// reminder date has passed and reschedules them at the company's cadence.
// Returns how many reminders went out. Intended to run on a schedule.
func (s *QuoteService) SweepReminders(ctx context.Context, now time.Time) (int, error) {
	quotes, err := s.quoteRepo.FindReminderDue(ctx, now)
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range quotes {
		quote := &quotes[i]
		recipient := lastRecipient(quote.EmailHistory)
		if recipient == "" {
			continue
		}
		if err := quote.RecordReminderSent(recipient, now, s.reminderCadence(ctx, quote.CompanyID)); err != nil {
			return sent, err
		}
		if err := s.quoteRepo.Save(ctx, quote); err != nil {
			return sent, err
		}
		sent++
	}

	return sent, nil
}

func (s *QuoteService) transition(ctx context.Context, companyID, quoteID uuid.UUID, fn func(*billing.Quote) error) (*QuoteResponse, error) {
	quote, err := s.quoteRepo.FindByID(ctx, companyID, quoteID)
	if err != nil {
		return nil, err
	}

	if err := fn(quote); err != nil {
		return nil, err
	}
	if err := s.quoteRepo.Save(ctx, quote); err != nil {
		return nil, err
	}

	publishEvents(ctx, s.eventPublisher, quote)

	response := ToQuoteResponse(quote)
	return &response, nil
}

func lastRecipient(history billing.EmailHistory) string {
	if len(history) == 0 {
		return ""
	}
	return history[len(history)-1].Recipient
}
