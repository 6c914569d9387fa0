package billing

import (
	"context"

	"github.com/fatoora/backend/internal/domain/billing"
	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentService handles payment recording and deletion. Both operations
// change the payment row and the invoice's paid amount together, so they run
// inside a transaction scope. Creation supports idempotency keys so a
// retried request never double-applies a payment.
type PaymentService struct {
	paymentRepo      billing.PaymentRepository
	txScope          TransactionScope
	idempotencyStore shared.IdempotencyStore
	policy           Policy
	eventPublisher   shared.EventPublisher
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(paymentRepo billing.PaymentRepository, txScope TransactionScope, policy Policy) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		txScope:     txScope,
		policy:      policy,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *PaymentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetIdempotencyStore enables idempotency key checks on payment creation
func (s *PaymentService) SetIdempotencyStore(store shared.IdempotencyStore) {
	s.idempotencyStore = store
}

// Create records a payment against an invoice and re-derives its status.
// An idempotency key that was already processed fails with ALREADY_EXISTS
// instead of applying the payment twice. The key is claimed up front so
// concurrent duplicates race on the store, and released again when the
// transaction fails so the client can retry with the same key.
func (s *PaymentService) Create(ctx context.Context, companyID uuid.UUID, idempotencyKey string, req CreatePaymentRequest) (*PaymentResponse, error) {
	keyClaimed := false
	storeKey := paymentIdempotencyKey(companyID, idempotencyKey)
	if idempotencyKey != "" && s.idempotencyStore != nil {
		fresh, err := s.idempotencyStore.MarkProcessed(ctx, storeKey, s.policy.IdempotencyTTL)
		if err != nil {
			return nil, err
		}
		if !fresh {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Payment was already recorded for this idempotency key")
		}
		keyClaimed = true
	}

	var payment *billing.Payment
	var invoice *billing.Invoice

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		invoice, err = repos.InvoiceRepo().FindByID(ctx, companyID, req.InvoiceID)
		if err != nil {
			return err
		}

		if err := invoice.ApplyPayment(req.Amount); err != nil {
			return err
		}

		payment, err = billing.NewPayment(companyID, invoice.ID, req.Amount,
			billing.PaymentMethod(req.Method), req.Date, req.Reference, req.Notes)
		if err != nil {
			return err
		}

		if err := repos.PaymentRepo().Save(ctx, payment); err != nil {
			return err
		}
		return repos.InvoiceRepo().SaveWithLock(ctx, invoice)
	})
	if err != nil {
		if keyClaimed {
			_ = s.idempotencyStore.Release(ctx, storeKey)
		}
		return nil, err
	}

	publishEvents(ctx, s.eventPublisher, payment, invoice)

	response := ToPaymentResponse(payment)
	return &response, nil
}

// GetByID retrieves a payment by ID
func (s *PaymentService) GetByID(ctx context.Context, companyID, paymentID uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, companyID, paymentID)
	if err != nil {
		return nil, err
	}
	response := ToPaymentResponse(payment)
	return &response, nil
}

// ListByInvoice retrieves every payment recorded against an invoice,
// deleted ones included
func (s *PaymentService) ListByInvoice(ctx context.Context, companyID, invoiceID uuid.UUID) ([]PaymentResponse, error) {
	payments, err := s.paymentRepo.FindByInvoice(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	return ToPaymentResponses(payments), nil
}

// Delete marks a payment deleted and recomputes the invoice's paid amount
// from the surviving payment set. An invoice whose payments all disappear
// returns to sent.
func (s *PaymentService) Delete(ctx context.Context, companyID, paymentID uuid.UUID) error {
	var invoice *billing.Invoice

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		payment, err := repos.PaymentRepo().FindByID(ctx, companyID, paymentID)
		if err != nil {
			return err
		}

		if err := payment.Delete(); err != nil {
			return err
		}
		if err := repos.PaymentRepo().Save(ctx, payment); err != nil {
			return err
		}

		invoice, err = repos.InvoiceRepo().FindByID(ctx, companyID, payment.InvoiceID)
		if err != nil {
			return err
		}

		surviving, err := repos.PaymentRepo().FindActiveByInvoice(ctx, companyID, payment.InvoiceID)
		if err != nil {
			return err
		}

		paidTotal := decimal.Zero
		for i := range surviving {
			paidTotal = paidTotal.Add(surviving[i].Amount)
		}

		if err := invoice.RecomputePaidAmount(paidTotal); err != nil {
			return err
		}
		return repos.InvoiceRepo().SaveWithLock(ctx, invoice)
	})
	if err != nil {
		return err
	}

	publishEvents(ctx, s.eventPublisher, invoice)

	return nil
}

func paymentIdempotencyKey(companyID uuid.UUID, key string) string {
	return "payment:" + companyID.String() + ":" + key
}
