package billing

import (
	"context"

	"github.com/fatoora/backend/internal/domain/billing"
	"github.com/fatoora/backend/internal/domain/catalog"
	"github.com/fatoora/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to billing repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories a billing
// operation may touch within one transaction. Product and movement repos are
// included because sending an invoice consumes stock through the ledger in
// the same unit of work.
type TransactionalRepositories interface {
	// InvoiceRepo returns the invoice repository scoped to the current transaction
	InvoiceRepo() billing.InvoiceRepository
	// QuoteRepo returns the quote repository scoped to the current transaction
	QuoteRepo() billing.QuoteRepository
	// ProformaRepo returns the proforma repository scoped to the current transaction
	ProformaRepo() billing.ProformaRepository
	// CreditNoteRepo returns the credit note repository scoped to the current transaction
	CreditNoteRepo() billing.CreditNoteRepository
	// PaymentRepo returns the payment repository scoped to the current transaction
	PaymentRepo() billing.PaymentRepository
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() catalog.ProductRepository
	// MovementRepo returns the stock movement repository scoped to the current transaction
	MovementRepo() inventory.StockMovementRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing.
type NoOpTransactionScope struct {
	invoiceRepo    billing.InvoiceRepository
	quoteRepo      billing.QuoteRepository
	proformaRepo   billing.ProformaRepository
	creditNoteRepo billing.CreditNoteRepository
	paymentRepo    billing.PaymentRepository
	productRepo    catalog.ProductRepository
	movementRepo   inventory.StockMovementRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	invoiceRepo billing.InvoiceRepository,
	quoteRepo billing.QuoteRepository,
	proformaRepo billing.ProformaRepository,
	creditNoteRepo billing.CreditNoteRepository,
	paymentRepo billing.PaymentRepository,
	productRepo catalog.ProductRepository,
	movementRepo inventory.StockMovementRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		invoiceRepo:    invoiceRepo,
		quoteRepo:      quoteRepo,
		proformaRepo:   proformaRepo,
		creditNoteRepo: creditNoteRepo,
		paymentRepo:    paymentRepo,
		productRepo:    productRepo,
		movementRepo:   movementRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// InvoiceRepo returns the invoice repository
func (s *NoOpTransactionScope) InvoiceRepo() billing.InvoiceRepository { return s.invoiceRepo }

// QuoteRepo returns the quote repository
func (s *NoOpTransactionScope) QuoteRepo() billing.QuoteRepository { return s.quoteRepo }

// ProformaRepo returns the proforma repository
func (s *NoOpTransactionScope) ProformaRepo() billing.ProformaRepository { return s.proformaRepo }

// CreditNoteRepo returns the credit note repository
func (s *NoOpTransactionScope) CreditNoteRepo() billing.CreditNoteRepository {
	return s.creditNoteRepo
}

// PaymentRepo returns the payment repository
func (s *NoOpTransactionScope) PaymentRepo() billing.PaymentRepository { return s.paymentRepo }

// ProductRepo returns the product repository
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository { return s.productRepo }

// MovementRepo returns the stock movement repository
func (s *NoOpTransactionScope) MovementRepo() inventory.StockMovementRepository {
	return s.movementRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
