package persistence

import (
	"context"

	appbilling "github.com/fatoora/backend/internal/application/billing"
	"github.com/fatoora/backend/internal/domain/billing"
	"github.com/fatoora/backend/internal/domain/catalog"
	"github.com/fatoora/backend/internal/domain/inventory"
	"gorm.io/gorm"
)

// GormBillingTransactionScope implements the billing TransactionScope using
// GORM transactions. Sending an invoice, applying a payment or issuing a
// credit note touches several aggregates that must commit atomically.
type GormBillingTransactionScope struct {
	db *gorm.DB
}

// NewGormBillingTransactionScope creates a new GormBillingTransactionScope
func NewGormBillingTransactionScope(db *gorm.DB) *GormBillingTransactionScope {
	return &GormBillingTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormBillingTransactionScope) Execute(ctx context.Context, fn func(repos appbilling.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormBillingRepositories{tx: tx})
	})
}

// gormBillingRepositories provides transaction-scoped repositories
type gormBillingRepositories struct {
	tx *gorm.DB
}

// InvoiceRepo returns the invoice repository scoped to the current transaction
func (r *gormBillingRepositories) InvoiceRepo() billing.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

// QuoteRepo returns the quote repository scoped to the current transaction
func (r *gormBillingRepositories) QuoteRepo() billing.QuoteRepository {
	return NewGormQuoteRepository(r.tx)
}

// ProformaRepo returns the proforma repository scoped to the current transaction
func (r *gormBillingRepositories) ProformaRepo() billing.ProformaRepository {
	return NewGormProformaRepository(r.tx)
}

// CreditNoteRepo returns the credit note repository scoped to the current transaction
func (r *gormBillingRepositories) CreditNoteRepo() billing.CreditNoteRepository {
	return NewGormCreditNoteRepository(r.tx)
}

// PaymentRepo returns the payment repository scoped to the current transaction
func (r *gormBillingRepositories) PaymentRepo() billing.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

// ProductRepo returns the product repository scoped to the current transaction
func (r *gormBillingRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// MovementRepo returns the stock movement repository scoped to the current transaction
func (r *gormBillingRepositories) MovementRepo() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

// Ensure GormBillingTransactionScope implements TransactionScope
var _ appbilling.TransactionScope = (*GormBillingTransactionScope)(nil)

// Ensure gormBillingRepositories implements TransactionalRepositories
var _ appbilling.TransactionalRepositories = (*gormBillingRepositories)(nil)
