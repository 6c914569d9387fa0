package billing

import (
	"time"

	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCheck    PaymentMethod = "check"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodOther    PaymentMethod = "other"
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCheck, PaymentMethodTransfer, PaymentMethodCard, PaymentMethodOther:
		return true
	}
	return false
}

// PaymentStatus represents the status of a payment
type PaymentStatus string

const (
	PaymentStatusActive  PaymentStatus = "active"
	PaymentStatusDeleted PaymentStatus = "deleted"
)

// Payment records money received against an invoice.
// Amount, method, date and reference are immutable once created; only the
// status changes, and only through Delete.
type Payment struct {
	shared.CompanyAggregateRoot
	InvoiceID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Method    PaymentMethod   `gorm:"type:varchar(20);not null"`
	Date      time.Time       `gorm:"not null"`
	Reference string          `gorm:"type:varchar(100)"`
	Notes     string          `gorm:"type:text"`
	Status    PaymentStatus   `gorm:"type:varchar(20);not null;default:'active';index"`
	DeletedAt *time.Time
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a new payment
func NewPayment(companyID, invoiceID uuid.UUID, amount decimal.Decimal, method PaymentMethod, date time.Time, reference, notes string) (*Payment, error) {
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Invoice ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid payment method")
	}

	payment := &Payment{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		InvoiceID:            invoiceID,
		Amount:               amount,
		Method:               method,
		Date:                 date,
		Reference:            reference,
		Notes:                notes,
		Status:               PaymentStatusActive,
	}

	payment.AddDomainEvent(NewPaymentCreatedEvent(payment))

	return payment, nil
}

// IsActive returns true if the payment still counts toward the invoice balance
func (p *Payment) IsActive() bool {
	return p.Status == PaymentStatusActive
}

// Delete marks the payment deleted. The invoice's paid amount is recomputed
// from the surviving payment set by the application service.
func (p *Payment) Delete() error {
	if p.Status == PaymentStatusDeleted {
		return shared.NewDomainError("INVALID_STATE", "Payment is already deleted")
	}

	now := time.Now()
	p.Status = PaymentStatusDeleted
	p.DeletedAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()

	return nil
}
