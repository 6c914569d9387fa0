package billing

import (
	"fmt"
	"time"

	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProformaStatus represents the status of a proforma invoice
type ProformaStatus string

const (
	ProformaStatusDraft     ProformaStatus = "draft"
	ProformaStatusSent      ProformaStatus = "sent"
	ProformaStatusConverted ProformaStatus = "converted"
	ProformaStatusExpired   ProformaStatus = "expired"
	ProformaStatusCancelled ProformaStatus = "cancelled"
)

// IsValid checks if the status is a valid ProformaStatus
func (s ProformaStatus) IsValid() bool {
	switch s {
	case ProformaStatusDraft, ProformaStatusSent, ProformaStatusConverted,
		ProformaStatusExpired, ProformaStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of ProformaStatus
func (s ProformaStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the status is terminal
func (s ProformaStatus) IsTerminal() bool {
	return s == ProformaStatusConverted || s == ProformaStatusExpired || s == ProformaStatusCancelled
}

// ProformaInvoice represents a proforma invoice aggregate root.
// It carries no accounting or ledger value until converted into an invoice.
type ProformaInvoice struct {
	shared.CompanyAggregateRoot
	Number     string    `gorm:"type:varchar(50);not null;index"`
	ClientID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ClientName string    `gorm:"type:varchar(200);not null"`
	Date       time.Time `gorm:"not null"`
	ExpiryDate time.Time `gorm:"not null"`
	Items      LineItems `gorm:"type:jsonb;not null"`

	Subtotal  decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	VATAmount decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Discount  decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Total     decimal.Decimal `gorm:"type:decimal(14,4);not null"`

	Status ProformaStatus `gorm:"type:varchar(20);not null;default:'draft';index"`

	ConvertedInvoiceID *uuid.UUID `gorm:"type:uuid"`
	ConvertedAt        *time.Time
	Notes              string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ProformaInvoice) TableName() string {
	return "proforma_invoices"
}

// NewProformaInvoice creates a new proforma invoice in draft status
func NewProformaInvoice(companyID uuid.UUID, number string, clientID uuid.UUID, clientName string, date, expiryDate time.Time, items []LineItem) (*ProformaInvoice, error) {
	if number == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Proforma number cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Client ID cannot be empty")
	}
	if expiryDate.Before(date) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Expiry date cannot be before proforma date")
	}

	totals, err := CalculateTotals(items)
	if err != nil {
		return nil, err
	}

	return &ProformaInvoice{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Number:               number,
		ClientID:             clientID,
		ClientName:           clientName,
		Date:                 date,
		ExpiryDate:           expiryDate,
		Items:                items,
		Subtotal:             totals.Subtotal,
		VATAmount:            totals.VATAmount,
		Discount:             totals.Discount,
		Total:                totals.Total,
		Status:               ProformaStatusDraft,
	}, nil
}

// UpdateItems replaces the line items and recalculates totals
// Only allowed in draft status
func (p *ProformaInvoice) UpdateItems(items []LineItem) error {
	if p.Status != ProformaStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot edit proforma in %s status", p.Status))
	}

	totals, err := CalculateTotals(items)
	if err != nil {
		return err
	}

	p.Items = items
	p.Subtotal = totals.Subtotal
	p.VATAmount = totals.VATAmount
	p.Discount = totals.Discount
	p.Total = totals.Total
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Send transitions the proforma from draft to sent
func (p *ProformaInvoice) Send() error {
	if p.Status != ProformaStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot send proforma in %s status", p.Status))
	}
	if len(p.Items) == 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Cannot send proforma without items")
	}

	p.Status = ProformaStatusSent
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Convert marks a sent proforma as converted into the given invoice
func (p *ProformaInvoice) Convert(invoiceID uuid.UUID) error {
	if p.Status != ProformaStatusSent {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot convert proforma in %s status", p.Status))
	}
	if invoiceID == uuid.Nil {
		return shared.NewDomainError("VALIDATION_ERROR", "Invoice ID cannot be empty")
	}

	now := time.Now()
	p.Status = ProformaStatusConverted
	p.ConvertedInvoiceID = &invoiceID
	p.ConvertedAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()

	p.AddDomainEvent(NewProformaConvertedEvent(p))

	return nil
}

// Expire marks a sent proforma as expired once past its expiry date
func (p *ProformaInvoice) Expire(now time.Time) error {
	if p.Status != ProformaStatusSent {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot expire proforma in %s status", p.Status))
	}
	if !now.After(p.ExpiryDate) {
		return shared.NewDomainError("VALIDATION_ERROR", "Proforma is not past its expiry date")
	}

	p.Status = ProformaStatusExpired
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Cancel cancels a sent proforma
func (p *ProformaInvoice) Cancel() error {
	if p.Status != ProformaStatusSent {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel proforma in %s status", p.Status))
	}

	p.Status = ProformaStatusCancelled
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}
