package billing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreditNoteStatus represents the status of a credit note
type CreditNoteStatus string

const (
	CreditNoteStatusDraft     CreditNoteStatus = "draft"
	CreditNoteStatusIssued    CreditNoteStatus = "issued"
	CreditNoteStatusApplied   CreditNoteStatus = "applied"
	CreditNoteStatusCancelled CreditNoteStatus = "cancelled"
)

// IsValid checks if the status is a valid CreditNoteStatus
func (s CreditNoteStatus) IsValid() bool {
	switch s {
	case CreditNoteStatusDraft, CreditNoteStatusIssued, CreditNoteStatusApplied, CreditNoteStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of CreditNoteStatus
func (s CreditNoteStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the status is terminal
func (s CreditNoteStatus) IsTerminal() bool {
	return s == CreditNoteStatusApplied || s == CreditNoteStatusCancelled
}

// CreditNoteApplication is an immutable record of one application event.
// Exactly one of TargetInvoiceID / (IsRefund + RefundMethod) is set.
type CreditNoteApplication struct {
	ID              uuid.UUID       `json:"id"`
	CreditNoteID    uuid.UUID       `json:"credit_note_id"`
	TargetInvoiceID *uuid.UUID      `json:"target_invoice_id,omitempty"`
	IsRefund        bool            `json:"is_refund"`
	RefundMethod    string          `json:"refund_method,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	AppliedAt       time.Time       `json:"applied_at"`
}

// CreditNoteApplications is a slice of CreditNoteApplication stored as JSONB
type CreditNoteApplications []CreditNoteApplication

// Value implements driver.Valuer interface for GORM to store as JSONB
func (a CreditNoteApplications) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner interface for GORM to read from JSONB
func (a *CreditNoteApplications) Scan(value interface{}) error {
	if value == nil {
		*a = CreditNoteApplications{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan CreditNoteApplications: unsupported type")
	}

	if len(bytes) == 0 {
		*a = CreditNoteApplications{}
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// CreditNote represents a credit note (avoir) aggregate root.
//
// It is issued against a prior invoice and its remaining credit is consumed
// by applications, each targeting either another invoice or a refund.
// Invariant: AppliedAmount + RemainingAmount == Total after every
// application, and RemainingAmount never goes negative.
type CreditNote struct {
	shared.CompanyAggregateRoot
	Number     string    `gorm:"type:varchar(50);not null;index"`
	InvoiceID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ClientID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ClientName string    `gorm:"type:varchar(200);not null"`
	Date       time.Time `gorm:"not null"`
	Reason     string    `gorm:"type:text"`
	Items      LineItems `gorm:"type:jsonb;not null"`

	Subtotal  decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	VATAmount decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Discount  decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Total     decimal.Decimal `gorm:"type:decimal(14,4);not null"`

	Status          CreditNoteStatus       `gorm:"type:varchar(20);not null;default:'draft';index"`
	AppliedAmount   decimal.Decimal        `gorm:"type:decimal(14,4);not null"`
	RemainingAmount decimal.Decimal        `gorm:"type:decimal(14,4);not null"`
	IsFullyApplied  bool                   `gorm:"not null;default:false"`
	Applications    CreditNoteApplications `gorm:"type:jsonb"`

	IssuedAt    *time.Time
	CancelledAt *time.Time
}

// TableName returns the table name for GORM
func (CreditNote) TableName() string {
	return "credit_notes"
}

// NewCreditNote creates a new credit note in draft status against an invoice
func NewCreditNote(companyID uuid.UUID, number string, invoiceID, clientID uuid.UUID, clientName, reason string, date time.Time, items []LineItem) (*CreditNote, error) {
	if number == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Credit note number cannot be empty")
	}
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Invoice ID cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Client ID cannot be empty")
	}

	totals, err := CalculateTotals(items)
	if err != nil {
		return nil, err
	}

	note := &CreditNote{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Number:               number,
		InvoiceID:            invoiceID,
		ClientID:             clientID,
		ClientName:           clientName,
		Date:                 date,
		Reason:               reason,
		Items:                items,
		Subtotal:             totals.Subtotal,
		VATAmount:            totals.VATAmount,
		Discount:             totals.Discount,
		Total:                totals.Total,
		Status:               CreditNoteStatusDraft,
		AppliedAmount:        decimal.Zero,
		RemainingAmount:      totals.Total,
	}

	note.AddDomainEvent(NewCreditNoteCreatedEvent(note))

	return note, nil
}

// UpdateItems replaces the line items and recalculates totals
// Only allowed in draft status
func (cn *CreditNote) UpdateItems(items []LineItem) error {
	if cn.Status != CreditNoteStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot edit credit note in %s status", cn.Status))
	}

	totals, err := CalculateTotals(items)
	if err != nil {
		return err
	}

	cn.Items = items
	cn.Subtotal = totals.Subtotal
	cn.VATAmount = totals.VATAmount
	cn.Discount = totals.Discount
	cn.Total = totals.Total
	cn.RemainingAmount = totals.Total
	cn.UpdatedAt = time.Now()
	cn.IncrementVersion()

	return nil
}

// Issue transitions the credit note from draft to issued, making its credit
// available for application
func (cn *CreditNote) Issue() error {
	if cn.Status != CreditNoteStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot issue credit note in %s status", cn.Status))
	}
	if cn.Total.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("VALIDATION_ERROR", "Credit note total must be positive")
	}

	now := time.Now()
	cn.Status = CreditNoteStatusIssued
	cn.IssuedAt = &now
	cn.UpdatedAt = now
	cn.IncrementVersion()

	cn.AddDomainEvent(NewCreditNoteIssuedEvent(cn))

	return nil
}

// Apply consumes credit, either against a target invoice or as a refund.
// Exactly one of targetInvoiceID / refundMethod must be provided. The status
// flips to applied when the remaining amount reaches exactly zero.
func (cn *CreditNote) Apply(amount decimal.Decimal, targetInvoiceID *uuid.UUID, refundMethod string) (*CreditNoteApplication, error) {
	if cn.Status != CreditNoteStatusIssued {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot apply credit note in %s status", cn.Status))
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Application amount must be positive")
	}
	if (targetInvoiceID == nil) == (refundMethod == "") {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Exactly one of target invoice or refund method must be set")
	}
	if amount.GreaterThan(cn.RemainingAmount) {
		return nil, shared.ErrInsufficientCredit
	}

	application := CreditNoteApplication{
		ID:              uuid.New(),
		CreditNoteID:    cn.ID,
		TargetInvoiceID: targetInvoiceID,
		IsRefund:        targetInvoiceID == nil,
		RefundMethod:    refundMethod,
		Amount:          amount,
		AppliedAt:       time.Now(),
	}

	cn.Applications = append(cn.Applications, application)
	cn.AppliedAmount = cn.AppliedAmount.Add(amount)
	cn.RemainingAmount = cn.Total.Sub(cn.AppliedAmount)
	if cn.RemainingAmount.IsZero() {
		cn.Status = CreditNoteStatusApplied
		cn.IsFullyApplied = true
		cn.AddDomainEvent(NewCreditNoteFullyAppliedEvent(cn))
	}
	cn.UpdatedAt = time.Now()
	cn.IncrementVersion()

	return &application, nil
}

// Cancel cancels the credit note
// Only allowed while no credit has been applied
func (cn *CreditNote) Cancel() error {
	if cn.Status != CreditNoteStatusDraft && cn.Status != CreditNoteStatusIssued {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel credit note in %s status", cn.Status))
	}
	if cn.AppliedAmount.IsPositive() {
		return shared.NewDomainError("INVALID_STATE", "Cannot cancel a credit note with applied credit")
	}

	now := time.Now()
	cn.Status = CreditNoteStatusCancelled
	cn.CancelledAt = &now
	cn.UpdatedAt = now
	cn.IncrementVersion()

	return nil
}
