package billing

import (
	"fmt"
	"time"

	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusPartial   InvoiceStatus = "partial"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid,
		InvoiceStatusPartial, InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	switch s {
	case InvoiceStatusDraft:
		return target == InvoiceStatusSent
	case InvoiceStatusSent:
		return target == InvoiceStatusPaid || target == InvoiceStatusPartial ||
			target == InvoiceStatusOverdue || target == InvoiceStatusCancelled
	case InvoiceStatusPartial:
		return target == InvoiceStatusPaid
	case InvoiceStatusOverdue:
		return target == InvoiceStatusCancelled
	case InvoiceStatusPaid, InvoiceStatusCancelled:
		return false // Terminal states
	}
	return false
}

// IsTerminal returns true if the status is terminal
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusCancelled
}

// AcceptsPayments returns true if payments can be recorded in this status
func (s InvoiceStatus) AcceptsPayments() bool {
	return s == InvoiceStatusSent || s == InvoiceStatusPartial
}

// Invoice represents an invoice aggregate root.
//
// An invoice may be a deposit invoice (a partial advance against a main
// invoice, linked via DepositForInvoiceID) and may carry a fiscal stamp, a
// fixed regulatory charge added on top of the calculated total.
type Invoice struct {
	shared.CompanyAggregateRoot
	Number     string     `gorm:"type:varchar(50);not null;index"`
	ClientID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	ClientName string     `gorm:"type:varchar(200);not null"`
	Date       time.Time  `gorm:"not null"`
	DueDate    time.Time  `gorm:"not null"`
	Items      LineItems  `gorm:"type:jsonb;not null"`

	Subtotal  decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	VATAmount decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Discount  decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Total     decimal.Decimal `gorm:"type:decimal(14,4);not null"`

	Status     InvoiceStatus   `gorm:"type:varchar(20);not null;default:'draft';index"`
	PaidAmount decimal.Decimal `gorm:"type:decimal(14,4);not null"`

	IsDeposit           bool             `gorm:"not null;default:false"`
	DepositForInvoiceID *uuid.UUID       `gorm:"type:uuid;index"`
	DepositAmount       decimal.Decimal  `gorm:"type:decimal(14,4)"`
	DepositPercentage   decimal.Decimal  `gorm:"type:decimal(6,3)"`
	DepositInvoiceIDs   shared.UUIDSlice `gorm:"type:jsonb"`

	HasCreditNotes  bool             `gorm:"not null;default:false"`
	CreditNoteIDs   shared.UUIDSlice `gorm:"type:jsonb"`
	CreditNoteTotal decimal.Decimal  `gorm:"type:decimal(14,4)"`

	HasFiscalStamp    bool            `gorm:"not null;default:false"`
	FiscalStampAmount decimal.Decimal `gorm:"type:decimal(10,2)"`

	Notes       string     `gorm:"type:text"`
	SentAt      *time.Time
	CancelledAt *time.Time
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoice creates a new invoice in draft status
func NewInvoice(companyID uuid.UUID, number string, clientID uuid.UUID, clientName string, date, dueDate time.Time, items []LineItem) (*Invoice, error) {
	if number == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Invoice number cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Client ID cannot be empty")
	}
	if dueDate.Before(date) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Due date cannot be before invoice date")
	}

	totals, err := CalculateTotals(items)
	if err != nil {
		return nil, err
	}

	invoice := &Invoice{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Number:               number,
		ClientID:             clientID,
		ClientName:           clientName,
		Date:                 date,
		DueDate:              dueDate,
		Items:                items,
		Subtotal:             totals.Subtotal,
		VATAmount:            totals.VATAmount,
		Discount:             totals.Discount,
		Total:                totals.Total,
		Status:               InvoiceStatusDraft,
		PaidAmount:           decimal.Zero,
		DepositAmount:        decimal.Zero,
		DepositPercentage:    decimal.Zero,
		CreditNoteTotal:      decimal.Zero,
		FiscalStampAmount:    decimal.Zero,
	}

	invoice.AddDomainEvent(NewInvoiceCreatedEvent(invoice))

	return invoice, nil
}

// CanModify returns true if the invoice content can still be edited
func (inv *Invoice) CanModify() bool {
	return inv.Status == InvoiceStatusDraft
}

// UpdateItems replaces the line items and recalculates totals
// Only allowed in draft status
func (inv *Invoice) UpdateItems(items []LineItem) error {
	if !inv.CanModify() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot edit invoice in %s status", inv.Status))
	}

	totals, err := CalculateTotals(items)
	if err != nil {
		return err
	}

	inv.Items = items
	inv.applyTotals(totals)
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()

	return nil
}

// SetFiscalStamp adds or removes the fiscal stamp charge
// Only allowed in draft status; the stamp amount is added on top of the total
func (inv *Invoice) SetFiscalStamp(enabled bool, amount decimal.Decimal) error {
	if !inv.CanModify() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot change fiscal stamp in %s status", inv.Status))
	}
	if enabled && amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("VALIDATION_ERROR", "Fiscal stamp amount must be positive")
	}

	inv.HasFiscalStamp = enabled
	if enabled {
		inv.FiscalStampAmount = amount
	} else {
		inv.FiscalStampAmount = decimal.Zero
	}
	inv.recalculate()
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()

	return nil
}

// MarkAsDeposit turns the invoice into a deposit invoice for a main invoice
// Only allowed in draft status
func (inv *Invoice) MarkAsDeposit(mainInvoiceID uuid.UUID, amount, percentage decimal.Decimal) error {
	if !inv.CanModify() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark invoice as deposit in %s status", inv.Status))
	}
	if mainInvoiceID == uuid.Nil {
		return shared.NewDomainError("VALIDATION_ERROR", "Main invoice ID cannot be empty")
	}
	if mainInvoiceID == inv.ID {
		return shared.NewDomainError("VALIDATION_ERROR", "Invoice cannot be a deposit for itself")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("VALIDATION_ERROR", "Deposit amount must be positive")
	}

	inv.IsDeposit = true
	inv.DepositForInvoiceID = &mainInvoiceID
	inv.DepositAmount = amount
	inv.DepositPercentage = percentage
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()

	return nil
}

// LinkDepositInvoice records a deposit invoice issued against this invoice
func (inv *Invoice) LinkDepositInvoice(depositInvoiceID uuid.UUID) {
	if inv.DepositInvoiceIDs.Contains(depositInvoiceID) {
		return
	}
	inv.DepositInvoiceIDs = append(inv.DepositInvoiceIDs, depositInvoiceID)
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
}

// Send transitions the invoice from draft to sent
func (inv *Invoice) Send() error {
	if !inv.Status.CanTransitionTo(InvoiceStatusSent) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot send invoice in %s status", inv.Status))
	}
	if len(inv.Items) == 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Cannot send invoice without items")
	}

	now := time.Now()
	inv.Status = InvoiceStatusSent
	inv.SentAt = &now
	inv.UpdatedAt = now
	inv.IncrementVersion()

	inv.AddDomainEvent(NewInvoiceSentEvent(inv))

	return nil
}

// ApplyPayment records a payment amount against the invoice and derives status
// Only allowed from sent or partial
func (inv *Invoice) ApplyPayment(amount decimal.Decimal) error {
	if !inv.Status.AcceptsPayments() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot record payment on invoice in %s status", inv.Status))
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("VALIDATION_ERROR", "Payment amount must be positive")
	}

	inv.PaidAmount = inv.PaidAmount.Add(amount)
	inv.deriveStatusFromPaid()
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()

	return nil
}

// MarkPaid settles the invoice in full
// Only allowed from sent or partial
func (inv *Invoice) MarkPaid() error {
	if !inv.Status.AcceptsPayments() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark invoice paid in %s status", inv.Status))
	}

	inv.PaidAmount = inv.Total
	inv.deriveStatusFromPaid()
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()

	return nil
}

// RecomputePaidAmount resets the paid amount from the full surviving payment
// set and re-derives status. Used after a payment deletion so the derivation
// stays correct under concurrent edits.
func (inv *Invoice) RecomputePaidAmount(paidTotal decimal.Decimal) error {
	if inv.Status == InvoiceStatusDraft || inv.Status == InvoiceStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot recompute payments on invoice in %s status", inv.Status))
	}
	if paidTotal.IsNegative() {
		return shared.NewDomainError("VALIDATION_ERROR", "Paid total cannot be negative")
	}

	inv.PaidAmount = paidTotal
	if inv.PaidAmount.IsZero() {
		// A zero balance returns the invoice to sent, except an overdue
		// invoice still past its due date stays overdue.
		if inv.Status != InvoiceStatusOverdue || !time.Now().After(inv.DueDate) {
			inv.Status = InvoiceStatusSent
		}
	} else {
		inv.deriveStatusFromPaid()
	}
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()

	return nil
}

// MarkOverdue transitions a sent invoice past its due date to overdue
func (inv *Invoice) MarkOverdue(now time.Time) error {
	if !inv.Status.CanTransitionTo(InvoiceStatusOverdue) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark invoice overdue in %s status", inv.Status))
	}
	if !now.After(inv.DueDate) {
		return shared.NewDomainError("VALIDATION_ERROR", "Invoice is not past its due date")
	}

	inv.Status = InvoiceStatusOverdue
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()

	inv.AddDomainEvent(NewInvoiceOverdueEvent(inv))

	return nil
}

// Cancel cancels the invoice
// Only allowed from sent or overdue
func (inv *Invoice) Cancel() error {
	if !inv.Status.CanTransitionTo(InvoiceStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel invoice in %s status", inv.Status))
	}

	now := time.Now()
	inv.Status = InvoiceStatusCancelled
	inv.CancelledAt = &now
	inv.UpdatedAt = now
	inv.IncrementVersion()

	inv.AddDomainEvent(NewInvoiceCancelledEvent(inv))

	return nil
}

// ApplyCreditNote records a credit note applied against this invoice
func (inv *Invoice) ApplyCreditNote(creditNoteID uuid.UUID, amount decimal.Decimal) error {
	if inv.Status == InvoiceStatusDraft || inv.Status == InvoiceStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot apply credit to invoice in %s status", inv.Status))
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("VALIDATION_ERROR", "Credit amount must be positive")
	}

	if !inv.CreditNoteIDs.Contains(creditNoteID) {
		inv.CreditNoteIDs = append(inv.CreditNoteIDs, creditNoteID)
	}
	inv.HasCreditNotes = true
	inv.CreditNoteTotal = inv.CreditNoteTotal.Add(amount)
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()

	return nil
}

// RemainingAmount returns the amount still owed on the invoice
func (inv *Invoice) RemainingAmount() decimal.Decimal {
	remaining := inv.Total.Sub(inv.PaidAmount).Sub(inv.CreditNoteTotal)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// IsOverdueAt reports whether the invoice should be swept to overdue at the
// given time
func (inv *Invoice) IsOverdueAt(now time.Time) bool {
	return inv.Status == InvoiceStatusSent && now.After(inv.DueDate)
}

func (inv *Invoice) deriveStatusFromPaid() {
	switch {
	case inv.PaidAmount.GreaterThanOrEqual(inv.Total):
		if inv.Status != InvoiceStatusPaid {
			inv.Status = InvoiceStatusPaid
			inv.AddDomainEvent(NewInvoicePaidEvent(inv))
		}
	case inv.PaidAmount.IsPositive():
		inv.Status = InvoiceStatusPartial
	}
}

func (inv *Invoice) applyTotals(totals DocumentTotals) {
	inv.Subtotal = totals.Subtotal
	inv.VATAmount = totals.VATAmount
	inv.Discount = totals.Discount
	inv.Total = totals.Total
	if inv.HasFiscalStamp {
		inv.Total = inv.Total.Add(inv.FiscalStampAmount)
	}
}

func (inv *Invoice) recalculate() {
	totals, err := CalculateTotals(inv.Items)
	if err != nil {
		return
	}
	inv.applyTotals(totals)
}
