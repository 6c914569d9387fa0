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

// QuoteStatus represents the status of a quote
type QuoteStatus string

const (
	QuoteStatusDraft              QuoteStatus = "draft"
	QuoteStatusPendingValidation  QuoteStatus = "pending_validation"
	QuoteStatusAwaitingAcceptance QuoteStatus = "awaiting_acceptance"
	QuoteStatusAccepted           QuoteStatus = "accepted"
	QuoteStatusRejected           QuoteStatus = "rejected"
	QuoteStatusExpired            QuoteStatus = "expired"
	QuoteStatusConverted          QuoteStatus = "converted"
)

// IsValid checks if the status is a valid QuoteStatus
func (s QuoteStatus) IsValid() bool {
	switch s {
	case QuoteStatusDraft, QuoteStatusPendingValidation, QuoteStatusAwaitingAcceptance,
		QuoteStatusAccepted, QuoteStatusRejected, QuoteStatusExpired, QuoteStatusConverted:
		return true
	}
	return false
}

// String returns the string representation of QuoteStatus
func (s QuoteStatus) String() string {
	return string(s)
}

// IsEditable returns true if the quote content can be edited in this status
func (s QuoteStatus) IsEditable() bool {
	return s == QuoteStatusDraft || s == QuoteStatusPendingValidation || s == QuoteStatusAwaitingAcceptance
}

// IsTerminal returns true if the status is terminal
func (s QuoteStatus) IsTerminal() bool {
	return s == QuoteStatusRejected || s == QuoteStatusExpired || s == QuoteStatusConverted
}

// EmailHistoryEntry records an email-worthy event on a quote (initial send,
// reminder). Delivery itself happens outside the engine; this is the record.
type EmailHistoryEntry struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"` // "sent" or "reminder"
	Recipient string    `json:"recipient"`
	SentAt    time.Time `json:"sent_at"`
}

// EmailHistory is a slice of EmailHistoryEntry stored as JSONB
type EmailHistory []EmailHistoryEntry

// Value implements driver.Valuer interface for GORM to store as JSONB
func (h EmailHistory) Value() (driver.Value, error) {
	if h == nil {
		return "[]", nil
	}
	return json.Marshal(h)
}

// Scan implements sql.Scanner interface for GORM to read from JSONB
func (h *EmailHistory) Scan(value interface{}) error {
	if value == nil {
		*h = EmailHistory{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan EmailHistory: unsupported type")
	}

	if len(bytes) == 0 {
		*h = EmailHistory{}
		return nil
	}

	return json.Unmarshal(bytes, h)
}

// Quote represents a quote aggregate root.
//
// A quote can pass through an internal validation loop
// (draft -> pending_validation -> draft) before being sent to the client.
// Approved quotes are not auto-sent; the operator resends explicitly.
type Quote struct {
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

	Status QuoteStatus `gorm:"type:varchar(30);not null;default:'draft';index"`

	ReminderEnabled  bool         `gorm:"not null;default:false"`
	ReminderDays     int          `gorm:"not null;default:0"`
	NextReminderDate *time.Time   `gorm:"index"`
	EmailHistory     EmailHistory `gorm:"type:jsonb"`

	ConvertedInvoiceID *uuid.UUID `gorm:"type:uuid"`
	ConvertedAt        *time.Time
	ValidationNote     string `gorm:"type:text"`
	Notes              string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Quote) TableName() string {
	return "quotes"
}

// NewQuote creates a new quote in draft status
func NewQuote(companyID uuid.UUID, number string, clientID uuid.UUID, clientName string, date, expiryDate time.Time, items []LineItem) (*Quote, error) {
	if number == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Quote number cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Client ID cannot be empty")
	}
	if expiryDate.Before(date) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Expiry date cannot be before quote date")
	}

	totals, err := CalculateTotals(items)
	if err != nil {
		return nil, err
	}

	quote := &Quote{
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
		Status:               QuoteStatusDraft,
	}

	quote.AddDomainEvent(NewQuoteCreatedEvent(quote))

	return quote, nil
}

// UpdateItems replaces the line items and recalculates totals
// Allowed in draft, pending_validation and awaiting_acceptance
func (q *Quote) UpdateItems(items []LineItem) error {
	if !q.Status.IsEditable() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot edit quote in %s status", q.Status))
	}

	totals, err := CalculateTotals(items)
	if err != nil {
		return err
	}

	q.Items = items
	q.Subtotal = totals.Subtotal
	q.VATAmount = totals.VATAmount
	q.Discount = totals.Discount
	q.Total = totals.Total
	q.UpdatedAt = time.Now()
	q.IncrementVersion()

	return nil
}

// SubmitForValidation sends the draft quote into the internal validation loop
func (q *Quote) SubmitForValidation() error {
	if q.Status != QuoteStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot submit quote for validation in %s status", q.Status))
	}

	q.Status = QuoteStatusPendingValidation
	q.UpdatedAt = time.Now()
	q.IncrementVersion()

	return nil
}

// ApproveValidation returns the quote to draft after internal approval.
// The quote is not auto-sent; the operator sends it explicitly.
func (q *Quote) ApproveValidation(note string) error {
	if q.Status != QuoteStatusPendingValidation {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot approve quote in %s status", q.Status))
	}

	q.Status = QuoteStatusDraft
	q.ValidationNote = note
	q.UpdatedAt = time.Now()
	q.IncrementVersion()

	return nil
}

// RejectValidation returns the quote to draft after internal rejection
func (q *Quote) RejectValidation(note string) error {
	if q.Status != QuoteStatusPendingValidation {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reject quote in %s status", q.Status))
	}

	q.Status = QuoteStatusDraft
	q.ValidationNote = note
	q.UpdatedAt = time.Now()
	q.IncrementVersion()

	return nil
}

// Send sends the quote to the client and schedules the first reminder
// Allowed from draft, pending_validation and awaiting_acceptance (resend)
func (q *Quote) Send(recipient string) error {
	if !q.Status.IsEditable() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot send quote in %s status", q.Status))
	}
	if len(q.Items) == 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Cannot send quote without items")
	}

	now := time.Now()
	q.Status = QuoteStatusAwaitingAcceptance
	q.EmailHistory = append(q.EmailHistory, EmailHistoryEntry{
		ID:        uuid.New(),
		Type:      "sent",
		Recipient: recipient,
		SentAt:    now,
	})
	if q.ReminderEnabled && q.ReminderDays > 0 {
		next := q.ExpiryDate.AddDate(0, 0, -q.ReminderDays)
		q.NextReminderDate = &next
	}
	q.UpdatedAt = now
	q.IncrementVersion()

	q.AddDomainEvent(NewQuoteSentEvent(q))

	return nil
}

// EnableReminders turns on reminder scheduling with the given lead days
func (q *Quote) EnableReminders(days int) error {
	if days <= 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Reminder days must be positive")
	}

	q.ReminderEnabled = true
	q.ReminderDays = days
	if q.Status == QuoteStatusAwaitingAcceptance {
		next := q.ExpiryDate.AddDate(0, 0, -days)
		q.NextReminderDate = &next
	}
	q.UpdatedAt = time.Now()
	q.IncrementVersion()

	return nil
}

// IsReminderDue reports whether a reminder should go out at the given time
func (q *Quote) IsReminderDue(now time.Time) bool {
	return q.Status == QuoteStatusAwaitingAcceptance &&
		q.ReminderEnabled &&
		q.NextReminderDate != nil &&
		!now.Before(*q.NextReminderDate)
}

// RecordReminderSent appends a reminder entry and reschedules at the cadence
func (q *Quote) RecordReminderSent(recipient string, now time.Time, cadence time.Duration) error {
	if !q.IsReminderDue(now) {
		return shared.NewDomainError("INVALID_STATE", "Quote reminder is not due")
	}

	q.EmailHistory = append(q.EmailHistory, EmailHistoryEntry{
		ID:        uuid.New(),
		Type:      "reminder",
		Recipient: recipient,
		SentAt:    now,
	})
	next := now.Add(cadence)
	q.NextReminderDate = &next
	q.UpdatedAt = time.Now()
	q.IncrementVersion()

	return nil
}

// Accept marks the quote accepted by the client
func (q *Quote) Accept() error {
	if q.Status != QuoteStatusAwaitingAcceptance {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot accept quote in %s status", q.Status))
	}

	q.Status = QuoteStatusAccepted
	q.NextReminderDate = nil
	q.UpdatedAt = time.Now()
	q.IncrementVersion()

	q.AddDomainEvent(NewQuoteAcceptedEvent(q))

	return nil
}

// Reject marks the quote rejected by the client
func (q *Quote) Reject() error {
	if q.Status != QuoteStatusAwaitingAcceptance {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reject quote in %s status", q.Status))
	}

	q.Status = QuoteStatusRejected
	q.NextReminderDate = nil
	q.UpdatedAt = time.Now()
	q.IncrementVersion()

	return nil
}

// Expire marks the quote expired once past its expiry date
func (q *Quote) Expire(now time.Time) error {
	if q.Status != QuoteStatusAwaitingAcceptance {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot expire quote in %s status", q.Status))
	}
	if !now.After(q.ExpiryDate) {
		return shared.NewDomainError("VALIDATION_ERROR", "Quote is not past its expiry date")
	}

	q.Status = QuoteStatusExpired
	q.NextReminderDate = nil
	q.UpdatedAt = time.Now()
	q.IncrementVersion()

	return nil
}

// Convert marks an accepted quote as converted into the given invoice
func (q *Quote) Convert(invoiceID uuid.UUID) error {
	if q.Status != QuoteStatusAccepted {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot convert quote in %s status", q.Status))
	}
	if invoiceID == uuid.Nil {
		return shared.NewDomainError("VALIDATION_ERROR", "Invoice ID cannot be empty")
	}

	now := time.Now()
	q.Status = QuoteStatusConverted
	q.ConvertedInvoiceID = &invoiceID
	q.ConvertedAt = &now
	q.UpdatedAt = now
	q.IncrementVersion()

	q.AddDomainEvent(NewQuoteConvertedEvent(q))

	return nil
}
