package billing

import (
	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for the billing domain
const (
	EventTypeInvoiceCreated   = "billing.invoice.created"
	EventTypeInvoiceSent      = "billing.invoice.sent"
	EventTypeInvoicePaid      = "billing.invoice.paid"
	EventTypeInvoiceOverdue   = "billing.invoice.overdue"
	EventTypeInvoiceCancelled = "billing.invoice.cancelled"

	EventTypeQuoteCreated   = "billing.quote.created"
	EventTypeQuoteSent      = "billing.quote.sent"
	EventTypeQuoteAccepted  = "billing.quote.accepted"
	EventTypeQuoteConverted = "billing.quote.converted"

	EventTypeProformaConverted = "billing.proforma.converted"

	EventTypeCreditNoteCreated      = "billing.credit_note.created"
	EventTypeCreditNoteIssued       = "billing.credit_note.issued"
	EventTypeCreditNoteFullyApplied = "billing.credit_note.fully_applied"

	EventTypePaymentCreated = "billing.payment.created"
)

// InvoiceCreatedEvent is emitted when an invoice is created
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	Number string          `json:"number"`
	Total  decimal.Decimal `json:"total"`
}

// NewInvoiceCreatedEvent creates a new InvoiceCreatedEvent
func NewInvoiceCreatedEvent(inv *Invoice) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCreated, "Invoice", inv.ID, inv.CompanyID),
		Number:          inv.Number,
		Total:           inv.Total,
	}
}

// InvoiceSentEvent is emitted when an invoice is sent
type InvoiceSentEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
}

// NewInvoiceSentEvent creates a new InvoiceSentEvent
func NewInvoiceSentEvent(inv *Invoice) *InvoiceSentEvent {
	return &InvoiceSentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceSent, "Invoice", inv.ID, inv.CompanyID),
		Number:          inv.Number,
	}
}

// InvoicePaidEvent is emitted when an invoice becomes fully paid
type InvoicePaidEvent struct {
	shared.BaseDomainEvent
	Number     string          `json:"number"`
	PaidAmount decimal.Decimal `json:"paid_amount"`
}

// NewInvoicePaidEvent creates a new InvoicePaidEvent
func NewInvoicePaidEvent(inv *Invoice) *InvoicePaidEvent {
	return &InvoicePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoicePaid, "Invoice", inv.ID, inv.CompanyID),
		Number:          inv.Number,
		PaidAmount:      inv.PaidAmount,
	}
}

// InvoiceOverdueEvent is emitted when an invoice passes its due date
type InvoiceOverdueEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
}

// NewInvoiceOverdueEvent creates a new InvoiceOverdueEvent
func NewInvoiceOverdueEvent(inv *Invoice) *InvoiceOverdueEvent {
	return &InvoiceOverdueEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceOverdue, "Invoice", inv.ID, inv.CompanyID),
		Number:          inv.Number,
	}
}

// InvoiceCancelledEvent is emitted when an invoice is cancelled
type InvoiceCancelledEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
}

// NewInvoiceCancelledEvent creates a new InvoiceCancelledEvent
func NewInvoiceCancelledEvent(inv *Invoice) *InvoiceCancelledEvent {
	return &InvoiceCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCancelled, "Invoice", inv.ID, inv.CompanyID),
		Number:          inv.Number,
	}
}

// QuoteCreatedEvent is emitted when a quote is created
type QuoteCreatedEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
}

// NewQuoteCreatedEvent creates a new QuoteCreatedEvent
func NewQuoteCreatedEvent(q *Quote) *QuoteCreatedEvent {
	return &QuoteCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuoteCreated, "Quote", q.ID, q.CompanyID),
		Number:          q.Number,
	}
}

// QuoteSentEvent is emitted when a quote is sent to the client
type QuoteSentEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
}

// NewQuoteSentEvent creates a new QuoteSentEvent
func NewQuoteSentEvent(q *Quote) *QuoteSentEvent {
	return &QuoteSentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuoteSent, "Quote", q.ID, q.CompanyID),
		Number:          q.Number,
	}
}

// QuoteAcceptedEvent is emitted when a client accepts a quote
type QuoteAcceptedEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
}

// NewQuoteAcceptedEvent creates a new QuoteAcceptedEvent
func NewQuoteAcceptedEvent(q *Quote) *QuoteAcceptedEvent {
	return &QuoteAcceptedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuoteAccepted, "Quote", q.ID, q.CompanyID),
		Number:          q.Number,
	}
}

// QuoteConvertedEvent is emitted when a quote is converted into an invoice
type QuoteConvertedEvent struct {
	shared.BaseDomainEvent
	Number    string `json:"number"`
	InvoiceID string `json:"invoice_id"`
}

// NewQuoteConvertedEvent creates a new QuoteConvertedEvent
func NewQuoteConvertedEvent(q *Quote) *QuoteConvertedEvent {
	invoiceID := ""
	if q.ConvertedInvoiceID != nil {
		invoiceID = q.ConvertedInvoiceID.String()
	}
	return &QuoteConvertedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuoteConverted, "Quote", q.ID, q.CompanyID),
		Number:          q.Number,
		InvoiceID:       invoiceID,
	}
}

// ProformaConvertedEvent is emitted when a proforma is converted into an invoice
type ProformaConvertedEvent struct {
	shared.BaseDomainEvent
	Number    string `json:"number"`
	InvoiceID string `json:"invoice_id"`
}

// NewProformaConvertedEvent creates a new ProformaConvertedEvent
func NewProformaConvertedEvent(p *ProformaInvoice) *ProformaConvertedEvent {
	invoiceID := ""
	if p.ConvertedInvoiceID != nil {
		invoiceID = p.ConvertedInvoiceID.String()
	}
	return &ProformaConvertedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProformaConverted, "ProformaInvoice", p.ID, p.CompanyID),
		Number:          p.Number,
		InvoiceID:       invoiceID,
	}
}

// CreditNoteCreatedEvent is emitted when a credit note is created
type CreditNoteCreatedEvent struct {
	shared.BaseDomainEvent
	Number string          `json:"number"`
	Total  decimal.Decimal `json:"total"`
}

// NewCreditNoteCreatedEvent creates a new CreditNoteCreatedEvent
func NewCreditNoteCreatedEvent(cn *CreditNote) *CreditNoteCreatedEvent {
	return &CreditNoteCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCreditNoteCreated, "CreditNote", cn.ID, cn.CompanyID),
		Number:          cn.Number,
		Total:           cn.Total,
	}
}

// CreditNoteIssuedEvent is emitted when a credit note is issued
type CreditNoteIssuedEvent struct {
	shared.BaseDomainEvent
	Number string          `json:"number"`
	Total  decimal.Decimal `json:"total"`
}

// NewCreditNoteIssuedEvent creates a new CreditNoteIssuedEvent
func NewCreditNoteIssuedEvent(cn *CreditNote) *CreditNoteIssuedEvent {
	return &CreditNoteIssuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCreditNoteIssued, "CreditNote", cn.ID, cn.CompanyID),
		Number:          cn.Number,
		Total:           cn.Total,
	}
}

// CreditNoteFullyAppliedEvent is emitted when the remaining credit hits zero
type CreditNoteFullyAppliedEvent struct {
	shared.BaseDomainEvent
	Number        string          `json:"number"`
	AppliedAmount decimal.Decimal `json:"applied_amount"`
}

// NewCreditNoteFullyAppliedEvent creates a new CreditNoteFullyAppliedEvent
func NewCreditNoteFullyAppliedEvent(cn *CreditNote) *CreditNoteFullyAppliedEvent {
	return &CreditNoteFullyAppliedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCreditNoteFullyApplied, "CreditNote", cn.ID, cn.CompanyID),
		Number:          cn.Number,
		AppliedAmount:   cn.AppliedAmount,
	}
}

// PaymentCreatedEvent is emitted when a payment is recorded
type PaymentCreatedEvent struct {
	shared.BaseDomainEvent
	InvoiceID string          `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
}

// NewPaymentCreatedEvent creates a new PaymentCreatedEvent
func NewPaymentCreatedEvent(p *Payment) *PaymentCreatedEvent {
	return &PaymentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentCreated, "Payment", p.ID, p.CompanyID),
		InvoiceID:       p.InvoiceID.String(),
		Amount:          p.Amount,
		Method:          string(p.Method),
	}
}
