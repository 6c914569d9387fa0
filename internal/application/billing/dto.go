package billing

import (
	"time"

	"github.com/fatoora/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItemRequest is one document line in a create/update request.
// UnitPrice and VATRate are optional: when omitted they default to the
// product's price and the resolved tax rate for the (product, client) pair.
type LineItemRequest struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	VATRate   *decimal.Decimal `json:"vat_rate,omitempty"`
	Discount  decimal.Decimal  `json:"discount"`
}

// CreateInvoiceRequest is the request to create an invoice
type CreateInvoiceRequest struct {
	ClientID       uuid.UUID         `json:"client_id" binding:"required"`
	Date           time.Time         `json:"date" binding:"required"`
	DueDate        time.Time         `json:"due_date" binding:"required"`
	Items          []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	HasFiscalStamp bool              `json:"has_fiscal_stamp"`
	Notes          string            `json:"notes"`
}

// UpdateInvoiceRequest is the request to update a draft invoice
type UpdateInvoiceRequest struct {
	Items []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	Notes string            `json:"notes"`
}

// MarkDepositRequest turns a draft invoice into a deposit invoice
type MarkDepositRequest struct {
	MainInvoiceID uuid.UUID       `json:"main_invoice_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Percentage    decimal.Decimal `json:"percentage"`
}

// SendInvoiceRequest controls stock handling when sending an invoice
type SendInvoiceRequest struct {
	LocationID     *uuid.UUID `json:"location_id,omitempty"`
	SkipStockCheck bool       `json:"skip_stock_check"`
}

// LineItemResponse is one document line in API responses
type LineItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductCode string          `json:"product_code"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	VATRate     decimal.Decimal `json:"vat_rate"`
	Discount    decimal.Decimal `json:"discount"`
	Unit        string          `json:"unit"`
	Total       decimal.Decimal `json:"total"`
}

// InvoiceResponse represents an invoice in API responses.
// Amounts are rounded to 2 decimal places at this boundary only.
type InvoiceResponse struct {
	ID                  uuid.UUID          `json:"id"`
	Number              string             `json:"number"`
	ClientID            uuid.UUID          `json:"client_id"`
	ClientName          string             `json:"client_name"`
	Date                time.Time          `json:"date"`
	DueDate             time.Time          `json:"due_date"`
	Items               []LineItemResponse `json:"items"`
	Subtotal            decimal.Decimal    `json:"subtotal"`
	VATAmount           decimal.Decimal    `json:"vat_amount"`
	Discount            decimal.Decimal    `json:"discount"`
	Total               decimal.Decimal    `json:"total"`
	Status              string             `json:"status"`
	PaidAmount          decimal.Decimal    `json:"paid_amount"`
	RemainingAmount     decimal.Decimal    `json:"remaining_amount"`
	IsDeposit           bool               `json:"is_deposit"`
	DepositForInvoiceID *uuid.UUID         `json:"deposit_for_invoice_id,omitempty"`
	DepositAmount       decimal.Decimal    `json:"deposit_amount"`
	DepositPercentage   decimal.Decimal    `json:"deposit_percentage"`
	HasCreditNotes      bool               `json:"has_credit_notes"`
	CreditNoteTotal     decimal.Decimal    `json:"credit_note_total"`
	HasFiscalStamp      bool               `json:"has_fiscal_stamp"`
	FiscalStampAmount   decimal.Decimal    `json:"fiscal_stamp_amount"`
	Notes               string             `json:"notes"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
	Version             int                `json:"version"`
}

// ToLineItemResponses maps domain line items to responses
func ToLineItemResponses(items billing.LineItems) []LineItemResponse {
	out := make([]LineItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, LineItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			ProductCode: item.ProductCode,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.Round(2),
			VATRate:     item.VATRate,
			Discount:    item.Discount.Round(2),
			Unit:        item.Unit,
			Total:       item.Total.Round(2),
		})
	}
	return out
}

// ToInvoiceResponse maps an invoice to its response
func ToInvoiceResponse(inv *billing.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:                  inv.ID,
		Number:              inv.Number,
		ClientID:            inv.ClientID,
		ClientName:          inv.ClientName,
		Date:                inv.Date,
		DueDate:             inv.DueDate,
		Items:               ToLineItemResponses(inv.Items),
		Subtotal:            inv.Subtotal.Round(2),
		VATAmount:           inv.VATAmount.Round(2),
		Discount:            inv.Discount.Round(2),
		Total:               inv.Total.Round(2),
		Status:              inv.Status.String(),
		PaidAmount:          inv.PaidAmount.Round(2),
		RemainingAmount:     inv.RemainingAmount().Round(2),
		IsDeposit:           inv.IsDeposit,
		DepositForInvoiceID: inv.DepositForInvoiceID,
		DepositAmount:       inv.DepositAmount.Round(2),
		DepositPercentage:   inv.DepositPercentage,
		HasCreditNotes:      inv.HasCreditNotes,
		CreditNoteTotal:     inv.CreditNoteTotal.Round(2),
		HasFiscalStamp:      inv.HasFiscalStamp,
		FiscalStampAmount:   inv.FiscalStampAmount,
		Notes:               inv.Notes,
		CreatedAt:           inv.CreatedAt,
		UpdatedAt:           inv.UpdatedAt,
		Version:             inv.Version,
	}
}

// ToInvoiceResponses maps invoices to responses
func ToInvoiceResponses(invoices []billing.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		out = append(out, ToInvoiceResponse(&invoices[i]))
	}
	return out
}

// CreateQuoteRequest is the request to create a quote
type CreateQuoteRequest struct {
	ClientID        uuid.UUID         `json:"client_id" binding:"required"`
	Date            time.Time         `json:"date" binding:"required"`
	ExpiryDate      time.Time         `json:"expiry_date" binding:"required"`
	Items           []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	ReminderEnabled bool              `json:"reminder_enabled"`
	ReminderDays    int               `json:"reminder_days"`
	Notes           string            `json:"notes"`
}

// UpdateQuoteRequest is the request to update an editable quote
type UpdateQuoteRequest struct {
	Items []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	Notes string            `json:"notes"`
}

// ValidationDecisionRequest carries the internal validation outcome
type ValidationDecisionRequest struct {
	Note string `json:"note"`
}

// SendQuoteRequest carries the recipient for quote emails
type SendQuoteRequest struct {
	Recipient string `json:"recipient" binding:"required,email"`
}

// QuoteResponse represents a quote in API responses
type QuoteResponse struct {
	ID                 uuid.UUID          `json:"id"`
	Number             string             `json:"number"`
	ClientID           uuid.UUID          `json:"client_id"`
	ClientName         string             `json:"client_name"`
	Date               time.Time          `json:"date"`
	ExpiryDate         time.Time          `json:"expiry_date"`
	Items              []LineItemResponse `json:"items"`
	Subtotal           decimal.Decimal    `json:"subtotal"`
	VATAmount          decimal.Decimal    `json:"vat_amount"`
	Discount           decimal.Decimal    `json:"discount"`
	Total              decimal.Decimal    `json:"total"`
	Status             string             `json:"status"`
	ReminderEnabled    bool               `json:"reminder_enabled"`
	ReminderDays       int                `json:"reminder_days"`
	NextReminderDate   *time.Time         `json:"next_reminder_date,omitempty"`
	EmailHistory       []EmailEntry       `json:"email_history"`
	ConvertedInvoiceID *uuid.UUID         `json:"converted_invoice_id,omitempty"`
	ConvertedAt        *time.Time         `json:"converted_at,omitempty"`
	ValidationNote     string             `json:"validation_note"`
	Notes              string             `json:"notes"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// EmailEntry is one email history record in responses
type EmailEntry struct {
	Type      string    `json:"type"`
	Recipient string    `json:"recipient"`
	SentAt    time.Time `json:"sent_at"`
}

// ToQuoteResponse maps a quote to its response
func ToQuoteResponse(q *billing.Quote) QuoteResponse {
	history := make([]EmailEntry, 0, len(q.EmailHistory))
	for _, e := range q.EmailHistory {
		history = append(history, EmailEntry{Type: e.Type, Recipient: e.Recipient, SentAt: e.SentAt})
	}
	return QuoteResponse{
		ID:                 q.ID,
		Number:             q.Number,
		ClientID:           q.ClientID,
		ClientName:         q.ClientName,
		Date:               q.Date,
		ExpiryDate:         q.ExpiryDate,
		Items:              ToLineItemResponses(q.Items),
		Subtotal:           q.Subtotal.Round(2),
		VATAmount:          q.VATAmount.Round(2),
		Discount:           q.Discount.Round(2),
		Total:              q.Total.Round(2),
		Status:             q.Status.String(),
		ReminderEnabled:    q.ReminderEnabled,
		ReminderDays:       q.ReminderDays,
		NextReminderDate:   q.NextReminderDate,
		EmailHistory:       history,
		ConvertedInvoiceID: q.ConvertedInvoiceID,
		ConvertedAt:        q.ConvertedAt,
		ValidationNote:     q.ValidationNote,
		Notes:              q.Notes,
		CreatedAt:          q.CreatedAt,
		UpdatedAt:          q.UpdatedAt,
	}
}

// ToQuoteResponses maps quotes to responses
func ToQuoteResponses(quotes []billing.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(quotes))
	for i := range quotes {
		out = append(out, ToQuoteResponse(&quotes[i]))
	}
	return out
}

// CreateProformaRequest is the request to create a proforma invoice
type CreateProformaRequest struct {
	ClientID   uuid.UUID         `json:"client_id" binding:"required"`
	Date       time.Time         `json:"date" binding:"required"`
	ExpiryDate time.Time         `json:"expiry_date" binding:"required"`
	Items      []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	Notes      string            `json:"notes"`
}

// ProformaResponse represents a proforma invoice in API responses
type ProformaResponse struct {
	ID                 uuid.UUID          `json:"id"`
	Number             string             `json:"number"`
	ClientID           uuid.UUID          `json:"client_id"`
	ClientName         string             `json:"client_name"`
	Date               time.Time          `json:"date"`
	ExpiryDate         time.Time          `json:"expiry_date"`
	Items              []LineItemResponse `json:"items"`
	Subtotal           decimal.Decimal    `json:"subtotal"`
	VATAmount          decimal.Decimal    `json:"vat_amount"`
	Discount           decimal.Decimal    `json:"discount"`
	Total              decimal.Decimal    `json:"total"`
	Status             string             `json:"status"`
	ConvertedInvoiceID *uuid.UUID         `json:"converted_invoice_id,omitempty"`
	ConvertedAt        *time.Time         `json:"converted_at,omitempty"`
	Notes              string             `json:"notes"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// ToProformaResponse maps a proforma to its response
func ToProformaResponse(p *billing.ProformaInvoice) ProformaResponse {
	return ProformaResponse{
		ID:                 p.ID,
		Number:             p.Number,
		ClientID:           p.ClientID,
		ClientName:         p.ClientName,
		Date:               p.Date,
		ExpiryDate:         p.ExpiryDate,
		Items:              ToLineItemResponses(p.Items),
		Subtotal:           p.Subtotal.Round(2),
		VATAmount:          p.VATAmount.Round(2),
		Discount:           p.Discount.Round(2),
		Total:              p.Total.Round(2),
		Status:             p.Status.String(),
		ConvertedInvoiceID: p.ConvertedInvoiceID,
		ConvertedAt:        p.ConvertedAt,
		Notes:              p.Notes,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

// ToProformaResponses maps proformas to responses
func ToProformaResponses(proformas []billing.ProformaInvoice) []ProformaResponse {
	out := make([]ProformaResponse, 0, len(proformas))
	for i := range proformas {
		out = append(out, ToProformaResponse(&proformas[i]))
	}
	return out
}

// CreateCreditNoteRequest is the request to create a credit note
type CreateCreditNoteRequest struct {
	InvoiceID uuid.UUID         `json:"invoice_id" binding:"required"`
	Date      time.Time         `json:"date" binding:"required"`
	Reason    string            `json:"reason"`
	Items     []LineItemRequest `json:"items" binding:"required,min=1,dive"`
}

// IssueCreditNoteRequest controls stock handling when issuing a credit note
type IssueCreditNoteRequest struct {
	Restock    bool       `json:"restock"`
	LocationID *uuid.UUID `json:"location_id,omitempty"`
}

// ApplyCreditNoteRequest applies credit against an invoice or as a refund.
// Exactly one of TargetInvoiceID / RefundMethod must be set.
type ApplyCreditNoteRequest struct {
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	TargetInvoiceID *uuid.UUID      `json:"target_invoice_id,omitempty"`
	RefundMethod    string          `json:"refund_method,omitempty"`
}

// ApplicationResponse is one credit application in responses
type ApplicationResponse struct {
	ID              uuid.UUID       `json:"id"`
	TargetInvoiceID *uuid.UUID      `json:"target_invoice_id,omitempty"`
	IsRefund        bool            `json:"is_refund"`
	RefundMethod    string          `json:"refund_method,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	AppliedAt       time.Time       `json:"applied_at"`
}

// CreditNoteResponse represents a credit note in API responses
type CreditNoteResponse struct {
	ID              uuid.UUID             `json:"id"`
	Number          string                `json:"number"`
	InvoiceID       uuid.UUID             `json:"invoice_id"`
	ClientID        uuid.UUID             `json:"client_id"`
	ClientName      string                `json:"client_name"`
	Date            time.Time             `json:"date"`
	Reason          string                `json:"reason"`
	Items           []LineItemResponse    `json:"items"`
	Subtotal        decimal.Decimal       `json:"subtotal"`
	VATAmount       decimal.Decimal       `json:"vat_amount"`
	Discount        decimal.Decimal       `json:"discount"`
	Total           decimal.Decimal       `json:"total"`
	Status          string                `json:"status"`
	AppliedAmount   decimal.Decimal       `json:"applied_amount"`
	RemainingAmount decimal.Decimal       `json:"remaining_amount"`
	IsFullyApplied  bool                  `json:"is_fully_applied"`
	Applications    []ApplicationResponse `json:"applications"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// ToCreditNoteResponse maps a credit note to its response
func ToCreditNoteResponse(cn *billing.CreditNote) CreditNoteResponse {
	applications := make([]ApplicationResponse, 0, len(cn.Applications))
	for _, a := range cn.Applications {
		applications = append(applications, ApplicationResponse{
			ID:              a.ID,
			TargetInvoiceID: a.TargetInvoiceID,
			IsRefund:        a.IsRefund,
			RefundMethod:    a.RefundMethod,
			Amount:          a.Amount.Round(2),
			AppliedAt:       a.AppliedAt,
		})
	}
	return CreditNoteResponse{
		ID:              cn.ID,
		Number:          cn.Number,
		InvoiceID:       cn.InvoiceID,
		ClientID:        cn.ClientID,
		ClientName:      cn.ClientName,
		Date:            cn.Date,
		Reason:          cn.Reason,
		Items:           ToLineItemResponses(cn.Items),
		Subtotal:        cn.Subtotal.Round(2),
		VATAmount:       cn.VATAmount.Round(2),
		Discount:        cn.Discount.Round(2),
		Total:           cn.Total.Round(2),
		Status:          cn.Status.String(),
		AppliedAmount:   cn.AppliedAmount.Round(2),
		RemainingAmount: cn.RemainingAmount.Round(2),
		IsFullyApplied:  cn.IsFullyApplied,
		Applications:    applications,
		CreatedAt:       cn.CreatedAt,
		UpdatedAt:       cn.UpdatedAt,
	}
}

// ToCreditNoteResponses maps credit notes to responses
func ToCreditNoteResponses(notes []billing.CreditNote) []CreditNoteResponse {
	out := make([]CreditNoteResponse, 0, len(notes))
	for i := range notes {
		out = append(out, ToCreditNoteResponse(&notes[i]))
	}
	return out
}

// CreatePaymentRequest is the request to record a payment
type CreatePaymentRequest struct {
	InvoiceID uuid.UUID       `json:"invoice_id" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Method    string          `json:"method" binding:"required,oneof=cash check transfer card other"`
	Date      time.Time       `json:"date" binding:"required"`
	Reference string          `json:"reference"`
	Notes     string          `json:"notes"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID        uuid.UUID       `json:"id"`
	InvoiceID uuid.UUID       `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Date      time.Time       `json:"date"`
	Reference string          `json:"reference"`
	Notes     string          `json:"notes"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToPaymentResponse maps a payment to its response
func ToPaymentResponse(p *billing.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID,
		InvoiceID: p.InvoiceID,
		Amount:    p.Amount.Round(2),
		Method:    string(p.Method),
		Date:      p.Date,
		Reference: p.Reference,
		Notes:     p.Notes,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
	}
}

// ToPaymentResponses maps payments to responses
func ToPaymentResponses(payments []billing.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, ToPaymentResponse(&payments[i]))
	}
	return out
}

// ListFilter is the common pagination/filter request for billing lists
type ListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}
