// Package report holds the read-side projection types. Projections are pure
// aggregations over billing and inventory state; they carry no state of
// their own and may run against a replica without locking.
package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Period is a closed date range for time-bucketed reports
type Period struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// VATLine is the VAT collected for one rate within a period
type VATLine struct {
	Rate      decimal.Decimal `json:"rate"`
	TaxBase   decimal.Decimal `json:"tax_base"`
	VATAmount decimal.Decimal `json:"vat_amount"`
}

// VATByPeriod aggregates VAT collected across invoices in a period
type VATByPeriod struct {
	Period       Period          `json:"period"`
	Lines        []VATLine       `json:"lines"`
	TotalVAT     decimal.Decimal `json:"total_vat"`
	InvoiceCount int             `json:"invoice_count"`
}

// TopClient is one row of the top-clients-by-revenue report
type TopClient struct {
	ClientID     uuid.UUID       `json:"client_id"`
	ClientName   string          `json:"client_name"`
	Revenue      decimal.Decimal `json:"revenue"`
	InvoiceCount int             `json:"invoice_count"`
}

// AdvancePayment is one row of the deposit invoice report
type AdvancePayment struct {
	InvoiceID         uuid.UUID       `json:"invoice_id"`
	InvoiceNumber     string          `json:"invoice_number"`
	ClientName        string          `json:"client_name"`
	MainInvoiceID     *uuid.UUID      `json:"main_invoice_id,omitempty"`
	DepositAmount     decimal.Decimal `json:"deposit_amount"`
	DepositPercentage decimal.Decimal `json:"deposit_percentage"`
	PaidAmount        decimal.Decimal `json:"paid_amount"`
	Status            string          `json:"status"`
}

// LowStockAlert is one row of the stock-below-minimum listing
type LowStockAlert struct {
	ProductID    uuid.UUID       `json:"product_id"`
	ProductCode  string          `json:"product_code"`
	ProductName  string          `json:"product_name"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	AlertStock   decimal.Decimal `json:"alert_stock"`
}

// Repository defines the read-side queries backing the reports
type Repository interface {
	// VATByPeriod aggregates VAT collected on sent and settled invoices in a period
	VATByPeriod(ctx context.Context, companyID uuid.UUID, period Period) (*VATByPeriod, error)

	// TopClients returns the top clients by invoiced revenue in a period
	TopClients(ctx context.Context, companyID uuid.UUID, period Period, limit int) ([]TopClient, error)

	// AdvancePayments lists deposit invoices and their settlement state
	AdvancePayments(ctx context.Context, companyID uuid.UUID, period Period) ([]AdvancePayment, error)

	// LowStock lists stock-managed products below their minimum threshold
	LowStock(ctx context.Context, companyID uuid.UUID) ([]LowStockAlert, error)
}
