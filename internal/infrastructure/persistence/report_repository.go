package persistence

import (
	"context"

	"github.com/fatoora/backend/internal/domain/billing"
	"github.com/fatoora/backend/internal/domain/report"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// settledStatuses are the invoice statuses that count towards the fiscal
// reports. Drafts have no legal existence and cancelled invoices are voided.
var settledStatuses = []billing.InvoiceStatus{
	billing.InvoiceStatusSent,
	billing.InvoiceStatusPartial,
	billing.InvoiceStatusPaid,
	billing.InvoiceStatusOverdue,
}

// GormReportRepository implements the report Repository using GORM.
// All queries aggregate over the billing and catalog tables directly; the
// invoice line items live in a jsonb column and are unnested in SQL.
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// VATByPeriod aggregates VAT collected on sent and settled invoices in a period
func (r *GormReportRepository) VATByPeriod(ctx context.Context, companyID uuid.UUID, period report.Period) (*report.VATByPeriod, error) {
	type vatResult struct {
		Rate      decimal.Decimal
		TaxBase   decimal.Decimal
		VATAmount decimal.Decimal
	}

	var results []vatResult
	err := r.db.WithContext(ctx).Raw(`
		SELECT (item->>'vat_rate')::numeric AS rate,
		       COALESCE(SUM((item->>'total')::numeric), 0) AS tax_base,
		       COALESCE(SUM((item->>'total')::numeric * (item->>'vat_rate')::numeric / 100), 0) AS vat_amount
		FROM invoices, jsonb_array_elements(items) AS item
		WHERE company_id = ?
		  AND status IN ?
		  AND date >= ? AND date <= ?
		GROUP BY rate
		ORDER BY rate ASC
	`, companyID, statusStrings(), period.From, period.To).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	var invoiceCount int64
	err = r.db.WithContext(ctx).
		Model(&billing.Invoice{}).
		Where("company_id = ? AND status IN ? AND date >= ? AND date <= ?",
			companyID, settledStatuses, period.From, period.To).
		Count(&invoiceCount).Error
	if err != nil {
		return nil, err
	}

	lines := make([]report.VATLine, 0, len(results))
	totalVAT := decimal.Zero
	for _, row := range results {
		lines = append(lines, report.VATLine{
			Rate:      row.Rate,
			TaxBase:   row.TaxBase,
			VATAmount: row.VATAmount,
		})
		totalVAT = totalVAT.Add(row.VATAmount)
	}

	return &report.VATByPeriod{
		Period:       period,
		Lines:        lines,
		TotalVAT:     totalVAT,
		InvoiceCount: int(invoiceCount),
	}, nil
}

// TopClients returns the top clients by invoiced revenue in a period
func (r *GormReportRepository) TopClients(ctx context.Context, companyID uuid.UUID, period report.Period, limit int) ([]report.TopClient, error) {
	type clientResult struct {
		ClientID     uuid.UUID
		ClientName   string
		Revenue      decimal.Decimal
		InvoiceCount int64
	}

	var results []clientResult
	err := r.db.WithContext(ctx).
		Model(&billing.Invoice{}).
		Select(`
			client_id,
			client_name,
			COALESCE(SUM(total), 0) AS revenue,
			COUNT(*) AS invoice_count
		`).
		Where("company_id = ? AND status IN ? AND date >= ? AND date <= ?",
			companyID, settledStatuses, period.From, period.To).
		Group("client_id, client_name").
		Order("revenue DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	clients := make([]report.TopClient, 0, len(results))
	for _, row := range results {
		clients = append(clients, report.TopClient{
			ClientID:     row.ClientID,
			ClientName:   row.ClientName,
			Revenue:      row.Revenue,
			InvoiceCount: int(row.InvoiceCount),
		})
	}
	return clients, nil
}

// AdvancePayments lists deposit invoices and their settlement state
func (r *GormReportRepository) AdvancePayments(ctx context.Context, companyID uuid.UUID, period report.Period) ([]report.AdvancePayment, error) {
	var invoices []billing.Invoice
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND is_deposit = ? AND date >= ? AND date <= ?",
			companyID, true, period.From, period.To).
		Order("date ASC, number ASC").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}

	payments := make([]report.AdvancePayment, 0, len(invoices))
	for i := range invoices {
		inv := &invoices[i]
		payments = append(payments, report.AdvancePayment{
			InvoiceID:         inv.ID,
			InvoiceNumber:     inv.Number,
			ClientName:        inv.ClientName,
			MainInvoiceID:     inv.DepositForInvoiceID,
			DepositAmount:     inv.DepositAmount,
			DepositPercentage: inv.DepositPercentage,
			PaidAmount:        inv.PaidAmount,
			Status:            string(inv.Status),
		})
	}
	return payments, nil
}

// LowStock lists stock-managed products below their minimum threshold
func (r *GormReportRepository) LowStock(ctx context.Context, companyID uuid.UUID) ([]report.LowStockAlert, error) {
	type stockResult struct {
		ProductID    uuid.UUID
		ProductCode  string
		ProductName  string
		CurrentStock decimal.Decimal
		MinStock     decimal.Decimal
		AlertStock   decimal.Decimal
	}

	var results []stockResult
	err := r.db.WithContext(ctx).
		Table("products").
		Select(`
			id AS product_id,
			code AS product_code,
			name AS product_name,
			current_stock,
			min_stock,
			alert_stock
		`).
		Where("company_id = ? AND manage_stock = ? AND is_service = ? AND min_stock > 0 AND current_stock < min_stock",
			companyID, true, false).
		Order("code ASC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	alerts := make([]report.LowStockAlert, 0, len(results))
	for _, row := range results {
		alerts = append(alerts, report.LowStockAlert{
			ProductID:    row.ProductID,
			ProductCode:  row.ProductCode,
			ProductName:  row.ProductName,
			CurrentStock: row.CurrentStock,
			MinStock:     row.MinStock,
			AlertStock:   row.AlertStock,
		})
	}
	return alerts, nil
}

// statusStrings converts the settled statuses for use in raw SQL
func statusStrings() []string {
	statuses := make([]string, len(settledStatuses))
	for i, s := range settledStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

// Ensure GormReportRepository implements Repository
var _ report.Repository = (*GormReportRepository)(nil)
