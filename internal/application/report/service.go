package report

import (
	"context"
	"time"

	"github.com/fatoora/backend/internal/domain/report"
	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
)

const defaultTopClientsLimit = 10

// PeriodRequest is the date range bound from report query parameters
type PeriodRequest struct {
	From time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To   time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
}

// Service exposes the read-side reports
type Service struct {
	repo report.Repository
}

// NewService creates a new report Service
func NewService(repo report.Repository) *Service {
	return &Service{repo: repo}
}

// VATByPeriod aggregates VAT collected on sent and settled invoices in a period
func (s *Service) VATByPeriod(ctx context.Context, companyID uuid.UUID, req PeriodRequest) (*report.VATByPeriod, error) {
	period, err := toPeriod(req)
	if err != nil {
		return nil, err
	}
	return s.repo.VATByPeriod(ctx, companyID, period)
}

// TopClients returns the top clients by invoiced revenue in a period.
// A non-positive limit falls back to the default.
func (s *Service) TopClients(ctx context.Context, companyID uuid.UUID, req PeriodRequest, limit int) ([]report.TopClient, error) {
	period, err := toPeriod(req)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultTopClientsLimit
	}
	return s.repo.TopClients(ctx, companyID, period, limit)
}

// AdvancePayments lists deposit invoices and their settlement state
func (s *Service) AdvancePayments(ctx context.Context, companyID uuid.UUID, req PeriodRequest) ([]report.AdvancePayment, error) {
	period, err := toPeriod(req)
	if err != nil {
		return nil, err
	}
	return s.repo.AdvancePayments(ctx, companyID, period)
}

// LowStock lists stock-managed products below their minimum threshold
func (s *Service) LowStock(ctx context.Context, companyID uuid.UUID) ([]report.LowStockAlert, error) {
	return s.repo.LowStock(ctx, companyID)
}

func toPeriod(req PeriodRequest) (report.Period, error) {
	if req.To.Before(req.From) {
		return report.Period{}, shared.NewDomainError("VALIDATION_ERROR", "Period end cannot be before its start")
	}
	return report.Period{From: req.From, To: req.To}, nil
}
