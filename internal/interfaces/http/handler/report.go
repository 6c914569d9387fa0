package handler

import (
	"strconv"

	reportapp "github.com/fatoora/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler exposes the read-side report API endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.Service
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.Service) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// VATByPeriod handles GET /reports/vat
func (h *ReportHandler) VATByPeriod(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	var req reportapp.PeriodRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	report, err := h.reportService.VATByPeriod(c.Request.Context(), company, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// TopClients handles GET /reports/top-clients
func (h *ReportHandler) TopClients(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	var req reportapp.PeriodRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "Invalid limit")
			return
		}
		limit = parsed
	}

	clients, err := h.reportService.TopClients(c.Request.Context(), company, req, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, clients)
}

// AdvancePayments handles GET /reports/advance-payments
func (h *ReportHandler) AdvancePayments(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	var req reportapp.PeriodRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	deposits, err := h.reportService.AdvancePayments(c.Request.Context(), company, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, deposits)
}

// LowStock handles GET /reports/low-stock
func (h *ReportHandler) LowStock(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	alerts, err := h.reportService.LowStock(c.Request.Context(), company)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, alerts)
}
