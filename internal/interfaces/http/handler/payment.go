package handler

import (
	billingapp "github.com/fatoora/backend/internal/application/billing"
	"github.com/gin-gonic/gin"
)

// IdempotencyKeyHeader deduplicates payment creation on client retries
const IdempotencyKeyHeader = "X-Idempotency-Key"

// PaymentHandler exposes the payment API endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *billingapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *billingapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Create handles POST /billing/payments
func (h *PaymentHandler) Create(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	var req billingapp.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	payment, err := h.paymentService.Create(c.Request.Context(), company, c.GetHeader(IdempotencyKeyHeader), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, payment)
}

// GetByID handles GET /billing/payments/:id
func (h *PaymentHandler) GetByID(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	paymentID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	payment, err := h.paymentService.GetByID(c.Request.Context(), company, paymentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}

// ListByInvoice handles GET /billing/payments/by-invoice/:invoiceId
func (h *PaymentHandler) ListByInvoice(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	invoiceID, err := pathID(c, "invoiceId")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	payments, err := h.paymentService.ListByInvoice(c.Request.Context(), company, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payments)
}

// Delete handles DELETE /billing/payments/:id
func (h *PaymentHandler) Delete(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	paymentID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	if err := h.paymentService.Delete(c.Request.Context(), company, paymentID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
