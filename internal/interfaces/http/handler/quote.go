package handler

import (
	"time"

	billingapp "github.com/fatoora/backend/internal/application/billing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// QuoteHandler exposes the quote API endpoints
type QuoteHandler struct {
	BaseHandler
	quoteService *billingapp.QuoteService
}

// NewQuoteHandler creates a new QuoteHandler
func NewQuoteHandler(quoteService *billingapp.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// ConvertRequest carries the due date of the invoice produced by a
// quote or proforma conversion
type ConvertRequest struct {
	DueDate time.Time `json:"due_date" binding:"required"`
}

// Create handles POST /billing/quotes
func (h *QuoteHandler) Create(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	var req billingapp.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	quote, err := h.quoteService.Create(c.Request.Context(), company, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, quote)
}

// GetByID handles GET /billing/quotes/:id
func (h *QuoteHandler) GetByID(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	quoteID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid quote ID")
		return
	}

	quote, err := h.quoteService.GetByID(c.Request.Context(), company, quoteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, quote)
}

// List handles GET /billing/quotes
func (h *QuoteHandler) List(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	var filter billingapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	quotes, err := h.quoteService.List(c.Request.Context(), company, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, quotes)
}

// Update handles PUT /billing/quotes/:id
func (h *QuoteHandler) Update(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	quoteID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid quote ID")
		return
	}

	var req billingapp.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	quote, err := h.quoteService.Update(c.Request.Context(), company, quoteID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, quote)
}

// Delete handles DELETE /billing/quotes/:id
func (h *QuoteHandler) Delete(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	quoteID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid quote ID")
		return
	}

	if err := h.quoteService.Delete(c.Request.Context(), company, quoteID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SubmitForValidation handles POST /billing/quotes/:id/submit
func (h *QuoteHandler) SubmitForValidation(c *gin.Context) {
	h.transition(c, func(company, quoteID uuid.UUID) (*billingapp.QuoteResponse, error) {
		return h.quoteService.SubmitForValidation(c.Request.Context(), company, quoteID)
	})
}

// ApproveValidation handles POST /billing/quotes/:id/approve
func (h *QuoteHandler) ApproveValidation(c *gin.Context) {
	var req billingapp.ValidationDecisionRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		h.BindError(c, err)
		return
	}
	h.transition(c, func(company, quoteID uuid.UUID) (*billingapp.QuoteResponse, error) {
		return h.quoteService.ApproveValidation(c.Request.Context(), company, quoteID, req)
	})
}

// RejectValidation handles POST /billing/quotes/:id/reject-validation
func (h *QuoteHandler) RejectValidation(c *gin.Context) {
	var req billingapp.ValidationDecisionRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		h.BindError(c, err)
		return
	}
	h.transition(c, func(company, quoteID uuid.UUID) (*billingapp.QuoteResponse, error) {
		return h.quoteService.RejectValidation(c.Request.Context(), company, quoteID, req)
	})
}

// Send handles POST /billing/quotes/:id/send
func (h *QuoteHandler) Send(c *gin.Context) {
	var req billingapp.SendQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	h.transition(c, func(company, quoteID uuid.UUID) (*billingapp.QuoteResponse, error) {
		return h.quoteService.Send(c.Request.Context(), company, quoteID, req)
	})
}

// Accept handles POST /billing/quotes/:id/accept
func (h *QuoteHandler) Accept(c *gin.Context) {
	h.transition(c, func(company, quoteID uuid.UUID) (*billingapp.QuoteResponse, error) {
		return h.quoteService.Accept(c.Request.Context(), company, quoteID)
	})
}

// Reject handles POST /billing/quotes/:id/reject
func (h *QuoteHandler) Reject(c *gin.Context) {
	h.transition(c, func(company, quoteID uuid.UUID) (*billingapp.QuoteResponse, error) {
		return h.quoteService.Reject(c.Request.Context(), company, quoteID)
	})
}

// Expire handles POST /billing/quotes/:id/expire
func (h *QuoteHandler) Expire(c *gin.Context) {
	h.transition(c, func(company, quoteID uuid.UUID) (*billingapp.QuoteResponse, error) {
		return h.quoteService.Expire(c.Request.Context(), company, quoteID)
	})
}

// Convert handles POST /billing/quotes/:id/convert
func (h *QuoteHandler) Convert(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	quoteID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid quote ID")
		return
	}

	var req ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	invoice, err := h.quoteService.Convert(c.Request.Context(), company, quoteID, req.DueDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, invoice)
}

func (h *QuoteHandler) transition(c *gin.Context, fn func(company, quoteID uuid.UUID) (*billingapp.QuoteResponse, error)) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	quoteID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid quote ID")
		return
	}

	quote, err := fn(company, quoteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, quote)
}
