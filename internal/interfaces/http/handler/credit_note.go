package handler

import (
	billingapp "github.com/fatoora/backend/internal/application/billing"
	"github.com/gin-gonic/gin"
)

// CreditNoteHandler exposes the credit note API endpoints
type CreditNoteHandler struct {
	BaseHandler
	creditNoteService *billingapp.CreditNoteService
}

// NewCreditNoteHandler creates a new CreditNoteHandler
func NewCreditNoteHandler(creditNoteService *billingapp.CreditNoteService) *CreditNoteHandler {
	return &CreditNoteHandler{creditNoteService: creditNoteService}
}

// Create handles POST /billing/credit-notes
func (h *CreditNoteHandler) Create(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	var req billingapp.CreateCreditNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	note, err := h.creditNoteService.Create(c.Request.Context(), company, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, note)
}

// GetByID handles GET /billing/credit-notes/:id
func (h *CreditNoteHandler) GetByID(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	noteID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid credit note ID")
		return
	}

	note, err := h.creditNoteService.GetByID(c.Request.Context(), company, noteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, note)
}

// List handles GET /billing/credit-notes
func (h *CreditNoteHandler) List(c *gin.Context) {
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

	notes, err := h.creditNoteService.List(c.Request.Context(), company, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, notes)
}

// ListByInvoice handles GET /billing/credit-notes/by-invoice/:invoiceId
func (h *CreditNoteHandler) ListByInvoice(c *gin.Context) {
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

	notes, err := h.creditNoteService.ListByInvoice(c.Request.Context(), company, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, notes)
}

// Update handles PUT /billing/credit-notes/:id
func (h *CreditNoteHandler) Update(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	noteID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid credit note ID")
		return
	}

	var req billingapp.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	note, err := h.creditNoteService.Update(c.Request.Context(), company, noteID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, note)
}

// Delete handles DELETE /billing/credit-notes/:id
func (h *CreditNoteHandler) Delete(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	noteID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid credit note ID")
		return
	}

	if err := h.creditNoteService.Delete(c.Request.Context(), company, noteID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Issue handles POST /billing/credit-notes/:id/issue
func (h *CreditNoteHandler) Issue(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	noteID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid credit note ID")
		return
	}

	var req billingapp.IssueCreditNoteRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		h.BindError(c, err)
		return
	}

	note, err := h.creditNoteService.Issue(c.Request.Context(), company, noteID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, note)
}

// Apply handles POST /billing/credit-notes/:id/apply
func (h *CreditNoteHandler) Apply(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	noteID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid credit note ID")
		return
	}

	var req billingapp.ApplyCreditNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	note, err := h.creditNoteService.Apply(c.Request.Context(), company, noteID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, note)
}

// Cancel handles POST /billing/credit-notes/:id/cancel
func (h *CreditNoteHandler) Cancel(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	noteID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid credit note ID")
		return
	}

	note, err := h.creditNoteService.Cancel(c.Request.Context(), company, noteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, note)
}
