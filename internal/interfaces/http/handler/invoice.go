package handler

import (
	billingapp "github.com/fatoora/backend/internal/application/billing"
	"github.com/gin-gonic/gin"
)

// InvoiceHandler exposes the invoice API endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *billingapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *billingapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// SetFiscalStampRequest toggles the fiscal stamp on a draft invoice
type SetFiscalStampRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// Create handles POST /billing/invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	var req billingapp.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), company, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, invoice)
}

// GetByID handles GET /billing/invoices/:id
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	invoiceID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), company, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// GetByNumber handles GET /billing/invoices/by-number/:number
func (h *InvoiceHandler) GetByNumber(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	invoice, err := h.invoiceService.GetByNumber(c.Request.Context(), company, c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// List handles GET /billing/invoices
func (h *InvoiceHandler) List(c *gin.Context) {
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

	page, err := h.invoiceService.List(c.Request.Context(), company, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// ListByClient handles GET /billing/invoices/by-client/:clientId
func (h *InvoiceHandler) ListByClient(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	clientID, err := pathID(c, "clientId")
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	var filter billingapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	invoices, err := h.invoiceService.ListByClient(c.Request.Context(), company, clientID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoices)
}

// Update handles PUT /billing/invoices/:id
func (h *InvoiceHandler) Update(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	invoiceID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req billingapp.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	invoice, err := h.invoiceService.Update(c.Request.Context(), company, invoiceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// Delete handles DELETE /billing/invoices/:id
func (h *InvoiceHandler) Delete(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	invoiceID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), company, invoiceID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SetFiscalStamp handles POST /billing/invoices/:id/fiscal-stamp
func (h *InvoiceHandler) SetFiscalStamp(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	invoiceID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req SetFiscalStampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	invoice, err := h.invoiceService.SetFiscalStamp(c.Request.Context(), company, invoiceID, *req.Enabled)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// MarkAsDeposit handles POST /billing/invoices/:id/deposit
func (h *InvoiceHandler) MarkAsDeposit(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	invoiceID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req billingapp.MarkDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	invoice, err := h.invoiceService.MarkAsDeposit(c.Request.Context(), company, invoiceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// Send handles POST /billing/invoices/:id/send
func (h *InvoiceHandler) Send(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	invoiceID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req billingapp.SendInvoiceRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		h.BindError(c, err)
		return
	}

	invoice, err := h.invoiceService.Send(c.Request.Context(), company, invoiceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// MarkPaid handles POST /billing/invoices/:id/mark-paid
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	invoiceID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.MarkPaid(c.Request.Context(), company, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// Cancel handles POST /billing/invoices/:id/cancel
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	invoiceID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.Cancel(c.Request.Context(), company, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}
