package handler

import (
	billingapp "github.com/fatoora/backend/internal/application/billing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProformaHandler exposes the proforma invoice API endpoints
type ProformaHandler struct {
	BaseHandler
	proformaService *billingapp.ProformaService
}

// NewProformaHandler creates a new ProformaHandler
func NewProformaHandler(proformaService *billingapp.ProformaService) *ProformaHandler {
	return &ProformaHandler{proformaService: proformaService}
}

// Create handles POST /billing/proformas
func (h *ProformaHandler) Create(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	var req billingapp.CreateProformaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	proforma, err := h.proformaService.Create(c.Request.Context(), company, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, proforma)
}

// GetByID handles GET /billing/proformas/:id
func (h *ProformaHandler) GetByID(c *gin.Context) {
	h.transition(c, func(company, proformaID uuid.UUID) (*billingapp.ProformaResponse, error) {
		return h.proformaService.GetByID(c.Request.Context(), company, proformaID)
	})
}

// List handles GET /billing/proformas
func (h *ProformaHandler) List(c *gin.Context) {
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

	proformas, err := h.proformaService.List(c.Request.Context(), company, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, proformas)
}

// Update handles PUT /billing/proformas/:id
func (h *ProformaHandler) Update(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	proformaID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid proforma ID")
		return
	}

	var req billingapp.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	proforma, err := h.proformaService.Update(c.Request.Context(), company, proformaID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, proforma)
}

// Delete handles DELETE /billing/proformas/:id
func (h *ProformaHandler) Delete(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	proformaID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid proforma ID")
		return
	}

	if err := h.proformaService.Delete(c.Request.Context(), company, proformaID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Send handles POST /billing/proformas/:id/send
func (h *ProformaHandler) Send(c *gin.Context) {
	h.transition(c, func(company, proformaID uuid.UUID) (*billingapp.ProformaResponse, error) {
		return h.proformaService.Send(c.Request.Context(), company, proformaID)
	})
}

// Expire handles POST /billing/proformas/:id/expire
func (h *ProformaHandler) Expire(c *gin.Context) {
	h.transition(c, func(company, proformaID uuid.UUID) (*billingapp.ProformaResponse, error) {
		return h.proformaService.Expire(c.Request.Context(), company, proformaID)
	})
}

// Cancel handles POST /billing/proformas/:id/cancel
func (h *ProformaHandler) Cancel(c *gin.Context) {
	h.transition(c, func(company, proformaID uuid.UUID) (*billingapp.ProformaResponse, error) {
		return h.proformaService.Cancel(c.Request.Context(), company, proformaID)
	})
}

// Convert handles POST /billing/proformas/:id/convert
func (h *ProformaHandler) Convert(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	proformaID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid proforma ID")
		return
	}

	var req ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	invoice, err := h.proformaService.Convert(c.Request.Context(), company, proformaID, req.DueDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, invoice)
}

func (h *ProformaHandler) transition(c *gin.Context, fn func(company, proformaID uuid.UUID) (*billingapp.ProformaResponse, error)) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	proformaID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid proforma ID")
		return
	}

	proforma, err := fn(company, proformaID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, proforma)
}
