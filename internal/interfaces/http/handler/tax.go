package handler

import (
	taxapp "github.com/fatoora/backend/internal/application/tax"
	"github.com/gin-gonic/gin"
)

// TaxHandler exposes the tax and tax rule API endpoints
type TaxHandler struct {
	BaseHandler
	taxService *taxapp.Service
}

// NewTaxHandler creates a new TaxHandler
func NewTaxHandler(taxService *taxapp.Service) *TaxHandler {
	return &TaxHandler{taxService: taxService}
}

// CreateTax handles POST /taxes
func (h *TaxHandler) CreateTax(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	var req taxapp.CreateTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	tax, err := h.taxService.CreateTax(c.Request.Context(), company, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tax)
}

// GetTax handles GET /taxes/:id
func (h *TaxHandler) GetTax(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	taxID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tax ID")
		return
	}

	tax, err := h.taxService.GetTax(c.Request.Context(), company, taxID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tax)
}

// ListTaxes handles GET /taxes
func (h *TaxHandler) ListTaxes(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	filter, err := bindFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	taxes, err := h.taxService.ListTaxes(c.Request.Context(), company, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, taxes)
}

// SetDefault handles POST /taxes/:id/set-default
func (h *TaxHandler) SetDefault(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	taxID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tax ID")
		return
	}

	tax, err := h.taxService.SetDefaultTax(c.Request.Context(), company, taxID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tax)
}

// DeactivateTax handles POST /taxes/:id/deactivate
func (h *TaxHandler) DeactivateTax(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	taxID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tax ID")
		return
	}

	if err := h.taxService.DeactivateTax(c.Request.Context(), company, taxID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateRule handles POST /taxes/rules
func (h *TaxHandler) CreateRule(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	var req taxapp.CreateTaxRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	rule, err := h.taxService.CreateRule(c.Request.Context(), company, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, rule)
}

// ListRules handles GET /taxes/rules
func (h *TaxHandler) ListRules(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	filter, err := bindFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	rules, err := h.taxService.ListRules(c.Request.Context(), company, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rules)
}

// DeactivateRule handles POST /taxes/rules/:id/deactivate
func (h *TaxHandler) DeactivateRule(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	ruleID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tax rule ID")
		return
	}

	if err := h.taxService.DeactivateRule(c.Request.Context(), company, ruleID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// DeleteRule handles DELETE /taxes/rules/:id
func (h *TaxHandler) DeleteRule(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	ruleID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tax rule ID")
		return
	}

	if err := h.taxService.DeleteRule(c.Request.Context(), company, ruleID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Resolve handles GET /taxes/resolve
func (h *TaxHandler) Resolve(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	var req taxapp.ResolveRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	tax, err := h.taxService.Resolve(c.Request.Context(), company, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tax)
}
