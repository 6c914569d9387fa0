package handler

import (
	billingapp "github.com/fatoora/backend/internal/application/billing"
	"github.com/gin-gonic/gin"
)

// SettingsHandler exposes the company billing settings endpoints
type SettingsHandler struct {
	BaseHandler
	settingsService *billingapp.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *billingapp.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get handles GET /settings
func (h *SettingsHandler) Get(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	settings, err := h.settingsService.Get(c.Request.Context(), company)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, settings)
}

// Update handles PUT /settings
func (h *SettingsHandler) Update(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	var req billingapp.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	settings, err := h.settingsService.Update(c.Request.Context(), company, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, settings)
}
