package handler

import (
	partnerapp "github.com/fatoora/backend/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// ClientHandler exposes the client and client category API endpoints
type ClientHandler struct {
	BaseHandler
	partnerService *partnerapp.Service
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(partnerService *partnerapp.Service) *ClientHandler {
	return &ClientHandler{partnerService: partnerService}
}

// Create handles POST /partners/clients
func (h *ClientHandler) Create(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	var req partnerapp.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	client, err := h.partnerService.CreateClient(c.Request.Context(), company, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, client)
}

// GetByID handles GET /partners/clients/:id
func (h *ClientHandler) GetByID(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	clientID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	client, err := h.partnerService.GetClient(c.Request.Context(), company, clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}

// List handles GET /partners/clients
func (h *ClientHandler) List(c *gin.Context) {
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

	page, err := h.partnerService.ListClients(c.Request.Context(), company, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update handles PUT /partners/clients/:id
func (h *ClientHandler) Update(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	clientID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	var req partnerapp.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	client, err := h.partnerService.UpdateClient(c.Request.Context(), company, clientID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}

// Deactivate handles POST /partners/clients/:id/deactivate
func (h *ClientHandler) Deactivate(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	clientID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	if err := h.partnerService.DeactivateClient(c.Request.Context(), company, clientID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Delete handles DELETE /partners/clients/:id
func (h *ClientHandler) Delete(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	clientID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	if err := h.partnerService.DeleteClient(c.Request.Context(), company, clientID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateCategory handles POST /partners/categories
func (h *ClientHandler) CreateCategory(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	var req partnerapp.CreateClientCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	category, err := h.partnerService.CreateCategory(c.Request.Context(), company, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, category)
}

// ListCategories handles GET /partners/categories
func (h *ClientHandler) ListCategories(c *gin.Context) {
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

	categories, err := h.partnerService.ListCategories(c.Request.Context(), company, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// DeleteCategory handles DELETE /partners/categories/:id
func (h *ClientHandler) DeleteCategory(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	categoryID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.partnerService.DeleteCategory(c.Request.Context(), company, categoryID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
