package handler

import (
	catalogapp "github.com/fatoora/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// ProductHandler exposes the product and category API endpoints
type ProductHandler struct {
	BaseHandler
	catalogService *catalogapp.Service
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(catalogService *catalogapp.Service) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// Create handles POST /catalog/products
func (h *ProductHandler) Create(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), company, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// GetByID handles GET /catalog/products/:id
func (h *ProductHandler) GetByID(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	productID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), company, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// GetByCode handles GET /catalog/products/by-code/:code
func (h *ProductHandler) GetByCode(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	product, err := h.catalogService.GetProductByCode(c.Request.Context(), company, c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// List handles GET /catalog/products
func (h *ProductHandler) List(c *gin.Context) {
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

	page, err := h.catalogService.ListProducts(c.Request.Context(), company, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update handles PUT /catalog/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	productID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), company, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Deactivate handles POST /catalog/products/:id/deactivate
func (h *ProductHandler) Deactivate(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	productID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.catalogService.DeactivateProduct(c.Request.Context(), company, productID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Delete handles DELETE /catalog/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	productID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.catalogService.DeleteProduct(c.Request.Context(), company, productID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateCategory handles POST /catalog/categories
func (h *ProductHandler) CreateCategory(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	var req catalogapp.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), company, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, category)
}

// ListCategories handles GET /catalog/categories
func (h *ProductHandler) ListCategories(c *gin.Context) {
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

	categories, err := h.catalogService.ListCategories(c.Request.Context(), company, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// DeleteCategory handles DELETE /catalog/categories/:id
func (h *ProductHandler) DeleteCategory(c *gin.Context) {
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

	if err := h.catalogService.DeleteCategory(c.Request.Context(), company, categoryID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
