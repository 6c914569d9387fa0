package handler

import (
	inventoryapp "github.com/fatoora/backend/internal/application/inventory"
	"github.com/gin-gonic/gin"
)

// StockHandler exposes the stock movement API endpoints
type StockHandler struct {
	BaseHandler
	stockService *inventoryapp.StockService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *inventoryapp.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// RecordMovement handles POST /inventory/movements
func (h *StockHandler) RecordMovement(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	var req inventoryapp.RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	movement, err := h.stockService.RecordMovement(c.Request.Context(), company, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, movement)
}

// CheckStock handles POST /inventory/check
func (h *StockHandler) CheckStock(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	var req inventoryapp.CheckStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.stockService.CheckStock(c.Request.Context(), company, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ListMovements handles GET /inventory/movements
func (h *StockHandler) ListMovements(c *gin.Context) {
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

	movements, err := h.stockService.ListMovements(c.Request.Context(), company, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, movements)
}

// ListMovementsByProduct handles GET /inventory/movements/by-product/:productId
func (h *StockHandler) ListMovementsByProduct(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	productID, err := pathID(c, "productId")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	filter, err := bindFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	movements, err := h.stockService.ListMovementsByProduct(c.Request.Context(), company, productID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, movements)
}

// ListMovementsByReference handles GET /inventory/movements/by-reference/:referenceId
func (h *StockHandler) ListMovementsByReference(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	referenceID, err := pathID(c, "referenceId")
	if err != nil {
		h.BadRequest(c, "Invalid reference ID")
		return
	}

	movements, err := h.stockService.ListMovementsByReference(c.Request.Context(), company, referenceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, movements)
}
