package handler

import (
	inventoryapp "github.com/fatoora/backend/internal/application/inventory"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StockCountHandler exposes the stock count API endpoints
type StockCountHandler struct {
	BaseHandler
	stockCountService *inventoryapp.StockCountService
}

// NewStockCountHandler creates a new StockCountHandler
func NewStockCountHandler(stockCountService *inventoryapp.StockCountService) *StockCountHandler {
	return &StockCountHandler{stockCountService: stockCountService}
}

// Create handles POST /inventory/counts
func (h *StockCountHandler) Create(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	var req inventoryapp.CreateStockCountRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		h.BindError(c, err)
		return
	}

	count, err := h.stockCountService.Create(c.Request.Context(), company, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, count)
}

// GetByID handles GET /inventory/counts/:id
func (h *StockCountHandler) GetByID(c *gin.Context) {
	h.transition(c, func(company, countID uuid.UUID) (*inventoryapp.StockCountResponse, error) {
		return h.stockCountService.GetByID(c.Request.Context(), company, countID)
	})
}

// List handles GET /inventory/counts
func (h *StockCountHandler) List(c *gin.Context) {
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

	counts, err := h.stockCountService.List(c.Request.Context(), company, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, counts)
}

// Start handles POST /inventory/counts/:id/start
func (h *StockCountHandler) Start(c *gin.Context) {
	h.transition(c, func(company, countID uuid.UUID) (*inventoryapp.StockCountResponse, error) {
		return h.stockCountService.Start(c.Request.Context(), company, countID)
	})
}

// RecordCount handles POST /inventory/counts/:id/record
func (h *StockCountHandler) RecordCount(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	countID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid stock count ID")
		return
	}

	var req inventoryapp.RecordCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	count, err := h.stockCountService.RecordCount(c.Request.Context(), company, countID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, count)
}

// Complete handles POST /inventory/counts/:id/complete
func (h *StockCountHandler) Complete(c *gin.Context) {
	h.transition(c, func(company, countID uuid.UUID) (*inventoryapp.StockCountResponse, error) {
		return h.stockCountService.Complete(c.Request.Context(), company, countID)
	})
}

// Cancel handles POST /inventory/counts/:id/cancel
func (h *StockCountHandler) Cancel(c *gin.Context) {
	h.transition(c, func(company, countID uuid.UUID) (*inventoryapp.StockCountResponse, error) {
		return h.stockCountService.Cancel(c.Request.Context(), company, countID)
	})
}

// Delete handles DELETE /inventory/counts/:id
func (h *StockCountHandler) Delete(c *gin.Context) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	countID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid stock count ID")
		return
	}

	if err := h.stockCountService.Delete(c.Request.Context(), company, countID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *StockCountHandler) transition(c *gin.Context, fn func(company, countID uuid.UUID) (*inventoryapp.StockCountResponse, error)) {
	company, ok := companyID(c)
	if !ok {
		h.MissingCompany(c)
		return
	}

	countID, err := pathID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid stock count ID")
		return
	}

	count, err := fn(company, countID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, count)
}
