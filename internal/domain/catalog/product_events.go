package catalog

import (
	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for the catalog domain
const (
	EventTypeProductCreated           = "catalog.product.created"
	EventTypeProductUpdated           = "catalog.product.updated"
	EventTypeProductStockBelowMinimum = "catalog.product.stock_below_minimum"
)

// ProductCreatedEvent is emitted when a product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
	Name string `json:"name"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, "Product", p.ID, p.CompanyID),
		Code:            p.Code,
		Name:            p.Name,
	}
}

// ProductUpdatedEvent is emitted when a product is updated
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
	Name string `json:"name"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(p *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, "Product", p.ID, p.CompanyID),
		Code:            p.Code,
		Name:            p.Name,
	}
}

// ProductStockBelowMinimumEvent is emitted when stock drops below the minimum threshold
type ProductStockBelowMinimumEvent struct {
	shared.BaseDomainEvent
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
}

// NewProductStockBelowMinimumEvent creates a new ProductStockBelowMinimumEvent
func NewProductStockBelowMinimumEvent(p *Product) *ProductStockBelowMinimumEvent {
	return &ProductStockBelowMinimumEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductStockBelowMinimum, "Product", p.ID, p.CompanyID),
		Code:            p.Code,
		Name:            p.Name,
		CurrentStock:    p.CurrentStock,
		MinStock:        p.MinStock,
	}
}
