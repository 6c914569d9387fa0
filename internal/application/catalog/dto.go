package catalog

import (
	"time"

	"github.com/fatoora/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest is the request to create a product or service
type CreateProductRequest struct {
	Code        string          `json:"code" binding:"required,max=50"`
	Name        string          `json:"name" binding:"required,max=200"`
	Description string          `json:"description"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	Unit        string          `json:"unit" binding:"required,max=20"`
	Price       decimal.Decimal `json:"price"`
	VATRate     decimal.Decimal `json:"vat_rate"`
	IsService   bool            `json:"is_service"`
	ManageStock bool            `json:"manage_stock"`
	MinStock    decimal.Decimal `json:"min_stock"`
	AlertStock  decimal.Decimal `json:"alert_stock"`
}

// UpdateProductRequest is the request to update a product
type UpdateProductRequest struct {
	Name        string           `json:"name" binding:"required,max=200"`
	Description string           `json:"description"`
	CategoryID  *uuid.UUID       `json:"category_id,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	VATRate     *decimal.Decimal `json:"vat_rate,omitempty"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID           uuid.UUID       `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	CategoryID   *uuid.UUID      `json:"category_id,omitempty"`
	Unit         string          `json:"unit"`
	Price        decimal.Decimal `json:"price"`
	VATRate      decimal.Decimal `json:"vat_rate"`
	IsService    bool            `json:"is_service"`
	ManageStock  bool            `json:"manage_stock"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	AlertStock   decimal.Decimal `json:"alert_stock"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToProductResponse maps a product to its response
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Code:         p.Code,
		Name:         p.Name,
		Description:  p.Description,
		CategoryID:   p.CategoryID,
		Unit:         p.Unit,
		Price:        p.Price,
		VATRate:      p.VATRate,
		IsService:    p.IsService,
		ManageStock:  p.ManageStock,
		CurrentStock: p.CurrentStock,
		MinStock:     p.MinStock,
		AlertStock:   p.AlertStock,
		Status:       string(p.Status),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToProductResponses maps products to responses
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, ToProductResponse(&products[i]))
	}
	return out
}

// CreateCategoryRequest is the request to create a product category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

// CategoryResponse represents a product category in API responses
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToCategoryResponse maps a category to its response
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

// ToCategoryResponses maps categories to responses
func ToCategoryResponses(categories []catalog.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, ToCategoryResponse(&categories[i]))
	}
	return out
}
