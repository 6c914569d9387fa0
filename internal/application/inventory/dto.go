package inventory

import (
	"time"

	"github.com/fatoora/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordMovementRequest is the request to record a manual stock movement
type RecordMovementRequest struct {
	ProductID  uuid.UUID       `json:"product_id" binding:"required"`
	Type       string          `json:"type" binding:"required,oneof=purchase sale return_customer return_supplier adjustment transfer inventory"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
	LocationID *uuid.UUID      `json:"location_id,omitempty"`
	Reason     string          `json:"reason"`
}

// CheckStockRequest asks whether a set of demands can be satisfied
type CheckStockRequest struct {
	Items []StockRequirementRequest `json:"items" binding:"required,min=1,dive"`
}

// StockRequirementRequest is one line of a stock availability check
type StockRequirementRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
}

// MovementResponse represents a stock movement in API responses
type MovementResponse struct {
	ID            uuid.UUID       `json:"id"`
	ProductID     uuid.UUID       `json:"product_id"`
	ProductName   string          `json:"product_name"`
	ProductCode   string          `json:"product_code"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	PreviousStock decimal.Decimal `json:"previous_stock"`
	NewStock      decimal.Decimal `json:"new_stock"`
	LocationID    *uuid.UUID      `json:"location_id,omitempty"`
	Reason        string          `json:"reason,omitempty"`
	ReferenceID   *uuid.UUID      `json:"reference_id,omitempty"`
	ReferenceType string          `json:"reference_type,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToMovementResponse maps a movement to its response
func ToMovementResponse(m *inventory.StockMovement) MovementResponse {
	return MovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		ProductName:   m.ProductName,
		ProductCode:   m.ProductCode,
		Type:          m.Type.String(),
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		LocationID:    m.LocationID,
		Reason:        m.Reason,
		ReferenceID:   m.ReferenceID,
		ReferenceType: string(m.ReferenceType),
		CreatedAt:     m.CreatedAt,
	}
}

// ToMovementResponses maps movements to responses
func ToMovementResponses(movements []inventory.StockMovement) []MovementResponse {
	out := make([]MovementResponse, 0, len(movements))
	for i := range movements {
		out = append(out, ToMovementResponse(&movements[i]))
	}
	return out
}

// InsufficientItemResponse is one unsatisfiable line of a stock check
type InsufficientItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	Requested   decimal.Decimal `json:"requested"`
	Available   decimal.Decimal `json:"available"`
}

// CheckStockResponse is the outcome of a stock availability check
type CheckStockResponse struct {
	Satisfiable  bool                       `json:"satisfiable"`
	Insufficient []InsufficientItemResponse `json:"insufficient,omitempty"`
}

// CreateStockCountRequest is the request to open a count session
type CreateStockCountRequest struct {
	LocationID *uuid.UUID `json:"location_id,omitempty"`
	Notes      string     `json:"notes"`
}

// RecordCountRequest records the physical count for one product
type RecordCountRequest struct {
	ProductID      uuid.UUID       `json:"product_id" binding:"required"`
	ActualQuantity decimal.Decimal `json:"actual_quantity"`
}

// StockCountItemResponse is one line of a count session in responses
type StockCountItemResponse struct {
	ProductID        uuid.UUID       `json:"product_id"`
	ProductName      string          `json:"product_name"`
	ProductCode      string          `json:"product_code"`
	Unit             string          `json:"unit"`
	ExpectedQuantity decimal.Decimal `json:"expected_quantity"`
	ActualQuantity   decimal.Decimal `json:"actual_quantity"`
	Counted          bool            `json:"counted"`
	Difference       decimal.Decimal `json:"difference"`
	CountedAt        *time.Time      `json:"counted_at,omitempty"`
}

// StockCountResponse represents a count session in API responses
type StockCountResponse struct {
	ID          uuid.UUID                `json:"id"`
	Number      string                   `json:"number"`
	LocationID  *uuid.UUID               `json:"location_id,omitempty"`
	Status      string                   `json:"status"`
	Items       []StockCountItemResponse `json:"items"`
	Notes       string                   `json:"notes"`
	StartedAt   *time.Time               `json:"started_at,omitempty"`
	CompletedAt *time.Time               `json:"completed_at,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// ToStockCountResponse maps a count session to its response
func ToStockCountResponse(sc *inventory.StockCount) StockCountResponse {
	items := make([]StockCountItemResponse, 0, len(sc.Items))
	for i := range sc.Items {
		item := &sc.Items[i]
		items = append(items, StockCountItemResponse{
			ProductID:        item.ProductID,
			ProductName:      item.ProductName,
			ProductCode:      item.ProductCode,
			Unit:             item.Unit,
			ExpectedQuantity: item.ExpectedQuantity,
			ActualQuantity:   item.ActualQuantity,
			Counted:          item.IsCounted(),
			Difference:       item.Difference(),
			CountedAt:        item.CountedAt,
		})
	}
	return StockCountResponse{
		ID:          sc.ID,
		Number:      sc.Number,
		LocationID:  sc.LocationID,
		Status:      sc.Status.String(),
		Items:       items,
		Notes:       sc.Notes,
		StartedAt:   sc.StartedAt,
		CompletedAt: sc.CompletedAt,
		CreatedAt:   sc.CreatedAt,
		UpdatedAt:   sc.UpdatedAt,
	}
}

// ToStockCountResponses maps count sessions to responses
func ToStockCountResponses(counts []inventory.StockCount) []StockCountResponse {
	out := make([]StockCountResponse, 0, len(counts))
	for i := range counts {
		out = append(out, ToStockCountResponse(&counts[i]))
	}
	return out
}
