package inventory

import (
	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for the inventory domain
const (
	EventTypeStockMovementRecorded = "inventory.movement.recorded"
	EventTypeStockCountCreated     = "inventory.stock_count.created"
	EventTypeStockCountStarted     = "inventory.stock_count.started"
	EventTypeStockCountCompleted   = "inventory.stock_count.completed"
)

// StockMovementRecordedEvent is emitted when a movement is appended to the ledger
type StockMovementRecordedEvent struct {
	shared.BaseDomainEvent
	ProductID string          `json:"product_id"`
	Type      string          `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	NewStock  decimal.Decimal `json:"new_stock"`
}

// NewStockMovementRecordedEvent creates a new StockMovementRecordedEvent
func NewStockMovementRecordedEvent(m *StockMovement) *StockMovementRecordedEvent {
	return &StockMovementRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockMovementRecorded, "StockMovement", m.ID, m.CompanyID),
		ProductID:       m.ProductID.String(),
		Type:            string(m.Type),
		Quantity:        m.Quantity,
		NewStock:        m.NewStock,
	}
}

// StockCountCreatedEvent is emitted when a count session is created
type StockCountCreatedEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
}

// NewStockCountCreatedEvent creates a new StockCountCreatedEvent
func NewStockCountCreatedEvent(sc *StockCount) *StockCountCreatedEvent {
	return &StockCountCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockCountCreated, "StockCount", sc.ID, sc.CompanyID),
		Number:          sc.Number,
	}
}

// StockCountStartedEvent is emitted when counting starts
type StockCountStartedEvent struct {
	shared.BaseDomainEvent
	Number    string `json:"number"`
	ItemCount int    `json:"item_count"`
}

// NewStockCountStartedEvent creates a new StockCountStartedEvent
func NewStockCountStartedEvent(sc *StockCount) *StockCountStartedEvent {
	return &StockCountStartedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockCountStarted, "StockCount", sc.ID, sc.CompanyID),
		Number:          sc.Number,
		ItemCount:       len(sc.Items),
	}
}

// StockCountCompletedEvent is emitted when a count session completes
type StockCountCompletedEvent struct {
	shared.BaseDomainEvent
	Number          string `json:"number"`
	AdjustmentCount int    `json:"adjustment_count"`
}

// NewStockCountCompletedEvent creates a new StockCountCompletedEvent
func NewStockCountCompletedEvent(sc *StockCount, adjustments int) *StockCountCompletedEvent {
	return &StockCountCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockCountCompleted, "StockCount", sc.ID, sc.CompanyID),
		Number:          sc.Number,
		AdjustmentCount: adjustments,
	}
}
