package inventory

import (
	"fmt"

	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementType represents the type of stock movement
type MovementType string

const (
	MovementTypePurchase       MovementType = "purchase"
	MovementTypeSale           MovementType = "sale"
	MovementTypeReturnCustomer MovementType = "return_customer"
	MovementTypeReturnSupplier MovementType = "return_supplier"
	MovementTypeAdjustment     MovementType = "adjustment"
	MovementTypeTransfer       MovementType = "transfer"
	MovementTypeInventory      MovementType = "inventory"
)

// String returns the string representation of MovementType
func (t MovementType) String() string {
	return string(t)
}

// IsValid returns true if the movement type is valid
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypePurchase, MovementTypeSale, MovementTypeReturnCustomer,
		MovementTypeReturnSupplier, MovementTypeAdjustment, MovementTypeTransfer,
		MovementTypeInventory:
		return true
	}
	return false
}

// ReferenceType identifies the document a movement originated from
type ReferenceType string

const (
	ReferenceTypeInvoice    ReferenceType = "invoice"
	ReferenceTypeCreditNote ReferenceType = "credit_note"
	ReferenceTypeStockCount ReferenceType = "stock_count"
	ReferenceTypeManual     ReferenceType = "manual"
)

// StockMovement is an immutable, append-only record of a signed stock change.
// It is the sole mechanism for altering a product's stock: the current stock
// level is always the NewStock of the latest movement for that product.
// Invariant: NewStock = PreviousStock + Quantity.
type StockMovement struct {
	shared.CompanyAggregateRoot
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName   string          `gorm:"type:varchar(200)"`
	ProductCode   string          `gorm:"type:varchar(50)"`
	Type          MovementType    `gorm:"type:varchar(20);not null;index"`
	Quantity      decimal.Decimal `gorm:"type:decimal(14,4);not null"` // signed
	LocationID    *uuid.UUID      `gorm:"type:uuid;index"`
	PreviousStock decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	NewStock      decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Reason        string          `gorm:"type:text"`
	ReferenceID   *uuid.UUID      `gorm:"type:uuid;index"`
	ReferenceType ReferenceType   `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement creates a new stock movement record
func NewStockMovement(companyID, productID uuid.UUID, productName, productCode string, movementType MovementType, quantity, previousStock, newStock decimal.Decimal, locationID *uuid.UUID, reason string, referenceID *uuid.UUID, referenceType ReferenceType) (*StockMovement, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Product ID cannot be empty")
	}
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", fmt.Sprintf("Invalid movement type %q", movementType))
	}
	if quantity.IsZero() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Movement quantity cannot be zero")
	}
	if !newStock.Equal(previousStock.Add(quantity)) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "New stock must equal previous stock plus quantity")
	}
	if newStock.IsNegative() {
		return nil, shared.ErrInsufficientStock
	}

	movement := &StockMovement{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		ProductID:            productID,
		ProductName:          productName,
		ProductCode:          productCode,
		Type:                 movementType,
		Quantity:             quantity,
		LocationID:           locationID,
		PreviousStock:        previousStock,
		NewStock:             newStock,
		Reason:               reason,
		ReferenceID:          referenceID,
		ReferenceType:        referenceType,
	}

	movement.AddDomainEvent(NewStockMovementRecordedEvent(movement))

	return movement, nil
}

// InsufficientStockError reports a stock consumption that exceeds the
// available quantity. It unwraps to the INSUFFICIENT_STOCK domain error.
type InsufficientStockError struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductCode string          `json:"product_code"`
	Requested   decimal.Decimal `json:"requested"`
	Available   decimal.Decimal `json:"available"`
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %s, available %s",
		e.ProductCode, e.Requested, e.Available)
}

// Unwrap lets errors.As resolve the underlying domain error code
func (e *InsufficientStockError) Unwrap() error {
	return shared.ErrInsufficientStock
}

// NewInsufficientStockError creates a new InsufficientStockError
func NewInsufficientStockError(productID uuid.UUID, productCode string, requested, available decimal.Decimal) *InsufficientStockError {
	return &InsufficientStockError{
		ProductID:   productID,
		ProductCode: productCode,
		Requested:   requested,
		Available:   available,
	}
}
