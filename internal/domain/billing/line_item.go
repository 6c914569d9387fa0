package billing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem represents a line of any line-item-bearing document (invoice,
// quote, proforma invoice, credit note). Discount is a flat currency amount,
// not a percentage.
type LineItem struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductCode string          `json:"product_code"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	VATRate     decimal.Decimal `json:"vat_rate"` // percentage
	Discount    decimal.Decimal `json:"discount"` // flat amount
	Unit        string          `json:"unit"`
	Total       decimal.Decimal `json:"total"` // clamp0(quantity*unitPrice - discount)
	CreatedAt   time.Time       `json:"created_at"`
}

// NewLineItem creates a new line item with its per-line total
func NewLineItem(productID uuid.UUID, productName, productCode, unit string, quantity, unitPrice, vatRate, discount decimal.Decimal) (*LineItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Unit price cannot be negative")
	}
	if vatRate.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "VAT rate cannot be negative")
	}
	if discount.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Discount cannot be negative")
	}

	item := &LineItem{
		ID:          uuid.New(),
		ProductID:   productID,
		ProductName: productName,
		ProductCode: productCode,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		VATRate:     vatRate,
		Discount:    discount,
		Unit:        unit,
		CreatedAt:   time.Now(),
	}
	item.Total = item.LineTotal()

	return item, nil
}

// GrossAmount returns quantity * unitPrice before discount and VAT
func (i *LineItem) GrossAmount() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

// VATAmount returns the VAT for the line, computed on the gross amount
func (i *LineItem) VATAmount() decimal.Decimal {
	return i.GrossAmount().Mul(i.VATRate).Div(decimal.NewFromInt(100))
}

// LineTotal returns the per-line total, clamped to zero
func (i *LineItem) LineTotal() decimal.Decimal {
	total := i.GrossAmount().Sub(i.Discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// LineItems is a slice of LineItem that implements GORM Scanner/Valuer for JSONB storage
type LineItems []LineItem

// Value implements driver.Valuer interface for GORM to store as JSONB
func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner interface for GORM to read from JSONB
func (l *LineItems) Scan(value interface{}) error {
	if value == nil {
		*l = LineItems{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan LineItems: unsupported type")
	}

	if len(bytes) == 0 {
		*l = LineItems{}
		return nil
	}

	return json.Unmarshal(bytes, l)
}
