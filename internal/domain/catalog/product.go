package catalog

import (
	"strings"
	"time"

	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/fatoora/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// Product represents a product or service in the catalog.
// It is the aggregate root for product-related operations.
// CurrentStock is only ever mutated through a stock movement recorded by the
// stock ledger; services never carry stock.
type Product struct {
	shared.CompanyAggregateRoot
	Code         string          `gorm:"type:varchar(50);not null;index"`
	Name         string          `gorm:"type:varchar(200);not null"`
	Description  string          `gorm:"type:text"`
	CategoryID   *uuid.UUID      `gorm:"type:uuid;index"`
	LocationID   *uuid.UUID      `gorm:"type:uuid;index"`
	Unit         string          `gorm:"type:varchar(20);not null"`
	Price        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	VATRate      decimal.Decimal `gorm:"type:decimal(6,3);not null;default:0"` // percentage, e.g. 20 for 20%
	IsService    bool            `gorm:"not null;default:false"`
	ManageStock  bool            `gorm:"not null;default:false"`
	CurrentStock decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MinStock     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	AlertStock   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status       ProductStatus   `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(companyID uuid.UUID, code, name, unit string, price valueobject.Money, vatRate decimal.Decimal) (*Product, error) {
	if err := validateProductCode(code); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if unit == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if vatRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_VAT_RATE", "VAT rate cannot be negative")
	}

	product := &Product{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Code:                 strings.ToUpper(code),
		Name:                 name,
		Unit:                 unit,
		Price:                price.Amount(),
		VATRate:              vatRate,
		CurrentStock:         decimal.Zero,
		MinStock:             decimal.Zero,
		AlertStock:           decimal.Zero,
		Status:               ProductStatusActive,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// NewService creates a new service product. Services never carry stock.
func NewService(companyID uuid.UUID, code, name, unit string, price valueobject.Money, vatRate decimal.Decimal) (*Product, error) {
	product, err := NewProduct(companyID, code, name, unit, price, vatRate)
	if err != nil {
		return nil, err
	}
	product.IsService = true
	product.ManageStock = false
	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetCategory assigns the product to a category (nil clears the category)
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetLocation assigns the product to a stock location
func (p *Product) SetLocation(locationID *uuid.UUID) {
	p.LocationID = locationID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// UpdatePrice updates the selling price
func (p *Product) UpdatePrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	p.Price = price.Amount()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// UpdateVATRate updates the product's VAT rate
func (p *Product) UpdateVATRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return shared.NewDomainError("INVALID_VAT_RATE", "VAT rate cannot be negative")
	}

	p.VATRate = rate
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// EnableStockManagement turns on stock tracking for the product.
// Services cannot be stock-managed.
func (p *Product) EnableStockManagement() error {
	if p.IsService {
		return shared.ErrNotStockManaged
	}

	p.ManageStock = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// DisableStockManagement turns off stock tracking for the product
func (p *Product) DisableStockManagement() {
	p.ManageStock = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetStockThresholds sets the minimum and alert stock levels
func (p *Product) SetStockThresholds(minStock, alertStock decimal.Decimal) error {
	if minStock.IsNegative() || alertStock.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Stock thresholds cannot be negative")
	}

	p.MinStock = minStock
	p.AlertStock = alertStock
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// ApplyStockChange applies a signed stock delta and returns the stock level
// before and after. It is the only mutation path for CurrentStock and is
// reserved for the stock ledger: every call pairs with an appended movement.
func (p *Product) ApplyStockChange(quantity decimal.Decimal) (previous, current decimal.Decimal, err error) {
	if !p.IsStockManaged() {
		return decimal.Zero, decimal.Zero, shared.ErrNotStockManaged
	}

	previous = p.CurrentStock
	current = previous.Add(quantity)
	if current.IsNegative() {
		return decimal.Zero, decimal.Zero, shared.ErrInsufficientStock
	}

	p.CurrentStock = current
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	if p.IsBelowMinimum() {
		p.AddDomainEvent(NewProductStockBelowMinimumEvent(p))
	}

	return previous, current, nil
}

// Activate activates the product
func (p *Product) Activate() {
	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Deactivate deactivates the product
func (p *Product) Deactivate() {
	p.Status = ProductStatusInactive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// IsActive returns true if the product is active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// IsStockManaged returns true if the ledger tracks stock for this product
func (p *Product) IsStockManaged() bool {
	return p.ManageStock && !p.IsService
}

// IsBelowMinimum returns true if current stock is below the minimum threshold
func (p *Product) IsBelowMinimum() bool {
	return p.IsStockManaged() && p.MinStock.GreaterThan(decimal.Zero) && p.CurrentStock.LessThan(p.MinStock)
}

// IsBelowAlert returns true if current stock is below the alert threshold
func (p *Product) IsBelowAlert() bool {
	return p.IsStockManaged() && p.AlertStock.GreaterThan(decimal.Zero) && p.CurrentStock.LessThan(p.AlertStock)
}

// GetPriceMoney returns the selling price as Money value object
func (p *Product) GetPriceMoney() valueobject.Money {
	return valueobject.NewMoneyMAD(p.Price)
}

func validateProductCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot exceed 50 characters")
	}
	return nil
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
