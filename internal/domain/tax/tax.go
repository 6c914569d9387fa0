package tax

import (
	"time"

	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxType represents the kind of tax
type TaxType string

const (
	TaxTypeVAT   TaxType = "vat"
	TaxTypeStamp TaxType = "stamp"
)

// AppliesTo restricts what a tax can be attached to
type AppliesTo string

const (
	AppliesToProducts AppliesTo = "products"
	AppliesToServices AppliesTo = "services"
	AppliesToAll      AppliesTo = "all"
)

// Tax represents a tax rate configured by a company
type Tax struct {
	shared.CompanyAggregateRoot
	Name      string          `gorm:"type:varchar(100);not null"`
	Rate      decimal.Decimal `gorm:"type:decimal(6,3);not null"` // percentage
	Type      TaxType         `gorm:"type:varchar(20);not null;default:'vat'"`
	AppliesTo AppliesTo       `gorm:"type:varchar(20);not null;default:'all'"`
	IsDefault bool            `gorm:"not null;default:false"`
	Active    bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Tax) TableName() string {
	return "taxes"
}

// NewTax creates a new tax
func NewTax(companyID uuid.UUID, name string, rate decimal.Decimal, taxType TaxType, appliesTo AppliesTo) (*Tax, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Tax name cannot be empty")
	}
	if rate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Tax rate cannot be negative")
	}

	return &Tax{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Name:                 name,
		Rate:                 rate,
		Type:                 taxType,
		AppliesTo:            appliesTo,
		Active:               true,
	}, nil
}

// MarkDefault marks this tax as the company default
func (t *Tax) MarkDefault() {
	t.IsDefault = true
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// UnmarkDefault removes the default flag
func (t *Tax) UnmarkDefault() {
	t.IsDefault = false
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// Deactivate deactivates the tax
func (t *Tax) Deactivate() {
	t.Active = false
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}
