package tax

import (
	"time"

	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TaxRule binds taxes to product and client categories with a priority.
// An empty category constraint matches everything. Exactly one rule - or the
// company default tax - applies per (product, client) pair; resolution order
// is priority descending with a deterministic tie-break on creation time
// then ID.
type TaxRule struct {
	shared.CompanyAggregateRoot
	Name               string    `gorm:"type:varchar(100);not null"`
	TaxIDs             shared.UUIDSlice `gorm:"type:jsonb;not null"`
	ProductCategoryIDs shared.UUIDSlice `gorm:"type:jsonb"`
	ClientCategoryIDs  shared.UUIDSlice `gorm:"type:jsonb"`
	Priority           int       `gorm:"not null;default:0;index"`
	Active             bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (TaxRule) TableName() string {
	return "tax_rules"
}

// NewTaxRule creates a new tax rule
func NewTaxRule(companyID uuid.UUID, name string, taxIDs []uuid.UUID, priority int) (*TaxRule, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Tax rule name cannot be empty")
	}
	if len(taxIDs) == 0 {
		return nil, shared.NewDomainError("INVALID_TAXES", "Tax rule must reference at least one tax")
	}

	return &TaxRule{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Name:                 name,
		TaxIDs:               taxIDs,
		Priority:             priority,
		Active:               true,
	}, nil
}

// ConstrainProductCategories restricts the rule to products in the given categories
func (r *TaxRule) ConstrainProductCategories(categoryIDs []uuid.UUID) {
	r.ProductCategoryIDs = categoryIDs
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// ConstrainClientCategories restricts the rule to clients in the given categories
func (r *TaxRule) ConstrainClientCategories(categoryIDs []uuid.UUID) {
	r.ClientCategoryIDs = categoryIDs
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// Deactivate deactivates the rule
func (r *TaxRule) Deactivate() {
	r.Active = false
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// Matches reports whether the rule applies to the given product and client
// categories. A nil category pointer means the product/client has no
// category, which only matches unconstrained rules.
func (r *TaxRule) Matches(productCategoryID, clientCategoryID *uuid.UUID) bool {
	if len(r.ProductCategoryIDs) > 0 {
		if productCategoryID == nil || !r.ProductCategoryIDs.Contains(*productCategoryID) {
			return false
		}
	}
	if len(r.ClientCategoryIDs) > 0 {
		if clientCategoryID == nil || !r.ClientCategoryIDs.Contains(*clientCategoryID) {
			return false
		}
	}
	return true
}

// FirstTaxID returns the first referenced tax, which is the tax applied when
// the rule wins resolution.
func (r *TaxRule) FirstTaxID() uuid.UUID {
	if len(r.TaxIDs) == 0 {
		return uuid.Nil
	}
	return r.TaxIDs[0]
}
