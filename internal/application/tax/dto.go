package tax

import (
	"time"

	"github.com/fatoora/backend/internal/domain/tax"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateTaxRequest is the request to create a tax
type CreateTaxRequest struct {
	Name      string          `json:"name" binding:"required,max=100"`
	Rate      decimal.Decimal `json:"rate"`
	Type      string          `json:"type" binding:"omitempty,oneof=vat stamp"`
	AppliesTo string          `json:"applies_to" binding:"omitempty,oneof=products services all"`
	IsDefault bool            `json:"is_default"`
}

// TaxResponse represents a tax in API responses
type TaxResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Rate      decimal.Decimal `json:"rate"`
	Type      string          `json:"type"`
	AppliesTo string          `json:"applies_to"`
	IsDefault bool            `json:"is_default"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToTaxResponse maps a tax to its response
func ToTaxResponse(t *tax.Tax) TaxResponse {
	return TaxResponse{
		ID:        t.ID,
		Name:      t.Name,
		Rate:      t.Rate,
		Type:      string(t.Type),
		AppliesTo: string(t.AppliesTo),
		IsDefault: t.IsDefault,
		Active:    t.Active,
		CreatedAt: t.CreatedAt,
	}
}

// ToTaxResponses maps taxes to responses
func ToTaxResponses(taxes []tax.Tax) []TaxResponse {
	out := make([]TaxResponse, 0, len(taxes))
	for i := range taxes {
		out = append(out, ToTaxResponse(&taxes[i]))
	}
	return out
}

// CreateTaxRuleRequest is the request to create a tax rule
type CreateTaxRuleRequest struct {
	Name               string      `json:"name" binding:"required,max=100"`
	TaxIDs             []uuid.UUID `json:"tax_ids" binding:"required,min=1"`
	ProductCategoryIDs []uuid.UUID `json:"product_category_ids"`
	ClientCategoryIDs  []uuid.UUID `json:"client_category_ids"`
	Priority           int         `json:"priority"`
}

// TaxRuleResponse represents a tax rule in API responses
type TaxRuleResponse struct {
	ID                 uuid.UUID   `json:"id"`
	Name               string      `json:"name"`
	TaxIDs             []uuid.UUID `json:"tax_ids"`
	ProductCategoryIDs []uuid.UUID `json:"product_category_ids"`
	ClientCategoryIDs  []uuid.UUID `json:"client_category_ids"`
	Priority           int         `json:"priority"`
	Active             bool        `json:"active"`
	CreatedAt          time.Time   `json:"created_at"`
}

// ToTaxRuleResponse maps a tax rule to its response
func ToTaxRuleResponse(r *tax.TaxRule) TaxRuleResponse {
	return TaxRuleResponse{
		ID:                 r.ID,
		Name:               r.Name,
		TaxIDs:             r.TaxIDs,
		ProductCategoryIDs: r.ProductCategoryIDs,
		ClientCategoryIDs:  r.ClientCategoryIDs,
		Priority:           r.Priority,
		Active:             r.Active,
		CreatedAt:          r.CreatedAt,
	}
}

// ToTaxRuleResponses maps tax rules to responses
func ToTaxRuleResponses(rules []tax.TaxRule) []TaxRuleResponse {
	out := make([]TaxRuleResponse, 0, len(rules))
	for i := range rules {
		out = append(out, ToTaxRuleResponse(&rules[i]))
	}
	return out
}

// ResolveRequest asks which tax applies to a (product, client) pair
type ResolveRequest struct {
	ProductID uuid.UUID  `form:"product_id" binding:"required"`
	ClientID  *uuid.UUID `form:"client_id"`
}
