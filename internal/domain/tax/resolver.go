package tax

import (
	"context"
	"sort"

	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Resolver picks the tax applicable to a (product, client) pair.
//
// Resolution walks the company's active rules in priority order and returns
// the first tax of the first rule whose category constraints match. When no
// rule matches, the company default tax applies. When there is no default
// either, resolution fails with NO_DEFAULT_TAX.
type Resolver struct {
	taxRepo  TaxRepository
	ruleRepo TaxRuleRepository
}

// NewResolver creates a new tax resolver
func NewResolver(taxRepo TaxRepository, ruleRepo TaxRuleRepository) *Resolver {
	return &Resolver{
		taxRepo:  taxRepo,
		ruleRepo: ruleRepo,
	}
}

// Resolve returns the tax to apply for the given product and client
// categories. Either category may be nil when the product or client is
// uncategorized; such pairs only match unconstrained rules.
func (r *Resolver) Resolve(ctx context.Context, companyID uuid.UUID, productCategoryID, clientCategoryID *uuid.UUID) (*Tax, error) {
	rules, err := r.ruleRepo.FindActiveOrdered(ctx, companyID)
	if err != nil {
		return nil, err
	}
	sortRules(rules)

	for i := range rules {
		if !rules[i].Matches(productCategoryID, clientCategoryID) {
			continue
		}
		tax, err := r.taxRepo.FindByID(ctx, companyID, rules[i].FirstTaxID())
		if err != nil {
			return nil, err
		}
		if !tax.Active {
			continue
		}
		return tax, nil
	}

	return r.ResolveDefault(ctx, companyID)
}

// ResolveDefault returns the company's default tax, or NO_DEFAULT_TAX when
// none is configured.
func (r *Resolver) ResolveDefault(ctx context.Context, companyID uuid.UUID) (*Tax, error) {
	tax, err := r.taxRepo.FindDefault(ctx, companyID)
	if err != nil {
		if shared.IsCode(err, "NOT_FOUND") {
			return nil, shared.ErrNoDefaultTax
		}
		return nil, err
	}
	return tax, nil
}

// sortRules enforces the resolution order even when the repository does not
// guarantee it: priority descending, then creation time ascending, then ID
// ascending as the final deterministic tie-break.
func sortRules(rules []TaxRule) {
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Priority != rules[j].Priority {
			return rules[i].Priority > rules[j].Priority
		}
		if !rules[i].CreatedAt.Equal(rules[j].CreatedAt) {
			return rules[i].CreatedAt.Before(rules[j].CreatedAt)
		}
		return rules[i].ID.String() < rules[j].ID.String()
	})
}
