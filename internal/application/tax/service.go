package tax

import (
	"context"

	"github.com/fatoora/backend/internal/domain/catalog"
	"github.com/fatoora/backend/internal/domain/partner"
	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/fatoora/backend/internal/domain/tax"
	"github.com/google/uuid"
)

// Service handles tax and tax rule configuration and runs resolution for
// concrete product and client pairs.
type Service struct {
	taxRepo     tax.TaxRepository
	ruleRepo    tax.TaxRuleRepository
	productRepo catalog.ProductRepository
	clientRepo  partner.ClientRepository
	resolver    *tax.Resolver
}

// NewService creates a new tax Service
func NewService(taxRepo tax.TaxRepository, ruleRepo tax.TaxRuleRepository, productRepo catalog.ProductRepository, clientRepo partner.ClientRepository) *Service {
	return &Service{
		taxRepo:     taxRepo,
		ruleRepo:    ruleRepo,
		productRepo: productRepo,
		clientRepo:  clientRepo,
		resolver:    tax.NewResolver(taxRepo, ruleRepo),
	}
}

// CreateTax creates a tax. Marking it default clears the flag from the
// previous default so at most one default exists per company.
func (s *Service) CreateTax(ctx context.Context, companyID uuid.UUID, req CreateTaxRequest) (*TaxResponse, error) {
	taxType := tax.TaxType(req.Type)
	if req.Type == "" {
		taxType = tax.TaxTypeVAT
	}
	appliesTo := tax.AppliesTo(req.AppliesTo)
	if req.AppliesTo == "" {
		appliesTo = tax.AppliesToAll
	}

	t, err := tax.NewTax(companyID, req.Name, req.Rate, taxType, appliesTo)
	if err != nil {
		return nil, err
	}

	if req.IsDefault {
		if err := s.clearDefault(ctx, companyID); err != nil {
			return nil, err
		}
		t.MarkDefault()
	}

	if err := s.taxRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	response := ToTaxResponse(t)
	return &response, nil
}

// GetTax retrieves a tax by ID
func (s *Service) GetTax(ctx context.Context, companyID, taxID uuid.UUID) (*TaxResponse, error) {
	t, err := s.taxRepo.FindByID(ctx, companyID, taxID)
	if err != nil {
		return nil, err
	}
	response := ToTaxResponse(t)
	return &response, nil
}

// ListTaxes retrieves the taxes configured by a company
func (s *Service) ListTaxes(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]TaxResponse, error) {
	taxes, err := s.taxRepo.FindAll(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	return ToTaxResponses(taxes), nil
}

// SetDefaultTax makes the given tax the company default
func (s *Service) SetDefaultTax(ctx context.Context, companyID, taxID uuid.UUID) (*TaxResponse, error) {
	t, err := s.taxRepo.FindByID(ctx, companyID, taxID)
	if err != nil {
		return nil, err
	}

	if err := s.clearDefault(ctx, companyID); err != nil {
		return nil, err
	}

	t.MarkDefault()
	if err := s.taxRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	response := ToTaxResponse(t)
	return &response, nil
}

// DeactivateTax deactivates a tax. Resolution skips inactive taxes.
func (s *Service) DeactivateTax(ctx context.Context, companyID, taxID uuid.UUID) error {
	t, err := s.taxRepo.FindByID(ctx, companyID, taxID)
	if err != nil {
		return err
	}
	t.Deactivate()
	return s.taxRepo.Save(ctx, t)
}

// CreateRule creates a tax rule
func (s *Service) CreateRule(ctx context.Context, companyID uuid.UUID, req CreateTaxRuleRequest) (*TaxRuleResponse, error) {
	for _, taxID := range req.TaxIDs {
		if _, err := s.taxRepo.FindByID(ctx, companyID, taxID); err != nil {
			return nil, err
		}
	}

	rule, err := tax.NewTaxRule(companyID, req.Name, req.TaxIDs, req.Priority)
	if err != nil {
		return nil, err
	}
	if len(req.ProductCategoryIDs) > 0 {
		rule.ConstrainProductCategories(req.ProductCategoryIDs)
	}
	if len(req.ClientCategoryIDs) > 0 {
		rule.ConstrainClientCategories(req.ClientCategoryIDs)
	}

	if err := s.ruleRepo.Save(ctx, rule); err != nil {
		return nil, err
	}

	response := ToTaxRuleResponse(rule)
	return &response, nil
}

// ListRules retrieves the tax rules configured by a company
func (s *Service) ListRules(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]TaxRuleResponse, error) {
	rules, err := s.ruleRepo.FindAll(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	return ToTaxRuleResponses(rules), nil
}

// DeactivateRule deactivates a rule
func (s *Service) DeactivateRule(ctx context.Context, companyID, ruleID uuid.UUID) error {
	rule, err := s.ruleRepo.FindByID(ctx, companyID, ruleID)
	if err != nil {
		return err
	}
	rule.Deactivate()
	return s.ruleRepo.Save(ctx, rule)
}

// DeleteRule deletes a rule
func (s *Service) DeleteRule(ctx context.Context, companyID, ruleID uuid.UUID) error {
	return s.ruleRepo.Delete(ctx, companyID, ruleID)
}

// Resolve returns the tax that applies to the given product and client.
// A nil client resolves on the product category alone.
func (s *Service) Resolve(ctx context.Context, companyID uuid.UUID, req ResolveRequest) (*TaxResponse, error) {
	product, err := s.productRepo.FindByID(ctx, companyID, req.ProductID)
	if err != nil {
		return nil, err
	}

	var clientCategoryID *uuid.UUID
	if req.ClientID != nil {
		client, err := s.clientRepo.FindByID(ctx, companyID, *req.ClientID)
		if err != nil {
			return nil, err
		}
		clientCategoryID = client.CategoryID
	}

	resolved, err := s.resolver.Resolve(ctx, companyID, product.CategoryID, clientCategoryID)
	if err != nil {
		return nil, err
	}

	response := ToTaxResponse(resolved)
	return &response, nil
}

// clearDefault removes the default flag from the current default tax, if any
func (s *Service) clearDefault(ctx context.Context, companyID uuid.UUID) error {
	current, err := s.taxRepo.FindDefault(ctx, companyID)
	if err != nil {
		if shared.IsCode(err, "NOT_FOUND") {
			return nil
		}
		return err
	}
	current.UnmarkDefault()
	return s.taxRepo.Save(ctx, current)
}
