package tax

import (
	"context"

	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TaxRepository defines the interface for tax persistence
type TaxRepository interface {
	// FindByID finds a tax by its ID within a company
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*Tax, error)

	// FindAll finds all taxes for a company
	FindAll(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Tax, error)

	// FindDefault finds the company's default active tax
	FindDefault(ctx context.Context, companyID uuid.UUID) (*Tax, error)

	// Save creates or updates a tax
	Save(ctx context.Context, tax *Tax) error

	// Delete deletes a tax within a company
	Delete(ctx context.Context, companyID, id uuid.UUID) error
}

// TaxRuleRepository defines the interface for tax rule persistence
type TaxRuleRepository interface {
	// FindByID finds a tax rule by its ID within a company
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*TaxRule, error)

	// FindAll finds all tax rules for a company
	FindAll(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]TaxRule, error)

	// FindActiveOrdered returns the company's active rules ordered by
	// priority descending, then creation time ascending, then ID ascending.
	FindActiveOrdered(ctx context.Context, companyID uuid.UUID) ([]TaxRule, error)

	// Save creates or updates a tax rule
	Save(ctx context.Context, rule *TaxRule) error

	// Delete deletes a tax rule within a company
	Delete(ctx context.Context, companyID, id uuid.UUID) error
}
