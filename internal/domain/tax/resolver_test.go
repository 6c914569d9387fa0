package tax

import (
	"context"
	"testing"
	"time"

	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTaxRepo struct {
	taxes      map[uuid.UUID]*Tax
	defaultTax *Tax
}

func (f *fakeTaxRepo) FindByID(_ context.Context, _, id uuid.UUID) (*Tax, error) {
	t, ok := f.taxes[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return t, nil
}

func (f *fakeTaxRepo) FindAll(_ context.Context, _ uuid.UUID, _ shared.Filter) ([]Tax, error) {
	return nil, nil
}

func (f *fakeTaxRepo) FindDefault(_ context.Context, _ uuid.UUID) (*Tax, error) {
	if f.defaultTax == nil {
		return nil, shared.ErrNotFound
	}
	return f.defaultTax, nil
}

func (f *fakeTaxRepo) Save(_ context.Context, _ *Tax) error        { return nil }
func (f *fakeTaxRepo) Delete(_ context.Context, _, _ uuid.UUID) error { return nil }

type fakeRuleRepo struct {
	rules []TaxRule
}

func (f *fakeRuleRepo) FindByID(_ context.Context, _, _ uuid.UUID) (*TaxRule, error) {
	return nil, shared.ErrNotFound
}

func (f *fakeRuleRepo) FindAll(_ context.Context, _ uuid.UUID, _ shared.Filter) ([]TaxRule, error) {
	return f.rules, nil
}

func (f *fakeRuleRepo) FindActiveOrdered(_ context.Context, _ uuid.UUID) ([]TaxRule, error) {
	return f.rules, nil
}

func (f *fakeRuleRepo) Save(_ context.Context, _ *TaxRule) error      { return nil }
func (f *fakeRuleRepo) Delete(_ context.Context, _, _ uuid.UUID) error { return nil }

func mustTax(t *testing.T, companyID uuid.UUID, name string, rate int64) *Tax {
	t.Helper()
	tax, err := NewTax(companyID, name, decimal.NewFromInt(rate), TaxTypeVAT, AppliesToAll)
	require.NoError(t, err)
	return tax
}

func mustRule(t *testing.T, companyID uuid.UUID, name string, taxID uuid.UUID, priority int) *TaxRule {
	t.Helper()
	rule, err := NewTaxRule(companyID, name, []uuid.UUID{taxID}, priority)
	require.NoError(t, err)
	return rule
}

func TestResolverResolve(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	vat20 := mustTax(t, companyID, "TVA 20%", 20)
	vat10 := mustTax(t, companyID, "TVA 10%", 10)
	vat7 := mustTax(t, companyID, "TVA 7%", 7)
	vat20.MarkDefault()

	taxRepo := &fakeTaxRepo{
		taxes: map[uuid.UUID]*Tax{
			vat20.ID: vat20,
			vat10.ID: vat10,
			vat7.ID:  vat7,
		},
		defaultTax: vat20,
	}

	foodCategory := uuid.New()
	retailClients := uuid.New()

	t.Run("highest priority matching rule wins", func(t *testing.T) {
		low := mustRule(t, companyID, "general", vat10.ID, 1)
		high := mustRule(t, companyID, "food", vat7.ID, 10)
		high.ConstrainProductCategories([]uuid.UUID{foodCategory})

		resolver := NewResolver(taxRepo, &fakeRuleRepo{rules: []TaxRule{*low, *high}})

		tax, err := resolver.Resolve(ctx, companyID, &foodCategory, nil)
		require.NoError(t, err)
		assert.Equal(t, vat7.ID, tax.ID)
	})

	t.Run("constrained rule skipped when product uncategorized", func(t *testing.T) {
		high := mustRule(t, companyID, "food", vat7.ID, 10)
		high.ConstrainProductCategories([]uuid.UUID{foodCategory})
		low := mustRule(t, companyID, "general", vat10.ID, 1)

		resolver := NewResolver(taxRepo, &fakeRuleRepo{rules: []TaxRule{*high, *low}})

		tax, err := resolver.Resolve(ctx, companyID, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, vat10.ID, tax.ID)
	})

	t.Run("client constraint must match", func(t *testing.T) {
		rule := mustRule(t, companyID, "retail", vat10.ID, 5)
		rule.ConstrainClientCategories([]uuid.UUID{retailClients})

		resolver := NewResolver(taxRepo, &fakeRuleRepo{rules: []TaxRule{*rule}})

		tax, err := resolver.Resolve(ctx, companyID, nil, &retailClients)
		require.NoError(t, err)
		assert.Equal(t, vat10.ID, tax.ID)

		other := uuid.New()
		tax, err = resolver.Resolve(ctx, companyID, nil, &other)
		require.NoError(t, err)
		assert.Equal(t, vat20.ID, tax.ID, "falls back to default when client category differs")
	})

	t.Run("equal priority breaks tie on creation time then ID", func(t *testing.T) {
		older := mustRule(t, companyID, "older", vat10.ID, 5)
		older.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		newer := mustRule(t, companyID, "newer", vat7.ID, 5)
		newer.CreatedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

		// repository order is deliberately reversed
		resolver := NewResolver(taxRepo, &fakeRuleRepo{rules: []TaxRule{*newer, *older}})

		tax, err := resolver.Resolve(ctx, companyID, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, vat10.ID, tax.ID)

		sameA := mustRule(t, companyID, "a", vat10.ID, 5)
		sameB := mustRule(t, companyID, "b", vat7.ID, 5)
		created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		sameA.CreatedAt = created
		sameB.CreatedAt = created

		resolver = NewResolver(taxRepo, &fakeRuleRepo{rules: []TaxRule{*sameA, *sameB}})
		first, err := resolver.Resolve(ctx, companyID, nil, nil)
		require.NoError(t, err)

		resolver = NewResolver(taxRepo, &fakeRuleRepo{rules: []TaxRule{*sameB, *sameA}})
		second, err := resolver.Resolve(ctx, companyID, nil, nil)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID, "resolution must not depend on repository order")
	})

	t.Run("inactive winning tax falls through to next rule", func(t *testing.T) {
		retired := mustTax(t, companyID, "retired", 14)
		retired.Deactivate()
		repo := &fakeTaxRepo{
			taxes:      map[uuid.UUID]*Tax{retired.ID: retired, vat10.ID: vat10},
			defaultTax: vat20,
		}
		high := mustRule(t, companyID, "high", retired.ID, 10)
		low := mustRule(t, companyID, "low", vat10.ID, 1)

		resolver := NewResolver(repo, &fakeRuleRepo{rules: []TaxRule{*high, *low}})
		tax, err := resolver.Resolve(ctx, companyID, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, vat10.ID, tax.ID)
	})

	t.Run("no rules falls back to default", func(t *testing.T) {
		resolver := NewResolver(taxRepo, &fakeRuleRepo{})
		tax, err := resolver.Resolve(ctx, companyID, &foodCategory, &retailClients)
		require.NoError(t, err)
		assert.Equal(t, vat20.ID, tax.ID)
	})

	t.Run("no default tax configured", func(t *testing.T) {
		resolver := NewResolver(&fakeTaxRepo{taxes: map[uuid.UUID]*Tax{}}, &fakeRuleRepo{})
		_, err := resolver.Resolve(ctx, companyID, nil, nil)
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, "NO_DEFAULT_TAX"))
	})
}
