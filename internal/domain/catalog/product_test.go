package catalog

import (
	"testing"

	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/fatoora/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	companyID := uuid.New()
	price := valueobject.NewMoneyMAD(decimal.NewFromInt(100))
	vat := decimal.NewFromInt(20)

	t.Run("successful creation", func(t *testing.T) {
		p, err := NewProduct(companyID, "prd-001", "Office Chair", "pcs", price, vat)
		require.NoError(t, err)
		assert.Equal(t, "PRD-001", p.Code)
		assert.Equal(t, "Office Chair", p.Name)
		assert.False(t, p.IsService)
		assert.False(t, p.ManageStock)
		assert.True(t, p.CurrentStock.IsZero())
		assert.Equal(t, ProductStatusActive, p.Status)
		assert.Len(t, p.GetDomainEvents(), 1)
	})

	t.Run("empty code", func(t *testing.T) {
		_, err := NewProduct(companyID, "", "Chair", "pcs", price, vat)
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, "INVALID_CODE"))
	})

	t.Run("negative price", func(t *testing.T) {
		neg := valueobject.NewMoneyMAD(decimal.NewFromInt(-1))
		_, err := NewProduct(companyID, "PRD-002", "Chair", "pcs", neg, vat)
		require.Error(t, err)
	})

	t.Run("negative vat rate", func(t *testing.T) {
		_, err := NewProduct(companyID, "PRD-002", "Chair", "pcs", price, decimal.NewFromInt(-5))
		require.Error(t, err)
	})
}

func TestNewService(t *testing.T) {
	s, err := NewService(uuid.New(), "SVC-001", "Consulting", "h", valueobject.NewMoneyMAD(decimal.NewFromInt(500)), decimal.NewFromInt(20))
	require.NoError(t, err)
	assert.True(t, s.IsService)
	assert.False(t, s.IsStockManaged())

	t.Run("services cannot manage stock", func(t *testing.T) {
		err := s.EnableStockManagement()
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, "NOT_STOCK_MANAGED"))
	})
}

func TestApplyStockChange(t *testing.T) {
	companyID := uuid.New()
	price := valueobject.NewMoneyMAD(decimal.NewFromInt(10))

	newManaged := func(t *testing.T) *Product {
		p, err := NewProduct(companyID, "PRD-001", "Widget", "pcs", price, decimal.NewFromInt(20))
		require.NoError(t, err)
		require.NoError(t, p.EnableStockManagement())
		return p
	}

	t.Run("increase then decrease", func(t *testing.T) {
		p := newManaged(t)

		prev, cur, err := p.ApplyStockChange(decimal.NewFromInt(10))
		require.NoError(t, err)
		assert.True(t, prev.IsZero())
		assert.True(t, cur.Equal(decimal.NewFromInt(10)))

		prev, cur, err = p.ApplyStockChange(decimal.NewFromInt(-3))
		require.NoError(t, err)
		assert.True(t, prev.Equal(decimal.NewFromInt(10)))
		assert.True(t, cur.Equal(decimal.NewFromInt(7)))
		assert.True(t, p.CurrentStock.Equal(decimal.NewFromInt(7)))
	})

	t.Run("cannot go negative", func(t *testing.T) {
		p := newManaged(t)
		_, _, err := p.ApplyStockChange(decimal.NewFromInt(-1))
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, "INSUFFICIENT_STOCK"))
		assert.True(t, p.CurrentStock.IsZero())
	})

	t.Run("not stock managed", func(t *testing.T) {
		p, err := NewProduct(companyID, "PRD-002", "Widget", "pcs", price, decimal.NewFromInt(20))
		require.NoError(t, err)
		_, _, err = p.ApplyStockChange(decimal.NewFromInt(5))
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, "NOT_STOCK_MANAGED"))
	})

	t.Run("below minimum emits event", func(t *testing.T) {
		p := newManaged(t)
		require.NoError(t, p.SetStockThresholds(decimal.NewFromInt(5), decimal.NewFromInt(8)))
		_, _, err := p.ApplyStockChange(decimal.NewFromInt(10))
		require.NoError(t, err)
		p.ClearDomainEvents()

		_, _, err = p.ApplyStockChange(decimal.NewFromInt(-7))
		require.NoError(t, err)

		events := p.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductStockBelowMinimum, events[0].EventType())
		assert.True(t, p.IsBelowMinimum())
		assert.True(t, p.IsBelowAlert())
	})
}
