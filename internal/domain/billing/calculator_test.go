package billing

import (
	"testing"

	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, quantity, unitPrice, vatRate, discount int64) LineItem {
	t.Helper()
	item, err := NewLineItem(uuid.New(), "Widget", "PRD-001", "pcs",
		decimal.NewFromInt(quantity), decimal.NewFromInt(unitPrice),
		decimal.NewFromInt(vatRate), decimal.NewFromInt(discount))
	require.NoError(t, err)
	return *item
}

func TestCalculateTotals(t *testing.T) {
	t.Run("two lines with mixed vat and discount", func(t *testing.T) {
		// 2 x 100 at 20% VAT, 1 x 50 at 0% VAT with 10 discount
		items := []LineItem{
			mustItem(t, 2, 100, 20, 0),
			mustItem(t, 1, 50, 0, 10),
		}

		totals, err := CalculateTotals(items)
		require.NoError(t, err)
		assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(250)), "subtotal = %s", totals.Subtotal)
		assert.True(t, totals.VATAmount.Equal(decimal.NewFromInt(40)), "vat = %s", totals.VATAmount)
		assert.True(t, totals.Discount.Equal(decimal.NewFromInt(10)), "discount = %s", totals.Discount)
		assert.True(t, totals.Total.Equal(decimal.NewFromInt(280)), "total = %s", totals.Total)
	})

	t.Run("vat computed on gross not net of discount", func(t *testing.T) {
		items := []LineItem{mustItem(t, 1, 100, 20, 50)}

		totals, err := CalculateTotals(items)
		require.NoError(t, err)
		// VAT on 100, not on 50
		assert.True(t, totals.VATAmount.Equal(decimal.NewFromInt(20)))
		assert.True(t, totals.Total.Equal(decimal.NewFromInt(70)))
	})

	t.Run("idempotent on identical input", func(t *testing.T) {
		items := []LineItem{
			mustItem(t, 3, 33, 7, 5),
			mustItem(t, 2, 100, 20, 0),
		}

		first, err := CalculateTotals(items)
		require.NoError(t, err)
		second, err := CalculateTotals(items)
		require.NoError(t, err)
		assert.True(t, first.Subtotal.Equal(second.Subtotal))
		assert.True(t, first.VATAmount.Equal(second.VATAmount))
		assert.True(t, first.Discount.Equal(second.Discount))
		assert.True(t, first.Total.Equal(second.Total))
	})

	t.Run("total clamped to zero", func(t *testing.T) {
		item := mustItem(t, 1, 10, 0, 0)
		item.Discount = decimal.NewFromInt(50)

		totals, err := CalculateTotals([]LineItem{item})
		require.NoError(t, err)
		assert.True(t, totals.Total.IsZero())
	})

	t.Run("empty items rejected", func(t *testing.T) {
		_, err := CalculateTotals(nil)
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, "VALIDATION_ERROR"))
	})

	t.Run("non-positive quantity rejected", func(t *testing.T) {
		item := mustItem(t, 1, 10, 0, 0)
		item.Quantity = decimal.Zero

		_, err := CalculateTotals([]LineItem{item})
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, "VALIDATION_ERROR"))
	})

	t.Run("decimal quantities keep precision", func(t *testing.T) {
		item, err := NewLineItem(uuid.New(), "Cable", "PRD-002", "m",
			decimal.RequireFromString("2.5"), decimal.RequireFromString("19.99"),
			decimal.NewFromInt(20), decimal.Zero)
		require.NoError(t, err)

		totals, err := CalculateTotals([]LineItem{*item})
		require.NoError(t, err)
		assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString("49.975")))
		assert.True(t, totals.VATAmount.Equal(decimal.RequireFromString("9.995")))
		assert.True(t, totals.Total.Equal(decimal.RequireFromString("59.97")))
	})
}

func TestLineItemValidation(t *testing.T) {
	t.Run("negative discount", func(t *testing.T) {
		_, err := NewLineItem(uuid.New(), "Widget", "PRD-001", "pcs",
			decimal.NewFromInt(1), decimal.NewFromInt(10),
			decimal.NewFromInt(20), decimal.NewFromInt(-1))
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, "VALIDATION_ERROR"))
	})

	t.Run("per-line total clamps to zero", func(t *testing.T) {
		item, err := NewLineItem(uuid.New(), "Widget", "PRD-001", "pcs",
			decimal.NewFromInt(1), decimal.NewFromInt(10),
			decimal.Zero, decimal.NewFromInt(25))
		require.NoError(t, err)
		assert.True(t, item.Total.IsZero())
	})
}
