package inventory

import (
	"testing"

	"github.com/fatoora/backend/internal/domain/catalog"
	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/fatoora/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCountProducts(t *testing.T, companyID uuid.UUID) []catalog.Product {
	t.Helper()
	p1 := newManagedProduct(t, companyID, "PRD-001", 10)
	p2 := newManagedProduct(t, companyID, "PRD-002", 4)

	svc, err := catalog.NewService(companyID, "SVC-001", "Consulting", "h",
		valueobject.NewMoneyMAD(decimal.NewFromInt(500)), decimal.NewFromInt(20))
	require.NoError(t, err)

	return []catalog.Product{*p1, *p2, *svc}
}

func TestStockCountStart(t *testing.T) {
	companyID := uuid.New()

	t.Run("snapshots stock-managed products only", func(t *testing.T) {
		sc, err := NewStockCount(companyID, "CNT-2026-0001", nil, "")
		require.NoError(t, err)

		require.NoError(t, sc.Start(newCountProducts(t, companyID)))
		assert.Equal(t, StockCountStatusInProgress, sc.Status)
		require.Len(t, sc.Items, 2, "service excluded from the count")

		for i := range sc.Items {
			assert.False(t, sc.Items[i].IsCounted())
		}
		assert.True(t, sc.Items[0].ExpectedQuantity.Equal(decimal.NewFromInt(10)))
	})

	t.Run("start requires draft", func(t *testing.T) {
		sc, err := NewStockCount(companyID, "CNT-2026-0002", nil, "")
		require.NoError(t, err)
		require.NoError(t, sc.Start(newCountProducts(t, companyID)))

		err = sc.Start(newCountProducts(t, companyID))
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, "INVALID_STATE"))
	})
}

func TestStockCountComplete(t *testing.T) {
	companyID := uuid.New()

	started := func(t *testing.T) *StockCount {
		t.Helper()
		sc, err := NewStockCount(companyID, "CNT-2026-0003", nil, "")
		require.NoError(t, err)
		require.NoError(t, sc.Start(newCountProducts(t, companyID)))
		return sc
	}

	t.Run("refuses while items uncounted", func(t *testing.T) {
		sc := started(t)
		require.NoError(t, sc.RecordCount(sc.Items[0].ProductID, decimal.NewFromInt(10)))

		_, err := sc.Complete()
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, "NOT_ALL_ITEMS_COUNTED"))
		assert.Equal(t, StockCountStatusInProgress, sc.Status)
	})

	t.Run("returns adjustments for differing items", func(t *testing.T) {
		sc := started(t)
		// expected 10, counted 8 -> adjustment -2
		require.NoError(t, sc.RecordCount(sc.Items[0].ProductID, decimal.NewFromInt(8)))
		// expected 4, counted 4 -> no adjustment
		require.NoError(t, sc.RecordCount(sc.Items[1].ProductID, decimal.NewFromInt(4)))

		adjustments, err := sc.Complete()
		require.NoError(t, err)
		assert.Equal(t, StockCountStatusCompleted, sc.Status)
		require.Len(t, adjustments, 1)
		assert.Equal(t, sc.Items[0].ProductID, adjustments[0].ProductID)
		assert.True(t, adjustments[0].Quantity.Equal(decimal.NewFromInt(-2)))
	})

	t.Run("zero count is a valid count", func(t *testing.T) {
		sc := started(t)
		require.NoError(t, sc.RecordCount(sc.Items[0].ProductID, decimal.Zero))
		require.NoError(t, sc.RecordCount(sc.Items[1].ProductID, decimal.NewFromInt(4)))

		adjustments, err := sc.Complete()
		require.NoError(t, err)
		require.Len(t, adjustments, 1)
		assert.True(t, adjustments[0].Quantity.Equal(decimal.NewFromInt(-10)))
	})

	t.Run("negative count rejected", func(t *testing.T) {
		sc := started(t)
		err := sc.RecordCount(sc.Items[0].ProductID, decimal.NewFromInt(-1))
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, "VALIDATION_ERROR"))
		assert.False(t, sc.Items[0].IsCounted())
	})

	t.Run("unknown product rejected", func(t *testing.T) {
		sc := started(t)
		err := sc.RecordCount(uuid.New(), decimal.NewFromInt(1))
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, "NOT_FOUND"))
	})
}

func TestStockCountCancel(t *testing.T) {
	companyID := uuid.New()

	sc, err := NewStockCount(companyID, "CNT-2026-0004", nil, "")
	require.NoError(t, err)
	require.NoError(t, sc.Cancel())
	assert.Equal(t, StockCountStatusCancelled, sc.Status)

	err = sc.Cancel()
	require.Error(t, err)
	assert.True(t, shared.IsCode(err, "INVALID_STATE"))
}

func TestStockMovementInvariant(t *testing.T) {
	companyID := uuid.New()
	productID := uuid.New()

	t.Run("new stock must equal previous plus quantity", func(t *testing.T) {
		_, err := NewStockMovement(companyID, productID, "Widget", "PRD-001",
			MovementTypeSale, decimal.NewFromInt(-3), decimal.NewFromInt(10), decimal.NewFromInt(8),
			nil, "", nil, ReferenceTypeManual)
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, "VALIDATION_ERROR"))
	})

	t.Run("negative resulting stock rejected", func(t *testing.T) {
		_, err := NewStockMovement(companyID, productID, "Widget", "PRD-001",
			MovementTypeSale, decimal.NewFromInt(-12), decimal.NewFromInt(10), decimal.NewFromInt(-2),
			nil, "", nil, ReferenceTypeManual)
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, "INSUFFICIENT_STOCK"))
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		_, err := NewStockMovement(companyID, productID, "Widget", "PRD-001",
			MovementTypeAdjustment, decimal.Zero, decimal.NewFromInt(10), decimal.NewFromInt(10),
			nil, "", nil, ReferenceTypeManual)
		require.Error(t, err)
	})
}
