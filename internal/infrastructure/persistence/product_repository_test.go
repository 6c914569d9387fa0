package persistence

import (
	"context"
	"testing"

	"github.com/fatoora/backend/internal/domain/catalog"
	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/fatoora/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormProductRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	companyID := uuid.New()

	product := newTestProduct(t, companyID, "lap-01")
	require.NoError(t, repo.Save(ctx, product))

	t.Run("finds by id within the company", func(t *testing.T) {
		found, err := repo.FindByID(ctx, companyID, product.ID)
		require.NoError(t, err)
		assert.Equal(t, "LAP-01", found.Code)
		assert.True(t, found.ManageStock)
	})

	t.Run("does not leak across companies", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New(), product.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("finds by code case-insensitively", func(t *testing.T) {
		found, err := repo.FindByCode(ctx, companyID, "lap-01")
		require.NoError(t, err)
		assert.Equal(t, product.ID, found.ID)
	})

	t.Run("returns not found for unknown code", func(t *testing.T) {
		_, err := repo.FindByCode(ctx, companyID, "MISSING")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormProductRepository_SaveWithLock(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	companyID := uuid.New()

	product := newTestProduct(t, companyID, "SSD-01")
	require.NoError(t, repo.Save(ctx, product))

	t.Run("persists a versioned update", func(t *testing.T) {
		require.NoError(t, product.Update("Updated name", ""))
		require.NoError(t, repo.SaveWithLock(ctx, product))

		found, err := repo.FindByID(ctx, companyID, product.ID)
		require.NoError(t, err)
		assert.Equal(t, "Updated name", found.Name)
		assert.Equal(t, product.Version, found.Version)
	})

	t.Run("rejects a stale version", func(t *testing.T) {
		stale := *product
		stale.Version = product.Version + 5

		err := repo.SaveWithLock(ctx, &stale)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestGormProductRepository_FindBelowMinimum(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	companyID := uuid.New()

	low := newTestProduct(t, companyID, "LOW-01")
	require.NoError(t, low.SetStockThresholds(decimal.NewFromInt(10), decimal.NewFromInt(15)))
	require.NoError(t, repo.Save(ctx, low))

	healthy := newTestProduct(t, companyID, "OK-01")
	require.NoError(t, healthy.SetStockThresholds(decimal.NewFromInt(10), decimal.NewFromInt(15)))
	healthy.CurrentStock = decimal.NewFromInt(50)
	require.NoError(t, repo.Save(ctx, healthy))

	unmanaged, err := catalog.NewService(companyID, "SVC-01", "Consulting", "hour",
		valueobject.NewMoneyMADFromFloat(500), decimal.NewFromInt(20))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, unmanaged))

	products, err := repo.FindBelowMinimum(ctx, companyID)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "LOW-01", products[0].Code)
}

func TestGormProductRepository_Delete(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	companyID := uuid.New()

	product := newTestProduct(t, companyID, "DEL-01")
	require.NoError(t, repo.Save(ctx, product))

	t.Run("refuses to delete for another company", func(t *testing.T) {
		err := repo.Delete(ctx, uuid.New(), product.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("deletes within the company", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, companyID, product.ID))

		_, err := repo.FindByID(ctx, companyID, product.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
