package persistence

import (
	"fmt"
	"strings"
	"testing"

	"github.com/fatoora/backend/internal/domain/catalog"
	"github.com/fatoora/backend/internal/domain/inventory"
	"github.com/fatoora/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database for repository tests. The
// shared cache keeps the database alive across the connections in GORM's
// pool; the test name keys the database so tests stay isolated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&catalog.Product{},
		&catalog.Category{},
		&inventory.StockMovement{},
		&inventory.StockCount{},
		&documentSequence{},
	))

	return db
}

// newTestProduct creates a stock-managed product for repository tests
func newTestProduct(t *testing.T, companyID uuid.UUID, code string) *catalog.Product {
	t.Helper()

	product, err := catalog.NewProduct(companyID, code, "Product "+code, "unit",
		valueobject.NewMoneyMADFromFloat(100), decimal.NewFromInt(20))
	require.NoError(t, err)
	require.NoError(t, product.EnableStockManagement())
	return product
}
