package billing

import (
	"context"
	"testing"
	"time"

	"github.com/fatoora/backend/internal/domain/billing"
	"github.com/fatoora/backend/internal/domain/catalog"
	"github.com/fatoora/backend/internal/domain/partner"
	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/fatoora/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (env *testEnv) seedClient(t *testing.T, name string) *partner.Client {
	t.Helper()
	client, err := partner.NewClient(env.companyID, name)
	require.NoError(t, err)
	require.NoError(t, env.clients.Save(context.Background(), client))
	return client
}

func (env *testEnv) seedProduct(t *testing.T, code string, price, vatRate, stock decimal.Decimal) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(env.companyID, code, "Product "+code, "pcs",
		valueobject.NewMoneyMAD(price), vatRate)
	require.NoError(t, err)
	if stock.IsPositive() {
		product.ManageStock = true
		product.CurrentStock = stock
	}
	require.NoError(t, env.products.Save(context.Background(), product))
	return product
}

func (env *testEnv) seedService(t *testing.T, code string, price, vatRate decimal.Decimal) *catalog.Product {
	t.Helper()
	svc, err := catalog.NewService(env.companyID, code, "Service "+code, "h",
		valueobject.NewMoneyMAD(price), vatRate)
	require.NoError(t, err)
	require.NoError(t, env.products.Save(context.Background(), svc))
	return svc
}

func (env *testEnv) createInvoice(t *testing.T, clientID uuid.UUID, items []LineItemRequest) *InvoiceResponse {
	t.Helper()
	resp, err := env.invoiceService.Create(context.Background(), env.companyID, CreateInvoiceRequest{
		ClientID: clientID,
		Date:     time.Now(),
		DueDate:  time.Now().AddDate(0, 1, 0),
		Items:    items,
	})
	require.NoError(t, err)
	return resp
}

func lineReq(productID uuid.UUID, qty int64) LineItemRequest {
	return LineItemRequest{ProductID: productID, Quantity: decimal.NewFromInt(qty)}
}

func TestInvoiceServiceCreate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	client := env.seedClient(t, "Atlas Trading")
	product := env.seedProduct(t, "PRD-001", decimal.NewFromInt(100), decimal.NewFromInt(20), decimal.NewFromInt(10))

	t.Run("defaults price and vat from the catalog", func(t *testing.T) {
		resp := env.createInvoice(t, client.ID, []LineItemRequest{lineReq(product.ID, 2)})

		assert.Equal(t, "INV-2026-0001", resp.Number)
		assert.Equal(t, "draft", resp.Status)
		assert.Equal(t, client.Name, resp.ClientName)
		require.Len(t, resp.Items, 1)
		assert.True(t, resp.Items[0].UnitPrice.Equal(decimal.NewFromInt(100)))
		assert.True(t, resp.Items[0].VATRate.Equal(decimal.NewFromInt(20)))
		assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(200)))
		assert.True(t, resp.Total.Equal(decimal.NewFromInt(240)))
	})

	t.Run("explicit unit price overrides the catalog", func(t *testing.T) {
		price := decimal.NewFromInt(80)
		resp, err := env.invoiceService.Create(ctx, env.companyID, CreateInvoiceRequest{
			ClientID: client.ID,
			Date:     time.Now(),
			DueDate:  time.Now().AddDate(0, 1, 0),
			Items:    []LineItemRequest{{ProductID: product.ID, Quantity: decimal.NewFromInt(1), UnitPrice: &price}},
		})
		require.NoError(t, err)
		assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(80)))
	})

	t.Run("fiscal stamp comes from policy", func(t *testing.T) {
		resp, err := env.invoiceService.Create(ctx, env.companyID, CreateInvoiceRequest{
			ClientID:       client.ID,
			Date:           time.Now(),
			DueDate:        time.Now().AddDate(0, 1, 0),
			Items:          []LineItemRequest{lineReq(product.ID, 1)},
			HasFiscalStamp: true,
		})
		require.NoError(t, err)
		assert.True(t, resp.HasFiscalStamp)
		// 100 + 20 VAT + 20 stamp
		assert.True(t, resp.Total.Equal(decimal.NewFromInt(140)))
	})

	t.Run("unknown client rejected", func(t *testing.T) {
		_, err := env.invoiceService.Create(ctx, env.companyID, CreateInvoiceRequest{
			ClientID: uuid.New(),
			Date:     time.Now(),
			DueDate:  time.Now().AddDate(0, 1, 0),
			Items:    []LineItemRequest{lineReq(product.ID, 1)},
		})
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, "NOT_FOUND"))
	})
}

func TestInvoiceServiceSend(t *testing.T) {
	ctx := context.Background()

	t.Run("consumes stock for managed lines", func(t *testing.T) {
		env := newTestEnv()
		client := env.seedClient(t, "Atlas Trading")
		product := env.seedProduct(t, "PRD-001", decimal.NewFromInt(100), decimal.NewFromInt(20), decimal.NewFromInt(10))
		svc := env.seedService(t, "SVC-001", decimal.NewFromInt(500), decimal.NewFromInt(20))

		created := env.createInvoice(t, client.ID, []LineItemRequest{lineReq(product.ID, 3), lineReq(svc.ID, 1)})

		resp, err := env.invoiceService.Send(ctx, env.companyID, created.ID, SendInvoiceRequest{})
		require.NoError(t, err)
		assert.Equal(t, "sent", resp.Status)

		stored := env.products.products[product.ID]
		assert.True(t, stored.CurrentStock.Equal(decimal.NewFromInt(7)))

		movements, err := env.movements.FindByReference(ctx, env.companyID, created.ID)
		require.NoError(t, err)
		require.Len(t, movements, 1, "service line produces no movement")
	})

	t.Run("insufficient stock aborts the whole send", func(t *testing.T) {
		env := newTestEnv()
		client := env.seedClient(t, "Atlas Trading")
		plenty := env.seedProduct(t, "PRD-001", decimal.NewFromInt(100), decimal.NewFromInt(20), decimal.NewFromInt(10))
		scarce := env.seedProduct(t, "PRD-002", decimal.NewFromInt(50), decimal.NewFromInt(20), decimal.NewFromInt(1))

		created := env.createInvoice(t, client.ID, []LineItemRequest{lineReq(plenty.ID, 2), lineReq(scarce.ID, 5)})

		_, err := env.invoiceService.Send(ctx, env.companyID, created.ID, SendInvoiceRequest{})
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, "INSUFFICIENT_STOCK"))
		assert.True(t, env.products.products[plenty.ID].CurrentStock.Equal(decimal.NewFromInt(10)), "no partial consumption")
		assert.Empty(t, env.movements.movements)
	})

	t.Run("skip check allows overriding the pre-flight", func(t *testing.T) {
		env := newTestEnv()
		client := env.seedClient(t, "Atlas Trading")
		scarce := env.seedProduct(t, "PRD-002", decimal.NewFromInt(50), decimal.NewFromInt(20), decimal.NewFromInt(1))

		created := env.createInvoice(t, client.ID, []LineItemRequest{lineReq(scarce.ID, 5)})

		// The ledger invariant still refuses to take stock negative.
		_, err := env.invoiceService.Send(ctx, env.companyID, created.ID, SendInvoiceRequest{SkipStockCheck: true})
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, "INSUFFICIENT_STOCK"))
	})
}

func TestInvoiceServiceDeposit(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	client := env.seedClient(t, "Atlas Trading")
	product := env.seedProduct(t, "PRD-001", decimal.NewFromInt(1000), decimal.NewFromInt(20), decimal.Zero)

	main := env.createInvoice(t, client.ID, []LineItemRequest{lineReq(product.ID, 10)})
	deposit := env.createInvoice(t, client.ID, []LineItemRequest{lineReq(product.ID, 3)})

	resp, err := env.invoiceService.MarkAsDeposit(ctx, env.companyID, deposit.ID, MarkDepositRequest{
		MainInvoiceID: main.ID,
		Amount:        decimal.NewFromInt(3000),
		Percentage:    decimal.NewFromInt(30),
	})
	require.NoError(t, err)
	assert.True(t, resp.IsDeposit)
	require.NotNil(t, resp.DepositForInvoiceID)
	assert.Equal(t, main.ID, *resp.DepositForInvoiceID)

	stored := env.invoiceRepo.invoices[main.ID]
	assert.True(t, stored.DepositInvoiceIDs.Contains(deposit.ID))

	t.Run("rejects cross client linkage", func(t *testing.T) {
		other := env.seedClient(t, "Sahara Foods")
		otherInvoice := env.createInvoice(t, other.ID, []LineItemRequest{lineReq(product.ID, 1)})

		_, err := env.invoiceService.MarkAsDeposit(ctx, env.companyID, otherInvoice.ID, MarkDepositRequest{
			MainInvoiceID: main.ID,
			Amount:        decimal.NewFromInt(100),
		})
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, "VALIDATION_ERROR"))
	})
}

func TestInvoiceServiceSweepOverdue(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	client := env.seedClient(t, "Atlas Trading")
	product := env.seedProduct(t, "PRD-001", decimal.NewFromInt(100), decimal.NewFromInt(20), decimal.Zero)

	created := env.createInvoice(t, client.ID, []LineItemRequest{lineReq(product.ID, 1)})
	_, err := env.invoiceService.Send(ctx, env.companyID, created.ID, SendInvoiceRequest{})
	require.NoError(t, err)

	t.Run("nothing due yet", func(t *testing.T) {
		swept, err := env.invoiceService.SweepOverdue(ctx, env.companyID, time.Now())
		require.NoError(t, err)
		assert.Zero(t, swept)
	})

	t.Run("past due invoices transition", func(t *testing.T) {
		swept, err := env.invoiceService.SweepOverdue(ctx, env.companyID, time.Now().AddDate(0, 2, 0))
		require.NoError(t, err)
		assert.Equal(t, 1, swept)
		assert.Equal(t, billing.InvoiceStatusOverdue, env.invoiceRepo.invoices[created.ID].Status)
	})
}

func TestInvoiceServiceDelete(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	client := env.seedClient(t, "Atlas Trading")
	product := env.seedProduct(t, "PRD-001", decimal.NewFromInt(100), decimal.NewFromInt(20), decimal.NewFromInt(10))

	t.Run("draft deletes", func(t *testing.T) {
		created := env.createInvoice(t, client.ID, []LineItemRequest{lineReq(product.ID, 1)})
		require.NoError(t, env.invoiceService.Delete(ctx, env.companyID, created.ID))

		_, err := env.invoiceService.GetByID(ctx, env.companyID, created.ID)
		assert.True(t, shared.IsCode(err, "NOT_FOUND"))
	})

	t.Run("sent invoices cannot be deleted", func(t *testing.T) {
		created := env.createInvoice(t, client.ID, []LineItemRequest{lineReq(product.ID, 1)})
		_, err := env.invoiceService.Send(ctx, env.companyID, created.ID, SendInvoiceRequest{})
		require.NoError(t, err)

		err = env.invoiceService.Delete(ctx, env.companyID, created.ID)
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, "INVALID_STATE"))
	})
}
