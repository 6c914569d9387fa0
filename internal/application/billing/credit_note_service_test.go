package billing

import (
	"context"
	"testing"
	"time"

	"github.com/fatoora/backend/internal/domain/billing"
	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (env *testEnv) issuedNote(t *testing.T, invoiceID uuid.UUID, items []LineItemRequest, restock bool) *CreditNoteResponse {
	t.Helper()
	ctx := context.Background()

	created, err := env.creditNoteService.Create(ctx, env.companyID, CreateCreditNoteRequest{
		InvoiceID: invoiceID,
		Date:      time.Now(),
		Reason:    "customer return",
		Items:     items,
	})
	require.NoError(t, err)

	issued, err := env.creditNoteService.Issue(ctx, env.companyID, created.ID, IssueCreditNoteRequest{Restock: restock})
	require.NoError(t, err)
	return issued
}

func TestCreditNoteServiceCreate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	client := env.seedClient(t, "Atlas Trading")
	product := env.seedProduct(t, "PRD-CN", decimal.NewFromInt(1000), decimal.NewFromInt(20), decimal.Zero)

	t.Run("against a sent invoice", func(t *testing.T) {
		invoice := env.createInvoice(t, client.ID, []LineItemRequest{lineReq(product.ID, 5)})
		_, err := env.invoiceService.Send(ctx, env.companyID, invoice.ID, SendInvoiceRequest{})
		require.NoError(t, err)

		note, err := env.creditNoteService.Create(ctx, env.companyID, CreateCreditNoteRequest{
			InvoiceID: invoice.ID,
			Date:      time.Now(),
			Reason:    "damaged goods",
			Items:     []LineItemRequest{lineReq(product.ID, 2)},
		})
		require.NoError(t, err)
		assert.Equal(t, "draft", note.Status)
		assert.Equal(t, invoice.ID, note.InvoiceID)
		assert.Equal(t, client.Name, note.ClientName)
		// 2 x 1000 + 20% VAT
		assert.True(t, note.Total.Equal(decimal.NewFromInt(2400)))
		assert.True(t, note.RemainingAmount.Equal(note.Total))
	})

	t.Run("draft invoice rejected", func(t *testing.T) {
		draft := env.createInvoice(t, client.ID, []LineItemRequest{lineReq(product.ID, 1)})

		_, err := env.creditNoteService.Create(ctx, env.companyID, CreateCreditNoteRequest{
			InvoiceID: draft.ID,
			Date:      time.Now(),
			Items:     []LineItemRequest{lineReq(product.ID, 1)},
		})
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, "INVALID_STATE"))
	})
}

func TestCreditNoteServiceIssue(t *testing.T) {
	ctx := context.Background()

	t.Run("restocking restores stock through the ledger", func(t *testing.T) {
		env := newTestEnv()
		client := env.seedClient(t, "Atlas Trading")
		product := env.seedProduct(t, "PRD-CN", decimal.NewFromInt(100), decimal.NewFromInt(20), decimal.NewFromInt(10))

		invoice := env.createInvoice(t, client.ID, []LineItemRequest{lineReq(product.ID, 4)})
		_, err := env.invoiceService.Send(ctx, env.companyID, invoice.ID, SendInvoiceRequest{})
		require.NoError(t, err)
		require.True(t, env.products.products[product.ID].CurrentStock.Equal(decimal.NewFromInt(6)))

		note := env.issuedNote(t, invoice.ID, []LineItemRequest{lineReq(product.ID, 3)}, true)
		assert.Equal(t, "issued", note.Status)
		assert.True(t, env.products.products[product.ID].CurrentStock.Equal(decimal.NewFromInt(9)))

		movements, err := env.movements.FindByReference(ctx, env.companyID, note.ID)
		require.NoError(t, err)
		require.Len(t, movements, 1)
	})

	t.Run("without restocking stock stays put", func(t *testing.T) {
		env := newTestEnv()
		client := env.seedClient(t, "Atlas Trading")
		product := env.seedProduct(t, "PRD-CN", decimal.NewFromInt(100), decimal.NewFromInt(20), decimal.NewFromInt(10))

		invoice := env.createInvoice(t, client.ID, []LineItemRequest{lineReq(product.ID, 4)})
		_, err := env.invoiceService.Send(ctx, env.companyID, invoice.ID, SendInvoiceRequest{})
		require.NoError(t, err)

		env.issuedNote(t, invoice.ID, []LineItemRequest{lineReq(product.ID, 3)}, false)
		assert.True(t, env.products.products[product.ID].CurrentStock.Equal(decimal.NewFromInt(6)))
	})
}

func TestCreditNoteServiceApply(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*testEnv, *InvoiceResponse, *CreditNoteResponse) {
		env := newTestEnv()
		client := env.seedClient(t, "Atlas Trading")
		product := env.seedProduct(t, "PRD-CN", decimal.NewFromInt(1000), decimal.NewFromInt(20), decimal.Zero)

		invoice := env.createInvoice(t, client.ID, []LineItemRequest{lineReq(product.ID, 5)})
		_, err := env.invoiceService.Send(ctx, env.companyID, invoice.ID, SendInvoiceRequest{})
		require.NoError(t, err)

		// 5000 + 1000 VAT = 6000 credit
		note := env.issuedNote(t, invoice.ID, []LineItemRequest{lineReq(product.ID, 5)}, false)
		return env, invoice, note
	}

	t.Run("full application against the invoice", func(t *testing.T) {
		env, invoice, note := setup(t)

		applied, err := env.creditNoteService.Apply(ctx, env.companyID, note.ID, ApplyCreditNoteRequest{
			Amount:          decimal.NewFromInt(6000),
			TargetInvoiceID: &invoice.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, "applied", applied.Status)
		assert.True(t, applied.IsFullyApplied)
		assert.True(t, applied.RemainingAmount.IsZero())

		stored := env.invoiceRepo.invoices[invoice.ID]
		assert.True(t, stored.CreditNoteTotal.Equal(decimal.NewFromInt(6000)))
		assert.True(t, stored.RemainingAmount().IsZero())
		assert.True(t, stored.CreditNoteIDs.Contains(note.ID))
	})

	t.Run("refund application needs no invoice", func(t *testing.T) {
		env, _, note := setup(t)

		applied, err := env.creditNoteService.Apply(ctx, env.companyID, note.ID, ApplyCreditNoteRequest{
			Amount:       decimal.NewFromInt(1000),
			RefundMethod: "transfer",
		})
		require.NoError(t, err)
		assert.Equal(t, "issued", applied.Status)
		assert.True(t, applied.RemainingAmount.Equal(decimal.NewFromInt(5000)))
	})

	t.Run("over application rejected", func(t *testing.T) {
		env, invoice, note := setup(t)

		_, err := env.creditNoteService.Apply(ctx, env.companyID, note.ID, ApplyCreditNoteRequest{
			Amount:          decimal.NewFromInt(7000),
			TargetInvoiceID: &invoice.ID,
		})
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, "INSUFFICIENT_CREDIT"))
		assert.True(t, env.invoiceRepo.invoices[invoice.ID].CreditNoteTotal.IsZero())
	})

	t.Run("cross client target rejected", func(t *testing.T) {
		env, _, note := setup(t)
		other := env.seedClient(t, "Sahara Foods")
		product := env.seedProduct(t, "PRD-OTH", decimal.NewFromInt(10), decimal.NewFromInt(20), decimal.Zero)
		otherInvoice := env.createInvoice(t, other.ID, []LineItemRequest{lineReq(product.ID, 1)})
		_, err := env.invoiceService.Send(ctx, env.companyID, otherInvoice.ID, SendInvoiceRequest{})
		require.NoError(t, err)

		_, err = env.creditNoteService.Apply(ctx, env.companyID, note.ID, ApplyCreditNoteRequest{
			Amount:          decimal.NewFromInt(10),
			TargetInvoiceID: &otherInvoice.ID,
		})
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, "VALIDATION_ERROR"))
	})

	t.Run("cancel refused once credit applied", func(t *testing.T) {
		env, _, note := setup(t)

		_, err := env.creditNoteService.Apply(ctx, env.companyID, note.ID, ApplyCreditNoteRequest{
			Amount:       decimal.NewFromInt(100),
			RefundMethod: "cash",
		})
		require.NoError(t, err)

		_, err = env.creditNoteService.Cancel(ctx, env.companyID, note.ID)
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, "INVALID_STATE"))
	})
}

func TestCreditNoteServiceListByInvoice(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	client := env.seedClient(t, "Atlas Trading")
	product := env.seedProduct(t, "PRD-CN", decimal.NewFromInt(100), decimal.NewFromInt(20), decimal.Zero)

	invoice := env.createInvoice(t, client.ID, []LineItemRequest{lineReq(product.ID, 5)})
	_, err := env.invoiceService.Send(ctx, env.companyID, invoice.ID, SendInvoiceRequest{})
	require.NoError(t, err)

	env.issuedNote(t, invoice.ID, []LineItemRequest{lineReq(product.ID, 1)}, false)
	env.issuedNote(t, invoice.ID, []LineItemRequest{lineReq(product.ID, 2)}, false)

	notes, err := env.creditNoteService.ListByInvoice(ctx, env.companyID, invoice.ID)
	require.NoError(t, err)
	assert.Len(t, notes, 2)

	stored := env.invoiceRepo.invoices[invoice.ID]
	assert.Equal(t, billing.InvoiceStatusSent, stored.Status, "issuing alone does not settle the invoice")
}
