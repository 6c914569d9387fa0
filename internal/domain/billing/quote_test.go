package billing

import (
	"testing"
	"time"

	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQuote(t *testing.T) *Quote {
	t.Helper()
	q, err := NewQuote(uuid.New(), "QT-2026-0001", uuid.New(), "Atlas Trading",
		time.Now(), time.Now().AddDate(0, 1, 0), []LineItem{mustItem(t, 2, 100, 20, 0)})
	require.NoError(t, err)
	return q
}

func TestQuoteValidationLoop(t *testing.T) {
	q := newTestQuote(t)

	require.NoError(t, q.SubmitForValidation())
	assert.Equal(t, QuoteStatusPendingValidation, q.Status)

	// still editable while pending validation
	require.NoError(t, q.UpdateItems([]LineItem{mustItem(t, 1, 80, 20, 0)}))

	require.NoError(t, q.ApproveValidation("ok"))
	assert.Equal(t, QuoteStatusDraft, q.Status, "approval returns to draft, not auto-sent")

	require.NoError(t, q.SubmitForValidation())
	require.NoError(t, q.RejectValidation("margin too low"))
	assert.Equal(t, QuoteStatusDraft, q.Status)
	assert.Equal(t, "margin too low", q.ValidationNote)

	t.Run("approve outside pending_validation rejected", func(t *testing.T) {
		err := q.ApproveValidation("")
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, "INVALID_STATE"))
	})
}

func TestQuoteSendAndDecision(t *testing.T) {
	t.Run("send records email history", func(t *testing.T) {
		q := newTestQuote(t)
		require.NoError(t, q.Send("client@atlas.ma"))
		assert.Equal(t, QuoteStatusAwaitingAcceptance, q.Status)
		require.Len(t, q.EmailHistory, 1)
		assert.Equal(t, "sent", q.EmailHistory[0].Type)
	})

	t.Run("accept then convert", func(t *testing.T) {
		q := newTestQuote(t)
		require.NoError(t, q.Send("client@atlas.ma"))
		require.NoError(t, q.Accept())

		invoiceID := uuid.New()
		require.NoError(t, q.Convert(invoiceID))
		assert.Equal(t, QuoteStatusConverted, q.Status)
		require.NotNil(t, q.ConvertedInvoiceID)
		assert.Equal(t, invoiceID, *q.ConvertedInvoiceID)
		assert.NotNil(t, q.ConvertedAt)
	})

	t.Run("convert requires accepted", func(t *testing.T) {
		q := newTestQuote(t)
		require.NoError(t, q.Send("client@atlas.ma"))
		err := q.Convert(uuid.New())
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, "INVALID_STATE"))
	})

	t.Run("reject and expire are terminal", func(t *testing.T) {
		q := newTestQuote(t)
		require.NoError(t, q.Send("client@atlas.ma"))
		require.NoError(t, q.Reject())
		assert.True(t, q.Status.IsTerminal())

		q2 := newTestQuote(t)
		q2.ExpiryDate = time.Now().AddDate(0, 0, -1)
		q2.Status = QuoteStatusAwaitingAcceptance
		require.NoError(t, q2.Expire(time.Now()))
		assert.Equal(t, QuoteStatusExpired, q2.Status)
	})
}

func TestQuoteReminders(t *testing.T) {
	q := newTestQuote(t)
	require.NoError(t, q.EnableReminders(7))
	require.NoError(t, q.Send("client@atlas.ma"))

	require.NotNil(t, q.NextReminderDate)
	expected := q.ExpiryDate.AddDate(0, 0, -7)
	assert.True(t, q.NextReminderDate.Equal(expected), "next reminder = expiry - reminder days")

	t.Run("not due before schedule", func(t *testing.T) {
		assert.False(t, q.IsReminderDue(expected.AddDate(0, 0, -1)))
		err := q.RecordReminderSent("client@atlas.ma", expected.AddDate(0, 0, -1), 7*24*time.Hour)
		require.Error(t, err)
	})

	t.Run("due reminder records history and reschedules", func(t *testing.T) {
		now := expected.Add(time.Hour)
		require.True(t, q.IsReminderDue(now))
		require.NoError(t, q.RecordReminderSent("client@atlas.ma", now, 7*24*time.Hour))

		require.Len(t, q.EmailHistory, 2)
		assert.Equal(t, "reminder", q.EmailHistory[1].Type)
		assert.True(t, q.NextReminderDate.Equal(now.Add(7*24*time.Hour)))
	})

	t.Run("acceptance clears the schedule", func(t *testing.T) {
		require.NoError(t, q.Accept())
		assert.Nil(t, q.NextReminderDate)
		assert.False(t, q.IsReminderDue(time.Now().AddDate(1, 0, 0)))
	})
}
