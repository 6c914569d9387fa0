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

type fakeSettingsRepo struct {
	byCompany map[uuid.UUID]*billing.CompanySettings
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{byCompany: make(map[uuid.UUID]*billing.CompanySettings)}
}

func (r *fakeSettingsRepo) FindByCompany(_ context.Context, companyID uuid.UUID) (*billing.CompanySettings, error) {
	s, ok := r.byCompany[companyID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSettingsRepo) Save(_ context.Context, settings *billing.CompanySettings) error {
	copied := *settings
	r.byCompany[settings.CompanyID] = &copied
	return nil
}

func TestSettingsServiceGet(t *testing.T) {
	ctx := context.Background()

	t.Run("returns policy defaults when nothing is stored", func(t *testing.T) {
		service := NewSettingsService(newFakeSettingsRepo(), DefaultPolicy())

		resp, err := service.Get(ctx, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, "MAD", resp.Currency)
		assert.True(t, decimal.NewFromInt(20).Equal(resp.FiscalStampAmount))
		assert.Equal(t, 7, resp.ReminderCadenceDays)
		assert.Nil(t, resp.UpdatedAt)
	})

	t.Run("returns stored settings once updated", func(t *testing.T) {
		service := NewSettingsService(newFakeSettingsRepo(), DefaultPolicy())
		companyID := uuid.New()

		_, err := service.Update(ctx, companyID, UpdateSettingsRequest{
			Currency:            "eur",
			FiscalStampAmount:   decimal.RequireFromString("12.5"),
			ReminderCadenceDays: 3,
		})
		require.NoError(t, err)

		resp, err := service.Get(ctx, companyID)
		require.NoError(t, err)
		assert.Equal(t, "EUR", resp.Currency)
		assert.True(t, decimal.RequireFromString("12.5").Equal(resp.FiscalStampAmount))
		assert.Equal(t, 3, resp.ReminderCadenceDays)
		assert.NotNil(t, resp.UpdatedAt)
	})
}

func TestSettingsServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects a negative fiscal stamp amount", func(t *testing.T) {
		service := NewSettingsService(newFakeSettingsRepo(), DefaultPolicy())

		_, err := service.Update(ctx, uuid.New(), UpdateSettingsRequest{
			Currency:            "MAD",
			FiscalStampAmount:   decimal.NewFromInt(-1),
			ReminderCadenceDays: 7,
		})
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, "VALIDATION_ERROR"))
	})

	t.Run("updates existing settings in place", func(t *testing.T) {
		repo := newFakeSettingsRepo()
		service := NewSettingsService(repo, DefaultPolicy())
		companyID := uuid.New()

		_, err := service.Update(ctx, companyID, UpdateSettingsRequest{
			Currency:            "MAD",
			FiscalStampAmount:   decimal.NewFromInt(25),
			ReminderCadenceDays: 7,
		})
		require.NoError(t, err)
		firstID := repo.byCompany[companyID].ID

		_, err = service.Update(ctx, companyID, UpdateSettingsRequest{
			Currency:            "MAD",
			FiscalStampAmount:   decimal.NewFromInt(30),
			ReminderCadenceDays: 14,
		})
		require.NoError(t, err)

		stored := repo.byCompany[companyID]
		assert.Equal(t, firstID, stored.ID)
		assert.True(t, decimal.NewFromInt(30).Equal(stored.FiscalStampAmount))
		assert.Equal(t, 14, stored.ReminderCadenceDays)
	})
}

func TestSettingsServiceEffectivePolicy(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSettingsRepo()
	service := NewSettingsService(repo, DefaultPolicy())
	companyID := uuid.New()

	policy := service.EffectivePolicy(ctx, companyID)
	assert.True(t, decimal.NewFromInt(20).Equal(policy.FiscalStampAmount))
	assert.Equal(t, 7*24*time.Hour, policy.ReminderCadence)

	_, err := service.Update(ctx, companyID, UpdateSettingsRequest{
		Currency:            "MAD",
		FiscalStampAmount:   decimal.NewFromInt(25),
		ReminderCadenceDays: 3,
	})
	require.NoError(t, err)

	policy = service.EffectivePolicy(ctx, companyID)
	assert.True(t, decimal.NewFromInt(25).Equal(policy.FiscalStampAmount))
	assert.Equal(t, 3*24*time.Hour, policy.ReminderCadence)

	// the idempotency TTL has no per-company override
	assert.Equal(t, DefaultPolicy().IdempotencyTTL, policy.IdempotencyTTL)
}
