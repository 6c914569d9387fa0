package billing

import (
	"context"
	"errors"
	"time"

	"github.com/fatoora/backend/internal/domain/billing"
	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UpdateSettingsRequest is the request to update company billing settings
type UpdateSettingsRequest struct {
	Currency            string          `json:"currency" binding:"required,len=3,alpha"`
	FiscalStampAmount   decimal.Decimal `json:"fiscal_stamp_amount"`
	ReminderCadenceDays int             `json:"reminder_cadence_days" binding:"required,min=1"`
}

// SettingsResponse represents company billing settings in API responses
type SettingsResponse struct {
	Currency            string          `json:"currency"`
	FiscalStampAmount   decimal.Decimal `json:"fiscal_stamp_amount"`
	ReminderCadenceDays int             `json:"reminder_cadence_days"`
	UpdatedAt           *time.Time      `json:"updated_at,omitempty"`
}

// SettingsProvider supplies the billing policy in effect for a company
type SettingsProvider interface {
	EffectivePolicy(ctx context.Context, companyID uuid.UUID) Policy
}

// SettingsService manages per-company billing settings. Companies without
// stored settings fall back to the configured policy defaults.
type SettingsService struct {
	repo   billing.CompanySettingsRepository
	policy Policy
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(repo billing.CompanySettingsRepository, policy Policy) *SettingsService {
	return &SettingsService{repo: repo, policy: policy}
}

// Get returns the settings for a company, or the policy defaults when
// no settings have been stored yet
func (s *SettingsService) Get(ctx context.Context, companyID uuid.UUID) (*SettingsResponse, error) {
	settings, err := s.repo.FindByCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return s.defaults(), nil
		}
		return nil, err
	}
	response := toSettingsResponse(settings)
	return &response, nil
}

// Update stores the settings for a company, creating them on first use
func (s *SettingsService) Update(ctx context.Context, companyID uuid.UUID, req UpdateSettingsRequest) (*SettingsResponse, error) {
	settings, err := s.repo.FindByCompany(ctx, companyID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		settings, err = billing.NewCompanySettings(companyID, req.Currency, req.FiscalStampAmount, req.ReminderCadenceDays)
		if err != nil {
			return nil, err
		}
	} else if err := settings.Update(req.Currency, req.FiscalStampAmount, req.ReminderCadenceDays); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, err
	}

	response := toSettingsResponse(settings)
	return &response, nil
}

// EffectivePolicy returns the configured policy with the company's stored
// overrides applied. Lookup failures fall back to the defaults so billing
// operations never fail on a settings read.
func (s *SettingsService) EffectivePolicy(ctx context.Context, companyID uuid.UUID) Policy {
	settings, err := s.repo.FindByCompany(ctx, companyID)
	if err != nil {
		return s.policy
	}

	policy := s.policy
	policy.FiscalStampAmount = settings.FiscalStampAmount
	policy.ReminderCadence = settings.ReminderCadence()
	return policy
}

func (s *SettingsService) defaults() *SettingsResponse {
	return &SettingsResponse{
		Currency:            "MAD",
		FiscalStampAmount:   s.policy.FiscalStampAmount,
		ReminderCadenceDays: int(s.policy.ReminderCadence / (24 * time.Hour)),
	}
}

func toSettingsResponse(settings *billing.CompanySettings) SettingsResponse {
	updatedAt := settings.UpdatedAt
	return SettingsResponse{
		Currency:            settings.Currency,
		FiscalStampAmount:   settings.FiscalStampAmount,
		ReminderCadenceDays: settings.ReminderCadenceDays,
		UpdatedAt:           &updatedAt,
	}
}

// Ensure SettingsService implements SettingsProvider
var _ SettingsProvider = (*SettingsService)(nil)
