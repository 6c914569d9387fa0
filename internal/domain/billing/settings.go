package billing

import (
	"strings"
	"time"

	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CompanySettings holds the per-company billing overrides. Companies
// without a settings row use the configured policy defaults.
type CompanySettings struct {
	shared.CompanyAggregateRoot
	Currency            string          `gorm:"type:varchar(3);not null"`
	FiscalStampAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ReminderCadenceDays int             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CompanySettings) TableName() string {
	return "company_settings"
}

// NewCompanySettings creates settings for a company
func NewCompanySettings(companyID uuid.UUID, currency string, fiscalStampAmount decimal.Decimal, reminderCadenceDays int) (*CompanySettings, error) {
	s := &CompanySettings{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
	}
	if err := s.Update(currency, fiscalStampAmount, reminderCadenceDays); err != nil {
		return nil, err
	}
	return s, nil
}

// Update replaces the settings values
func (s *CompanySettings) Update(currency string, fiscalStampAmount decimal.Decimal, reminderCadenceDays int) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != 3 {
		return shared.NewDomainError("VALIDATION_ERROR", "Currency must be a 3 letter code")
	}
	if fiscalStampAmount.IsNegative() {
		return shared.NewDomainError("VALIDATION_ERROR", "Fiscal stamp amount cannot be negative")
	}
	if reminderCadenceDays < 1 {
		return shared.NewDomainError("VALIDATION_ERROR", "Reminder cadence must be at least one day")
	}

	s.Currency = currency
	s.FiscalStampAmount = fiscalStampAmount
	s.ReminderCadenceDays = reminderCadenceDays
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// ReminderCadence returns the cadence as a duration
func (s *CompanySettings) ReminderCadence() time.Duration {
	return time.Duration(s.ReminderCadenceDays) * 24 * time.Hour
}
