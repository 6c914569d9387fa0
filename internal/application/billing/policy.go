package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Policy carries the company-wide billing parameters that come from
// configuration rather than from the documents themselves.
type Policy struct {
	// FiscalStampAmount is the fixed stamp charge added to invoices that
	// carry a fiscal stamp. Moroccan cash invoices use 20 MAD.
	FiscalStampAmount decimal.Decimal

	// ReminderCadence is the interval between quote reminder emails once
	// the first reminder has gone out.
	ReminderCadence time.Duration

	// IdempotencyTTL bounds how long a processed idempotency key is
	// remembered.
	IdempotencyTTL time.Duration
}

// DefaultPolicy returns the standard billing policy
func DefaultPolicy() Policy {
	return Policy{
		FiscalStampAmount: decimal.NewFromInt(20),
		ReminderCadence:   7 * 24 * time.Hour,
		IdempotencyTTL:    24 * time.Hour,
	}
}
