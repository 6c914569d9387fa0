package inventory

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fatoora/backend/internal/domain/catalog"
	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockCountStatus represents the status of a stock count session
type StockCountStatus string

const (
	StockCountStatusDraft      StockCountStatus = "draft"
	StockCountStatusInProgress StockCountStatus = "in_progress"
	StockCountStatusCompleted  StockCountStatus = "completed"
	StockCountStatusCancelled  StockCountStatus = "cancelled"
)

// IsValid checks if the status is a valid StockCountStatus
func (s StockCountStatus) IsValid() bool {
	switch s {
	case StockCountStatusDraft, StockCountStatusInProgress, StockCountStatusCompleted, StockCountStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of StockCountStatus
func (s StockCountStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the status is terminal
func (s StockCountStatus) IsTerminal() bool {
	return s == StockCountStatusCompleted || s == StockCountStatusCancelled
}

// uncountedSentinel marks an item whose physical count has not been recorded
var uncountedSentinel = decimal.NewFromInt(-1)

// StockCountItem is one product line in a count session. ExpectedQuantity is
// the system stock snapshotted at start; ActualQuantity stays at the
// uncounted sentinel (-1) until a count is recorded.
type StockCountItem struct {
	ID               uuid.UUID       `json:"id"`
	ProductID        uuid.UUID       `json:"product_id"`
	ProductName      string          `json:"product_name"`
	ProductCode      string          `json:"product_code"`
	Unit             string          `json:"unit"`
	ExpectedQuantity decimal.Decimal `json:"expected_quantity"`
	ActualQuantity   decimal.Decimal `json:"actual_quantity"`
	CountedAt        *time.Time      `json:"counted_at,omitempty"`
}

// IsCounted returns true once a physical count has been recorded
func (i *StockCountItem) IsCounted() bool {
	return !i.ActualQuantity.Equal(uncountedSentinel)
}

// Difference returns actual minus expected for a counted item
func (i *StockCountItem) Difference() decimal.Decimal {
	if !i.IsCounted() {
		return decimal.Zero
	}
	return i.ActualQuantity.Sub(i.ExpectedQuantity)
}

// StockCountItems is a slice of StockCountItem stored as JSONB
type StockCountItems []StockCountItem

// Value implements driver.Valuer interface for GORM to store as JSONB
func (s StockCountItems) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner interface for GORM to read from JSONB
func (s *StockCountItems) Scan(value interface{}) error {
	if value == nil {
		*s = StockCountItems{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan StockCountItems: unsupported type")
	}

	if len(bytes) == 0 {
		*s = StockCountItems{}
		return nil
	}

	return json.Unmarshal(bytes, s)
}

// StockCountAdjustment is the signed correction for one differing item,
// applied through the ledger as a type=inventory movement on completion.
type StockCountAdjustment struct {
	ProductID uuid.UUID
	Quantity  decimal.Decimal
}

// StockCount is a physical inventory count session.
// Start snapshots every stock-managed product's current stock; Complete
// refuses to close the session while any item remains uncounted.
type StockCount struct {
	shared.CompanyAggregateRoot
	Number     string           `gorm:"type:varchar(50);not null;index"`
	LocationID *uuid.UUID       `gorm:"type:uuid;index"`
	Status     StockCountStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	Items      StockCountItems  `gorm:"type:jsonb"`
	Notes      string           `gorm:"type:text"`

	StartedAt   *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time
}

// TableName returns the table name for GORM
func (StockCount) TableName() string {
	return "stock_counts"
}

// NewStockCount creates a new count session in draft status
func NewStockCount(companyID uuid.UUID, number string, locationID *uuid.UUID, notes string) (*StockCount, error) {
	if number == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Stock count number cannot be empty")
	}

	sc := &StockCount{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Number:               number,
		LocationID:           locationID,
		Status:               StockCountStatusDraft,
		Items:                StockCountItems{},
		Notes:                notes,
	}

	sc.AddDomainEvent(NewStockCountCreatedEvent(sc))

	return sc, nil
}

// Start snapshots the given stock-managed products and opens counting.
// Only allowed from draft. Services and non-managed products are skipped.
func (sc *StockCount) Start(products []catalog.Product) error {
	if sc.Status != StockCountStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot start stock count in %s status", sc.Status))
	}

	items := make(StockCountItems, 0, len(products))
	for i := range products {
		p := &products[i]
		if !p.IsStockManaged() {
			continue
		}
		items = append(items, StockCountItem{
			ID:               uuid.New(),
			ProductID:        p.ID,
			ProductName:      p.Name,
			ProductCode:      p.Code,
			Unit:             p.Unit,
			ExpectedQuantity: p.CurrentStock,
			ActualQuantity:   uncountedSentinel,
		})
	}
	if len(items) == 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "No stock-managed products to count")
	}

	now := time.Now()
	sc.Items = items
	sc.Status = StockCountStatusInProgress
	sc.StartedAt = &now
	sc.UpdatedAt = now
	sc.IncrementVersion()

	sc.AddDomainEvent(NewStockCountStartedEvent(sc))

	return nil
}

// RecordCount records the physical count for one product
// Only allowed while in progress
func (sc *StockCount) RecordCount(productID uuid.UUID, actual decimal.Decimal) error {
	if sc.Status != StockCountStatusInProgress {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot record counts in %s status", sc.Status))
	}
	if actual.IsNegative() {
		return shared.NewDomainError("VALIDATION_ERROR", "Actual quantity cannot be negative")
	}

	for idx := range sc.Items {
		if sc.Items[idx].ProductID == productID {
			now := time.Now()
			sc.Items[idx].ActualQuantity = actual
			sc.Items[idx].CountedAt = &now
			sc.UpdatedAt = now
			sc.IncrementVersion()
			return nil
		}
	}

	return shared.ErrNotFound
}

// CountedItems returns how many items have been counted
func (sc *StockCount) CountedItems() int {
	counted := 0
	for i := range sc.Items {
		if sc.Items[i].IsCounted() {
			counted++
		}
	}
	return counted
}

// Adjustments returns the signed corrections for every counted item whose
// actual quantity differs from the expected quantity
func (sc *StockCount) Adjustments() []StockCountAdjustment {
	var adjustments []StockCountAdjustment
	for i := range sc.Items {
		item := &sc.Items[i]
		if !item.IsCounted() {
			continue
		}
		if diff := item.Difference(); !diff.IsZero() {
			adjustments = append(adjustments, StockCountAdjustment{
				ProductID: item.ProductID,
				Quantity:  diff,
			})
		}
	}
	return adjustments
}

// Complete closes the session. It fails with NOT_ALL_ITEMS_COUNTED while any
// item is still at the uncounted sentinel. The caller routes the returned
// adjustments through the stock ledger in the same transaction.
func (sc *StockCount) Complete() ([]StockCountAdjustment, error) {
	if sc.Status != StockCountStatusInProgress {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete stock count in %s status", sc.Status))
	}
	for i := range sc.Items {
		if !sc.Items[i].IsCounted() {
			return nil, shared.ErrNotAllItemsCounted
		}
	}

	adjustments := sc.Adjustments()

	now := time.Now()
	sc.Status = StockCountStatusCompleted
	sc.CompletedAt = &now
	sc.UpdatedAt = now
	sc.IncrementVersion()

	sc.AddDomainEvent(NewStockCountCompletedEvent(sc, len(adjustments)))

	return adjustments, nil
}

// Cancel abandons the session
// Allowed from draft or in progress
func (sc *StockCount) Cancel() error {
	if sc.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel stock count in %s status", sc.Status))
	}

	now := time.Now()
	sc.Status = StockCountStatusCancelled
	sc.CancelledAt = &now
	sc.UpdatedAt = now
	sc.IncrementVersion()

	return nil
}
