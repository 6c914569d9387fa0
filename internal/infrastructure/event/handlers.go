package event

import (
	"context"

	"github.com/fatoora/backend/internal/domain/catalog"
	"github.com/fatoora/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// LowStockAlertHandler surfaces stock-below-minimum events in the logs so
// operators notice products that need restocking.
type LowStockAlertHandler struct {
	logger *zap.Logger
}

// NewLowStockAlertHandler creates a new LowStockAlertHandler
func NewLowStockAlertHandler(logger *zap.Logger) *LowStockAlertHandler {
	return &LowStockAlertHandler{logger: logger.Named("low_stock_alert")}
}

// Handle processes a domain event
func (h *LowStockAlertHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	alert, ok := event.(*catalog.ProductStockBelowMinimumEvent)
	if !ok {
		return nil
	}

	h.logger.Warn("product stock below minimum",
		zap.String("company_id", alert.CompanyID().String()),
		zap.String("product_id", alert.AggregateID().String()),
		zap.String("code", alert.Code),
		zap.String("current_stock", alert.CurrentStock.String()),
		zap.String("min_stock", alert.MinStock.String()),
	)
	return nil
}

// EventTypes returns the event types this handler is interested in
func (h *LowStockAlertHandler) EventTypes() []string {
	return []string{catalog.EventTypeProductStockBelowMinimum}
}

// AuditTrailHandler records every domain event for traceability. It is a
// wildcard subscriber.
type AuditTrailHandler struct {
	logger *zap.Logger
}

// NewAuditTrailHandler creates a new AuditTrailHandler
func NewAuditTrailHandler(logger *zap.Logger) *AuditTrailHandler {
	return &AuditTrailHandler{logger: logger.Named("audit")}
}

// Handle processes a domain event
func (h *AuditTrailHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.logger.Info("domain event",
		zap.String("event_id", event.EventID().String()),
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.String("company_id", event.CompanyID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	)
	return nil
}

// EventTypes returns an empty slice, subscribing the handler to all events
func (h *AuditTrailHandler) EventTypes() []string {
	return nil
}

var (
	_ shared.EventHandler = (*LowStockAlertHandler)(nil)
	_ shared.EventHandler = (*AuditTrailHandler)(nil)
)
