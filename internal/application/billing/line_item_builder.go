package billing

import (
	"context"

	"github.com/fatoora/backend/internal/domain/billing"
	"github.com/fatoora/backend/internal/domain/catalog"
	"github.com/fatoora/backend/internal/domain/partner"
	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/fatoora/backend/internal/domain/tax"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItemBuilder turns line item requests into domain line items. It fills
// in the product snapshot (name, code, unit), defaults the unit price to the
// product's price and resolves the VAT rate for the (product, client) pair
// when the request does not pin one.
type LineItemBuilder struct {
	productRepo catalog.ProductRepository
	clientRepo  partner.ClientRepository
	resolver    *tax.Resolver
}

// NewLineItemBuilder creates a new line item builder
func NewLineItemBuilder(productRepo catalog.ProductRepository, clientRepo partner.ClientRepository, resolver *tax.Resolver) *LineItemBuilder {
	return &LineItemBuilder{
		productRepo: productRepo,
		clientRepo:  clientRepo,
		resolver:    resolver,
	}
}

// Build materializes the requested lines against the catalog for the given
// client. The client must belong to the company.
func (b *LineItemBuilder) Build(ctx context.Context, companyID, clientID uuid.UUID, reqs []LineItemRequest) ([]billing.LineItem, *partner.Client, error) {
	client, err := b.clientRepo.FindByID(ctx, companyID, clientID)
	if err != nil {
		return nil, nil, err
	}

	items := make([]billing.LineItem, 0, len(reqs))
	for _, req := range reqs {
		product, err := b.productRepo.FindByID(ctx, companyID, req.ProductID)
		if err != nil {
			return nil, nil, err
		}

		unitPrice := product.Price
		if req.UnitPrice != nil {
			unitPrice = *req.UnitPrice
		}

		vatRate, err := b.vatRateFor(ctx, companyID, product, client, req.VATRate)
		if err != nil {
			return nil, nil, err
		}

		item, err := billing.NewLineItem(product.ID, product.Name, product.Code, product.Unit,
			req.Quantity, unitPrice, vatRate, req.Discount)
		if err != nil {
			return nil, nil, err
		}
		items = append(items, *item)
	}

	return items, client, nil
}

// vatRateFor picks the VAT rate for one line. An explicit rate on the request
// wins; otherwise the rule engine resolves the rate for the category pair,
// falling back to the product's own rate when the company has no default tax.
func (b *LineItemBuilder) vatRateFor(ctx context.Context, companyID uuid.UUID, product *catalog.Product, client *partner.Client, pinned *decimal.Decimal) (decimal.Decimal, error) {
	if pinned != nil {
		return *pinned, nil
	}
	if b.resolver == nil {
		return product.VATRate, nil
	}

	resolved, err := b.resolver.Resolve(ctx, companyID, product.CategoryID, client.CategoryID)
	if err != nil {
		if shared.IsCode(err, "NO_DEFAULT_TAX") {
			return product.VATRate, nil
		}
		return decimal.Zero, err
	}
	return resolved.Rate, nil
}

// toFilter maps a list request to the repository filter, applying defaults
func toFilter(req ListFilter) shared.Filter {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search
	return filter
}

// publishEvents drains pending domain events from the given aggregates.
// Publish errors are handled by the event bus, not propagated to callers.
func publishEvents(ctx context.Context, publisher shared.EventPublisher, aggregates ...shared.AggregateRoot) {
	if publisher == nil {
		return
	}
	for _, agg := range aggregates {
		events := agg.GetDomainEvents()
		if len(events) == 0 {
			continue
		}
		_ = publisher.Publish(ctx, events...)
		agg.ClearDomainEvents()
	}
}
