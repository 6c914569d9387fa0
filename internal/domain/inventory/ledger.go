package inventory

import (
	"context"

	"github.com/fatoora/backend/internal/domain/catalog"
	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockRequirement is one line of a stock demand, expressed as a positive
// quantity to consume.
type StockRequirement struct {
	ProductID uuid.UUID
	Quantity  decimal.Decimal
}

// InsufficientItem describes one line that cannot be satisfied from stock
type InsufficientItem struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	Requested   decimal.Decimal `json:"requested"`
	Available   decimal.Decimal `json:"available"`
}

// Ledger is the domain service guarding the append-only stock movement log.
// Every stock change flows through RecordMovement so that the movement and
// the product's stock counter always change together. Callers provide
// transactional repositories when atomicity across rows is required.
type Ledger struct {
	productRepo  catalog.ProductRepository
	movementRepo StockMovementRepository
}

// NewLedger creates a new stock ledger service
func NewLedger(productRepo catalog.ProductRepository, movementRepo StockMovementRepository) *Ledger {
	return &Ledger{
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

// RecordMovement appends a movement and updates the product's stock counter.
// The product must be stock-managed and not a service. Negative quantities
// that exceed the available stock fail with InsufficientStockError and leave
// everything untouched.
func (l *Ledger) RecordMovement(ctx context.Context, companyID, productID uuid.UUID, movementType MovementType, quantity decimal.Decimal, locationID *uuid.UUID, reason string, referenceID *uuid.UUID, referenceType ReferenceType) (*StockMovement, error) {
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid movement type")
	}
	if quantity.IsZero() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Movement quantity cannot be zero")
	}

	product, err := l.productRepo.FindByID(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsStockManaged() {
		return nil, shared.ErrNotStockManaged
	}
	if quantity.IsNegative() && product.CurrentStock.LessThan(quantity.Neg()) {
		return nil, NewInsufficientStockError(product.ID, product.Code, quantity.Neg(), product.CurrentStock)
	}

	previous, current, err := product.ApplyStockChange(quantity)
	if err != nil {
		return nil, err
	}

	movement, err := NewStockMovement(companyID, product.ID, product.Name, product.Code,
		movementType, quantity, previous, current, locationID, reason, referenceID, referenceType)
	if err != nil {
		return nil, err
	}

	if err := l.movementRepo.Create(ctx, movement); err != nil {
		return nil, err
	}
	if err := l.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	return movement, nil
}

// CheckStockForItems is the read-only pre-flight for a multi-line document.
// It returns every line that cannot be satisfied, without mutating anything.
// Lines for products that do not manage stock are ignored.
func (l *Ledger) CheckStockForItems(ctx context.Context, companyID uuid.UUID, items []StockRequirement) ([]InsufficientItem, error) {
	if len(items) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	products, err := l.productRepo.FindByIDs(ctx, companyID, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	var insufficient []InsufficientItem
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, shared.ErrNotFound
		}
		if !product.IsStockManaged() {
			continue
		}
		if product.CurrentStock.LessThan(item.Quantity) {
			insufficient = append(insufficient, InsufficientItem{
				ProductID:   product.ID,
				ProductCode: product.Code,
				ProductName: product.Name,
				Requested:   item.Quantity,
				Available:   product.CurrentStock,
			})
		}
	}

	return insufficient, nil
}

// CreateMovementsForInvoice consumes stock for every stock-managed line of an
// invoice, all-or-nothing. Unless skipCheck is set it runs the read-only
// pre-flight first and aborts on the first insufficiency, so no movement is
// applied for a partially satisfiable document.
func (l *Ledger) CreateMovementsForInvoice(ctx context.Context, companyID, invoiceID uuid.UUID, items []StockRequirement, locationID *uuid.UUID, skipCheck bool) ([]StockMovement, error) {
	if len(items) == 0 {
		return nil, nil
	}

	if !skipCheck {
		insufficient, err := l.CheckStockForItems(ctx, companyID, items)
		if err != nil {
			return nil, err
		}
		if len(insufficient) > 0 {
			first := insufficient[0]
			return nil, NewInsufficientStockError(first.ProductID, first.ProductCode, first.Requested, first.Available)
		}
	}

	movements := make([]StockMovement, 0, len(items))
	for _, item := range items {
		product, err := l.productRepo.FindByID(ctx, companyID, item.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.IsStockManaged() {
			continue
		}

		movement, err := l.RecordMovement(ctx, companyID, item.ProductID, MovementTypeSale,
			item.Quantity.Neg(), locationID, "", &invoiceID, ReferenceTypeInvoice)
		if err != nil {
			return nil, err
		}
		movements = append(movements, *movement)
	}

	return movements, nil
}

// ReturnMovementsForCreditNote restores stock for the stock-managed lines of
// a credit note (customer return).
func (l *Ledger) ReturnMovementsForCreditNote(ctx context.Context, companyID, creditNoteID uuid.UUID, items []StockRequirement, locationID *uuid.UUID) ([]StockMovement, error) {
	movements := make([]StockMovement, 0, len(items))
	for _, item := range items {
		product, err := l.productRepo.FindByID(ctx, companyID, item.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.IsStockManaged() {
			continue
		}

		movement, err := l.RecordMovement(ctx, companyID, item.ProductID, MovementTypeReturnCustomer,
			item.Quantity, locationID, "", &creditNoteID, ReferenceTypeCreditNote)
		if err != nil {
			return nil, err
		}
		movements = append(movements, *movement)
	}

	return movements, nil
}
