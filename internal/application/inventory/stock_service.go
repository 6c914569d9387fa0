package inventory

import (
	"context"

	"github.com/fatoora/backend/internal/domain/catalog"
	"github.com/fatoora/backend/internal/domain/inventory"
	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StockService handles manual stock movements and availability checks.
// Document-driven movements (invoice sends, credit note returns) go through
// the billing services; this service covers purchases, adjustments and the
// read side of the ledger.
type StockService struct {
	productRepo    catalog.ProductRepository
	movementRepo   inventory.StockMovementRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewStockService creates a new StockService
func NewStockService(productRepo catalog.ProductRepository, movementRepo inventory.StockMovementRepository, txScope TransactionScope) *StockService {
	return &StockService{
		productRepo:  productRepo,
		movementRepo: movementRepo,
		txScope:      txScope,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *StockService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// RecordMovement records a manual stock movement. The movement and the
// product counter commit together.
func (s *StockService) RecordMovement(ctx context.Context, companyID uuid.UUID, req RecordMovementRequest) (*MovementResponse, error) {
	var movement *inventory.StockMovement

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		ledger := inventory.NewLedger(repos.ProductRepo(), repos.MovementRepo())

		var err error
		movement, err = ledger.RecordMovement(ctx, companyID, req.ProductID,
			inventory.MovementType(req.Type), req.Quantity, req.LocationID, req.Reason,
			nil, inventory.ReferenceTypeManual)
		return err
	})
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		events := movement.GetDomainEvents()
		if len(events) > 0 {
			_ = s.eventPublisher.Publish(ctx, events...)
			movement.ClearDomainEvents()
		}
	}

	response := ToMovementResponse(movement)
	return &response, nil
}

// CheckStock runs the read-only availability check for a set of demands
func (s *StockService) CheckStock(ctx context.Context, companyID uuid.UUID, req CheckStockRequest) (*CheckStockResponse, error) {
	requirements := make([]inventory.StockRequirement, 0, len(req.Items))
	for _, item := range req.Items {
		requirements = append(requirements, inventory.StockRequirement{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	ledger := inventory.NewLedger(s.productRepo, s.movementRepo)
	insufficient, err := ledger.CheckStockForItems(ctx, companyID, requirements)
	if err != nil {
		return nil, err
	}

	response := &CheckStockResponse{Satisfiable: len(insufficient) == 0}
	for _, item := range insufficient {
		response.Insufficient = append(response.Insufficient, InsufficientItemResponse{
			ProductID:   item.ProductID,
			ProductCode: item.ProductCode,
			ProductName: item.ProductName,
			Requested:   item.Requested,
			Available:   item.Available,
		})
	}
	return response, nil
}

// ListMovements retrieves movements for a company
func (s *StockService) ListMovements(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]MovementResponse, error) {
	movements, err := s.movementRepo.FindAll(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	return ToMovementResponses(movements), nil
}

// ListMovementsByProduct retrieves a product's movement history, newest first
func (s *StockService) ListMovementsByProduct(ctx context.Context, companyID, productID uuid.UUID, filter shared.Filter) ([]MovementResponse, error) {
	movements, err := s.movementRepo.FindByProduct(ctx, companyID, productID, filter)
	if err != nil {
		return nil, err
	}
	return ToMovementResponses(movements), nil
}

// ListMovementsByReference retrieves the movements created for a document
func (s *StockService) ListMovementsByReference(ctx context.Context, companyID, referenceID uuid.UUID) ([]MovementResponse, error) {
	movements, err := s.movementRepo.FindByReference(ctx, companyID, referenceID)
	if err != nil {
		return nil, err
	}
	return ToMovementResponses(movements), nil
}
