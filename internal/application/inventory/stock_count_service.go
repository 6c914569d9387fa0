package inventory

import (
	"context"

	"github.com/fatoora/backend/internal/domain/catalog"
	"github.com/fatoora/backend/internal/domain/inventory"
	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StockCountService handles physical inventory count sessions. Completing a
// session routes every discrepancy through the ledger as an inventory
// adjustment in one transaction, so the session, the movements and the
// product counters never diverge.
type StockCountService struct {
	stockCountRepo inventory.StockCountRepository
	productRepo    catalog.ProductRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewStockCountService creates a new StockCountService
func NewStockCountService(stockCountRepo inventory.StockCountRepository, productRepo catalog.ProductRepository, txScope TransactionScope) *StockCountService {
	return &StockCountService{
		stockCountRepo: stockCountRepo,
		productRepo:    productRepo,
		txScope:        txScope,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *StockCountService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create opens a new draft count session
func (s *StockCountService) Create(ctx context.Context, companyID uuid.UUID, req CreateStockCountRequest) (*StockCountResponse, error) {
	number, err := s.stockCountRepo.NextNumber(ctx, companyID)
	if err != nil {
		return nil, err
	}

	count, err := inventory.NewStockCount(companyID, number, req.LocationID, req.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.stockCountRepo.Save(ctx, count); err != nil {
		return nil, err
	}

	s.publish(ctx, count)

	response := ToStockCountResponse(count)
	return &response, nil
}

// GetByID retrieves a count session by ID
func (s *StockCountService) GetByID(ctx context.Context, companyID, countID uuid.UUID) (*StockCountResponse, error) {
	count, err := s.stockCountRepo.FindByID(ctx, companyID, countID)
	if err != nil {
		return nil, err
	}
	response := ToStockCountResponse(count)
	return &response, nil
}

// List retrieves count sessions for a company
func (s *StockCountService) List(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]StockCountResponse, error) {
	counts, err := s.stockCountRepo.FindAll(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	return ToStockCountResponses(counts), nil
}

// Start snapshots every stock-managed product and opens counting
func (s *StockCountService) Start(ctx context.Context, companyID, countID uuid.UUID) (*StockCountResponse, error) {
	count, err := s.stockCountRepo.FindByID(ctx, companyID, countID)
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.FindStockManaged(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if err := count.Start(products); err != nil {
		return nil, err
	}
	if err := s.stockCountRepo.SaveWithLock(ctx, count); err != nil {
		return nil, err
	}

	s.publish(ctx, count)

	response := ToStockCountResponse(count)
	return &response, nil
}

// RecordCount records the physical count for one product in the session
func (s *StockCountService) RecordCount(ctx context.Context, companyID, countID uuid.UUID, req RecordCountRequest) (*StockCountResponse, error) {
	count, err := s.stockCountRepo.FindByID(ctx, companyID, countID)
	if err != nil {
		return nil, err
	}

	if err := count.RecordCount(req.ProductID, req.ActualQuantity); err != nil {
		return nil, err
	}
	if err := s.stockCountRepo.SaveWithLock(ctx, count); err != nil {
		return nil, err
	}

	response := ToStockCountResponse(count)
	return &response, nil
}

// Complete closes the session and applies every discrepancy through the
// ledger as an inventory adjustment. Refuses while any item is uncounted.
func (s *StockCountService) Complete(ctx context.Context, companyID, countID uuid.UUID) (*StockCountResponse, error) {
	var count *inventory.StockCount

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		count, err = repos.StockCountRepo().FindByID(ctx, companyID, countID)
		if err != nil {
			return err
		}

		adjustments, err := count.Complete()
		if err != nil {
			return err
		}

		ledger := inventory.NewLedger(repos.ProductRepo(), repos.MovementRepo())
		for _, adj := range adjustments {
			if _, err := ledger.RecordMovement(ctx, companyID, adj.ProductID,
				inventory.MovementTypeInventory, adj.Quantity, count.LocationID,
				"stock count "+count.Number, &count.ID, inventory.ReferenceTypeStockCount); err != nil {
				return err
			}
		}

		return repos.StockCountRepo().SaveWithLock(ctx, count)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, count)

	response := ToStockCountResponse(count)
	return &response, nil
}

// Cancel cancels a count session without applying any adjustment
func (s *StockCountService) Cancel(ctx context.Context, companyID, countID uuid.UUID) (*StockCountResponse, error) {
	count, err := s.stockCountRepo.FindByID(ctx, companyID, countID)
	if err != nil {
		return nil, err
	}

	if err := count.Cancel(); err != nil {
		return nil, err
	}
	if err := s.stockCountRepo.SaveWithLock(ctx, count); err != nil {
		return nil, err
	}

	response := ToStockCountResponse(count)
	return &response, nil
}

// Delete removes a draft count session
func (s *StockCountService) Delete(ctx context.Context, companyID, countID uuid.UUID) error {
	count, err := s.stockCountRepo.FindByID(ctx, companyID, countID)
	if err != nil {
		return err
	}
	if count.Status != inventory.StockCountStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft count sessions can be deleted")
	}
	return s.stockCountRepo.Delete(ctx, companyID, countID)
}

func (s *StockCountService) publish(ctx context.Context, count *inventory.StockCount) {
	if s.eventPublisher == nil {
		return
	}
	events := count.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	count.ClearDomainEvents()
}
