package catalog

import (
	"context"

	"github.com/fatoora/backend/internal/domain/catalog"
	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/fatoora/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Service handles catalog management for products, services and categories.
// Stock levels are read-only here; they only move through the stock ledger.
type Service struct {
	productRepo    catalog.ProductRepository
	categoryRepo   catalog.CategoryRepository
	eventPublisher shared.EventPublisher
}

// NewService creates a new catalog Service
func NewService(productRepo catalog.ProductRepository, categoryRepo catalog.CategoryRepository) *Service {
	return &Service{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateProduct creates a product or service in the catalog
func (s *Service) CreateProduct(ctx context.Context, companyID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	if existing, err := s.productRepo.FindByCode(ctx, companyID, req.Code); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A product with this code already exists")
	} else if err != nil && !shared.IsCode(err, "NOT_FOUND") {
		return nil, err
	}

	price := valueobject.NewMoneyMAD(req.Price)

	var product *catalog.Product
	var err error
	if req.IsService {
		product, err = catalog.NewService(companyID, req.Code, req.Name, req.Unit, price, req.VATRate)
	} else {
		product, err = catalog.NewProduct(companyID, req.Code, req.Name, req.Unit, price, req.VATRate)
	}
	if err != nil {
		return nil, err
	}

	product.Description = req.Description
	product.SetCategory(req.CategoryID)

	if req.ManageStock && !req.IsService {
		if err := product.EnableStockManagement(); err != nil {
			return nil, err
		}
		if err := product.SetStockThresholds(req.MinStock, req.AlertStock); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publish(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// GetProduct retrieves a product by ID
func (s *Service) GetProduct(ctx context.Context, companyID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GetProductByCode retrieves a product by its code
func (s *Service) GetProductByCode(ctx context.Context, companyID uuid.UUID, code string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByCode(ctx, companyID, code)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// ListProducts retrieves products with pagination
func (s *Service) ListProducts(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (*shared.Paginated[ProductResponse], error) {
	products, err := s.productRepo.FindAll(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	result := shared.NewPaginated(ToProductResponses(products), total, filter.Page, filter.PageSize)
	return &result, nil
}

// UpdateProduct updates a product's details
func (s *Service) UpdateProduct(ctx context.Context, companyID, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	product.SetCategory(req.CategoryID)
	if req.Price != nil {
		if err := product.UpdatePrice(valueobject.NewMoneyMAD(*req.Price)); err != nil {
			return nil, err
		}
	}
	if req.VATRate != nil {
		if err := product.UpdateVATRate(*req.VATRate); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	s.publish(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// DeactivateProduct deactivates a product
func (s *Service) DeactivateProduct(ctx context.Context, companyID, productID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, companyID, productID)
	if err != nil {
		return err
	}
	product.Deactivate()
	return s.productRepo.SaveWithLock(ctx, product)
}

// DeleteProduct deletes a product from the catalog
func (s *Service) DeleteProduct(ctx context.Context, companyID, productID uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, companyID, productID); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, companyID, productID)
}

// CreateCategory creates a product category
func (s *Service) CreateCategory(ctx context.Context, companyID uuid.UUID, req CreateCategoryRequest) (*CategoryResponse, error) {
	category, err := catalog.NewCategory(companyID, req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// ListCategories retrieves a company's product categories
func (s *Service) ListCategories(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponses(categories), nil
}

// DeleteCategory deletes a product category
func (s *Service) DeleteCategory(ctx context.Context, companyID, categoryID uuid.UUID) error {
	return s.categoryRepo.Delete(ctx, companyID, categoryID)
}

func (s *Service) publish(ctx context.Context, product *catalog.Product) {
	if s.eventPublisher == nil {
		return
	}
	events := product.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	product.ClearDomainEvents()
}
