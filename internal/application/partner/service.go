package partner

import (
	"context"

	"github.com/fatoora/backend/internal/domain/partner"
	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Service handles client and client category management
type Service struct {
	clientRepo   partner.ClientRepository
	categoryRepo partner.ClientCategoryRepository
}

// NewService creates a new partner Service
func NewService(clientRepo partner.ClientRepository, categoryRepo partner.ClientCategoryRepository) *Service {
	return &Service{
		clientRepo:   clientRepo,
		categoryRepo: categoryRepo,
	}
}

// CreateClient creates a client
func (s *Service) CreateClient(ctx context.Context, companyID uuid.UUID, req CreateClientRequest) (*ClientResponse, error) {
	client, err := partner.NewClient(companyID, req.Name)
	if err != nil {
		return nil, err
	}

	if err := client.Update(req.Name, req.Email, req.Phone, req.Address, req.City, req.ICE); err != nil {
		return nil, err
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, companyID, *req.CategoryID); err != nil {
			return nil, err
		}
		client.SetCategory(req.CategoryID)
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// GetClient retrieves a client by ID
func (s *Service) GetClient(ctx context.Context, companyID, clientID uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, companyID, clientID)
	if err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// ListClients retrieves clients with pagination
func (s *Service) ListClients(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (*shared.Paginated[ClientResponse], error) {
	clients, err := s.clientRepo.FindAll(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.clientRepo.Count(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	result := shared.NewPaginated(ToClientResponses(clients), total, filter.Page, filter.PageSize)
	return &result, nil
}

// UpdateClient updates a client's contact information and category
func (s *Service) UpdateClient(ctx context.Context, companyID, clientID uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, companyID, clientID)
	if err != nil {
		return nil, err
	}

	if err := client.Update(req.Name, req.Email, req.Phone, req.Address, req.City, req.ICE); err != nil {
		return nil, err
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, companyID, *req.CategoryID); err != nil {
			return nil, err
		}
	}
	client.SetCategory(req.CategoryID)

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// DeactivateClient deactivates a client
func (s *Service) DeactivateClient(ctx context.Context, companyID, clientID uuid.UUID) error {
	client, err := s.clientRepo.FindByID(ctx, companyID, clientID)
	if err != nil {
		return err
	}
	client.Deactivate()
	return s.clientRepo.Save(ctx, client)
}

// DeleteClient deletes a client
func (s *Service) DeleteClient(ctx context.Context, companyID, clientID uuid.UUID) error {
	if _, err := s.clientRepo.FindByID(ctx, companyID, clientID); err != nil {
		return err
	}
	return s.clientRepo.Delete(ctx, companyID, clientID)
}

// CreateCategory creates a client category
func (s *Service) CreateCategory(ctx context.Context, companyID uuid.UUID, req CreateClientCategoryRequest) (*ClientCategoryResponse, error) {
	category, err := partner.NewClientCategory(companyID, req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	response := ToClientCategoryResponse(category)
	return &response, nil
}

// ListCategories retrieves a company's client categories
func (s *Service) ListCategories(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]ClientCategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	return ToClientCategoryResponses(categories), nil
}

// DeleteCategory deletes a client category
func (s *Service) DeleteCategory(ctx context.Context, companyID, categoryID uuid.UUID) error {
	return s.categoryRepo.Delete(ctx, companyID, categoryID)
}
