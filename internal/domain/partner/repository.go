package partner

import (
	"context"

	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientRepository defines the interface for client persistence
type ClientRepository interface {
	// FindByID finds a client by its ID within a company
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*Client, error)

	// FindAll finds all clients for a company
	FindAll(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Client, error)

	// Save creates or updates a client
	Save(ctx context.Context, client *Client) error

	// Delete deletes a client within a company
	Delete(ctx context.Context, companyID, id uuid.UUID) error

	// Count counts clients for a company
	Count(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)
}

// ClientCategoryRepository defines the interface for client category persistence
type ClientCategoryRepository interface {
	// FindByID finds a client category by its ID within a company
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*ClientCategory, error)

	// FindAll finds all client categories for a company
	FindAll(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]ClientCategory, error)

	// Save creates or updates a client category
	Save(ctx context.Context, category *ClientCategory) error

	// Delete deletes a client category within a company
	Delete(ctx context.Context, companyID, id uuid.UUID) error
}
