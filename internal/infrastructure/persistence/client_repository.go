package persistence

import (
	"context"
	"errors"

	"github.com/fatoora/backend/internal/domain/partner"
	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormClientRepository implements ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindByID finds a client by its ID within a company
func (r *GormClientRepository) FindByID(ctx context.Context, companyID, id uuid.UUID) (*partner.Client, error) {
	var client partner.Client
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &client, nil
}

// FindAll finds all clients for a company
func (r *GormClientRepository) FindAll(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]partner.Client, error) {
	var clients []partner.Client
	query := r.db.WithContext(ctx).
		Model(&partner.Client{}).
		Where("company_id = ?", companyID)
	query = applyFilter(query, filter, ClientSortFields, "name", "email", "ice")

	if err := query.Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// Save creates or updates a client
func (r *GormClientRepository) Save(ctx context.Context, client *partner.Client) error {
	return r.db.WithContext(ctx).Save(client).Error
}

// Delete deletes a client within a company
func (r *GormClientRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&partner.Client{}, "company_id = ? AND id = ?", companyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts clients for a company
func (r *GormClientRepository) Count(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&partner.Client{}).
		Where("company_id = ?", companyID)
	query = applySearch(query, filter, "name", "email", "ice")

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormClientRepository implements ClientRepository
var _ partner.ClientRepository = (*GormClientRepository)(nil)
