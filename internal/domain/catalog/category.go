package catalog

import (
	"time"

	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Category groups products for tax rule matching and reporting
type Category struct {
	shared.CompanyAggregateRoot
	Name        string `gorm:"type:varchar(100);not null;index"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new product category
func NewCategory(companyID uuid.UUID, name, description string) (*Category, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}

	return &Category{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Name:                 name,
		Description:          description,
	}, nil
}

// Rename renames the category
func (c *Category) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}

	c.Name = name
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}
