package partner

import (
	"time"

	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Client represents a customer of the company.
// Its category participates in tax rule resolution.
type Client struct {
	shared.CompanyAggregateRoot
	Name       string     `gorm:"type:varchar(200);not null"`
	Email      string     `gorm:"type:varchar(200)"`
	Phone      string     `gorm:"type:varchar(40)"`
	Address    string     `gorm:"type:text"`
	City       string     `gorm:"type:varchar(100)"`
	ICE        string     `gorm:"type:varchar(30)"` // Identifiant Commun de l'Entreprise
	CategoryID *uuid.UUID `gorm:"type:uuid;index"`
	Active     bool       `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// NewClient creates a new client
func NewClient(companyID uuid.UUID, name string) (*Client, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Client name cannot exceed 200 characters")
	}

	return &Client{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Name:                 name,
		Active:               true,
	}, nil
}

// Update updates the client's contact information
func (c *Client) Update(name, email, phone, address, city, ice string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}

	c.Name = name
	c.Email = email
	c.Phone = phone
	c.Address = address
	c.City = city
	c.ICE = ice
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetCategory assigns the client to a category (nil clears the category)
func (c *Client) SetCategory(categoryID *uuid.UUID) {
	c.CategoryID = categoryID
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Deactivate deactivates the client
func (c *Client) Deactivate() {
	c.Active = false
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// ClientCategory groups clients for tax rule matching
type ClientCategory struct {
	shared.CompanyAggregateRoot
	Name        string `gorm:"type:varchar(100);not null;index"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ClientCategory) TableName() string {
	return "client_categories"
}

// NewClientCategory creates a new client category
func NewClientCategory(companyID uuid.UUID, name, description string) (*ClientCategory, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}

	return &ClientCategory{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Name:                 name,
		Description:          description,
	}, nil
}
