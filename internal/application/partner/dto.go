package partner

import (
	"time"

	"github.com/fatoora/backend/internal/domain/partner"
	"github.com/google/uuid"
)

// CreateClientRequest is the request to create a client
type CreateClientRequest struct {
	Name       string     `json:"name" binding:"required,max=200"`
	Email      string     `json:"email" binding:"omitempty,email"`
	Phone      string     `json:"phone" binding:"max=40"`
	Address    string     `json:"address"`
	City       string     `json:"city" binding:"max=100"`
	ICE        string     `json:"ice" binding:"omitempty,ice"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
}

// UpdateClientRequest is the request to update a client
type UpdateClientRequest struct {
	Name       string     `json:"name" binding:"required,max=200"`
	Email      string     `json:"email" binding:"omitempty,email"`
	Phone      string     `json:"phone" binding:"max=40"`
	Address    string     `json:"address"`
	City       string     `json:"city" binding:"max=100"`
	ICE        string     `json:"ice" binding:"omitempty,ice"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email,omitempty"`
	Phone      string     `json:"phone,omitempty"`
	Address    string     `json:"address,omitempty"`
	City       string     `json:"city,omitempty"`
	ICE        string     `json:"ice,omitempty"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
	Active     bool       `json:"active"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ToClientResponse maps a client to its response
func ToClientResponse(c *partner.Client) ClientResponse {
	return ClientResponse{
		ID:         c.ID,
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		Address:    c.Address,
		City:       c.City,
		ICE:        c.ICE,
		CategoryID: c.CategoryID,
		Active:     c.Active,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// ToClientResponses maps clients to responses
func ToClientResponses(clients []partner.Client) []ClientResponse {
	out := make([]ClientResponse, 0, len(clients))
	for i := range clients {
		out = append(out, ToClientResponse(&clients[i]))
	}
	return out
}

// CreateClientCategoryRequest is the request to create a client category
type CreateClientCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

// ClientCategoryResponse represents a client category in API responses
type ClientCategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToClientCategoryResponse maps a client category to its response
func ToClientCategoryResponse(c *partner.ClientCategory) ClientCategoryResponse {
	return ClientCategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

// ToClientCategoryResponses maps client categories to responses
func ToClientCategoryResponses(categories []partner.ClientCategory) []ClientCategoryResponse {
	out := make([]ClientCategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, ToClientCategoryResponse(&categories[i]))
	}
	return out
}
