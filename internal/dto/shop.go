package dto

import (
	"time"

	"github.com/SscSPs/psbook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateShopRequest defines the data needed to create a shop.
type CreateShopRequest struct {
	Name           string           `json:"name" binding:"required,max=200"`
	Address        string           `json:"address" binding:"max=500"`
	Phone          string           `json:"phone" binding:"max=32"`
	Zone           string           `json:"zone" binding:"max=100"`
	RouteID        *string          `json:"routeID"`
	OpeningBalance *decimal.Decimal `json:"openingBalance"` // Optional, defaults to zero
}

// UpdateShopRequest defines the descriptive fields an admin may change.
// Pointers distinguish omitted fields from empty values.
type UpdateShopRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=200"`
	Address *string `json:"address" binding:"omitempty,max=500"`
	Phone   *string `json:"phone" binding:"omitempty,max=32"`
	Zone    *string `json:"zone" binding:"omitempty,max=100"`
	RouteID *string `json:"routeID"`
}

// ListShopsParams defines query parameters for listing shops.
type ListShopsParams struct {
	RouteID        string `form:"routeID"`
	Zone           string `form:"zone"`
	Search         string `form:"search"`
	IncludeDeleted bool   `form:"includeDeleted"`
	Limit          int    `form:"limit,default=50"`
	Offset         int    `form:"offset,default=0"`
}

// ShopResponse defines the data returned for a shop.
type ShopResponse struct {
	ShopID           string          `json:"shopID"`
	Name             string          `json:"name"`
	Address          string          `json:"address"`
	Phone            string          `json:"phone"`
	Zone             string          `json:"zone"`
	CurrentBalance   decimal.Decimal `json:"currentBalance"`
	RouteID          *string         `json:"routeID,omitempty"`
	LastCollectionAt *time.Time      `json:"lastCollectionAt,omitempty"`
	IsDeleted        bool            `json:"isDeleted"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
	LastUpdatedAt    time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy    string          `json:"lastUpdatedBy"`
}

// ListShopsResponse wraps the list of shops.
type ListShopsResponse struct {
	Shops []ShopResponse `json:"shops"`
}

// ToShopResponse converts a domain.Shop to ShopResponse DTO
func ToShopResponse(s *domain.Shop) ShopResponse {
	return ShopResponse{
		ShopID:           s.ShopID,
		Name:             s.Name,
		Address:          s.Address,
		Phone:            s.Phone,
		Zone:             s.Zone,
		CurrentBalance:   s.CurrentBalance,
		RouteID:          s.RouteID,
		LastCollectionAt: s.LastCollectionAt,
		IsDeleted:        s.IsDeleted(),
		CreatedAt:        s.CreatedAt,
		CreatedBy:        s.CreatedBy,
		LastUpdatedAt:    s.LastUpdatedAt,
		LastUpdatedBy:    s.LastUpdatedBy,
	}
}

// ToListShopsResponse converts a slice of domain.Shop to ListShopsResponse DTO
func ToListShopsResponse(shops []domain.Shop) ListShopsResponse {
	resp := make([]ShopResponse, len(shops))
	for i := range shops {
		resp[i] = ToShopResponse(&shops[i])
	}
	return ListShopsResponse{Shops: resp}
}
