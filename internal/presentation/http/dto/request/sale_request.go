package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleItemRequest represents one line of a sale request
type SaleItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateSaleRequest represents a sale creation request
type CreateSaleRequest struct {
	CustomerID uuid.UUID         `json:"customer_id" binding:"required"`
	Branch     string            `json:"branch" binding:"required,max=255"`
	Items      []SaleItemRequest `json:"items" binding:"dive"`
}

// UpdateSaleRequest represents a full sale replacement
type UpdateSaleRequest struct {
	CustomerID uuid.UUID         `json:"customer_id" binding:"required"`
	Branch     string            `json:"branch" binding:"required,max=255"`
	Items      []SaleItemRequest `json:"items" binding:"dive"`
}

// SaleFilterRequest represents sale list filter parameters
type SaleFilterRequest struct {
	CustomerID string `form:"customer_id"`
	Branch     string `form:"branch"`
	Cancelled  *bool  `form:"cancelled"`
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}
