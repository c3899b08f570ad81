package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/developerstore-sales/internal/domain/entity"
	"github.com/sangkips/developerstore-sales/pkg/pagination"
)

// SaleItemResponse is the client view of a sale line. Money is rendered
// with two decimals.
type SaleItemResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	Quantity    int       `json:"quantity"`
	UnitPrice   string    `json:"unit_price"`
	Discount    string    `json:"discount"`
	TotalAmount string    `json:"total_amount"`
}

// SaleResponse is the client view of a sale
type SaleResponse struct {
	ID          uuid.UUID          `json:"id"`
	SaleNumber  string             `json:"sale_number"`
	SaleDate    time.Time          `json:"sale_date"`
	CustomerID  uuid.UUID          `json:"customer_id"`
	Branch      string             `json:"branch"`
	TotalAmount string             `json:"total_amount"`
	IsCancelled bool               `json:"is_cancelled"`
	Items       []SaleItemResponse `json:"items"`
}

// NewSaleResponse maps a sale entity to its response
func NewSaleResponse(s *entity.Sale) SaleResponse {
	items := make([]SaleItemResponse, len(s.Items))
	for i, item := range s.Items {
		items[i] = SaleItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Discount:    item.Discount.StringFixed(2),
			TotalAmount: item.TotalAmount.StringFixed(2),
		}
	}
	return SaleResponse{
		ID:          s.ID,
		SaleNumber:  s.SaleNumber,
		SaleDate:    s.SaleDate,
		CustomerID:  s.CustomerID,
		Branch:      s.Branch,
		TotalAmount: s.TotalAmount.StringFixed(2),
		IsCancelled: s.IsCancelled,
		Items:       items,
	}
}

// NewSalePage maps a page of sales, keeping its pagination
func NewSalePage(page *pagination.PaginatedResult[entity.Sale]) *pagination.PaginatedResult[SaleResponse] {
	out := make([]SaleResponse, len(page.Items))
	for i := range page.Items {
		out[i] = NewSaleResponse(&page.Items[i])
	}
	return pagination.NewPaginatedResult(out, page.Pagination)
}
