package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/developerstore-sales/internal/domain/entity"
	"github.com/sangkips/developerstore-sales/internal/domain/pricing"
	"github.com/sangkips/developerstore-sales/pkg/apperror"
	"github.com/sangkips/developerstore-sales/pkg/utils"
	"github.com/shopspring/decimal"
)

// SaleItemInput is one requested line of a sale
type SaleItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
}

// validateItems checks every line before anything is priced or stored
func validateItems(items []SaleItemInput) error {
	if len(items) == 0 {
		return apperror.NewValidationError("sale must contain at least one item",
			apperror.FieldError{Field: "items", Message: "at least one item is required"})
	}

	var fieldErrors []apperror.FieldError
	exceeded := false
	for i, item := range items {
		if err := pricing.ValidateQuantity(item.Quantity); err != nil {
			if errors.Is(err, pricing.ErrQuantityLimitExceeded) {
				exceeded = true
			}
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: err.Error(),
			})
		}
		if err := pricing.ValidateUnitPrice(item.UnitPrice); err != nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d].unit_price", i),
				Message: err.Error(),
			})
		}
		if item.ProductID == uuid.Nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d].product_id", i),
				Message: "product is required",
			})
		}
	}

	if len(fieldErrors) == 0 {
		return nil
	}
	if exceeded {
		return apperror.NewValidationError("quantity limit exceeded", fieldErrors...)
	}
	return apperror.NewValidationError("invalid sale items", fieldErrors...)
}

// priceItems applies the quantity tier discount to each line
func priceItems(items []SaleItemInput) []entity.SaleItem {
	priced := make([]entity.SaleItem, len(items))
	for i, item := range items {
		discount := pricing.ComputeDiscount(item.Quantity, item.UnitPrice)
		priced[i] = entity.SaleItem{
			Position:    i,
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Discount:    discount,
			TotalAmount: pricing.LineTotal(item.Quantity, item.UnitPrice, discount),
		}
	}
	return priced
}

// listPriceItems prices lines at the unit price with no discount
func listPriceItems(items []SaleItemInput) []entity.SaleItem {
	priced := make([]entity.SaleItem, len(items))
	for i, item := range items {
		priced[i] = entity.SaleItem{
			Position:    i,
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Discount:    decimal.Zero,
			TotalAmount: pricing.LineTotal(item.Quantity, item.UnitPrice, decimal.Zero),
		}
	}
	return priced
}

// newSale assembles an unsaved sale with a fresh sale number
func newSale(customerID uuid.UUID, branch string, items []entity.SaleItem, now time.Time) *entity.Sale {
	sale := &entity.Sale{
		SaleNumber: utils.GenerateSaleNumber(),
		SaleDate:   now.UTC(),
		CustomerID: customerID,
		Branch:     branch,
		Items:      items,
	}
	sale.RecalculateTotal()
	return sale
}
