// Package pricing holds the quantity-tier discount rules applied to every
// sale line.
package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

const (
	// MaxQuantityPerItem is the most units of one product a line may carry
	MaxQuantityPerItem = 20

	// MoneyScale is the number of decimal places money is stored with
	MoneyScale = 2

	tenPercentMinQuantity    = 4
	twentyPercentMinQuantity = 10
)

var (
	tenPercent    = decimal.NewFromFloat(0.10)
	twentyPercent = decimal.NewFromFloat(0.20)
)

var (
	ErrQuantityLimitExceeded = errors.New("quantity limit exceeded: cannot sell more than 20 identical items")
	ErrQuantityNotPositive   = errors.New("quantity must be at least 1")
	ErrNegativeUnitPrice     = errors.New("unit price cannot be negative")
	ErrUnitPriceScale        = errors.New("unit price cannot have more than 2 decimal places")
)

// ComputeDiscount returns the per-unit discount for a line, rounded to
// cents. Quantities of 10 to 20 get 20%, 4 to 9 get 10%, anything else gets
// nothing.
func ComputeDiscount(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	switch {
	case quantity >= twentyPercentMinQuantity && quantity <= MaxQuantityPerItem:
		return unitPrice.Mul(twentyPercent).Round(MoneyScale)
	case quantity >= tenPercentMinQuantity && quantity < twentyPercentMinQuantity:
		return unitPrice.Mul(tenPercent).Round(MoneyScale)
	default:
		return decimal.Zero
	}
}

// ValidateUnitPrice rejects negative prices and prices finer than a cent.
// With cent prices and cent discounts every line total is exact at the
// stored scale.
func ValidateUnitPrice(unitPrice decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return ErrNegativeUnitPrice
	}
	if !unitPrice.Equal(unitPrice.Round(MoneyScale)) {
		return ErrUnitPriceScale
	}
	return nil
}

// ValidateQuantity rejects quantities outside 1..MaxQuantityPerItem
func ValidateQuantity(quantity int) error {
	if quantity > MaxQuantityPerItem {
		return ErrQuantityLimitExceeded
	}
	if quantity < 1 {
		return ErrQuantityNotPositive
	}
	return nil
}

// LineTotal is quantity * (unitPrice - discount)
func LineTotal(quantity int, unitPrice, discount decimal.Decimal) decimal.Decimal {
	return unitPrice.Sub(discount).Mul(decimal.NewFromInt(int64(quantity)))
}
