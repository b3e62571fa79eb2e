// Package pricing derives customer-facing product prices from supplier cost
// and resolves the packaging surcharge for an order value.
//
// Every function here is pure: no I/O, no shared state, no rounding. Callers
// round at the display boundary.
package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidInput is returned for malformed pricing parameters. It is never
// worth retrying.
var ErrInvalidInput = errors.New("pricing: invalid input")

var (
	DefaultProfitMargin = decimal.NewFromInt(65)
	DefaultDiscount     = decimal.NewFromInt(81)

	maxProfitMargin = decimal.NewFromInt(1000)
	hundred         = decimal.NewFromInt(100)
)

// Result holds the derived prices for one product.
type Result struct {
	BasePrice               decimal.Decimal `json:"basePrice"`
	ProfitMarginPercentage  decimal.Decimal `json:"profitMarginPercentage"`
	DiscountPercentage      decimal.Decimal `json:"discountPercentage"`
	ProfitMarginPrice       decimal.Decimal `json:"profitMarginPrice"`
	CalculatedOriginalPrice decimal.Decimal `json:"calculatedOriginalPrice"`
	OfferPrice              decimal.Decimal `json:"offerPrice"`
}

// Compute derives the listed, "was" and offer prices.
//
//	profitMarginPrice       = base * (1 + margin/100)
//	calculatedOriginalPrice = profitMarginPrice / (1 - discount/100)
//	offerPrice              = profitMarginPrice
func Compute(basePrice, margin, discount decimal.Decimal) (Result, error) {
	if !basePrice.IsPositive() {
		return Result{}, fmt.Errorf("%w: base price must be greater than 0", ErrInvalidInput)
	}
	if margin.IsNegative() || margin.GreaterThan(maxProfitMargin) {
		return Result{}, fmt.Errorf("%w: profit margin percentage must be between 0 and 1000", ErrInvalidInput)
	}
	if discount.IsNegative() || discount.GreaterThanOrEqual(hundred) {
		return Result{}, fmt.Errorf("%w: discount percentage must be at least 0 and below 100", ErrInvalidInput)
	}

	profitMarginPrice := basePrice.Mul(decimal.NewFromInt(1).Add(margin.Div(hundred)))
	original := profitMarginPrice.Div(decimal.NewFromInt(1).Sub(discount.Div(hundred)))

	return Result{
		BasePrice:               basePrice,
		ProfitMarginPercentage:  margin,
		DiscountPercentage:      discount,
		ProfitMarginPrice:       profitMarginPrice,
		CalculatedOriginalPrice: original,
		OfferPrice:              profitMarginPrice,
	}, nil
}

// ComputeWithDefaults applies the default margin (65%) and discount (81%)
// for whichever percentage is nil.
func ComputeWithDefaults(basePrice decimal.Decimal, margin, discount *decimal.Decimal) (Result, error) {
	m, d := DefaultProfitMargin, DefaultDiscount
	if margin != nil {
		m = *margin
	}
	if discount != nil {
		d = *discount
	}
	return Compute(basePrice, m, d)
}
