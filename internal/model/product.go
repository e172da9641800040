package model

import "github.com/shopspring/decimal"

// Product is an immutable catalog item description, not a running
// inventory. Amount is a fixed-precision quantity in AmountType units,
// bounded to 20 digits and 6 decimals.
type Product struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	EAN        *string         `json:"ean,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	AmountType AmountType      `json:"amount_type"`
	Category   ProductCategory `json:"category"`
}

const (
	productAmountMaxDigits   = 20
	productAmountMaxDecimals = 6
)

type ProductCreateRequest struct {
	Name       string
	EAN        *string
	Amount     decimal.Decimal
	AmountType AmountType
	Category   ProductCategory
}

func (p ProductCreateRequest) Validate() error {
	if p.Name == "" {
		return Invalid("name", "is required")
	}
	if !p.AmountType.Valid() {
		return Invalid("amount_type", "is not a known unit")
	}
	if !p.Category.Valid() {
		return Invalid("category", "is not a known category")
	}
	if !p.Amount.IsPositive() {
		return Invalid("amount", "must be positive")
	}
	if p.Amount.Exponent() < -productAmountMaxDecimals {
		return Invalid("amount", "has more than 6 decimal places")
	}
	if len(p.Amount.Coefficient().String()) > productAmountMaxDigits {
		return Invalid("amount", "exceeds 20 digits")
	}
	return nil
}
