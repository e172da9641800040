package model

import (
	"github.com/shopspring/decimal"
)

// Currency is immutable reference data. Monetary values everywhere in the
// ledger are stored as integer counts of the currency's minor unit (cents,
// grosze, satoshi); MinorUnits says how many decimal places that is.
type Currency struct {
	ID                   int64  `json:"id"`
	Name                 string `json:"name"`
	MinorUnits           int    `json:"minor_units"`
	ISOCode              string `json:"iso_code"` // ISO 4217, or pseudo-ISO like BTC
	Symbol               string `json:"symbol"`
	SymbolPrecedesAmount bool   `json:"symbol_precedes_amount"` // true = $300, false = 300zł
}

// MajorAmount converts a minor-unit amount to the currency's major unit.
// Pure presentation helper: the stored integer stays authoritative.
func (c *Currency) MajorAmount(minor int64) decimal.Decimal {
	return decimal.New(minor, -int32(c.MinorUnits))
}

// FormatAmount renders a minor-unit amount with the currency symbol placed
// per SymbolPrecedesAmount, e.g. "$123.45" or "123.45zł".
func (c *Currency) FormatAmount(minor int64) string {
	amount := c.MajorAmount(minor).StringFixed(int32(c.MinorUnits))
	if c.SymbolPrecedesAmount {
		return c.Symbol + amount
	}
	return amount + c.Symbol
}

// FormatAmountISO renders a minor-unit amount with the ISO code suffix,
// e.g. "123.45 USD".
func (c *Currency) FormatAmountISO(minor int64) string {
	return c.MajorAmount(minor).StringFixed(int32(c.MinorUnits)) + " " + c.ISOCode
}

type CurrencyCreateRequest struct {
	Name                 string
	MinorUnits           int
	ISOCode              string
	Symbol               string
	SymbolPrecedesAmount bool
}

func (p CurrencyCreateRequest) Validate() error {
	if p.Name == "" {
		return Invalid("name", "is required")
	}
	if p.MinorUnits < 0 {
		return Invalid("minor_units", "must not be negative")
	}
	if p.ISOCode == "" {
		return Invalid("iso_code", "is required")
	}
	if p.Symbol == "" {
		return Invalid("symbol", "is required")
	}
	return nil
}
