package model

import "github.com/shopspring/decimal"

// Address locates an entity. Coordinates are optional and kept at six
// fractional digits, which is roughly 10cm of precision.
type Address struct {
	ID             int64            `json:"id"`
	Type           AddressType      `json:"type"`
	Name           string           `json:"name"`
	BuildingNumber string           `json:"building_number"`
	PostalCode     string           `json:"postal_code"`
	City           string           `json:"city"`
	Latitude       *decimal.Decimal `json:"latitude,omitempty"`
	Longitude      *decimal.Decimal `json:"longitude,omitempty"`
}

type AddressCreateRequest struct {
	Type           AddressType
	Name           string
	BuildingNumber string
	PostalCode     string
	City           string
	Latitude       *decimal.Decimal
	Longitude      *decimal.Decimal
}

func (p AddressCreateRequest) Validate() error {
	if !p.Type.Valid() {
		return Invalid("type", "is not a known address type")
	}
	if p.Name == "" {
		return Invalid("name", "is required")
	}
	if p.City == "" {
		return Invalid("city", "is required")
	}
	if p.Latitude != nil && (p.Latitude.LessThan(decimal.NewFromInt(-90)) || p.Latitude.GreaterThan(decimal.NewFromInt(90))) {
		return Invalid("latitude", "must be between -90 and 90")
	}
	if p.Longitude != nil && (p.Longitude.LessThan(decimal.NewFromInt(-180)) || p.Longitude.GreaterThan(decimal.NewFromInt(180))) {
		return Invalid("longitude", "must be between -180 and 180")
	}
	return nil
}
