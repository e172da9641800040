package repository

import (
	"github.com/maggiehq/ledger/internal/model"
	"github.com/shopspring/decimal"
)

type AddressEntity struct {
	ID             int64            `gorm:"primaryKey;autoIncrement;column:id"`
	Type           string           `gorm:"column:type;not null;default:st"`
	Name           string           `gorm:"column:name;not null"`
	BuildingNumber string           `gorm:"column:building_number"`
	PostalCode     string           `gorm:"column:postal_code"`
	City           string           `gorm:"column:city;not null"`
	Latitude       *decimal.Decimal `gorm:"column:latitude;type:numeric(9,6)"`
	Longitude      *decimal.Decimal `gorm:"column:longitude;type:numeric(9,6)"`
}

func (AddressEntity) TableName() string {
	return "addresses"
}

func toAddressEntity(m *model.Address) *AddressEntity {
	if m == nil {
		return nil
	}
	return &AddressEntity{
		ID:             m.ID,
		Type:           string(m.Type),
		Name:           m.Name,
		BuildingNumber: m.BuildingNumber,
		PostalCode:     m.PostalCode,
		City:           m.City,
		Latitude:       m.Latitude,
		Longitude:      m.Longitude,
	}
}

func toAddressModel(e *AddressEntity) *model.Address {
	if e == nil {
		return nil
	}
	return &model.Address{
		ID:             e.ID,
		Type:           model.AddressType(e.Type),
		Name:           e.Name,
		BuildingNumber: e.BuildingNumber,
		PostalCode:     e.PostalCode,
		City:           e.City,
		Latitude:       e.Latitude,
		Longitude:      e.Longitude,
	}
}

func toAddressModels(entities []*AddressEntity) []*model.Address {
	if entities == nil {
		return nil
	}
	models := make([]*model.Address, len(entities))
	for i, e := range entities {
		models[i] = toAddressModel(e)
	}
	return models
}
