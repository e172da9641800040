package repository

import "github.com/maggiehq/ledger/internal/model"

type CurrencyEntity struct {
	ID                   int64  `gorm:"primaryKey;autoIncrement;column:id"`
	Name                 string `gorm:"column:name;not null"`
	MinorUnits           int    `gorm:"column:minor_units;not null"`
	ISOCode              string `gorm:"column:iso_code;not null;uniqueIndex"`
	Symbol               string `gorm:"column:symbol;not null"`
	SymbolPrecedesAmount bool   `gorm:"column:symbol_precedes_amount;not null"`
}

func (CurrencyEntity) TableName() string {
	return "currencies"
}

func toCurrencyEntity(m *model.Currency) *CurrencyEntity {
	if m == nil {
		return nil
	}
	return &CurrencyEntity{
		ID:                   m.ID,
		Name:                 m.Name,
		MinorUnits:           m.MinorUnits,
		ISOCode:              m.ISOCode,
		Symbol:               m.Symbol,
		SymbolPrecedesAmount: m.SymbolPrecedesAmount,
	}
}

func toCurrencyModel(e *CurrencyEntity) *model.Currency {
	if e == nil {
		return nil
	}
	return &model.Currency{
		ID:                   e.ID,
		Name:                 e.Name,
		MinorUnits:           e.MinorUnits,
		ISOCode:              e.ISOCode,
		Symbol:               e.Symbol,
		SymbolPrecedesAmount: e.SymbolPrecedesAmount,
	}
}

func toCurrencyModels(entities []*CurrencyEntity) []*model.Currency {
	if entities == nil {
		return nil
	}
	models := make([]*model.Currency, len(entities))
	for i, e := range entities {
		models[i] = toCurrencyModel(e)
	}
	return models
}
