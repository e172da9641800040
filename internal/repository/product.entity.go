package repository

import (
	"github.com/maggiehq/ledger/internal/model"
	"github.com/shopspring/decimal"
)

type ProductEntity struct {
	ID         int64           `gorm:"primaryKey;autoIncrement;column:id"`
	Name       string          `gorm:"column:name;not null"`
	EAN        *string         `gorm:"column:ean"`
	Amount     decimal.Decimal `gorm:"column:amount;type:numeric(20,6);not null"`
	AmountType string          `gorm:"column:amount_type;not null;default:pcs"`
	Category   string          `gorm:"column:category;not null;default:other"`
}

func (ProductEntity) TableName() string {
	return "products"
}

func toProductEntity(m *model.Product) *ProductEntity {
	if m == nil {
		return nil
	}
	return &ProductEntity{
		ID:         m.ID,
		Name:       m.Name,
		EAN:        m.EAN,
		Amount:     m.Amount,
		AmountType: string(m.AmountType),
		Category:   string(m.Category),
	}
}

func toProductModel(e *ProductEntity) *model.Product {
	if e == nil {
		return nil
	}
	return &model.Product{
		ID:         e.ID,
		Name:       e.Name,
		EAN:        e.EAN,
		Amount:     e.Amount,
		AmountType: model.AmountType(e.AmountType),
		Category:   model.ProductCategory(e.Category),
	}
}

func toProductModels(entities []*ProductEntity) []*model.Product {
	if entities == nil {
		return nil
	}
	models := make([]*model.Product, len(entities))
	for i, e := range entities {
		models[i] = toProductModel(e)
	}
	return models
}
