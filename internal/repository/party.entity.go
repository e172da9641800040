package repository

import "github.com/maggiehq/ledger/internal/model"

type EntityChainEntity struct {
	ID      int64  `gorm:"primaryKey;autoIncrement;column:id"`
	Name    string `gorm:"column:name;not null"`
	Website string `gorm:"column:website"`
}

func (EntityChainEntity) TableName() string {
	return "entity_chains"
}

type EntityEntity struct {
	ID        int64              `gorm:"primaryKey;autoIncrement;column:id"`
	Name      string             `gorm:"column:name;not null"`
	Website   string             `gorm:"column:website"`
	AddressID int64              `gorm:"column:address_id;not null;index"`
	Address   *AddressEntity     `gorm:"foreignKey:AddressID;references:ID;constraint:OnDelete:RESTRICT"`
	ChainID   *int64             `gorm:"column:chain_id;index"`
	Chain     *EntityChainEntity `gorm:"foreignKey:ChainID;references:ID;constraint:OnDelete:SET NULL"`
}

func (EntityEntity) TableName() string {
	return "entities"
}

func toChainEntity(m *model.EntityChain) *EntityChainEntity {
	if m == nil {
		return nil
	}
	return &EntityChainEntity{
		ID:      m.ID,
		Name:    m.Name,
		Website: m.Website,
	}
}

func toChainModel(e *EntityChainEntity) *model.EntityChain {
	if e == nil {
		return nil
	}
	return &model.EntityChain{
		ID:      e.ID,
		Name:    e.Name,
		Website: e.Website,
	}
}

func toChainModels(entities []*EntityChainEntity) []*model.EntityChain {
	if entities == nil {
		return nil
	}
	models := make([]*model.EntityChain, len(entities))
	for i, e := range entities {
		models[i] = toChainModel(e)
	}
	return models
}

func toEntityEntity(m *model.Entity) *EntityEntity {
	if m == nil {
		return nil
	}
	return &EntityEntity{
		ID:        m.ID,
		Name:      m.Name,
		Website:   m.Website,
		AddressID: m.AddressID,
		ChainID:   m.ChainID,
	}
}

func toEntityModel(e *EntityEntity) *model.Entity {
	if e == nil {
		return nil
	}
	return &model.Entity{
		ID:        e.ID,
		Name:      e.Name,
		Website:   e.Website,
		AddressID: e.AddressID,
		Address:   toAddressModel(e.Address),
		ChainID:   e.ChainID,
		Chain:     toChainModel(e.Chain),
	}
}

func toEntityModels(entities []*EntityEntity) []*model.Entity {
	if entities == nil {
		return nil
	}
	models := make([]*model.Entity, len(entities))
	for i, e := range entities {
		models[i] = toEntityModel(e)
	}
	return models
}
