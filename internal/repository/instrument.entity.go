package repository

import "github.com/maggiehq/ledger/internal/model"

type CardEntity struct {
	ID          int64             `gorm:"primaryKey;autoIncrement;column:id"`
	Name        string            `gorm:"column:name;not null"`
	IsVirtual   bool              `gorm:"column:is_virtual;not null"`
	IsTemporary bool              `gorm:"column:is_temporary;not null"`
	LastFour    *string           `gorm:"column:last_four;size:4"`
	IssuerID    int64             `gorm:"column:issuer_id;not null;index"`
	Issuer      *CardIssuerEntity `gorm:"foreignKey:IssuerID;references:ID;constraint:OnDelete:RESTRICT"`
}

func (CardEntity) TableName() string {
	return "cards"
}

type PaymentWayEntity struct {
	ID          int64                   `gorm:"primaryKey;autoIncrement;column:id"`
	Name        string                  `gorm:"column:name;not null"`
	Image       string                  `gorm:"column:image"`
	ProcessorID *int64                  `gorm:"column:processor_id;index"`
	Processor   *PaymentProcessorEntity `gorm:"foreignKey:ProcessorID;references:ID;constraint:OnDelete:SET NULL"`
}

func (PaymentWayEntity) TableName() string {
	return "payment_ways"
}

type VaultEntity struct {
	ID         int64           `gorm:"primaryKey;autoIncrement;column:id"`
	Name       string          `gorm:"column:name;not null"`
	Balance    int64           `gorm:"column:balance;not null;default:0"`
	Type       string          `gorm:"column:type;not null;default:current"`
	CurrencyID int64           `gorm:"column:currency_id;not null;index"`
	Currency   *CurrencyEntity `gorm:"foreignKey:CurrencyID;references:ID;constraint:OnDelete:RESTRICT"`
	BankID     *int64          `gorm:"column:bank_id;index"`
	Bank       *BankEntity     `gorm:"foreignKey:BankID;references:ID;constraint:OnDelete:RESTRICT"`
	Cards      []*CardEntity   `gorm:"many2many:vault_cards;joinForeignKey:VaultID;joinReferences:CardID"`
}

func (VaultEntity) TableName() string {
	return "vaults"
}

func toCardEntity(m *model.Card) *CardEntity {
	if m == nil {
		return nil
	}
	return &CardEntity{
		ID:          m.ID,
		Name:        m.Name,
		IsVirtual:   m.IsVirtual,
		IsTemporary: m.IsTemporary,
		LastFour:    m.LastFour,
		IssuerID:    m.IssuerID,
	}
}

func toCardModel(e *CardEntity) *model.Card {
	if e == nil {
		return nil
	}
	return &model.Card{
		ID:          e.ID,
		Name:        e.Name,
		IsVirtual:   e.IsVirtual,
		IsTemporary: e.IsTemporary,
		LastFour:    e.LastFour,
		IssuerID:    e.IssuerID,
		Issuer:      toIssuerModel(e.Issuer),
	}
}

func toCardModels(entities []*CardEntity) []*model.Card {
	if entities == nil {
		return nil
	}
	models := make([]*model.Card, len(entities))
	for i, e := range entities {
		models[i] = toCardModel(e)
	}
	return models
}

func toPaymentWayEntity(m *model.PaymentWay) *PaymentWayEntity {
	if m == nil {
		return nil
	}
	return &PaymentWayEntity{
		ID:          m.ID,
		Name:        m.Name,
		Image:       m.Image,
		ProcessorID: m.ProcessorID,
	}
}

func toPaymentWayModel(e *PaymentWayEntity) *model.PaymentWay {
	if e == nil {
		return nil
	}
	return &model.PaymentWay{
		ID:          e.ID,
		Name:        e.Name,
		Image:       e.Image,
		ProcessorID: e.ProcessorID,
		Processor:   toProcessorModel(e.Processor),
	}
}

func toPaymentWayModels(entities []*PaymentWayEntity) []*model.PaymentWay {
	if entities == nil {
		return nil
	}
	models := make([]*model.PaymentWay, len(entities))
	for i, e := range entities {
		models[i] = toPaymentWayModel(e)
	}
	return models
}

func toVaultEntity(m *model.Vault) *VaultEntity {
	if m == nil {
		return nil
	}
	return &VaultEntity{
		ID:         m.ID,
		Name:       m.Name,
		Balance:    m.Balance,
		Type:       string(m.Type),
		CurrencyID: m.CurrencyID,
		BankID:     m.BankID,
	}
}

func toVaultModel(e *VaultEntity) *model.Vault {
	if e == nil {
		return nil
	}
	return &model.Vault{
		ID:         e.ID,
		Name:       e.Name,
		Balance:    e.Balance,
		Type:       model.VaultType(e.Type),
		CurrencyID: e.CurrencyID,
		Currency:   toCurrencyModel(e.Currency),
		BankID:     e.BankID,
		Bank:       toBankModel(e.Bank),
		Cards:      toCardModels(e.Cards),
	}
}

func toVaultModels(entities []*VaultEntity) []*model.Vault {
	if entities == nil {
		return nil
	}
	models := make([]*model.Vault, len(entities))
	for i, e := range entities {
		models[i] = toVaultModel(e)
	}
	return models
}
