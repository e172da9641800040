package repository

import (
	"time"

	"github.com/maggiehq/ledger/internal/model"
)

type TransactionEntity struct {
	ID          int64            `gorm:"primaryKey;autoIncrement;column:id"`
	Name        string           `gorm:"column:name;not null"`
	Timestamp   time.Time        `gorm:"column:timestamp;not null;index"`
	SenderID    int64            `gorm:"column:sender_id;not null;index"`
	Sender      *EntityEntity    `gorm:"foreignKey:SenderID;references:ID;constraint:OnDelete:RESTRICT"`
	RecipientID int64            `gorm:"column:recipient_id;not null;index"`
	Recipient   *EntityEntity    `gorm:"foreignKey:RecipientID;references:ID;constraint:OnDelete:RESTRICT"`
	Type        string           `gorm:"column:type;not null;default:purchase"`
	Receipt     string           `gorm:"column:receipt"`
	Products    []*ProductEntity `gorm:"many2many:transaction_products;joinForeignKey:TransactionID;joinReferences:ProductID"`
	Payments    []*PaymentEntity `gorm:"foreignKey:TransactionID"`
}

func (TransactionEntity) TableName() string {
	return "transactions"
}

type PaymentEntity struct {
	ID            int64              `gorm:"primaryKey;autoIncrement;column:id"`
	Amount        int64              `gorm:"column:amount;not null"`
	TransactionID int64              `gorm:"column:transaction_id;not null;index"`
	Transaction   *TransactionEntity `gorm:"foreignKey:TransactionID;references:ID;constraint:OnDelete:CASCADE"`
	PaymentWayID  int64              `gorm:"column:payment_way_id;not null;index"`
	PaymentWay    *PaymentWayEntity  `gorm:"foreignKey:PaymentWayID;references:ID;constraint:OnDelete:CASCADE"`
	VaultID       int64              `gorm:"column:vault_id;not null;index"`
	Vault         *VaultEntity       `gorm:"foreignKey:VaultID;references:ID;constraint:OnDelete:RESTRICT"`
}

func (PaymentEntity) TableName() string {
	return "payments"
}

func toTransactionEntity(m *model.Transaction) *TransactionEntity {
	if m == nil {
		return nil
	}
	return &TransactionEntity{
		ID:          m.ID,
		Name:        m.Name,
		Timestamp:   m.Timestamp,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Type:        string(m.Type),
		Receipt:     m.Receipt,
	}
}

func toTransactionModel(e *TransactionEntity) *model.Transaction {
	if e == nil {
		return nil
	}
	return &model.Transaction{
		ID:          e.ID,
		Name:        e.Name,
		Timestamp:   e.Timestamp,
		SenderID:    e.SenderID,
		Sender:      toEntityModel(e.Sender),
		RecipientID: e.RecipientID,
		Recipient:   toEntityModel(e.Recipient),
		Type:        model.TransactionType(e.Type),
		Receipt:     e.Receipt,
		Products:    toProductModels(e.Products),
		Payments:    toPaymentModels(e.Payments),
	}
}

func toTransactionModels(entities []*TransactionEntity) []*model.Transaction {
	if entities == nil {
		return nil
	}
	models := make([]*model.Transaction, len(entities))
	for i, e := range entities {
		models[i] = toTransactionModel(e)
	}
	return models
}

func toPaymentEntity(m *model.Payment) *PaymentEntity {
	if m == nil {
		return nil
	}
	return &PaymentEntity{
		ID:            m.ID,
		Amount:        m.Amount,
		TransactionID: m.TransactionID,
		PaymentWayID:  m.PaymentWayID,
		VaultID:       m.VaultID,
	}
}

func toPaymentModel(e *PaymentEntity) *model.Payment {
	if e == nil {
		return nil
	}
	return &model.Payment{
		ID:            e.ID,
		Amount:        e.Amount,
		TransactionID: e.TransactionID,
		PaymentWayID:  e.PaymentWayID,
		PaymentWay:    toPaymentWayModel(e.PaymentWay),
		VaultID:       e.VaultID,
		Vault:         toVaultModel(e.Vault),
	}
}

func toPaymentModels(entities []*PaymentEntity) []*model.Payment {
	if entities == nil {
		return nil
	}
	models := make([]*model.Payment, len(entities))
	for i, e := range entities {
		models[i] = toPaymentModel(e)
	}
	return models
}
