package repository

import "github.com/maggiehq/ledger/internal/model"

type BankEntity struct {
	ID   int64  `gorm:"primaryKey;autoIncrement;column:id"`
	Name string `gorm:"column:name;not null"`
	Logo string `gorm:"column:logo"`
}

func (BankEntity) TableName() string {
	return "banks"
}

type CardIssuerEntity struct {
	ID   int64  `gorm:"primaryKey;autoIncrement;column:id"`
	Name string `gorm:"column:name;not null"`
	Logo string `gorm:"column:logo"`
}

func (CardIssuerEntity) TableName() string {
	return "card_issuers"
}

type PaymentProcessorEntity struct {
	ID   int64  `gorm:"primaryKey;autoIncrement;column:id"`
	Name string `gorm:"column:name;not null"`
	Logo string `gorm:"column:logo"`
}

func (PaymentProcessorEntity) TableName() string {
	return "payment_processors"
}

func toBankModel(e *BankEntity) *model.Bank {
	if e == nil {
		return nil
	}
	return &model.Bank{ID: e.ID, Name: e.Name, Logo: e.Logo}
}

func toIssuerModel(e *CardIssuerEntity) *model.CardIssuer {
	if e == nil {
		return nil
	}
	return &model.CardIssuer{ID: e.ID, Name: e.Name, Logo: e.Logo}
}

func toProcessorModel(e *PaymentProcessorEntity) *model.PaymentProcessor {
	if e == nil {
		return nil
	}
	return &model.PaymentProcessor{ID: e.ID, Name: e.Name, Logo: e.Logo}
}
