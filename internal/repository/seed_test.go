package repository

import (
	"context"
	"testing"

	"github.com/maggiehq/ledger/internal/model"
	"github.com/maggiehq/ledger/pkg/pg"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Seed helpers shared by the repository tests. Each returns a persisted
// record with defaults that satisfy the schema's not-null columns.

func seedCurrency(t *testing.T, db *pg.DB, iso string) *model.Currency {
	t.Helper()
	c, err := NewCurrencyRepository(db).Create(context.Background(), &model.Currency{
		Name:                 iso + " test currency",
		MinorUnits:           2,
		ISOCode:              iso,
		Symbol:               "$",
		SymbolPrecedesAmount: true,
	})
	require.NoError(t, err)
	return c
}

func seedAddress(t *testing.T, db *pg.DB) *model.Address {
	t.Helper()
	a, err := NewAddressRepository(db).Create(context.Background(), &model.Address{
		Type: model.AddressStreet,
		Name: "Main Street",
		City: "Springfield",
	})
	require.NoError(t, err)
	return a
}

func seedEntity(t *testing.T, db *pg.DB, name string) *model.Entity {
	t.Helper()
	addr := seedAddress(t, db)
	e, err := NewEntityRepository(db).Create(context.Background(), &model.Entity{
		Name:      name,
		AddressID: addr.ID,
	})
	require.NoError(t, err)
	return e
}

func seedBank(t *testing.T, db *pg.DB) *model.Bank {
	t.Helper()
	b, err := NewBankRepository(db).Create(context.Background(), &model.Bank{Name: "Test Bank"})
	require.NoError(t, err)
	return b
}

func seedIssuer(t *testing.T, db *pg.DB) *model.CardIssuer {
	t.Helper()
	i, err := NewCardIssuerRepository(db).Create(context.Background(), &model.CardIssuer{Name: "Test Issuer"})
	require.NoError(t, err)
	return i
}

func seedCard(t *testing.T, db *pg.DB, name string) *model.Card {
	t.Helper()
	issuer := seedIssuer(t, db)
	c, err := NewCardRepository(db).Create(context.Background(), &model.Card{
		Name:     name,
		IssuerID: issuer.ID,
	})
	require.NoError(t, err)
	return c
}

func seedVault(t *testing.T, db *pg.DB) *model.Vault {
	t.Helper()
	currency := seedCurrency(t, db, "USD")
	v, err := NewVaultRepository(db).Create(context.Background(), &model.Vault{
		Name:       "Checking",
		Balance:    10_000,
		Type:       model.VaultCurrent,
		CurrencyID: currency.ID,
	}, nil)
	require.NoError(t, err)
	return v
}

func seedPaymentWay(t *testing.T, db *pg.DB) *model.PaymentWay {
	t.Helper()
	w, err := NewPaymentWayRepository(db).Create(context.Background(), &model.PaymentWay{Name: "bank transfer"})
	require.NoError(t, err)
	return w
}

func seedProduct(t *testing.T, db *pg.DB, name string) *model.Product {
	t.Helper()
	p, err := NewProductRepository(db).Create(context.Background(), &model.Product{
		Name:       name,
		Amount:     decimal.NewFromInt(1),
		AmountType: model.AmountPieces,
		Category:   model.CategoryOther,
	})
	require.NoError(t, err)
	return p
}

func seedTransaction(t *testing.T, db *pg.DB, sender, recipient int64) *model.Transaction {
	t.Helper()
	tx, err := NewTransactionRepository(db).Create(context.Background(), &model.Transaction{
		Name:        "Test transaction",
		SenderID:    sender,
		RecipientID: recipient,
		Type:        model.TransactionPurchase,
	}, nil)
	require.NoError(t, err)
	return tx
}

func seedPayment(t *testing.T, db *pg.DB, transactionID, wayID, vaultID int64) *model.Payment {
	t.Helper()
	p, err := NewPaymentRepository(db).Create(context.Background(), &model.Payment{
		Amount:        1000,
		TransactionID: transactionID,
		PaymentWayID:  wayID,
		VaultID:       vaultID,
	})
	require.NoError(t, err)
	return p
}
