package repository

import (
	"context"
	"testing"
	"time"

	"github.com/maggiehq/ledger/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionRepository_Create(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	sender := seedEntity(t, db, "Me")
	recipient := seedEntity(t, db, "Grocery")
	milk := seedProduct(t, db, "Milk")
	bread := seedProduct(t, db, "Bread")

	t.Run("create with products", func(t *testing.T) {
		created, err := repo.Create(ctx, &model.Transaction{
			Name:        "Weekly shop",
			Timestamp:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			SenderID:    sender.ID,
			RecipientID: recipient.ID,
			Type:        model.TransactionPurchase,
		}, []int64{milk.ID, bread.ID})
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Len(t, created.Products, 2)
		require.NotNil(t, created.Sender)
		assert.Equal(t, "Me", created.Sender.Name)
	})

	t.Run("unknown product rejects the whole create", func(t *testing.T) {
		_, err := repo.Create(ctx, &model.Transaction{
			Name:        "Ghost shop",
			SenderID:    sender.ID,
			RecipientID: recipient.ID,
			Type:        model.TransactionPurchase,
		}, []int64{milk.ID, 9999})
		assert.ErrorIs(t, err, model.ErrValidation)

		_, total, err := repo.List(ctx, model.TransactionFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})
}

func TestTransactionRepository_List(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	sender := seedEntity(t, db, "Me")
	recipient := seedEntity(t, db, "Shop")
	other := seedEntity(t, db, "Employer")

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 250; i++ {
		_, err := repo.Create(ctx, &model.Transaction{
			Name:        "tx",
			Timestamp:   base.Add(time.Duration(i) * time.Minute),
			SenderID:    sender.ID,
			RecipientID: recipient.ID,
			Type:        model.TransactionPurchase,
		}, nil)
		require.NoError(t, err)
	}
	salary, err := repo.Create(ctx, &model.Transaction{
		Name:        "payday",
		Timestamp:   base.Add(300 * time.Minute),
		SenderID:    other.ID,
		RecipientID: sender.ID,
		Type:        model.TransactionSalary,
	}, nil)
	require.NoError(t, err)

	t.Run("default page size is 100", func(t *testing.T) {
		items, total, err := repo.List(ctx, model.TransactionFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(251), total)
		assert.Len(t, items, 100)
	})

	t.Run("newest first", func(t *testing.T) {
		items, _, err := repo.List(ctx, model.TransactionFilter{})
		require.NoError(t, err)
		assert.Equal(t, salary.ID, items[0].ID)
		for i := 1; i < len(items); i++ {
			assert.False(t, items[i].Timestamp.After(items[i-1].Timestamp))
		}
	})

	t.Run("last page holds the remainder", func(t *testing.T) {
		items, total, err := repo.List(ctx, model.TransactionFilter{Page: 3})
		require.NoError(t, err)
		assert.Equal(t, int64(251), total)
		assert.Len(t, items, 51)
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		items, _, err := repo.List(ctx, model.TransactionFilter{Page: 4})
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("page size is capped at 100", func(t *testing.T) {
		items, _, err := repo.List(ctx, model.TransactionFilter{PageSize: 500})
		require.NoError(t, err)
		assert.Len(t, items, 100)
	})

	t.Run("filter by sender", func(t *testing.T) {
		items, total, err := repo.List(ctx, model.TransactionFilter{SenderID: &other.ID})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "payday", items[0].Name)
	})

	t.Run("filter by type", func(t *testing.T) {
		salaryType := model.TransactionSalary
		_, total, err := repo.List(ctx, model.TransactionFilter{Type: &salaryType})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("filter by time window", func(t *testing.T) {
		from := base.Add(100 * time.Minute)
		to := base.Add(200 * time.Minute)
		_, total, err := repo.List(ctx, model.TransactionFilter{From: &from, To: &to})
		require.NoError(t, err)
		assert.Equal(t, int64(100), total)
	})
}

func TestTransactionRepository_Get(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	sender := seedEntity(t, db, "Me")
	recipient := seedEntity(t, db, "Shop")
	vault := seedVault(t, db)
	way := seedPaymentWay(t, db)
	tx := seedTransaction(t, db, sender.ID, recipient.ID)
	seedPayment(t, db, tx.ID, way.ID, vault.ID)
	seedPayment(t, db, tx.ID, way.ID, vault.ID)

	got, err := repo.Get(ctx, tx.ID)
	require.NoError(t, err)
	require.Len(t, got.Payments, 2)
	assert.Equal(t, int64(2000), got.SettledAmount())

	p := got.Payments[0]
	require.NotNil(t, p.PaymentWay)
	require.NotNil(t, p.Vault)
	require.NotNil(t, p.Vault.Currency)
	assert.Equal(t, "$10.00", p.Vault.Currency.FormatAmount(p.Amount))

	_, err = repo.Get(ctx, 9999)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestTransactionRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTransactionRepository(db.DB)
	payments := NewPaymentRepository(db.DB)
	ctx := context.Background()

	sender := seedEntity(t, db.DB, "Me")
	recipient := seedEntity(t, db.DB, "Shop")
	vault := seedVault(t, db.DB)
	way := seedPaymentWay(t, db.DB)
	product := seedProduct(t, db.DB, "Milk")

	tx, err := repo.Create(ctx, &model.Transaction{
		Name:        "Doomed",
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		Type:        model.TransactionPurchase,
	}, []int64{product.ID})
	require.NoError(t, err)
	payment := seedPayment(t, db.DB, tx.ID, way.ID, vault.ID)

	require.NoError(t, repo.Delete(ctx, tx.ID))

	// payments cascade
	_, err = payments.Get(ctx, payment.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	// join rows are gone, the product itself survives
	var joinRows int64
	require.NoError(t, db.rawDB.Table("transaction_products").Count(&joinRows).Error)
	assert.Zero(t, joinRows)
	_, err = NewProductRepository(db.DB).Get(ctx, product.ID)
	assert.NoError(t, err)

	// vault and way survive too
	_, err = NewVaultRepository(db.DB).Get(ctx, vault.ID)
	assert.NoError(t, err)
	_, err = NewPaymentWayRepository(db.DB).Get(ctx, way.ID)
	assert.NoError(t, err)
}
