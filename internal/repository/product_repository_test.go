package repository

import (
	"context"
	"testing"

	"github.com/maggiehq/ledger/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewProductRepository(db)
	ctx := context.Background()

	ean := "5901234123457"
	created, err := repo.Create(ctx, &model.Product{
		Name:       "Milk",
		EAN:        &ean,
		Amount:     decimal.RequireFromString("1.5"),
		AmountType: model.AmountLitres,
		Category:   model.CategoryFood,
	})
	require.NoError(t, err)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("1.5")))
	assert.Equal(t, model.AmountLitres, got.AmountType)
	require.NotNil(t, got.EAN)
	assert.Equal(t, ean, *got.EAN)
}

func TestProductRepository_CountByIDs(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewProductRepository(db)
	ctx := context.Background()

	a := seedProduct(t, db, "A")
	b := seedProduct(t, db, "B")

	count, err := repo.CountByIDs(ctx, []int64{a.ID, b.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountByIDs(ctx, []int64{a.ID, 9999})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestProductRepository_Update(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewProductRepository(db)
	ctx := context.Background()

	product := seedProduct(t, db, "Milk")

	t.Run("rejects unknown unit code", func(t *testing.T) {
		_, err := repo.Update(ctx, &model.Product{
			ID:         product.ID,
			Name:       product.Name,
			Amount:     decimal.NewFromInt(1),
			AmountType: "barrels",
			Category:   model.CategoryFood,
		})
		assert.ErrorIs(t, err, model.ErrValidation)

		got, err := repo.Get(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, product.AmountType, got.AmountType)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := repo.Update(ctx, &model.Product{
			ID:         product.ID,
			Name:       product.Name,
			Amount:     decimal.Zero,
			AmountType: product.AmountType,
			Category:   product.Category,
		})
		assert.ErrorIs(t, err, model.ErrValidation)
	})

	t.Run("rewrites the row", func(t *testing.T) {
		updated, err := repo.Update(ctx, &model.Product{
			ID:         product.ID,
			Name:       "Whole Milk",
			Amount:     decimal.RequireFromString("2"),
			AmountType: model.AmountLitres,
			Category:   model.CategoryFood,
		})
		require.NoError(t, err)
		assert.Equal(t, "Whole Milk", updated.Name)
		assert.True(t, updated.Amount.Equal(decimal.RequireFromString("2")))
	})
}

func TestProductRepository_Delete(t *testing.T) {
	t.Run("restricted while referenced by a transaction", func(t *testing.T) {
		db := setupTestDB(t).DB
		repo := NewProductRepository(db)
		txs := NewTransactionRepository(db)
		ctx := context.Background()

		sender := seedEntity(t, db, "Me")
		recipient := seedEntity(t, db, "Shop")
		product := seedProduct(t, db, "Milk")
		_, err := txs.Create(ctx, &model.Transaction{
			Name:        "Shop run",
			SenderID:    sender.ID,
			RecipientID: recipient.ID,
			Type:        model.TransactionPurchase,
		}, []int64{product.ID})
		require.NoError(t, err)

		assert.ErrorIs(t, repo.Delete(ctx, product.ID), model.ErrRestricted)
	})

	t.Run("delete unreferenced product", func(t *testing.T) {
		db := setupTestDB(t).DB
		repo := NewProductRepository(db)
		ctx := context.Background()

		p := seedProduct(t, db, "Loner")
		require.NoError(t, repo.Delete(ctx, p.ID))
	})
}
