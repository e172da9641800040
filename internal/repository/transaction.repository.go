package repository

import (
	"context"
	"errors"

	"github.com/maggiehq/ledger/internal/model"
	"github.com/maggiehq/ledger/pkg/pg"
	"gorm.io/gorm"
)

type TransactionRepository struct {
	*pg.DB
}

func NewTransactionRepository(db *pg.DB) *TransactionRepository {
	return &TransactionRepository{db}
}

// Create persists the transaction and its product associations atomically:
// either all rows land or none do.
func (r *TransactionRepository) Create(ctx context.Context, t *model.Transaction, productIDs []int64) (*model.Transaction, error) {
	entity := toTransactionEntity(t)
	err := r.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := r.Write(ctx).Create(entity).Error; err != nil {
			return err
		}
		if len(productIDs) == 0 {
			return nil
		}
		var products []*ProductEntity
		if err := r.Write(ctx).Find(&products, productIDs).Error; err != nil {
			return err
		}
		if len(products) != len(productIDs) {
			return model.Invalid("product_ids", "reference a non-existent product")
		}
		return r.Write(ctx).Model(entity).Association("Products").Append(products)
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, entity.ID)
}

// Get loads the full ledger record: parties, products and every payment
// with its instrument.
func (r *TransactionRepository) Get(ctx context.Context, id int64) (*model.Transaction, error) {
	var entity TransactionEntity
	err := r.Read(ctx).
		Preload("Sender").
		Preload("Recipient").
		Preload("Products").
		Preload("Payments").
		Preload("Payments.PaymentWay").
		Preload("Payments.Vault").
		Preload("Payments.Vault.Currency").
		First(&entity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return toTransactionModel(&entity), nil
}

func (r *TransactionRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.Read(ctx).Model(&TransactionEntity{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns a page of transaction summaries, newest first. Ordering by
// (timestamp DESC, id DESC) keeps pages stable when timestamps collide.
func (r *TransactionRepository) List(ctx context.Context, f model.TransactionFilter) ([]*model.Transaction, int64, error) {
	q := r.Read(ctx).Model(&TransactionEntity{})

	if f.SenderID != nil {
		q = q.Where("sender_id = ?", *f.SenderID)
	}
	if f.RecipientID != nil {
		q = q.Where("recipient_id = ?", *f.RecipientID)
	}
	if f.Type != nil {
		q = q.Where("type = ?", string(*f.Type))
	}
	if f.From != nil {
		q = q.Where("timestamp >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("timestamp < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entities []*TransactionEntity
	err := q.Order("timestamp DESC, id DESC").
		Scopes(paginate(f.Page, f.PageSize)).
		Find(&entities).Error
	if err != nil {
		return nil, 0, err
	}
	return toTransactionModels(entities), total, nil
}

// Delete removes a transaction, cascading to its payments and clearing its
// product associations. Vaults, payment ways and products survive.
func (r *TransactionRepository) Delete(ctx context.Context, id int64) error {
	return r.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := r.Write(ctx).Where("transaction_id = ?", id).Delete(&PaymentEntity{}).Error; err != nil {
			return err
		}
		if err := r.Write(ctx).Exec("DELETE FROM transaction_products WHERE transaction_id = ?", id).Error; err != nil {
			return err
		}
		res := r.Write(ctx).Delete(&TransactionEntity{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return model.ErrNotFound
		}
		return nil
	})
}
