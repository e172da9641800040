package repository

import (
	"context"
	"errors"

	"github.com/maggiehq/ledger/internal/model"
	"github.com/maggiehq/ledger/pkg/pg"
	"gorm.io/gorm"
)

type PaymentRepository struct {
	*pg.DB
}

func NewPaymentRepository(db *pg.DB) *PaymentRepository {
	return &PaymentRepository{db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *model.Payment) (*model.Payment, error) {
	entity := toPaymentEntity(p)
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toPaymentModel(entity), nil
}

func (r *PaymentRepository) Get(ctx context.Context, id int64) (*model.Payment, error) {
	var entity PaymentEntity
	err := r.Read(ctx).
		Preload("PaymentWay").
		Preload("Vault").
		Preload("Vault.Currency").
		First(&entity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return toPaymentModel(&entity), nil
}

// ListByTransaction returns every settlement leg of one transaction, in
// creation order.
func (r *PaymentRepository) ListByTransaction(ctx context.Context, transactionID int64) ([]*model.Payment, error) {
	var entities []*PaymentEntity
	err := r.Read(ctx).
		Where("transaction_id = ?", transactionID).
		Order("id ASC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return toPaymentModels(entities), nil
}

func (r *PaymentRepository) List(ctx context.Context, page, pageSize int) ([]*model.Payment, int64, error) {
	q := r.Read(ctx).Model(&PaymentEntity{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entities []*PaymentEntity
	if err := q.Order("id ASC").Scopes(paginate(page, pageSize)).Find(&entities).Error; err != nil {
		return nil, 0, err
	}
	return toPaymentModels(entities), total, nil
}

func (r *PaymentRepository) Delete(ctx context.Context, id int64) error {
	res := r.Write(ctx).Delete(&PaymentEntity{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
