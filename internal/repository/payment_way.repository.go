package repository

import (
	"context"
	"errors"

	"github.com/maggiehq/ledger/internal/model"
	"github.com/maggiehq/ledger/pkg/pg"
	"gorm.io/gorm"
)

type PaymentWayRepository struct {
	*pg.DB
}

func NewPaymentWayRepository(db *pg.DB) *PaymentWayRepository {
	return &PaymentWayRepository{db}
}

func (r *PaymentWayRepository) Create(ctx context.Context, w *model.PaymentWay) (*model.PaymentWay, error) {
	entity := toPaymentWayEntity(w)
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toPaymentWayModel(entity), nil
}

func (r *PaymentWayRepository) Get(ctx context.Context, id int64) (*model.PaymentWay, error) {
	var entity PaymentWayEntity
	if err := r.Read(ctx).Preload("Processor").First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return toPaymentWayModel(&entity), nil
}

func (r *PaymentWayRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.Read(ctx).Model(&PaymentWayEntity{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PaymentWayRepository) List(ctx context.Context, page, pageSize int) ([]*model.PaymentWay, int64, error) {
	q := r.Read(ctx).Model(&PaymentWayEntity{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entities []*PaymentWayEntity
	if err := q.Order("id ASC").Scopes(paginate(page, pageSize)).Find(&entities).Error; err != nil {
		return nil, 0, err
	}
	return toPaymentWayModels(entities), total, nil
}

// Update rewrites the payment way row, re-checking the processor
// reference when one is set.
func (r *PaymentWayRepository) Update(ctx context.Context, w *model.PaymentWay) (*model.PaymentWay, error) {
	err := r.WithinTransaction(ctx, func(ctx context.Context) error {
		if w.ProcessorID != nil {
			if ok, err := rowExists(r.Write(ctx), &PaymentProcessorEntity{}, *w.ProcessorID); err != nil {
				return err
			} else if !ok {
				return model.Invalid("processor_id", "references a non-existent processor")
			}
		}
		res := r.Write(ctx).Model(&PaymentWayEntity{}).Where("id = ?", w.ID).
			Select("Name", "Image", "ProcessorID").
			Updates(toPaymentWayEntity(w))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return model.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, w.ID)
}

// Delete removes a payment way and cascades to the payments settled
// through it. Their transactions and vaults are untouched.
func (r *PaymentWayRepository) Delete(ctx context.Context, id int64) error {
	return r.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := r.Write(ctx).Where("payment_way_id = ?", id).Delete(&PaymentEntity{}).Error; err != nil {
			return err
		}
		res := r.Write(ctx).Delete(&PaymentWayEntity{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return model.ErrNotFound
		}
		return nil
	})
}
