package repository

import (
	"context"
	"errors"

	"github.com/maggiehq/ledger/internal/model"
	"github.com/maggiehq/ledger/pkg/pg"
	"gorm.io/gorm"
)

// The three instrument-metadata tables are plain name+logo reference data.
// Their repositories differ only in what delete must guard against.

type BankRepository struct {
	*pg.DB
}

func NewBankRepository(db *pg.DB) *BankRepository {
	return &BankRepository{db}
}

func (r *BankRepository) Create(ctx context.Context, b *model.Bank) (*model.Bank, error) {
	entity := &BankEntity{Name: b.Name, Logo: b.Logo}
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toBankModel(entity), nil
}

func (r *BankRepository) Get(ctx context.Context, id int64) (*model.Bank, error) {
	var entity BankEntity
	if err := r.Read(ctx).First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return toBankModel(&entity), nil
}

func (r *BankRepository) List(ctx context.Context, page, pageSize int) ([]*model.Bank, int64, error) {
	q := r.Read(ctx).Model(&BankEntity{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entities []*BankEntity
	if err := q.Order("id ASC").Scopes(paginate(page, pageSize)).Find(&entities).Error; err != nil {
		return nil, 0, err
	}
	models := make([]*model.Bank, len(entities))
	for i, e := range entities {
		models[i] = toBankModel(e)
	}
	return models, total, nil
}

func (r *BankRepository) Update(ctx context.Context, b *model.Bank) (*model.Bank, error) {
	res := r.Write(ctx).Model(&BankEntity{}).Where("id = ?", b.ID).
		Select("Name", "Logo").
		Updates(&BankEntity{Name: b.Name, Logo: b.Logo})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, model.ErrNotFound
	}
	return r.Get(ctx, b.ID)
}

// Delete removes a bank. Restricted while any vault references it.
func (r *BankRepository) Delete(ctx context.Context, id int64) error {
	return r.WithinTransaction(ctx, func(ctx context.Context) error {
		var dependents int64
		if err := r.Write(ctx).Model(&VaultEntity{}).Where("bank_id = ?", id).Count(&dependents).Error; err != nil {
			return err
		}
		if dependents > 0 {
			return model.ErrRestricted
		}
		res := r.Write(ctx).Delete(&BankEntity{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return model.ErrNotFound
		}
		return nil
	})
}

type CardIssuerRepository struct {
	*pg.DB
}

func NewCardIssuerRepository(db *pg.DB) *CardIssuerRepository {
	return &CardIssuerRepository{db}
}

func (r *CardIssuerRepository) Create(ctx context.Context, i *model.CardIssuer) (*model.CardIssuer, error) {
	entity := &CardIssuerEntity{Name: i.Name, Logo: i.Logo}
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toIssuerModel(entity), nil
}

func (r *CardIssuerRepository) Get(ctx context.Context, id int64) (*model.CardIssuer, error) {
	var entity CardIssuerEntity
	if err := r.Read(ctx).First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return toIssuerModel(&entity), nil
}

func (r *CardIssuerRepository) List(ctx context.Context, page, pageSize int) ([]*model.CardIssuer, int64, error) {
	q := r.Read(ctx).Model(&CardIssuerEntity{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entities []*CardIssuerEntity
	if err := q.Order("id ASC").Scopes(paginate(page, pageSize)).Find(&entities).Error; err != nil {
		return nil, 0, err
	}
	models := make([]*model.CardIssuer, len(entities))
	for i, e := range entities {
		models[i] = toIssuerModel(e)
	}
	return models, total, nil
}

func (r *CardIssuerRepository) Update(ctx context.Context, i *model.CardIssuer) (*model.CardIssuer, error) {
	res := r.Write(ctx).Model(&CardIssuerEntity{}).Where("id = ?", i.ID).
		Select("Name", "Logo").
		Updates(&CardIssuerEntity{Name: i.Name, Logo: i.Logo})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, model.ErrNotFound
	}
	return r.Get(ctx, i.ID)
}

// Delete removes an issuer. Restricted while cards exist for it.
func (r *CardIssuerRepository) Delete(ctx context.Context, id int64) error {
	return r.WithinTransaction(ctx, func(ctx context.Context) error {
		var dependents int64
		if err := r.Write(ctx).Model(&CardEntity{}).Where("issuer_id = ?", id).Count(&dependents).Error; err != nil {
			return err
		}
		if dependents > 0 {
			return model.ErrRestricted
		}
		res := r.Write(ctx).Delete(&CardIssuerEntity{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return model.ErrNotFound
		}
		return nil
	})
}

type PaymentProcessorRepository struct {
	*pg.DB
}

func NewPaymentProcessorRepository(db *pg.DB) *PaymentProcessorRepository {
	return &PaymentProcessorRepository{db}
}

func (r *PaymentProcessorRepository) Create(ctx context.Context, p *model.PaymentProcessor) (*model.PaymentProcessor, error) {
	entity := &PaymentProcessorEntity{Name: p.Name, Logo: p.Logo}
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toProcessorModel(entity), nil
}

func (r *PaymentProcessorRepository) Get(ctx context.Context, id int64) (*model.PaymentProcessor, error) {
	var entity PaymentProcessorEntity
	if err := r.Read(ctx).First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return toProcessorModel(&entity), nil
}

func (r *PaymentProcessorRepository) List(ctx context.Context, page, pageSize int) ([]*model.PaymentProcessor, int64, error) {
	q := r.Read(ctx).Model(&PaymentProcessorEntity{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entities []*PaymentProcessorEntity
	if err := q.Order("id ASC").Scopes(paginate(page, pageSize)).Find(&entities).Error; err != nil {
		return nil, 0, err
	}
	models := make([]*model.PaymentProcessor, len(entities))
	for i, e := range entities {
		models[i] = toProcessorModel(e)
	}
	return models, total, nil
}

func (r *PaymentProcessorRepository) Update(ctx context.Context, p *model.PaymentProcessor) (*model.PaymentProcessor, error) {
	res := r.Write(ctx).Model(&PaymentProcessorEntity{}).Where("id = ?", p.ID).
		Select("Name", "Logo").
		Updates(&PaymentProcessorEntity{Name: p.Name, Logo: p.Logo})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, model.ErrNotFound
	}
	return r.Get(ctx, p.ID)
}

// Delete removes a processor. Payment ways that referenced it keep working
// with the reference cleared; the processor link is purely informational.
func (r *PaymentProcessorRepository) Delete(ctx context.Context, id int64) error {
	return r.WithinTransaction(ctx, func(ctx context.Context) error {
		err := r.Write(ctx).Model(&PaymentWayEntity{}).
			Where("processor_id = ?", id).
			Update("processor_id", nil).Error
		if err != nil {
			return err
		}
		res := r.Write(ctx).Delete(&PaymentProcessorEntity{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return model.ErrNotFound
		}
		return nil
	})
}
