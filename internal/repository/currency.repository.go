package repository

import (
	"context"
	"errors"

	"github.com/maggiehq/ledger/internal/model"
	"github.com/maggiehq/ledger/pkg/pg"
	"gorm.io/gorm"
)

type CurrencyRepository struct {
	*pg.DB
}

func NewCurrencyRepository(db *pg.DB) *CurrencyRepository {
	return &CurrencyRepository{db}
}

func (r *CurrencyRepository) Create(ctx context.Context, c *model.Currency) (*model.Currency, error) {
	entity := toCurrencyEntity(c)
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toCurrencyModel(entity), nil
}

func (r *CurrencyRepository) Get(ctx context.Context, id int64) (*model.Currency, error) {
	var entity CurrencyEntity
	if err := r.Read(ctx).First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return toCurrencyModel(&entity), nil
}

func (r *CurrencyRepository) List(ctx context.Context, page, pageSize int) ([]*model.Currency, int64, error) {
	q := r.Read(ctx).Model(&CurrencyEntity{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entities []*CurrencyEntity
	if err := q.Order("id ASC").Scopes(paginate(page, pageSize)).Find(&entities).Error; err != nil {
		return nil, 0, err
	}
	return toCurrencyModels(entities), total, nil
}

// Update rewrites every updatable column so zero values (minor_units 0,
// symbol_precedes_amount false) stick.
func (r *CurrencyRepository) Update(ctx context.Context, c *model.Currency) (*model.Currency, error) {
	res := r.Write(ctx).Model(&CurrencyEntity{}).Where("id = ?", c.ID).
		Select("Name", "ISOCode", "Symbol", "MinorUnits", "SymbolPrecedesAmount").
		Updates(toCurrencyEntity(c))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, model.ErrNotFound
	}
	return r.Get(ctx, c.ID)
}

// Delete removes a currency. Restricted while any vault still holds a
// balance in it.
func (r *CurrencyRepository) Delete(ctx context.Context, id int64) error {
	return r.WithinTransaction(ctx, func(ctx context.Context) error {
		var dependents int64
		if err := r.Write(ctx).Model(&VaultEntity{}).Where("currency_id = ?", id).Count(&dependents).Error; err != nil {
			return err
		}
		if dependents > 0 {
			return model.ErrRestricted
		}
		res := r.Write(ctx).Delete(&CurrencyEntity{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return model.ErrNotFound
		}
		return nil
	})
}
