package repository

import (
	"context"
	"errors"

	"github.com/maggiehq/ledger/internal/model"
	"github.com/maggiehq/ledger/pkg/pg"
	"gorm.io/gorm"
)

type EntityRepository struct {
	*pg.DB
}

func NewEntityRepository(db *pg.DB) *EntityRepository {
	return &EntityRepository{db}
}

func (r *EntityRepository) Create(ctx context.Context, e *model.Entity) (*model.Entity, error) {
	entity := toEntityEntity(e)
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toEntityModel(entity), nil
}

func (r *EntityRepository) Get(ctx context.Context, id int64) (*model.Entity, error) {
	var entity EntityEntity
	err := r.Read(ctx).Preload("Address").Preload("Chain").First(&entity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return toEntityModel(&entity), nil
}

func (r *EntityRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.Read(ctx).Model(&EntityEntity{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *EntityRepository) List(ctx context.Context, page, pageSize int) ([]*model.Entity, int64, error) {
	q := r.Read(ctx).Model(&EntityEntity{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entities []*EntityEntity
	if err := q.Order("id ASC").Scopes(paginate(page, pageSize)).Find(&entities).Error; err != nil {
		return nil, 0, err
	}
	return toEntityModels(entities), total, nil
}

// Update rewrites the entity row, re-checking the address and chain
// references first.
func (r *EntityRepository) Update(ctx context.Context, e *model.Entity) (*model.Entity, error) {
	err := r.WithinTransaction(ctx, func(ctx context.Context) error {
		if ok, err := rowExists(r.Write(ctx), &AddressEntity{}, e.AddressID); err != nil {
			return err
		} else if !ok {
			return model.Invalid("address_id", "references a non-existent address")
		}
		if e.ChainID != nil {
			if ok, err := rowExists(r.Write(ctx), &EntityChainEntity{}, *e.ChainID); err != nil {
				return err
			} else if !ok {
				return model.Invalid("chain_id", "references a non-existent chain")
			}
		}
		res := r.Write(ctx).Model(&EntityEntity{}).Where("id = ?", e.ID).
			Select("Name", "Website", "AddressID", "ChainID").
			Updates(toEntityEntity(e))
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
	return r.Get(ctx, e.ID)
}

// Delete removes an entity. Restricted while any transaction names it as
// sender or recipient, which is what keeps the ledger referentially whole.
func (r *EntityRepository) Delete(ctx context.Context, id int64) error {
	return r.WithinTransaction(ctx, func(ctx context.Context) error {
		var dependents int64
		err := r.Write(ctx).Model(&TransactionEntity{}).
			Where("sender_id = ? OR recipient_id = ?", id, id).
			Count(&dependents).Error
		if err != nil {
			return err
		}
		if dependents > 0 {
			return model.ErrRestricted
		}
		res := r.Write(ctx).Delete(&EntityEntity{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return model.ErrNotFound
		}
		return nil
	})
}

type ChainRepository struct {
	*pg.DB
}

func NewChainRepository(db *pg.DB) *ChainRepository {
	return &ChainRepository{db}
}

func (r *ChainRepository) Create(ctx context.Context, c *model.EntityChain) (*model.EntityChain, error) {
	entity := toChainEntity(c)
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toChainModel(entity), nil
}

func (r *ChainRepository) Get(ctx context.Context, id int64) (*model.EntityChain, error) {
	var entity EntityChainEntity
	if err := r.Read(ctx).First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return toChainModel(&entity), nil
}

func (r *ChainRepository) List(ctx context.Context, page, pageSize int) ([]*model.EntityChain, int64, error) {
	q := r.Read(ctx).Model(&EntityChainEntity{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entities []*EntityChainEntity
	if err := q.Order("id ASC").Scopes(paginate(page, pageSize)).Find(&entities).Error; err != nil {
		return nil, 0, err
	}
	return toChainModels(entities), total, nil
}

func (r *ChainRepository) Update(ctx context.Context, c *model.EntityChain) (*model.EntityChain, error) {
	res := r.Write(ctx).Model(&EntityChainEntity{}).Where("id = ?", c.ID).
		Select("Name", "Website").
		Updates(toChainEntity(c))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, model.ErrNotFound
	}
	return r.Get(ctx, c.ID)
}

// Delete removes a chain and clears the chain reference of every entity
// that belonged to it. The entities themselves survive.
func (r *ChainRepository) Delete(ctx context.Context, id int64) error {
	return r.WithinTransaction(ctx, func(ctx context.Context) error {
		err := r.Write(ctx).Model(&EntityEntity{}).
			Where("chain_id = ?", id).
			Update("chain_id", nil).Error
		if err != nil {
			return err
		}
		res := r.Write(ctx).Delete(&EntityChainEntity{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return model.ErrNotFound
		}
		return nil
	})
}
