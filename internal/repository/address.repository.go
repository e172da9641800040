package repository

import (
	"context"
	"errors"

	"github.com/maggiehq/ledger/internal/model"
	"github.com/maggiehq/ledger/pkg/pg"
	"gorm.io/gorm"
)

type AddressRepository struct {
	*pg.DB
}

func NewAddressRepository(db *pg.DB) *AddressRepository {
	return &AddressRepository{db}
}

func (r *AddressRepository) Create(ctx context.Context, a *model.Address) (*model.Address, error) {
	entity := toAddressEntity(a)
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toAddressModel(entity), nil
}

func (r *AddressRepository) Get(ctx context.Context, id int64) (*model.Address, error) {
	var entity AddressEntity
	if err := r.Read(ctx).First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return toAddressModel(&entity), nil
}

func (r *AddressRepository) List(ctx context.Context, page, pageSize int) ([]*model.Address, int64, error) {
	q := r.Read(ctx).Model(&AddressEntity{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entities []*AddressEntity
	if err := q.Order("id ASC").Scopes(paginate(page, pageSize)).Find(&entities).Error; err != nil {
		return nil, 0, err
	}
	return toAddressModels(entities), total, nil
}

// Update rewrites every updatable column so flags and numbers can be set
// back to their zero values.
func (r *AddressRepository) Update(ctx context.Context, a *model.Address) (*model.Address, error) {
	if !a.Type.Valid() {
		return nil, model.Invalid("type", "is not a known address type")
	}
	res := r.Write(ctx).Model(&AddressEntity{}).Where("id = ?", a.ID).
		Select("Type", "Name", "BuildingNumber", "PostalCode", "City", "Latitude", "Longitude").
		Updates(toAddressEntity(a))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, model.ErrNotFound
	}
	return r.Get(ctx, a.ID)
}

// Delete removes an address. Restricted while an entity references it.
func (r *AddressRepository) Delete(ctx context.Context, id int64) error {
	return r.WithinTransaction(ctx, func(ctx context.Context) error {
		var dependents int64
		if err := r.Write(ctx).Model(&EntityEntity{}).Where("address_id = ?", id).Count(&dependents).Error; err != nil {
			return err
		}
		if dependents > 0 {
			return model.ErrRestricted
		}
		res := r.Write(ctx).Delete(&AddressEntity{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return model.ErrNotFound
		}
		return nil
	})
}
