package repository

import (
	"context"
	"errors"

	"github.com/maggiehq/ledger/internal/model"
	"github.com/maggiehq/ledger/pkg/pg"
	"gorm.io/gorm"
)

type ProductRepository struct {
	*pg.DB
}

func NewProductRepository(db *pg.DB) *ProductRepository {
	return &ProductRepository{db}
}

func (r *ProductRepository) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	entity := toProductEntity(p)
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toProductModel(entity), nil
}

func (r *ProductRepository) Get(ctx context.Context, id int64) (*model.Product, error) {
	var entity ProductEntity
	if err := r.Read(ctx).First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return toProductModel(&entity), nil
}

// CountByIDs reports how many of the given ids exist. Used to validate
// product references before a transaction write.
func (r *ProductRepository) CountByIDs(ctx context.Context, ids []int64) (int64, error) {
	var count int64
	if err := r.Read(ctx).Model(&ProductEntity{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ProductRepository) List(ctx context.Context, page, pageSize int) ([]*model.Product, int64, error) {
	q := r.Read(ctx).Model(&ProductEntity{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entities []*ProductEntity
	if err := q.Order("id ASC").Scopes(paginate(page, pageSize)).Find(&entities).Error; err != nil {
		return nil, 0, err
	}
	return toProductModels(entities), total, nil
}

// Update rewrites the product row. The unit and category codes and the
// amount bounds are re-checked so an update obeys the same rules as create.
func (r *ProductRepository) Update(ctx context.Context, p *model.Product) (*model.Product, error) {
	req := model.ProductCreateRequest{
		Name:       p.Name,
		EAN:        p.EAN,
		Amount:     p.Amount,
		AmountType: p.AmountType,
		Category:   p.Category,
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	res := r.Write(ctx).Model(&ProductEntity{}).Where("id = ?", p.ID).
		Select("Name", "EAN", "Amount", "AmountType", "Category").
		Updates(toProductEntity(p))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, model.ErrNotFound
	}
	return r.Get(ctx, p.ID)
}

// Delete removes a product. Restricted while any transaction still lists
// it; catalog rows under a ledger record must not disappear.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	return r.WithinTransaction(ctx, func(ctx context.Context) error {
		var dependents int64
		err := r.Write(ctx).Table("transaction_products").Where("product_id = ?", id).Count(&dependents).Error
		if err != nil {
			return err
		}
		if dependents > 0 {
			return model.ErrRestricted
		}
		res := r.Write(ctx).Delete(&ProductEntity{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return model.ErrNotFound
		}
		return nil
	})
}
