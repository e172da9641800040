package repository

import (
	"context"
	"errors"

	"github.com/maggiehq/ledger/internal/model"
	"github.com/maggiehq/ledger/pkg/pg"
	"gorm.io/gorm"
)

type CardRepository struct {
	*pg.DB
}

func NewCardRepository(db *pg.DB) *CardRepository {
	return &CardRepository{db}
}

func (r *CardRepository) Create(ctx context.Context, c *model.Card) (*model.Card, error) {
	entity := toCardEntity(c)
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toCardModel(entity), nil
}

func (r *CardRepository) Get(ctx context.Context, id int64) (*model.Card, error) {
	var entity CardEntity
	if err := r.Read(ctx).Preload("Issuer").First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return toCardModel(&entity), nil
}

func (r *CardRepository) List(ctx context.Context, page, pageSize int) ([]*model.Card, int64, error) {
	q := r.Read(ctx).Model(&CardEntity{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entities []*CardEntity
	if err := q.Order("id ASC").Scopes(paginate(page, pageSize)).Find(&entities).Error; err != nil {
		return nil, 0, err
	}
	return toCardModels(entities), total, nil
}

// Update rewrites the card row, re-checking the issuer reference first.
func (r *CardRepository) Update(ctx context.Context, c *model.Card) (*model.Card, error) {
	err := r.WithinTransaction(ctx, func(ctx context.Context) error {
		if ok, err := rowExists(r.Write(ctx), &CardIssuerEntity{}, c.IssuerID); err != nil {
			return err
		} else if !ok {
			return model.Invalid("issuer_id", "references a non-existent issuer")
		}
		res := r.Write(ctx).Model(&CardEntity{}).Where("id = ?", c.ID).
			Select("Name", "IsVirtual", "IsTemporary", "LastFour", "IssuerID").
			Updates(toCardEntity(c))
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
	return r.Get(ctx, c.ID)
}

// Delete removes a card together with its vault associations. The vaults
// themselves are untouched.
func (r *CardRepository) Delete(ctx context.Context, id int64) error {
	return r.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := r.Write(ctx).Exec("DELETE FROM vault_cards WHERE card_id = ?", id).Error; err != nil {
			return err
		}
		res := r.Write(ctx).Delete(&CardEntity{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return model.ErrNotFound
		}
		return nil
	})
}
