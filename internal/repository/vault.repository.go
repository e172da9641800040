package repository

import (
	"context"
	"errors"

	"github.com/maggiehq/ledger/internal/model"
	"github.com/maggiehq/ledger/pkg/pg"
	"gorm.io/gorm"
)

type VaultRepository struct {
	*pg.DB
}

func NewVaultRepository(db *pg.DB) *VaultRepository {
	return &VaultRepository{db}
}

// Create persists a vault together with its card associations in one
// transaction.
func (r *VaultRepository) Create(ctx context.Context, v *model.Vault, cardIDs []int64) (*model.Vault, error) {
	entity := toVaultEntity(v)
	err := r.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := r.Write(ctx).Create(entity).Error; err != nil {
			return err
		}
		if len(cardIDs) == 0 {
			return nil
		}
		var cards []*CardEntity
		if err := r.Write(ctx).Find(&cards, cardIDs).Error; err != nil {
			return err
		}
		if len(cards) != len(cardIDs) {
			return model.Invalid("card_ids", "reference a non-existent card")
		}
		return r.Write(ctx).Model(entity).Association("Cards").Append(cards)
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, entity.ID)
}

func (r *VaultRepository) Get(ctx context.Context, id int64) (*model.Vault, error) {
	var entity VaultEntity
	err := r.Read(ctx).
		Preload("Currency").
		Preload("Bank").
		Preload("Cards").
		First(&entity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return toVaultModel(&entity), nil
}

func (r *VaultRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.Read(ctx).Model(&VaultEntity{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *VaultRepository) List(ctx context.Context, page, pageSize int) ([]*model.Vault, int64, error) {
	q := r.Read(ctx).Model(&VaultEntity{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entities []*VaultEntity
	err := q.Preload("Currency").Order("id ASC").Scopes(paginate(page, pageSize)).Find(&entities).Error
	if err != nil {
		return nil, 0, err
	}
	return toVaultModels(entities), total, nil
}

// Update rewrites the vault row. Foreign keys and the type code are
// re-checked the same way Create checks them, so an update can never leave
// a dangling reference behind.
func (r *VaultRepository) Update(ctx context.Context, v *model.Vault) (*model.Vault, error) {
	if !v.Type.Valid() {
		return nil, model.Invalid("type", "is not a known vault type")
	}
	err := r.WithinTransaction(ctx, func(ctx context.Context) error {
		if ok, err := rowExists(r.Write(ctx), &CurrencyEntity{}, v.CurrencyID); err != nil {
			return err
		} else if !ok {
			return model.Invalid("currency_id", "references a non-existent currency")
		}
		if v.BankID != nil {
			if ok, err := rowExists(r.Write(ctx), &BankEntity{}, *v.BankID); err != nil {
				return err
			} else if !ok {
				return model.Invalid("bank_id", "references a non-existent bank")
			}
		}
		res := r.Write(ctx).Model(&VaultEntity{}).Where("id = ?", v.ID).
			Select("Name", "Balance", "Type", "CurrencyID", "BankID").
			Updates(toVaultEntity(v))
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
	return r.Get(ctx, v.ID)
}

// Delete removes a vault and its card associations. Restricted while any
// payment references the vault; the payment record is what proves where
// money came from.
func (r *VaultRepository) Delete(ctx context.Context, id int64) error {
	return r.WithinTransaction(ctx, func(ctx context.Context) error {
		var dependents int64
		if err := r.Write(ctx).Model(&PaymentEntity{}).Where("vault_id = ?", id).Count(&dependents).Error; err != nil {
			return err
		}
		if dependents > 0 {
			return model.ErrRestricted
		}
		if err := r.Write(ctx).Exec("DELETE FROM vault_cards WHERE vault_id = ?", id).Error; err != nil {
			return err
		}
		res := r.Write(ctx).Delete(&VaultEntity{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return model.ErrNotFound
		}
		return nil
	})
}
