package admin

import (
	"context"
	"encoding/json"

	"github.com/maggiehq/ledger/internal/model"
	"github.com/maggiehq/ledger/internal/repository"
	"github.com/maggiehq/ledger/pkg/logger"
)

// Resource is one admin-editable table. Closures keep the registry flat:
// every record type gets the same five routes regardless of its shape.
// A nil operation means the resource does not support it.
type Resource struct {
	Name   string
	List   func(ctx context.Context, page, pageSize int) (any, int64, error)
	Create func(ctx context.Context, body []byte) (any, error)
	Get    func(ctx context.Context, id int64) (any, error)
	Update func(ctx context.Context, id int64, body []byte) (any, error)
	Delete func(ctx context.Context, id int64) error
}

// CurrencyInvalidator drops a cached currency after an admin write so the
// read API stops serving the stale copy.
type CurrencyInvalidator interface {
	Invalidate(id int64) error
}

// Repos carries every repository the admin registry edits through.
type Repos struct {
	Currencies   *repository.CurrencyRepository
	Addresses    *repository.AddressRepository
	Chains       *repository.ChainRepository
	Entities     *repository.EntityRepository
	Banks        *repository.BankRepository
	Issuers      *repository.CardIssuerRepository
	Processors   *repository.PaymentProcessorRepository
	Cards        *repository.CardRepository
	PaymentWays  *repository.PaymentWayRepository
	Vaults       *repository.VaultRepository
	Products     *repository.ProductRepository
	Transactions *repository.TransactionRepository
	Payments     *repository.PaymentRepository

	// Optional. When set, currency updates and deletes evict the cached copy.
	CurrencyCache CurrencyInvalidator
}

func (r Repos) invalidateCurrency(id int64) {
	if r.CurrencyCache == nil {
		return
	}
	if err := r.CurrencyCache.Invalidate(id); err != nil {
		logger.Warn("[admin] currency cache invalidation failed", "id", id, "error", err)
	}
}

type vaultPayload struct {
	model.Vault
	CardIDs []int64 `json:"card_ids"`
}

type transactionPayload struct {
	model.Transaction
	ProductIDs []int64 `json:"product_ids"`
}

// NewRegistry registers every record type under its URL name. The set is
// static: a new record type is one more entry here, nothing else.
func NewRegistry(r Repos) map[string]Resource {
	reg := map[string]Resource{}
	add := func(res Resource) { reg[res.Name] = res }

	add(Resource{
		Name: "currencies",
		List: func(ctx context.Context, page, pageSize int) (any, int64, error) {
			return r.Currencies.List(ctx, page, pageSize)
		},
		Create: func(ctx context.Context, body []byte) (any, error) {
			var c model.Currency
			if err := json.Unmarshal(body, &c); err != nil {
				return nil, model.Invalid("body", err.Error())
			}
			req := model.CurrencyCreateRequest{
				Name:                 c.Name,
				MinorUnits:           c.MinorUnits,
				ISOCode:              c.ISOCode,
				Symbol:               c.Symbol,
				SymbolPrecedesAmount: c.SymbolPrecedesAmount,
			}
			if err := req.Validate(); err != nil {
				return nil, err
			}
			return r.Currencies.Create(ctx, &c)
		},
		Get: func(ctx context.Context, id int64) (any, error) {
			return r.Currencies.Get(ctx, id)
		},
		Update: func(ctx context.Context, id int64, body []byte) (any, error) {
			var c model.Currency
			if err := json.Unmarshal(body, &c); err != nil {
				return nil, model.Invalid("body", err.Error())
			}
			req := model.CurrencyCreateRequest{
				Name:                 c.Name,
				MinorUnits:           c.MinorUnits,
				ISOCode:              c.ISOCode,
				Symbol:               c.Symbol,
				SymbolPrecedesAmount: c.SymbolPrecedesAmount,
			}
			if err := req.Validate(); err != nil {
				return nil, err
			}
			c.ID = id
			updated, err := r.Currencies.Update(ctx, &c)
			if err != nil {
				return nil, err
			}
			r.invalidateCurrency(id)
			return updated, nil
		},
		Delete: func(ctx context.Context, id int64) error {
			if err := r.Currencies.Delete(ctx, id); err != nil {
				return err
			}
			r.invalidateCurrency(id)
			return nil
		},
	})

	add(Resource{
		Name: "addresses",
		List: func(ctx context.Context, page, pageSize int) (any, int64, error) {
			return r.Addresses.List(ctx, page, pageSize)
		},
		Create: func(ctx context.Context, body []byte) (any, error) {
			var a model.Address
			if err := json.Unmarshal(body, &a); err != nil {
				return nil, model.Invalid("body", err.Error())
			}
			req := model.AddressCreateRequest{
				Type:           a.Type,
				Name:           a.Name,
				BuildingNumber: a.BuildingNumber,
				PostalCode:     a.PostalCode,
				City:           a.City,
				Latitude:       a.Latitude,
				Longitude:      a.Longitude,
			}
			if err := req.Validate(); err != nil {
				return nil, err
			}
			return r.Addresses.Create(ctx, &a)
		},
		Get: func(ctx context.Context, id int64) (any, error) {
			return r.Addresses.Get(ctx, id)
		},
		Update: func(ctx context.Context, id int64, body []byte) (any, error) {
			var a model.Address
			if err := json.Unmarshal(body, &a); err != nil {
				return nil, model.Invalid("body", err.Error())
			}
			req := model.AddressCreateRequest{
				Type:           a.Type,
				Name:           a.Name,
				BuildingNumber: a.BuildingNumber,
				PostalCode:     a.PostalCode,
				City:           a.City,
				Latitude:       a.Latitude,
				Longitude:      a.Longitude,
			}
			if err := req.Validate(); err != nil {
				return nil, err
			}
			a.ID = id
			return r.Addresses.Update(ctx, &a)
		},
		Delete: r.Addresses.Delete,
	})

	add(Resource{
		Name: "entity-chains",
		List: func(ctx context.Context, page, pageSize int) (any, int64, error) {
			return r.Chains.List(ctx, page, pageSize)
		},
		Create: func(ctx context.Context, body []byte) (any, error) {
			var c model.EntityChain
			if err := json.Unmarshal(body, &c); err != nil {
				return nil, model.Invalid("body", err.Error())
			}
			req := model.EntityChainCreateRequest{Name: c.Name, Website: c.Website}
			if err := req.Validate(); err != nil {
				return nil, err
			}
			return r.Chains.Create(ctx, &c)
		},
		Get: func(ctx context.Context, id int64) (any, error) {
			return r.Chains.Get(ctx, id)
		},
		Update: func(ctx context.Context, id int64, body []byte) (any, error) {
			var c model.EntityChain
			if err := json.Unmarshal(body, &c); err != nil {
				return nil, model.Invalid("body", err.Error())
			}
			req := model.EntityChainCreateRequest{Name: c.Name, Website: c.Website}
			if err := req.Validate(); err != nil {
				return nil, err
			}
			c.ID = id
			return r.Chains.Update(ctx, &c)
		},
		Delete: r.Chains.Delete,
	})

	add(Resource{
		Name: "entities",
		List: func(ctx context.Context, page, pageSize int) (any, int64, error) {
			return r.Entities.List(ctx, page, pageSize)
		},
		Create: func(ctx context.Context, body []byte) (any, error) {
			var e model.Entity
			if err := json.Unmarshal(body, &e); err != nil {
				return nil, model.Invalid("body", err.Error())
			}
			req := model.EntityCreateRequest{
				Name:      e.Name,
				Website:   e.Website,
				AddressID: e.AddressID,
				ChainID:   e.ChainID,
			}
			if err := req.Validate(); err != nil {
				return nil, err
			}
			return r.Entities.Create(ctx, &e)
		},
		Get: func(ctx context.Context, id int64) (any, error) {
			return r.Entities.Get(ctx, id)
		},
		Update: func(ctx context.Context, id int64, body []byte) (any, error) {
			var e model.Entity
			if err := json.Unmarshal(body, &e); err != nil {
				return nil, model.Invalid("body", err.Error())
			}
			req := model.EntityCreateRequest{
				Name:      e.Name,
				Website:   e.Website,
				AddressID: e.AddressID,
				ChainID:   e.ChainID,
			}
			if err := req.Validate(); err != nil {
				return nil, err
			}
			e.ID = id
			return r.Entities.Update(ctx, &e)
		},
		Delete: r.Entities.Delete,
	})

	add(Resource{
		Name: "banks",
		List: func(ctx context.Context, page, pageSize int) (any, int64, error) {
			return r.Banks.List(ctx, page, pageSize)
		},
		Create: func(ctx context.Context, body []byte) (any, error) {
			var b model.Bank
			if err := json.Unmarshal(body, &b); err != nil {
				return nil, model.Invalid("body", err.Error())
			}
			if b.Name == "" {
				return nil, model.Invalid("name", "is required")
			}
			return r.Banks.Create(ctx, &b)
		},
		Get: func(ctx context.Context, id int64) (any, error) {
			return r.Banks.Get(ctx, id)
		},
		Update: func(ctx context.Context, id int64, body []byte) (any, error) {
			var b model.Bank
			if err := json.Unmarshal(body, &b); err != nil {
				return nil, model.Invalid("body", err.Error())
			}
			if b.Name == "" {
				return nil, model.Invalid("name", "is required")
			}
			b.ID = id
			return r.Banks.Update(ctx, &b)
		},
		Delete: r.Banks.Delete,
	})

	add(Resource{
		Name: "card-issuers",
		List: func(ctx context.Context, page, pageSize int) (any, int64, error) {
			return r.Issuers.List(ctx, page, pageSize)
		},
		Create: func(ctx context.Context, body []byte) (any, error) {
			var i model.CardIssuer
			if err := json.Unmarshal(body, &i); err != nil {
				return nil, model.Invalid("body", err.Error())
			}
			if i.Name == "" {
				return nil, model.Invalid("name", "is required")
			}
			return r.Issuers.Create(ctx, &i)
		},
		Get: func(ctx context.Context, id int64) (any, error) {
			return r.Issuers.Get(ctx, id)
		},
		Update: func(ctx context.Context, id int64, body []byte) (any, error) {
			var i model.CardIssuer
			if err := json.Unmarshal(body, &i); err != nil {
				return nil, model.Invalid("body", err.Error())
			}
			if i.Name == "" {
				return nil, model.Invalid("name", "is required")
			}
			i.ID = id
			return r.Issuers.Update(ctx, &i)
		},
		Delete: r.Issuers.Delete,
	})

	add(Resource{
		Name: "payment-processors",
		List: func(ctx context.Context, page, pageSize int) (any, int64, error) {
			return r.Processors.List(ctx, page, pageSize)
		},
		Create: func(ctx context.Context, body []byte) (any, error) {
			var p model.PaymentProcessor
			if err := json.Unmarshal(body, &p); err != nil {
				return nil, model.Invalid("body", err.Error())
			}
			if p.Name == "" {
				return nil, model.Invalid("name", "is required")
			}
			return r.Processors.Create(ctx, &p)
		},
		Get: func(ctx context.Context, id int64) (any, error) {
			return r.Processors.Get(ctx, id)
		},
		Update: func(ctx context.Context, id int64, body []byte) (any, error) {
			var p model.PaymentProcessor
			if err := json.Unmarshal(body, &p); err != nil {
				return nil, model.Invalid("body", err.Error())
			}
			if p.Name == "" {
				return nil, model.Invalid("name", "is required")
			}
			p.ID = id
			return r.Processors.Update(ctx, &p)
		},
		Delete: r.Processors.Delete,
	})

	add(Resource{
		Name: "cards",
		List: func(ctx context.Context, page, pageSize int) (any, int64, error) {
			return r.Cards.List(ctx, page, pageSize)
		},
		Create: func(ctx context.Context, body []byte) (any, error) {
			var c model.Card
			if err := json.Unmarshal(body, &c); err != nil {
				return nil, model.Invalid("body", err.Error())
			}
			req := model.CardCreateRequest{
				Name:        c.Name,
				IsVirtual:   c.IsVirtual,
				IsTemporary: c.IsTemporary,
				LastFour:    c.LastFour,
				IssuerID:    c.IssuerID,
			}
			if err := req.Validate(); err != nil {
				return nil, err
			}
			return r.Cards.Create(ctx, &c)
		},
		Get: func(ctx context.Context, id int64) (any, error) {
			return r.Cards.Get(ctx, id)
		},
		Update: func(ctx context.Context, id int64, body []byte) (any, error) {
			var c model.Card
			if err := json.Unmarshal(body, &c); err != nil {
				return nil, model.Invalid("body", err.Error())
			}
			req := model.CardCreateRequest{
				Name:        c.Name,
				IsVirtual:   c.IsVirtual,
				IsTemporary: c.IsTemporary,
				LastFour:    c.LastFour,
				IssuerID:    c.IssuerID,
			}
			if err := req.Validate(); err != nil {
				return nil, err
			}
			c.ID = id
			return r.Cards.Update(ctx, &c)
		},
		Delete: r.Cards.Delete,
	})

	add(Resource{
		Name: "payment-ways",
		List: func(ctx context.Context, page, pageSize int) (any, int64, error) {
			return r.PaymentWays.List(ctx, page, pageSize)
		},
		Create: func(ctx context.Context, body []byte) (any, error) {
			var w model.PaymentWay
			if err := json.Unmarshal(body, &w); err != nil {
				return nil, model.Invalid("body", err.Error())
			}
			req := model.PaymentWayCreateRequest{Name: w.Name, Image: w.Image, ProcessorID: w.ProcessorID}
			if err := req.Validate(); err != nil {
				return nil, err
			}
			return r.PaymentWays.Create(ctx, &w)
		},
		Get: func(ctx context.Context, id int64) (any, error) {
			return r.PaymentWays.Get(ctx, id)
		},
		Update: func(ctx context.Context, id int64, body []byte) (any, error) {
			var w model.PaymentWay
			if err := json.Unmarshal(body, &w); err != nil {
				return nil, model.Invalid("body", err.Error())
			}
			req := model.PaymentWayCreateRequest{Name: w.Name, Image: w.Image, ProcessorID: w.ProcessorID}
			if err := req.Validate(); err != nil {
				return nil, err
			}
			w.ID = id
			return r.PaymentWays.Update(ctx, &w)
		},
		Delete: r.PaymentWays.Delete,
	})

	add(Resource{
		Name: "vaults",
		List: func(ctx context.Context, page, pageSize int) (any, int64, error) {
			return r.Vaults.List(ctx, page, pageSize)
		},
		Create: func(ctx context.Context, body []byte) (any, error) {
			var p vaultPayload
			if err := json.Unmarshal(body, &p); err != nil {
				return nil, model.Invalid("body", err.Error())
			}
			req := model.VaultCreateRequest{
				Name:       p.Name,
				Balance:    p.Balance,
				Type:       p.Type,
				CurrencyID: p.CurrencyID,
				BankID:     p.BankID,
				CardIDs:    p.CardIDs,
			}
			if err := req.Validate(); err != nil {
				return nil, err
			}
			return r.Vaults.Create(ctx, &p.Vault, p.CardIDs)
		},
		Get: func(ctx context.Context, id int64) (any, error) {
			return r.Vaults.Get(ctx, id)
		},
		Update: func(ctx context.Context, id int64, body []byte) (any, error) {
			var p vaultPayload
			if err := json.Unmarshal(body, &p); err != nil {
				return nil, model.Invalid("body", err.Error())
			}
			// Card links are not editable through update; CardIDs stays empty.
			req := model.VaultCreateRequest{
				Name:       p.Name,
				Balance:    p.Balance,
				Type:       p.Type,
				CurrencyID: p.CurrencyID,
				BankID:     p.BankID,
			}
			if err := req.Validate(); err != nil {
				return nil, err
			}
			p.Vault.ID = id
			return r.Vaults.Update(ctx, &p.Vault)
		},
		Delete: r.Vaults.Delete,
	})

	add(Resource{
		Name: "products",
		List: func(ctx context.Context, page, pageSize int) (any, int64, error) {
			return r.Products.List(ctx, page, pageSize)
		},
		Create: func(ctx context.Context, body []byte) (any, error) {
			var p model.Product
			if err := json.Unmarshal(body, &p); err != nil {
				return nil, model.Invalid("body", err.Error())
			}
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
			return r.Products.Create(ctx, &p)
		},
		Get: func(ctx context.Context, id int64) (any, error) {
			return r.Products.Get(ctx, id)
		},
		Update: func(ctx context.Context, id int64, body []byte) (any, error) {
			var p model.Product
			if err := json.Unmarshal(body, &p); err != nil {
				return nil, model.Invalid("body", err.Error())
			}
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
			p.ID = id
			return r.Products.Update(ctx, &p)
		},
		Delete: r.Products.Delete,
	})

	add(Resource{
		Name: "transactions",
		List: func(ctx context.Context, page, pageSize int) (any, int64, error) {
			items, total, err := r.Transactions.List(ctx, model.TransactionFilter{Page: page, PageSize: pageSize})
			return items, total, err
		},
		Create: func(ctx context.Context, body []byte) (any, error) {
			var p transactionPayload
			if err := json.Unmarshal(body, &p); err != nil {
				return nil, model.Invalid("body", err.Error())
			}
			req := model.TransactionCreateRequest{
				Name:        p.Name,
				Timestamp:   p.Timestamp,
				SenderID:    p.SenderID,
				RecipientID: p.RecipientID,
				Type:        p.Type,
				Receipt:     p.Receipt,
				ProductIDs:  p.ProductIDs,
			}
			if err := req.Validate(); err != nil {
				return nil, err
			}
			return r.Transactions.Create(ctx, &p.Transaction, p.ProductIDs)
		},
		Get: func(ctx context.Context, id int64) (any, error) {
			return r.Transactions.Get(ctx, id)
		},
		Delete: r.Transactions.Delete,
	})

	add(Resource{
		Name: "payments",
		List: func(ctx context.Context, page, pageSize int) (any, int64, error) {
			return r.Payments.List(ctx, page, pageSize)
		},
		Create: func(ctx context.Context, body []byte) (any, error) {
			var p model.Payment
			if err := json.Unmarshal(body, &p); err != nil {
				return nil, model.Invalid("body", err.Error())
			}
			req := model.PaymentCreateRequest{
				Amount:        p.Amount,
				TransactionID: p.TransactionID,
				PaymentWayID:  p.PaymentWayID,
				VaultID:       p.VaultID,
			}
			if err := req.Validate(); err != nil {
				return nil, err
			}
			return r.Payments.Create(ctx, &p)
		},
		Get: func(ctx context.Context, id int64) (any, error) {
			return r.Payments.Get(ctx, id)
		},
		Delete: r.Payments.Delete,
	})

	return reg
}
