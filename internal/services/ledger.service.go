package services

import (
	"context"
	"strings"
	"time"

	"github.com/maggiehq/ledger/internal/model"
	"github.com/maggiehq/ledger/pkg/prom"
)

type TransactionRepository interface {
	Create(ctx context.Context, t *model.Transaction, productIDs []int64) (*model.Transaction, error)
	Get(ctx context.Context, id int64) (*model.Transaction, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, f model.TransactionFilter) ([]*model.Transaction, int64, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *model.Payment) (*model.Payment, error)
}

type EntityRepository interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type ProductRepository interface {
	CountByIDs(ctx context.Context, ids []int64) (int64, error)
}

type VaultRepository interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type PaymentWayRepository interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// LedgerService owns the three end-user operations plus payment recording.
// Every write validates its foreign keys up front and is fully rejected on
// the first failure, nothing partial ever lands.
type LedgerService struct {
	transactionRepo TransactionRepository
	paymentRepo     PaymentRepository
	entityRepo      EntityRepository
	productRepo     ProductRepository
	vaultRepo       VaultRepository
	paymentWayRepo  PaymentWayRepository
}

func NewLedgerService(
	transactionRepo TransactionRepository,
	paymentRepo PaymentRepository,
	entityRepo EntityRepository,
	productRepo ProductRepository,
	vaultRepo VaultRepository,
	paymentWayRepo PaymentWayRepository,
) *LedgerService {
	return &LedgerService{
		transactionRepo: transactionRepo,
		paymentRepo:     paymentRepo,
		entityRepo:      entityRepo,
		productRepo:     productRepo,
		vaultRepo:       vaultRepo,
		paymentWayRepo:  paymentWayRepo,
	}
}

func (s *LedgerService) Create(ctx context.Context, p model.TransactionCreateRequest) (*model.Transaction, error) {
	p.Name = strings.TrimSpace(p.Name)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if ok, err := s.entityRepo.Exists(ctx, p.SenderID); err != nil {
		return nil, err
	} else if !ok {
		return nil, model.Invalid("sender_id", "references a non-existent entity")
	}
	if ok, err := s.entityRepo.Exists(ctx, p.RecipientID); err != nil {
		return nil, err
	} else if !ok {
		return nil, model.Invalid("recipient_id", "references a non-existent entity")
	}
	if len(p.ProductIDs) > 0 {
		count, err := s.productRepo.CountByIDs(ctx, p.ProductIDs)
		if err != nil {
			return nil, err
		}
		if count != int64(len(p.ProductIDs)) {
			return nil, model.Invalid("product_ids", "reference a non-existent product")
		}
	}

	ts := p.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	t := &model.Transaction{
		Name:        p.Name,
		Timestamp:   ts,
		SenderID:    p.SenderID,
		RecipientID: p.RecipientID,
		Type:        p.Type,
		Receipt:     p.Receipt,
	}

	created, err := s.transactionRepo.Create(ctx, t, p.ProductIDs)
	if err != nil {
		return nil, err
	}
	prom.IncCounter(prom.SystemLedger, prom.MetricTransactionsCreated)
	return created, nil
}

func (s *LedgerService) List(ctx context.Context, f model.TransactionFilter) ([]*model.Transaction, int64, error) {
	return s.transactionRepo.List(ctx, f)
}

func (s *LedgerService) Get(ctx context.Context, id int64) (*model.Transaction, error) {
	return s.transactionRepo.Get(ctx, id)
}

// AddPayment records one settlement leg of an existing transaction. The
// amount is in the vault currency's minor units.
func (s *LedgerService) AddPayment(ctx context.Context, p model.PaymentCreateRequest) (*model.Payment, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if ok, err := s.transactionRepo.Exists(ctx, p.TransactionID); err != nil {
		return nil, err
	} else if !ok {
		return nil, model.ErrNotFound
	}
	if ok, err := s.paymentWayRepo.Exists(ctx, p.PaymentWayID); err != nil {
		return nil, err
	} else if !ok {
		return nil, model.Invalid("payment_way_id", "references a non-existent payment way")
	}
	if ok, err := s.vaultRepo.Exists(ctx, p.VaultID); err != nil {
		return nil, err
	} else if !ok {
		return nil, model.Invalid("vault_id", "references a non-existent vault")
	}

	created, err := s.paymentRepo.Create(ctx, &model.Payment{
		Amount:        p.Amount,
		TransactionID: p.TransactionID,
		PaymentWayID:  p.PaymentWayID,
		VaultID:       p.VaultID,
	})
	if err != nil {
		return nil, err
	}
	prom.IncCounter(prom.SystemLedger, prom.MetricPaymentsCreated)
	return created, nil
}
