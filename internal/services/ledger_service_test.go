package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/maggiehq/ledger/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, t *model.Transaction, productIDs []int64) (*model.Transaction, error) {
	args := m.Called(ctx, t, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Get(ctx context.Context, id int64) (*model.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransactionRepository) List(ctx context.Context, f model.TransactionFilter) ([]*model.Transaction, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.Transaction), args.Get(1).(int64), args.Error(2)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, p *model.Payment) (*model.Payment, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

type MockEntityRepository struct {
	mock.Mock
}

func (m *MockEntityRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) CountByIDs(ctx context.Context, ids []int64) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

type MockVaultRepository struct {
	mock.Mock
}

func (m *MockVaultRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockPaymentWayRepository struct {
	mock.Mock
}

func (m *MockPaymentWayRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type serviceMocks struct {
	transactions *MockTransactionRepository
	payments     *MockPaymentRepository
	entities     *MockEntityRepository
	products     *MockProductRepository
	vaults       *MockVaultRepository
	ways         *MockPaymentWayRepository
}

func newTestService() (*LedgerService, *serviceMocks) {
	m := &serviceMocks{
		transactions: new(MockTransactionRepository),
		payments:     new(MockPaymentRepository),
		entities:     new(MockEntityRepository),
		products:     new(MockProductRepository),
		vaults:       new(MockVaultRepository),
		ways:         new(MockPaymentWayRepository),
	}
	svc := NewLedgerService(m.transactions, m.payments, m.entities, m.products, m.vaults, m.ways)
	return svc, m
}

func TestLedgerService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("successful create", func(t *testing.T) {
		svc, m := newTestService()

		m.entities.On("Exists", mock.Anything, int64(1)).Return(true, nil)
		m.entities.On("Exists", mock.Anything, int64(2)).Return(true, nil)
		m.products.On("CountByIDs", mock.Anything, []int64{10}).Return(int64(1), nil)

		expected := &model.Transaction{ID: 7, Name: "Groceries"}
		m.transactions.On("Create", mock.Anything, mock.AnythingOfType("*model.Transaction"), []int64{10}).
			Return(expected, nil)

		created, err := svc.Create(ctx, model.TransactionCreateRequest{
			Name:        "  Groceries  ",
			SenderID:    1,
			RecipientID: 2,
			Type:        model.TransactionPurchase,
			ProductIDs:  []int64{10},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(7), created.ID)

		m.transactions.AssertExpectations(t)
	})

	t.Run("defaults timestamp to now", func(t *testing.T) {
		svc, m := newTestService()

		m.entities.On("Exists", mock.Anything, mock.Anything).Return(true, nil)
		m.transactions.On("Create", mock.Anything, mock.MatchedBy(func(tx *model.Transaction) bool {
			return !tx.Timestamp.IsZero() && time.Since(tx.Timestamp) < time.Minute
		}), []int64(nil)).Return(&model.Transaction{ID: 1}, nil)

		_, err := svc.Create(ctx, model.TransactionCreateRequest{
			Name:        "No timestamp",
			SenderID:    1,
			RecipientID: 2,
			Type:        model.TransactionPurchase,
		})
		require.NoError(t, err)
		m.transactions.AssertExpectations(t)
	})

	t.Run("nonexistent sender rejects without persisting", func(t *testing.T) {
		svc, m := newTestService()

		m.entities.On("Exists", mock.Anything, int64(1)).Return(false, nil)

		_, err := svc.Create(ctx, model.TransactionCreateRequest{
			Name:        "Ghost",
			SenderID:    1,
			RecipientID: 2,
			Type:        model.TransactionPurchase,
		})
		assert.ErrorIs(t, err, model.ErrValidation)
		m.transactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing product rejects without persisting", func(t *testing.T) {
		svc, m := newTestService()

		m.entities.On("Exists", mock.Anything, mock.Anything).Return(true, nil)
		m.products.On("CountByIDs", mock.Anything, []int64{10, 11}).Return(int64(1), nil)

		_, err := svc.Create(ctx, model.TransactionCreateRequest{
			Name:        "Half a basket",
			SenderID:    1,
			RecipientID: 2,
			Type:        model.TransactionPurchase,
			ProductIDs:  []int64{10, 11},
		})
		assert.ErrorIs(t, err, model.ErrValidation)
		m.transactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid request never hits the repositories", func(t *testing.T) {
		svc, m := newTestService()

		_, err := svc.Create(ctx, model.TransactionCreateRequest{
			Name:        "",
			SenderID:    1,
			RecipientID: 2,
			Type:        model.TransactionPurchase,
		})
		assert.ErrorIs(t, err, model.ErrValidation)
		m.entities.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
	})

	t.Run("repository error is passed through", func(t *testing.T) {
		svc, m := newTestService()

		m.entities.On("Exists", mock.Anything, mock.Anything).Return(true, nil)
		m.transactions.On("Create", mock.Anything, mock.Anything, []int64(nil)).
			Return(nil, errors.New("db down"))

		_, err := svc.Create(ctx, model.TransactionCreateRequest{
			Name:        "Doomed",
			SenderID:    1,
			RecipientID: 2,
			Type:        model.TransactionPurchase,
		})
		assert.EqualError(t, err, "db down")
	})
}

func TestLedgerService_AddPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("successful payment", func(t *testing.T) {
		svc, m := newTestService()

		m.transactions.On("Exists", mock.Anything, int64(5)).Return(true, nil)
		m.ways.On("Exists", mock.Anything, int64(2)).Return(true, nil)
		m.vaults.On("Exists", mock.Anything, int64(3)).Return(true, nil)
		m.payments.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Payment) bool {
			return p.Amount == 1234 && p.TransactionID == 5
		})).Return(&model.Payment{ID: 1, Amount: 1234, TransactionID: 5}, nil)

		created, err := svc.AddPayment(ctx, model.PaymentCreateRequest{
			Amount:        1234,
			TransactionID: 5,
			PaymentWayID:  2,
			VaultID:       3,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1234), created.Amount)
		m.payments.AssertExpectations(t)
	})

	t.Run("missing transaction is not found", func(t *testing.T) {
		svc, m := newTestService()

		m.transactions.On("Exists", mock.Anything, int64(5)).Return(false, nil)

		_, err := svc.AddPayment(ctx, model.PaymentCreateRequest{
			Amount:        100,
			TransactionID: 5,
			PaymentWayID:  2,
			VaultID:       3,
		})
		assert.ErrorIs(t, err, model.ErrNotFound)
		m.payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing vault is a validation failure", func(t *testing.T) {
		svc, m := newTestService()

		m.transactions.On("Exists", mock.Anything, mock.Anything).Return(true, nil)
		m.ways.On("Exists", mock.Anything, mock.Anything).Return(true, nil)
		m.vaults.On("Exists", mock.Anything, mock.Anything).Return(false, nil)

		_, err := svc.AddPayment(ctx, model.PaymentCreateRequest{
			Amount:        100,
			TransactionID: 5,
			PaymentWayID:  2,
			VaultID:       3,
		})
		assert.ErrorIs(t, err, model.ErrValidation)
		m.payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("non-positive amount is rejected", func(t *testing.T) {
		svc, m := newTestService()

		_, err := svc.AddPayment(ctx, model.PaymentCreateRequest{
			Amount:        0,
			TransactionID: 5,
			PaymentWayID:  2,
			VaultID:       3,
		})
		assert.ErrorIs(t, err, model.ErrValidation)
		m.transactions.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
	})
}

func TestLedgerService_List(t *testing.T) {
	svc, m := newTestService()

	expected := []*model.Transaction{{ID: 2}, {ID: 1}}
	m.transactions.On("List", mock.Anything, mock.AnythingOfType("model.TransactionFilter")).
		Return(expected, int64(2), nil)

	items, total, err := svc.List(context.Background(), model.TransactionFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)
}
