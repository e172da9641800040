package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/maggiehq/ledger/internal/model"
	"github.com/maggiehq/ledger/internal/repository"
	"github.com/maggiehq/ledger/pkg/pg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type adminFixture struct {
	engine *gin.Engine
	token  string
	repos  Repos
}

func setupAdmin(t *testing.T) *adminFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	raw, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, raw.AutoMigrate(
		&repository.CurrencyEntity{},
		&repository.AddressEntity{},
		&repository.EntityChainEntity{},
		&repository.EntityEntity{},
		&repository.BankEntity{},
		&repository.CardIssuerEntity{},
		&repository.PaymentProcessorEntity{},
		&repository.CardEntity{},
		&repository.PaymentWayEntity{},
		&repository.VaultEntity{},
		&repository.ProductEntity{},
		&repository.TransactionEntity{},
		&repository.PaymentEntity{},
	))

	db := pg.NewFromGorm(raw)
	repos := Repos{
		Currencies:   repository.NewCurrencyRepository(db),
		Addresses:    repository.NewAddressRepository(db),
		Chains:       repository.NewChainRepository(db),
		Entities:     repository.NewEntityRepository(db),
		Banks:        repository.NewBankRepository(db),
		Issuers:      repository.NewCardIssuerRepository(db),
		Processors:   repository.NewPaymentProcessorRepository(db),
		Cards:        repository.NewCardRepository(db),
		PaymentWays:  repository.NewPaymentWayRepository(db),
		Vaults:       repository.NewVaultRepository(db),
		Products:     repository.NewProductRepository(db),
		Transactions: repository.NewTransactionRepository(db),
		Payments:     repository.NewPaymentRepository(db),
	}

	token, err := IssueToken(testSecret, "tester")
	require.NoError(t, err)

	return &adminFixture{
		engine: NewEngine(NewRegistry(repos), testSecret),
		token:  token,
		repos:  repos,
	}
}

func (f *adminFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Authorization", "Bearer "+f.token)
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func TestAdmin_Auth(t *testing.T) {
	f := setupAdmin(t)

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin/currencies", nil)
		w := httptest.NewRecorder()
		f.engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin/currencies", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		w := httptest.NewRecorder()
		f.engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other, err := IssueToken("other-secret", "intruder")
		require.NoError(t, err)
		req := httptest.NewRequest("GET", "/admin/currencies", nil)
		req.Header.Set("Authorization", "Bearer "+other)
		w := httptest.NewRecorder()
		f.engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		w := f.do(t, "GET", "/admin/currencies", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAdmin_CurrencyCRUD(t *testing.T) {
	f := setupAdmin(t)

	w := f.do(t, "POST", "/admin/currencies", gin.H{
		"name": "US Dollar", "minor_units": 2, "iso_code": "USD", "symbol": "$", "symbol_precedes_amount": true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created model.Currency
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotZero(t, created.ID)

	t.Run("get", func(t *testing.T) {
		w := f.do(t, "GET", "/admin/currencies/1", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("update", func(t *testing.T) {
		w := f.do(t, "PUT", "/admin/currencies/1", gin.H{
			"name": "Greenback", "minor_units": 2, "iso_code": "USD", "symbol": "$", "symbol_precedes_amount": true,
		})
		require.Equal(t, http.StatusOK, w.Code)

		var updated model.Currency
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		assert.Equal(t, "Greenback", updated.Name)
	})

	t.Run("update with incomplete payload is rejected", func(t *testing.T) {
		w := f.do(t, "PUT", "/admin/currencies/1", gin.H{"name": "Greenback"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("list", func(t *testing.T) {
		w := f.do(t, "GET", "/admin/currencies", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Items []model.Currency `json:"items"`
			Total int64            `json:"total"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(1), resp.Total)
		assert.Len(t, resp.Items, 1)
	})

	t.Run("missing record", func(t *testing.T) {
		w := f.do(t, "GET", "/admin/currencies/9999", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("validation failure", func(t *testing.T) {
		w := f.do(t, "POST", "/admin/currencies", gin.H{"name": "No code"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		w := f.do(t, "DELETE", "/admin/currencies/1", nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = f.do(t, "GET", "/admin/currencies/1", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAdmin_UpdateValidation(t *testing.T) {
	f := setupAdmin(t)
	ctx := context.Background()

	currency, err := f.repos.Currencies.Create(ctx, &model.Currency{
		Name: "US Dollar", MinorUnits: 2, ISOCode: "USD", Symbol: "$",
	})
	require.NoError(t, err)
	vault, err := f.repos.Vaults.Create(ctx, &model.Vault{
		Name: "Checking", Type: model.VaultCurrent, CurrencyID: currency.ID,
	}, nil)
	require.NoError(t, err)

	t.Run("unknown vault type", func(t *testing.T) {
		w := f.do(t, "PUT", "/admin/vaults/1", gin.H{
			"name": "Checking", "type": "wallet", "currency_id": currency.ID,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("dangling currency reference", func(t *testing.T) {
		w := f.do(t, "PUT", "/admin/vaults/1", gin.H{
			"name": "Checking", "type": "current", "currency_id": 9999,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		got, err := f.repos.Vaults.Get(ctx, vault.ID)
		require.NoError(t, err)
		assert.Equal(t, currency.ID, got.CurrencyID)
		assert.Equal(t, model.VaultCurrent, got.Type)
	})

	t.Run("missing name on a reference row", func(t *testing.T) {
		_, err := f.repos.Banks.Create(ctx, &model.Bank{Name: "First National"})
		require.NoError(t, err)

		w := f.do(t, "PUT", "/admin/banks/1", gin.H{"logo": "new-logo"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

type invalidationRecorder struct {
	ids []int64
}

func (r *invalidationRecorder) Invalidate(id int64) error {
	r.ids = append(r.ids, id)
	return nil
}

func TestAdmin_CurrencyWritesEvictCache(t *testing.T) {
	f := setupAdmin(t)
	rec := &invalidationRecorder{}
	f.repos.CurrencyCache = rec
	f.engine = NewEngine(NewRegistry(f.repos), testSecret)
	ctx := context.Background()

	currency, err := f.repos.Currencies.Create(ctx, &model.Currency{
		Name: "US Dollar", MinorUnits: 2, ISOCode: "USD", Symbol: "$",
	})
	require.NoError(t, err)

	w := f.do(t, "PUT", "/admin/currencies/1", gin.H{
		"name": "Greenback", "minor_units": 2, "iso_code": "USD", "symbol": "$",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int64{currency.ID}, rec.ids)

	w = f.do(t, "DELETE", "/admin/currencies/1", nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []int64{currency.ID, currency.ID}, rec.ids)

	t.Run("failed update does not evict", func(t *testing.T) {
		before := len(rec.ids)
		w := f.do(t, "PUT", "/admin/currencies/9999", gin.H{
			"name": "Ghost", "minor_units": 2, "iso_code": "GST", "symbol": "?",
		})
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Len(t, rec.ids, before)
	})
}

func TestAdmin_DeleteRestrictConflicts(t *testing.T) {
	f := setupAdmin(t)
	ctx := context.Background()

	currency, err := f.repos.Currencies.Create(ctx, &model.Currency{
		Name: "US Dollar", MinorUnits: 2, ISOCode: "USD", Symbol: "$",
	})
	require.NoError(t, err)
	_, err = f.repos.Vaults.Create(ctx, &model.Vault{
		Name: "Checking", Type: model.VaultCurrent, CurrencyID: currency.ID,
	}, nil)
	require.NoError(t, err)

	w := f.do(t, "DELETE", "/admin/currencies/1", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAdmin_UnknownResource(t *testing.T) {
	f := setupAdmin(t)

	w := f.do(t, "GET", "/admin/widgets", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdmin_TransactionsAreNotEditable(t *testing.T) {
	f := setupAdmin(t)

	w := f.do(t, "PUT", "/admin/transactions/1", gin.H{"name": "rewritten"})
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestAdmin_EntityChainDetach(t *testing.T) {
	f := setupAdmin(t)
	ctx := context.Background()

	addr, err := f.repos.Addresses.Create(ctx, &model.Address{
		Type: model.AddressStreet, Name: "Main Street", City: "Springfield",
	})
	require.NoError(t, err)
	chain, err := f.repos.Chains.Create(ctx, &model.EntityChain{Name: "Chain"})
	require.NoError(t, err)
	entity, err := f.repos.Entities.Create(ctx, &model.Entity{
		Name: "Branch", AddressID: addr.ID, ChainID: &chain.ID,
	})
	require.NoError(t, err)

	w := f.do(t, "DELETE", "/admin/entity-chains/1", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	got, err := f.repos.Entities.Get(ctx, entity.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ChainID)
}
