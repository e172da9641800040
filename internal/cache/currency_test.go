package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/maggiehq/ledger/internal/model"
	"github.com/maggiehq/ledger/pkg/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRepo struct {
	calls      int
	currencies map[int64]*model.Currency
}

func (r *countingRepo) Get(ctx context.Context, id int64) (*model.Currency, error) {
	r.calls++
	c, ok := r.currencies[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return c, nil
}

func setupCache(t *testing.T) (*CurrencyCache, *countingRepo) {
	t.Helper()
	mr := miniredis.RunT(t)
	adapter, err := redis.NewRedisAdapter("cache-test-"+t.Name(), "test", &redis.Options{
		Addrs: []string{mr.Addr()},
	})
	require.NoError(t, err)

	repo := &countingRepo{currencies: map[int64]*model.Currency{
		1: {ID: 1, Name: "US Dollar", MinorUnits: 2, ISOCode: "USD", Symbol: "$", SymbolPrecedesAmount: true},
	}}
	return NewCurrencyCache(repo, adapter), repo
}

func TestCurrencyCache_Get(t *testing.T) {
	cache, repo := setupCache(t)
	ctx := context.Background()

	first, err := cache.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "USD", first.ISOCode)
	assert.Equal(t, 1, repo.calls)

	// second read is served from redis
	second, err := cache.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "USD", second.ISOCode)
	assert.True(t, second.SymbolPrecedesAmount)
	assert.Equal(t, 1, repo.calls)
}

func TestCurrencyCache_Invalidate(t *testing.T) {
	cache, repo := setupCache(t)
	ctx := context.Background()

	_, err := cache.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 1, repo.calls)

	require.NoError(t, cache.Invalidate(1))

	_, err = cache.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestCurrencyCache_NotFound(t *testing.T) {
	cache, repo := setupCache(t)
	ctx := context.Background()

	_, err := cache.Get(ctx, 9999)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Equal(t, 1, repo.calls)

	// misses are not cached
	_, err = cache.Get(ctx, 9999)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Equal(t, 2, repo.calls)
}
