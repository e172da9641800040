package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/maggiehq/ledger/internal/model"
	"github.com/maggiehq/ledger/pkg/logger"
	"github.com/maggiehq/ledger/pkg/redis"
)

const currencyTTL = time.Hour

type CurrencyRepository interface {
	Get(ctx context.Context, id int64) (*model.Currency, error)
}

// CurrencyCache is a read-through cache over currency reference data.
// Currencies are immutable in practice so an hour of staleness is fine;
// Invalidate exists for the admin surface which can still edit them.
type CurrencyCache struct {
	repo  CurrencyRepository
	redis redis.RedisAdapter
}

func NewCurrencyCache(repo CurrencyRepository, r redis.RedisAdapter) *CurrencyCache {
	return &CurrencyCache{repo: repo, redis: r}
}

func (c *CurrencyCache) Get(ctx context.Context, id int64) (*model.Currency, error) {
	key := cacheKey(id)

	if b, err := c.redis.Get(key); err == nil {
		var cur model.Currency
		if err := json.Unmarshal(b, &cur); err == nil {
			return &cur, nil
		}
		// corrupt entry, fall through to the repository
		_ = c.redis.Del(key)
	} else if err != redis.NilError {
		logger.Warn("currency cache read failed", "id", id, "error", err.Error())
	}

	cur, err := c.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(cur); err == nil {
		if err := c.redis.Set(key, b, currencyTTL); err != nil {
			logger.Warn("currency cache write failed", "id", id, "error", err.Error())
		}
	}
	return cur, nil
}

func (c *CurrencyCache) Invalidate(id int64) error {
	return c.redis.Del(cacheKey(id))
}

func cacheKey(id int64) string {
	return "currency:" + strconv.FormatInt(id, 10)
}
