package registry

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/raihansarker4343/exchange/internal/logger"
	"github.com/raihansarker4343/exchange/internal/metrics"
)

const (
	ratesCacheKey   = "config:rates"
	methodsCacheKey = "config:methods"

	cacheTTL = 5 * time.Minute
)

// Cache keeps the public rate/method listings in redis. Every admin
// write invalidates both keys, so a disabled rate disappears from the
// listing immediately. All cache failures fall through to Postgres.
type Cache struct {
	client *redis.Client
}

func NewCache(redisAddr string) *Cache {
	return &Cache{
		client: redis.NewClient(&redis.Options{
			Addr: redisAddr,
		}),
	}
}

func NewCacheWithClient(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) Close() error {
	return c.client.Close()
}

func (c *Cache) GetRates(ctx context.Context) ([]GiftCardRate, bool) {
	data, err := c.client.Get(ctx, ratesCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			metrics.RecordCacheLookup("error")
			logger.Debugf("Rate cache read failed: %v", err)
		} else {
			metrics.RecordCacheLookup("miss")
		}
		return nil, false
	}

	var rates []GiftCardRate
	if err := json.Unmarshal(data, &rates); err != nil {
		metrics.RecordCacheLookup("error")
		return nil, false
	}

	metrics.RecordCacheLookup("hit")
	return rates, true
}

func (c *Cache) SetRates(ctx context.Context, rates []GiftCardRate) {
	data, err := json.Marshal(rates)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, ratesCacheKey, data, cacheTTL).Err(); err != nil {
		logger.Debugf("Rate cache write failed: %v", err)
	}
}

func (c *Cache) GetMethods(ctx context.Context) ([]PaymentMethod, bool) {
	data, err := c.client.Get(ctx, methodsCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			metrics.RecordCacheLookup("error")
			logger.Debugf("Method cache read failed: %v", err)
		} else {
			metrics.RecordCacheLookup("miss")
		}
		return nil, false
	}

	var methods []PaymentMethod
	if err := json.Unmarshal(data, &methods); err != nil {
		metrics.RecordCacheLookup("error")
		return nil, false
	}

	metrics.RecordCacheLookup("hit")
	return methods, true
}

func (c *Cache) SetMethods(ctx context.Context, methods []PaymentMethod) {
	data, err := json.Marshal(methods)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, methodsCacheKey, data, cacheTTL).Err(); err != nil {
		logger.Debugf("Method cache write failed: %v", err)
	}
}

func (c *Cache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, ratesCacheKey, methodsCacheKey).Err(); err != nil {
		logger.Debugf("Cache invalidation failed: %v", err)
	}
}
