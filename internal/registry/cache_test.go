package registry

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raihansarker4343/exchange/internal/logger"
)

func init() {
	logger.Init()
}

func TestCacheGetRates(t *testing.T) {
	ctx := context.Background()
	rates := []GiftCardRate{
		{ID: 1, Type: "Apple Gift Card", Rate: decimal.NewFromInt(105), IsEnabled: true},
	}
	payload, err := json.Marshal(rates)
	require.NoError(t, err)

	t.Run("Hit", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectGet(ratesCacheKey).SetVal(string(payload))

		cache := NewCacheWithClient(client)
		got, ok := cache.GetRates(ctx)

		assert.True(t, ok)
		require.Len(t, got, 1)
		assert.Equal(t, "Apple Gift Card", got[0].Type)
		assert.True(t, got[0].Rate.Equal(decimal.NewFromInt(105)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Miss", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectGet(ratesCacheKey).RedisNil()

		cache := NewCacheWithClient(client)
		got, ok := cache.GetRates(ctx)

		assert.False(t, ok)
		assert.Nil(t, got)
	})

	t.Run("Corrupt payload treated as miss", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectGet(ratesCacheKey).SetVal("{not json")

		cache := NewCacheWithClient(client)
		_, ok := cache.GetRates(ctx)

		assert.False(t, ok)
	})
}

func TestCacheSetAndInvalidate(t *testing.T) {
	ctx := context.Background()
	rates := []GiftCardRate{
		{ID: 1, Type: "Apple Gift Card", Rate: decimal.NewFromInt(105), IsEnabled: true},
	}
	payload, err := json.Marshal(rates)
	require.NoError(t, err)

	client, mock := redismock.NewClientMock()
	mock.ExpectSet(ratesCacheKey, payload, cacheTTL).SetVal("OK")
	mock.ExpectDel(ratesCacheKey, methodsCacheKey).SetVal(2)

	cache := NewCacheWithClient(client)
	cache.SetRates(ctx, rates)
	cache.Invalidate(ctx)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheGetMethods(t *testing.T) {
	ctx := context.Background()
	methods := []PaymentMethod{
		{ID: 1, Name: "bKash", IsEnabled: true, LimitPerTrx: decimal.NewFromInt(25000)},
	}
	payload, err := json.Marshal(methods)
	require.NoError(t, err)

	client, mock := redismock.NewClientMock()
	mock.ExpectGet(methodsCacheKey).SetVal(string(payload))

	cache := NewCacheWithClient(client)
	got, ok := cache.GetMethods(ctx)

	assert.True(t, ok)
	require.Len(t, got, 1)
	assert.True(t, got[0].LimitPerTrx.Equal(decimal.NewFromInt(25000)))
}
