package cache

import (
	"context"
	"testing"
	"time"

	"github.com/kostman/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCard(t *testing.T) billing.RateCard {
	t.Helper()
	card, err := billing.NewRateCardFromDecimals(
		decimal.NewFromInt(1500), decimal.NewFromInt(50000), decimal.NewFromInt(25000))
	require.NoError(t, err)
	return card
}

func TestInMemoryRateCardCache(t *testing.T) {
	ctx := context.Background()

	t.Run("miss returns nil without error", func(t *testing.T) {
		cache := NewInMemoryRateCardCache()

		card, err := cache.Get(ctx, "ratecard:global")
		assert.NoError(t, err)
		assert.Nil(t, card)
	})

	t.Run("set then get returns the card", func(t *testing.T) {
		cache := NewInMemoryRateCardCache()
		card := testCard(t)

		require.NoError(t, cache.Set(ctx, "ratecard:global", card, time.Minute))

		got, err := cache.Get(ctx, "ratecard:global")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, got.CostPerKwh.Equals(card.CostPerKwh))
	})

	t.Run("expired entry reads as a miss", func(t *testing.T) {
		cache := NewInMemoryRateCardCache()
		card := testCard(t)

		require.NoError(t, cache.Set(ctx, "ratecard:global", card, -time.Second))

		got, err := cache.Get(ctx, "ratecard:global")
		assert.NoError(t, err)
		assert.Nil(t, got)
		assert.Equal(t, 0, cache.Len())
	})

	t.Run("delete drops the entry", func(t *testing.T) {
		cache := NewInMemoryRateCardCache()
		card := testCard(t)

		require.NoError(t, cache.Set(ctx, "ratecard:global", card, time.Minute))
		require.NoError(t, cache.Delete(ctx, "ratecard:global"))

		got, err := cache.Get(ctx, "ratecard:global")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}
