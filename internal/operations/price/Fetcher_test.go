package price

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchPricesRejectsUnsupportedTimeframe(t *testing.T) {
	fetcher := NewPriceFetcher(nil, []string{"BTCUSDT"})

	for _, timeframe := range []string{"30m", "1w", ""} {
		prices, err := fetcher.FetchPrices(context.Background(), timeframe, 7)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported timeframe")
		assert.Nil(t, prices)
	}
}
